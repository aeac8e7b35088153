// Package audio provides sound cue players for game sessions.
//
// Games never play sounds themselves; they emit cue names and the platform
// hands them to a Player.
package audio

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Cue names emitted by the game.
const (
	CueFlip     = "flip"
	CueClick    = "click"
	CuePair     = "pair"
	CueMismatch = "mismatch"
	CueLock     = "lock"
	CueWin      = "win"
	CueTimeout  = "timeout"

	LoopBackground = "background"
)

// Cue is a sound request emitted by a game.
type Cue struct {
	Name string
	Loop bool
}

// Play hands c to p.
func (c Cue) Play(p Player) {
	if c.Loop {
		p.PlayLoop(c.Name)
		return
	}
	p.PlayEffect(c.Name)
}

// Player plays named sound cues.
type Player interface {
	PlayEffect(name string)
	PlayLoop(name string)
	SetVolume(level float64)
}

// Nop discards every cue.
type Nop struct{}

func (Nop) PlayEffect(string) {}
func (Nop) PlayLoop(string) {}
func (Nop) SetVolume(float64) {}

// Bell rings the terminal bell for effects. Loops are ignored; a volume of
// zero mutes it.
type Bell struct {
	mu     sync.Mutex
	out    io.Writer
	volume float64
	rings  map[string]bool
}

// NewBell creates a bell player writing to out. Only the given cues ring;
// with none given, every effect rings.
func NewBell(out io.Writer, cues ...string) *Bell {
	b := &Bell{out: out, volume: 1}
	if len(cues) > 0 {
		b.rings = make(map[string]bool, len(cues))
		for _, c := range cues {
			b.rings[c] = true
		}
	}
	return b
}

// PlayEffect writes a BEL character.
func (b *Bell) PlayEffect(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.volume <= 0 || (b.rings != nil && !b.rings[name]) {
		return
	}
	_, _ = io.WriteString(b.out, "\a")
}

// PlayLoop is a no-op: a bell cannot loop.
func (b *Bell) PlayLoop(string) {}

// SetVolume clamps level to [0, 1].
func (b *Bell) SetVolume(level float64) {
	b.mu.Lock()
	b.volume = min(max(level, 0), 1)
	b.mu.Unlock()
}

// Volume returns the current volume.
func (b *Bell) Volume() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.volume
}

// Logged forwards cues to another player and logs each one at debug level.
type Logged struct {
	next   Player
	logger *log.Logger
}

// NewLogged wraps next. A nil next is treated as Nop.
func NewLogged(next Player, logger *log.Logger) *Logged {
	if next == nil {
		next = Nop{}
	}
	return &Logged{next: next, logger: logger}
}

func (l *Logged) PlayEffect(name string) {
	l.logger.Debug("effect", "cue", name)
	l.next.PlayEffect(name)
}

func (l *Logged) PlayLoop(name string) {
	l.logger.Debug("loop", "cue", name)
	l.next.PlayLoop(name)
}

func (l *Logged) SetVolume(level float64) {
	l.logger.Debug("volume", "level", level)
	l.next.SetVolume(level)
}

// FromConfig builds the player for the given settings: a muted or disabled
// configuration gets Nop, anything else a Bell on out.
func FromConfig(enabled bool, volume float64, out io.Writer) Player {
	if !enabled || volume <= 0 || out == nil {
		return Nop{}
	}
	b := NewBell(out, CuePair, CueMismatch, CueLock, CueWin, CueTimeout)
	b.SetVolume(volume)
	return b
}
