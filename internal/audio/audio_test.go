package audio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

type recorder struct {
	effects []string
	loops   []string
	volume  float64
}

func (r *recorder) PlayEffect(name string) { r.effects = append(r.effects, name) }
func (r *recorder) PlayLoop(name string) { r.loops = append(r.loops, name) }
func (r *recorder) SetVolume(level float64) { r.volume = level }

func TestBell(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf)

	b.PlayEffect(CueFlip)
	b.PlayLoop(LoopBackground)
	if buf.String() != "\a" {
		t.Fatalf("output %q, want one bell", buf.String())
	}

	b.SetVolume(0)
	b.PlayEffect(CueWin)
	if buf.Len() != 1 {
		t.Error("muted bell rang")
	}

	b.SetVolume(7)
	if b.Volume() != 1 {
		t.Errorf("Volume() = %g, want clamped to 1", b.Volume())
	}
}

func TestBellFiltersCues(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf, CueWin)

	b.PlayEffect(CueFlip)
	b.PlayEffect(CueWin)
	if buf.String() != "\a" {
		t.Errorf("output %q, want only the win bell", buf.String())
	}
}

func TestLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := log.New(&logs)
	logger.SetLevel(log.DebugLevel)

	rec := &recorder{}
	p := NewLogged(rec, logger)
	p.PlayEffect(CuePair)
	p.PlayLoop(LoopBackground)
	p.SetVolume(0.25)

	if len(rec.effects) != 1 || rec.effects[0] != CuePair {
		t.Errorf("effects = %v", rec.effects)
	}
	if len(rec.loops) != 1 || rec.volume != 0.25 {
		t.Errorf("loops = %v volume = %g", rec.loops, rec.volume)
	}
	for _, want := range []string{"cue=pair", "cue=background", "level=0.25"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("log output missing %q:\n%s", want, logs.String())
		}
	}
}

func TestCuePlay(t *testing.T) {
	rec := &recorder{}
	Cue{Name: CueFlip}.Play(rec)
	Cue{Name: LoopBackground, Loop: true}.Play(rec)

	if len(rec.effects) != 1 || rec.effects[0] != CueFlip {
		t.Errorf("effects = %v", rec.effects)
	}
	if len(rec.loops) != 1 || rec.loops[0] != LoopBackground {
		t.Errorf("loops = %v", rec.loops)
	}
}

func TestLoggedNilNext(t *testing.T) {
	p := NewLogged(nil, log.New(&bytes.Buffer{}))
	p.PlayEffect(CueFlip) // must not panic
}

func TestFromConfig(t *testing.T) {
	var buf bytes.Buffer
	if _, ok := FromConfig(false, 1, &buf).(Nop); !ok {
		t.Error("disabled audio should be Nop")
	}
	if _, ok := FromConfig(true, 0, &buf).(Nop); !ok {
		t.Error("muted audio should be Nop")
	}

	p := FromConfig(true, 0.5, &buf)
	p.PlayEffect(CueFlip)
	p.PlayEffect(CueLock)
	if buf.String() != "\a" {
		t.Errorf("output %q, want a bell for lock only", buf.String())
	}
}
