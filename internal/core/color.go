package core

// Color is a cell color. Values are ANSI 256-color indices offset by one,
// so the zero value means "terminal default".
type Color uint16

// Named colors for HUD and board elements.
const (
	ColorDefault       Color = 0
	ColorBlack         Color = 1
	ColorRed           Color = 2
	ColorGreen         Color = 3
	ColorYellow        Color = 4
	ColorBlue          Color = 5
	ColorMagenta       Color = 6
	ColorCyan          Color = 7
	ColorWhite         Color = 8
	ColorBrightRed     Color = 10
	ColorBrightGreen   Color = 11
	ColorBrightYellow  Color = 12
	ColorBrightBlue    Color = 13
	ColorBrightMagenta Color = 14
	ColorBrightCyan    Color = 15
	ColorBrightWhite   Color = 16
	ColorSand          Color = 223 // tile backs (245,215,135 in the reference palette)
	ColorOrange        Color = 209
	ColorGray          Color = 246
)

// ANSI returns the color for a raw ANSI 256-color index.
func ANSI(index uint8) Color {
	return Color(index) + 1
}

// Code returns the ANSI 256-color index and false for the default color.
func (c Color) Code() (uint8, bool) {
	if c == ColorDefault {
		return 0, false
	}
	return uint8(c - 1), true
}

// FromRGB maps an 8-bit RGB triple to the nearest color in the 6x6x6 cube
// or the grayscale ramp of the ANSI 256-color palette.
func FromRGB(r, g, b uint8) Color {
	// Grayscale ramp when channels are close together.
	if absDiff(r, g) < 10 && absDiff(g, b) < 10 && absDiff(r, b) < 10 {
		avg := (int(r) + int(g) + int(b)) / 3
		switch {
		case avg < 8:
			return ANSI(16)
		case avg > 238:
			return ANSI(231)
		default:
			return ANSI(uint8(232 + (avg-8)/10))
		}
	}
	return ANSI(uint8(16 + 36*cubeLevel(r) + 6*cubeLevel(g) + cubeLevel(b)))
}

// cubeLevel maps a channel value to one of the six cube steps
// (0, 95, 135, 175, 215, 255).
func cubeLevel(v uint8) int {
	if v < 48 {
		return 0
	}
	if v < 115 {
		return 1
	}
	return (int(v) - 35) / 40
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
