package core

// Color represents a foreground color for a screen cell.
// Named colors map to the 16 base terminal colors; values created with ANSI
// address the full 256-color palette.
type Color uint16

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// ansiBase offsets palette colors past the named ones.
const ansiBase Color = 256

// ANSI returns a Color addressing an entry of the 256-color palette.
func ANSI(code uint8) Color {
	return ansiBase + Color(code)
}

// IsANSI reports whether c was created with ANSI.
func (c Color) IsANSI() bool {
	return c >= ansiBase
}

// Code returns the palette index of an ANSI color.
func (c Color) Code() uint8 {
	if !c.IsANSI() {
		return 0
	}
	return uint8(c - ansiBase)
}
