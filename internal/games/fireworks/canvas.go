package fireworks

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/reflex-arcade/internal/core"
)

// shades maps cell brightness to a glyph, dimmest first.
var shades = []rune{'.', '·', ':', '+', '*', '✶'}

// blankBelow is the brightness under which a cell is drawn empty.
const blankBelow = 0.06

type rgb struct {
	r, g, b float64
}

// Canvas is a Surface backed by a grid of terminal cells. Each cell covers
// cellW x cellH pixels and keeps a blended colour, so fading trails persist
// across frames the way they do on a real canvas.
type Canvas struct {
	cols, rows   int
	cellW, cellH int
	cells        []rgb
	palette      map[uint32]core.Color
}

// paletteCacheSize bounds the memo of RGB to palette lookups.
const paletteCacheSize = 4096

// NewCanvas creates a black canvas of cols x rows cells.
func NewCanvas(cols, rows, cellW, cellH int) *Canvas {
	c := &Canvas{cellW: max(1, cellW), cellH: max(1, cellH)}
	c.Resize(cols, rows)
	return c
}

// Resize changes the grid size and clears it.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(0, cols), max(0, rows)
	c.cells = make([]rgb, c.cols*c.rows)
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (float64, float64) {
	return float64(c.cols * c.cellW), float64(c.rows * c.cellH)
}

// FillRect blends col into every cell whose centre lies inside the rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	x0, y0 := c.cellAt(x, y)
	x1, y1 := c.cellAt(x+w, y+h)
	for cy := max(0, y0); cy <= min(c.rows-1, y1); cy++ {
		for cx := max(0, x0); cx <= min(c.cols-1, x1); cx++ {
			px, py := c.centre(cx, cy)
			if px >= x && px < x+w && py >= y && py < y+h {
				c.blend(cx, cy, col)
			}
		}
	}
}

// FillCircle blends col into cells whose centre lies inside the circle.
// A circle smaller than a cell still marks the cell containing its centre.
func (c *Canvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	x0, y0 := c.cellAt(cx-r, cy-r)
	x1, y1 := c.cellAt(cx+r, cy+r)
	hit := false
	for y := max(0, y0); y <= min(c.rows-1, y1); y++ {
		for x := max(0, x0); x <= min(c.cols-1, x1); x++ {
			px, py := c.centre(x, y)
			if (px-cx)*(px-cx)+(py-cy)*(py-cy) <= r*r {
				c.blend(x, y, col)
				hit = true
			}
		}
	}
	if !hit {
		x, y := c.cellAt(cx, cy)
		c.blend(x, y, col)
	}
}

func (c *Canvas) cellAt(px, py float64) (int, int) {
	return int(math.Floor(px / float64(c.cellW))), int(math.Floor(py / float64(c.cellH)))
}

func (c *Canvas) centre(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * float64(c.cellW), (float64(y) + 0.5) * float64(c.cellH)
}

func (c *Canvas) blend(x, y int, col color.NRGBA) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	a := float64(col.A) / 255
	cell := &c.cells[y*c.cols+x]
	cell.r = cell.r*(1-a) + float64(col.R)*a
	cell.g = cell.g*(1-a) + float64(col.G)*a
	cell.b = cell.b*(1-a) + float64(col.B)*a
}

// At returns the blended colour of a cell.
func (c *Canvas) At(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return color.NRGBA{A: 255}
	}
	cell := c.cells[y*c.cols+x]
	return color.NRGBA{R: uint8(cell.r + 0.5), G: uint8(cell.g + 0.5), B: uint8(cell.b + 0.5), A: 255}
}

// Render draws the canvas onto dst with its top row at dst row top.
// Brightness picks the glyph; hue picks the nearest palette colour.
func (c *Canvas) Render(dst *core.Screen, top int) {
	for y := range c.rows {
		for x := range c.cols {
			cell := c.cells[y*c.cols+x]
			peak := max(cell.r, cell.g, cell.b)
			bright := peak / 255
			if bright < blankBelow {
				continue
			}
			idx := min(len(shades)-1, int(bright*float64(len(shades))))
			norm := func(v float64) uint8 { return uint8(min(255, v*255/peak)) }
			col := c.paletteColor(norm(cell.r), norm(cell.g), norm(cell.b))
			dst.SetCell(x, top+y, shades[idx], col)
		}
	}
}

// paletteColor returns the xterm 256-colour entry nearest to r, g, b.
func (c *Canvas) paletteColor(r, g, b uint8) core.Color {
	key := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	if col, ok := c.palette[key]; ok {
		return col
	}
	if c.palette == nil || len(c.palette) >= paletteCacheSize {
		c.palette = make(map[uint32]core.Color)
	}

	col := core.ColorWhite
	hex := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hex()
	if code, ok := termenv.ANSI256.Convert(termenv.RGBColor(hex)).(termenv.ANSI256Color); ok {
		col = core.ANSI(uint8(code))
	}
	c.palette[key] = col
	return col
}
