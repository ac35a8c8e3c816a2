package tty

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// upperHalf draws the top pixel in the foreground colour and the bottom
// pixel in the background colour, two canvas rows per terminal row.
const upperHalf = '▀'

// downsample reduces the canvas to cols x rows*2 pixels, one per scale x
// scale block. A block takes the colour of its first non-background pixel
// so thin features survive.
func downsample(img *image.RGBA, bg color.RGBA, scale, cols, pixRows int) [][]color.RGBA {
	out := make([][]color.RGBA, pixRows)
	for py := 0; py < pixRows; py++ {
		out[py] = make([]color.RGBA, cols)
		for px := 0; px < cols; px++ {
			out[py][px] = blockColor(img, bg, px*scale, py*scale, scale)
		}
	}
	return out
}

func blockColor(img *image.RGBA, bg color.RGBA, x0, y0, scale int) color.RGBA {
	b := img.Bounds()
	for y := y0; y < y0+scale && y < b.Max.Y; y++ {
		for x := x0; x < x0+scale && x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.R != bg.R || c.G != bg.G || c.B != bg.B {
				return c
			}
		}
	}
	return bg
}

func tc(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// drawPixels paints a downsampled canvas starting at the top-left cell.
func drawPixels(s tcell.Screen, px [][]color.RGBA) {
	for row := 0; row*2 < len(px); row++ {
		top := px[row*2]
		var bottom []color.RGBA
		if row*2+1 < len(px) {
			bottom = px[row*2+1]
		}
		for x, c := range top {
			lower := c
			if bottom != nil {
				lower = bottom[x]
			}
			st := tcell.StyleDefault.Foreground(tc(c)).Background(tc(lower))
			s.SetContent(x, row, upperHalf, nil, st)
		}
	}
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for i, ch := range []rune(text) {
		s.SetContent(x+i, y, ch, nil, st)
	}
}

func drawCentered(s tcell.Screen, cx, cy int, text string, st tcell.Style) {
	drawText(s, cx-len([]rune(text))/2, cy, text, st)
}
