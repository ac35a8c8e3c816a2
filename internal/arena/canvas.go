package arena

import (
	"fmt"
	"image"
	"image/color"
)

// Probe band around the radius passed to DetectCollision.
const (
	probeInnerSlack = 2
	probeOuterSlack = 1
	// selfRingRatio is how many own-coloured samples per unit of radius mark a
	// head that has closed onto its own body.
	selfRingRatio = 4.7
)

// eraseItem is one deferred background repaint.
type eraseItem struct {
	at     Vector2
	radius int
}

// Collision is the result of a canvas probe.
type Collision struct {
	Hit   bool
	Color color.RGBA
	// At is the first foreign pixel found. Only meaningful when Foreign is set.
	At      image.Point
	Foreign bool
}

// Canvas owns the pixel buffer. It is both the picture shown to the players
// and the only record of where things are: collisions are read back from it.
type Canvas struct {
	img        *image.RGBA
	playWidth  int
	playHeight int
	bg         color.RGBA
	eraseQueue []eraseItem
	// onErase observes each flushed erasure. Tests only.
	onErase func(eraseItem)
}

// NewCanvas allocates a width x height buffer filled with bg. The play area
// is the top-left playWidth x playHeight region that trails wrap around.
func NewCanvas(width, height, playWidth, playHeight int, bg color.RGBA) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas size %dx%d: %w", width, height, ErrInvalidConfig)
	}
	if playWidth <= 0 || playHeight <= 0 || playWidth > width || playHeight > height {
		return nil, fmt.Errorf("play area %dx%d in canvas %dx%d: %w",
			playWidth, playHeight, width, height, ErrInvalidConfig)
	}
	bg.A = 255
	c := &Canvas{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		playWidth:  playWidth,
		playHeight: playHeight,
		bg:         bg,
	}
	c.Clear()
	return c, nil
}

func (c *Canvas) Width() int             { return c.img.Rect.Dx() }
func (c *Canvas) Height() int            { return c.img.Rect.Dy() }
func (c *Canvas) PlayAreaWidth() int     { return c.playWidth }
func (c *Canvas) PlayAreaHeight() int    { return c.playHeight }
func (c *Canvas) Background() color.RGBA { return c.bg }

// Image exposes the buffer for presentation. Callers must not write to it.
func (c *Canvas) Image() *image.RGBA { return c.img }

// At returns the colour at (x, y) and false when the pixel is out of bounds.
func (c *Canvas) At(x, y int) (color.RGBA, bool) {
	if x < 0 || y < 0 || x >= c.img.Rect.Max.X || y >= c.img.Rect.Max.Y {
		return color.RGBA{}, false
	}
	i := c.img.PixOffset(x, y)
	p := c.img.Pix[i : i+4 : i+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}, true
}

func (c *Canvas) set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.img.Rect.Max.X || y >= c.img.Rect.Max.Y {
		return
	}
	i := c.img.PixOffset(x, y)
	p := c.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = col.R, col.G, col.B, 255
}

// Clear fills the whole buffer with the background and drops pending erasures.
func (c *Canvas) Clear() {
	c.DrawRect(c.img.Rect, c.bg)
	c.eraseQueue = c.eraseQueue[:0]
}

// DrawPoint paints a filled disk. Existing pixels are overwritten.
func (c *Canvas) DrawPoint(center image.Point, col color.RGBA, radius int) {
	if radius < 0 {
		return
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= r2 {
				c.set(center.X+dx, center.Y+dy, col)
			}
		}
	}
}

// DrawRect fills r, clipped to the buffer.
func (c *Canvas) DrawRect(r image.Rectangle, col color.RGBA) {
	r = r.Intersect(c.img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.set(x, y, col)
		}
	}
}

// DrawLine strokes a straight line of the given thickness from a to b.
func (c *Canvas) DrawLine(a, b image.Point, thickness int, col color.RGBA) {
	if thickness < 1 {
		thickness = 1
	}
	half := thickness / 2
	if a.Y == b.Y {
		x0, x1 := a.X, b.X
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		c.DrawRect(image.Rect(x0, a.Y-half, x1+1, a.Y-half+thickness), col)
		return
	}
	if a.X == b.X {
		y0, y1 := a.Y, b.Y
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		c.DrawRect(image.Rect(a.X-half, y0, a.X-half+thickness, y1+1), col)
		return
	}
	// Bresenham, stamping a disk per step.
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	e := dx + dy
	p := a
	for {
		c.DrawPoint(p, col, half)
		if p == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			p.X += sx
		}
		if e2 <= dx {
			e += dx
			p.Y += sy
		}
	}
}

// EraseEnqueue schedules a background disk at p for the next FlushErase.
// The buffer is left untouched until then, so probes in the same tick still
// see the pixels.
func (c *Canvas) EraseEnqueue(p Vector2, radius int) {
	c.eraseQueue = append(c.eraseQueue, eraseItem{at: p, radius: radius})
}

// PendingErase reports how many erasures are queued.
func (c *Canvas) PendingErase() int { return len(c.eraseQueue) }

// FlushErase paints every queued erasure with the background, most recently
// queued first.
func (c *Canvas) FlushErase() {
	for len(c.eraseQueue) > 0 {
		last := len(c.eraseQueue) - 1
		it := c.eraseQueue[last]
		c.eraseQueue = c.eraseQueue[:last]
		if c.onErase != nil {
			c.onErase(it)
		}
		c.DrawPoint(it.at.Coords(), c.bg, it.radius)
	}
}

// DetectCollision samples a thin ring around center for anything that is not
// background.
//
// Every row in [cy-r, cy+r) is swept leftward from the centre column and then
// rightward from the next column, each sweep running only while the sample
// stays inside the band (r-2)² <= d² <= (r+1)². A sample of any colour other
// than own or background, strictly inside (r+1)², is returned at once as a
// foreign hit. Otherwise, when more than r*4.7 samples carry the own colour
// the head is considered to have closed onto its own body. Out-of-bounds
// samples are skipped.
func (c *Canvas) DetectCollision(center image.Point, radius int, own color.RGBA) Collision {
	inner := (radius - probeInnerSlack) * (radius - probeInnerSlack)
	outer := (radius + probeOuterSlack) * (radius + probeOuterSlack)
	ownCount := 0

	// sample returns true when the probe must stop with a foreign hit.
	sample := func(x, y, d2 int) (Collision, bool) {
		px, ok := c.At(x, y)
		if !ok {
			return Collision{}, false
		}
		if sameColor(px, own) {
			ownCount++
			return Collision{}, false
		}
		if d2 < outer && !sameColor(px, c.bg) {
			return Collision{Hit: true, Color: px, At: image.Point{X: x, Y: y}, Foreign: true}, true
		}
		return Collision{}, false
	}

	for y := center.Y - radius; y < center.Y+radius; y++ {
		dy := y - center.Y
		for x := center.X; ; x-- {
			dx := x - center.X
			d2 := dx*dx + dy*dy
			if d2 < inner || d2 > outer {
				break
			}
			if hit, stop := sample(x, y, d2); stop {
				return hit
			}
		}
		for x := center.X + 1; ; x++ {
			dx := x - center.X
			d2 := dx*dx + dy*dy
			if d2 < inner || d2 > outer {
				break
			}
			if hit, stop := sample(x, y, d2); stop {
				return hit
			}
		}
	}

	if float64(ownCount) > float64(radius)*selfRingRatio {
		return Collision{Hit: true, Color: own}
	}
	return Collision{Color: own}
}

// IsClear reports whether every in-bounds pixel of the disk at center is
// background and the disk lies fully inside the play area.
func (c *Canvas) IsClear(center image.Point, radius int) bool {
	if center.X-radius < 0 || center.Y-radius < 0 ||
		center.X+radius >= c.playWidth || center.Y+radius >= c.playHeight {
		return false
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			px, _ := c.At(center.X+dx, center.Y+dy)
			if !sameColor(px, c.bg) {
				return false
			}
		}
	}
	return true
}

// sameColor compares the RGB channels only.
func sameColor(a, b color.RGBA) bool {
	return a.R == b.R && a.G == b.G && a.B == b.B
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
