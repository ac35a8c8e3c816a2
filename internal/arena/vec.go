package arena

import (
	"image"
	"math"
)

// Vector2 is a 2D point or direction in play-area pixels.
// All operations return new values except Rotate.
type Vector2 struct {
	X float64
	Y float64
}

// UnitFromDegrees returns a unit vector pointing at deg (0 = right, 90 = down).
func UnitFromDegrees(deg float64) Vector2 {
	v := Vector2{X: 1}
	v.Rotate(deg)
	return v
}

func (v Vector2) Add(o Vector2) Vector2 { return Vector2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vector2) Sub(o Vector2) Vector2 { return Vector2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vector2) Scale(s float64) Vector2 { return Vector2{X: v.X * s, Y: v.Y * s} }

func (v Vector2) Div(s float64) Vector2 { return Vector2{X: v.X / s, Y: v.Y / s} }

// Length returns the magnitude of v.
func (v Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// DistanceTo returns the Euclidean distance between two points.
func (v Vector2) DistanceTo(o Vector2) float64 {
	return v.Sub(o).Length()
}

// Dot returns the dot product.
func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Normalized returns a unit vector in the same direction, or the zero vector.
func (v Vector2) Normalized() Vector2 {
	l := v.Length()
	if l == 0 {
		return Vector2{}
	}
	return v.Div(l)
}

// Rotate turns v in place by deg degrees. Positive angles turn clockwise on
// screen (y grows downward). Magnitude is preserved.
func (v *Vector2) Rotate(deg float64) {
	if deg < 0 {
		deg += 360
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	x, y := v.X, v.Y
	v.X = x*cos - y*sin
	v.Y = x*sin + y*cos
}

// Rotated is the value form of Rotate.
func (v Vector2) Rotated(deg float64) Vector2 {
	v.Rotate(deg)
	return v
}

// AngleTo returns the angle in degrees, in [0, 360), that v has to be rotated
// by (clockwise on screen) to point along o.
func (v Vector2) AngleTo(o Vector2) float64 {
	a := math.Atan2(o.Y, o.X) - math.Atan2(v.Y, v.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a * 180 / math.Pi
}

// Coords rounds v to the nearest pixel.
func (v Vector2) Coords() image.Point {
	return image.Point{X: int(math.Round(v.X)), Y: int(math.Round(v.Y))}
}

// VecFromPoint converts a pixel coordinate into a Vector2.
func VecFromPoint(p image.Point) Vector2 {
	return Vector2{X: float64(p.X), Y: float64(p.Y)}
}

// wrapCoord teleports c into [0, limit).
func wrapCoord(c, limit float64) float64 {
	for c < 0 {
		c += limit
	}
	for c >= limit {
		c -= limit
	}
	return c
}
