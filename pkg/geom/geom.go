// Package geom provides the primitive geometry used by the layout engine:
// points, axis-aligned rectangles, border-to-border distances and angle
// normalization. The package has no tree awareness.
package geom

import "math"

// Point is a position in layout space, relative to the root's origin.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p minus q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Rect is an axis-aligned rectangle identified by its center and size.
// Node rectangles are centered on their layout position, so Rect mirrors
// that convention rather than a corner-anchored one.
type Rect struct {
	Center Point
	W, H   float64
}

// RectAt builds a rectangle of the given size centered on c.
func RectAt(c Point, w, h float64) Rect {
	return Rect{Center: c, W: w, H: h}
}

// Left returns the minimum x coordinate.
func (r Rect) Left() float64 { return r.Center.X - r.W/2 }

// Right returns the maximum x coordinate.
func (r Rect) Right() float64 { return r.Center.X + r.W/2 }

// Top returns the minimum y coordinate.
func (r Rect) Top() float64 { return r.Center.Y - r.H/2 }

// Bottom returns the maximum y coordinate.
func (r Rect) Bottom() float64 { return r.Center.Y + r.H/2 }

// Scale returns a rectangle with the same center and both dimensions
// multiplied by f. Used by the node-shrink fallback during relaxation.
func (r Rect) Scale(f float64) Rect {
	return Rect{Center: r.Center, W: r.W * f, H: r.H * f}
}

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	left := math.Min(r.Left(), s.Left())
	right := math.Max(r.Right(), s.Right())
	top := math.Min(r.Top(), s.Top())
	bottom := math.Max(r.Bottom(), s.Bottom())
	return Rect{
		Center: Point{(left + right) / 2, (top + bottom) / 2},
		W:      right - left,
		H:      bottom - top,
	}
}

// Contains reports whether p lies inside r (borders inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() &&
		p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Overlaps reports whether r and s share any area. Touching borders do
// not count as overlap.
func (r Rect) Overlaps(s Rect) bool {
	return r.Left() < s.Right() && s.Left() < r.Right() &&
		r.Top() < s.Bottom() && s.Top() < r.Bottom()
}

// Distance returns the shortest border-to-border distance between r and s.
// For axis-aligned rectangles this equals the minimum over all
// vertex-to-edge distances of the two rectangles. Overlapping rectangles
// have distance 0.
func (r Rect) Distance(s Rect) float64 {
	dx := math.Max(0, math.Abs(s.Center.X-r.Center.X)-(r.W+s.W)/2)
	dy := math.Max(0, math.Abs(s.Center.Y-r.Center.Y)-(r.H+s.H)/2)
	return math.Hypot(dx, dy)
}

// OverlapX returns the horizontal penetration depth of r and s, or 0 if
// they do not overlap on the x axis.
func (r Rect) OverlapX(s Rect) float64 {
	return math.Max(0, (r.W+s.W)/2-math.Abs(s.Center.X-r.Center.X))
}

// OverlapY returns the vertical penetration depth of r and s, or 0 if
// they do not overlap on the y axis.
func (r Rect) OverlapY(s Rect) float64 {
	return math.Max(0, (r.H+s.H)/2-math.Abs(s.Center.Y-r.Center.Y))
}

// FullCircle is one complete turn in radians.
const FullCircle = 2 * math.Pi

// NormalizeAngle maps a to the range [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, FullCircle)
	if a < 0 {
		a += FullCircle
	}
	return a
}

// PointOnCircle returns the point at the given angle and radius around
// center. Angle 0 points along +x and increases clockwise in screen
// coordinates (y grows downward).
func PointOnCircle(center Point, radius, angle float64) Point {
	return Point{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}
