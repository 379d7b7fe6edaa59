package geom

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	r := RectAt(Point{10, 20}, 4, 6)

	if got := r.Left(); got != 8 {
		t.Errorf("Left() = %v, want 8", got)
	}
	if got := r.Right(); got != 12 {
		t.Errorf("Right() = %v, want 12", got)
	}
	if got := r.Top(); got != 17 {
		t.Errorf("Top() = %v, want 17", got)
	}
	if got := r.Bottom(); got != 23 {
		t.Errorf("Bottom() = %v, want 23", got)
	}
}

func TestRectOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{
			name: "identical",
			a:    RectAt(Point{0, 0}, 10, 10),
			b:    RectAt(Point{0, 0}, 10, 10),
			want: true,
		},
		{
			name: "partial overlap",
			a:    RectAt(Point{0, 0}, 10, 10),
			b:    RectAt(Point{8, 0}, 10, 10),
			want: true,
		},
		{
			name: "touching borders",
			a:    RectAt(Point{0, 0}, 10, 10),
			b:    RectAt(Point{10, 0}, 10, 10),
			want: false,
		},
		{
			name: "disjoint",
			a:    RectAt(Point{0, 0}, 10, 10),
			b:    RectAt(Point{100, 100}, 10, 10),
			want: false,
		},
		{
			name: "diagonal near miss",
			a:    RectAt(Point{0, 0}, 10, 10),
			b:    RectAt(Point{11, 11}, 10, 10),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() not symmetric: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want float64
	}{
		{
			name: "overlapping is zero",
			a:    RectAt(Point{0, 0}, 10, 10),
			b:    RectAt(Point{5, 0}, 10, 10),
			want: 0,
		},
		{
			name: "horizontal gap",
			a:    RectAt(Point{0, 0}, 10, 10),
			b:    RectAt(Point{30, 0}, 10, 10),
			want: 20,
		},
		{
			name: "vertical gap",
			a:    RectAt(Point{0, 0}, 10, 10),
			b:    RectAt(Point{0, 25}, 10, 10),
			want: 15,
		},
		{
			name: "diagonal corner to corner",
			a:    RectAt(Point{0, 0}, 10, 10),
			b:    RectAt(Point{8+5+5, 6+5+5}, 10, 10), // corners 8 apart horizontally, 6 vertically
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Distance(tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := RectAt(Point{0, 0}, 10, 10)
	b := RectAt(Point{20, 10}, 10, 10)

	u := a.Union(b)
	if u.Left() != -5 || u.Right() != 25 || u.Top() != -5 || u.Bottom() != 15 {
		t.Errorf("Union() = %+v, want bounds (-5,-5)-(25,15)", u)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"already normal", math.Pi, math.Pi},
		{"full turn", 2 * math.Pi, 0},
		{"negative quarter", -math.Pi / 2, 3 * math.Pi / 2},
		{"two and a half turns", 5 * math.Pi, math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAngle(tt.in)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPointOnCircle(t *testing.T) {
	got := PointOnCircle(Point{10, 10}, 5, 0)
	if math.Abs(got.X-15) > 1e-9 || math.Abs(got.Y-10) > 1e-9 {
		t.Errorf("PointOnCircle(angle 0) = %+v, want (15,10)", got)
	}

	got = PointOnCircle(Point{0, 0}, 5, math.Pi/2)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-5) > 1e-9 {
		t.Errorf("PointOnCircle(angle π/2) = %+v, want (0,5)", got)
	}
}
