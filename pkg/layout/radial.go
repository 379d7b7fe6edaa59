package layout

import (
	"math"

	"github.com/kosirm/mindmap-writer-sub008/pkg/geom"
	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

// sectorFloorDivisor sets the minimum angular budget of a child to
// fullRange/(siblingCount*sectorFloorDivisor), so low-fanout branches
// keep a usable sector.
const sectorFloorDivisor = 4

// sweepStart is the angle of the first sibling slot: 12 o'clock in screen
// coordinates (y grows downward).
const sweepStart = -math.Pi / 2

// ringGroup is one sibling set to be placed on a ring: the visible
// children of parentID, confined to an angular range swept in dir.
type ringGroup struct {
	parentID string
	children []string
	start    float64 // first edge of the angular range, in sweep direction
	size     float64 // angular extent, always positive
	radius   float64 // ring radius before capacity adjustment
	dir      float64 // +1 clockwise, -1 anticlockwise
}

// layoutRadial places every visible node on concentric rings around the
// root. Sibling angles are seeded at equal angular steps - always from
// the node count, never from prior positions - then relaxed toward equal
// border-to-border spacing.
func layoutRadial(t *tree.Tree, o Orientation, cfg Config, res *Result) {
	dir := 1.0
	if o == Anticlockwise {
		dir = -1.0
	}

	rootKids := t.VisibleChildren(t.RootID())
	if len(rootKids) == 0 {
		return
	}

	queue := []ringGroup{{
		parentID: t.RootID(),
		children: rootKids,
		start:    sweepStart,
		size:     geom.FullCircle,
		radius:   cfg.BaseRadius,
		dir:      dir,
	}}

	for len(queue) > 0 {
		g := queue[0]
		queue = queue[1:]
		queue = append(queue, placeRing(t, cfg, res, g)...)
	}
}

// placeRing positions one sibling group and returns the ring groups for
// the next depth. The parent's sector is subdivided proportionally to
// each child's direct child count and centered on the child's final
// relaxed angle, so descendants inherit a sector, not a raw angle.
func placeRing(t *tree.Tree, cfg Config, res *Result, g ringGroup) []ringGroup {
	n := len(g.children)

	// Capacity: the ring must have room for every child at minimum
	// spacing. Rather than silently overlap, grow the radius to the
	// smallest value that fits and tell the caller.
	radius := g.radius
	maxW := 0.0
	for _, id := range g.children {
		maxW = math.Max(maxW, t.Node(id).Width)
	}
	required := float64(n) * (maxW*cfg.ShrinkFactor + cfg.MinSpacing)
	if arc := g.size * radius; required > arc {
		grown := required / g.size
		res.Warnings = append(res.Warnings, capacityWarning(g.parentID, radius, grown))
		radius = grown
	}
	if g.parentID == t.RootID() {
		res.Radius = radius
	}

	sizes := make([]geom.Rect, n)
	for i, id := range g.children {
		node := t.Node(id)
		sizes[i] = geom.Rect{W: node.Width, H: node.Height}
	}
	cyclic := g.size >= geom.FullCircle-1e-9

	angles, ok := relaxRing(sizes, g, radius, cfg, 1.0, cyclic)
	if !ok {
		// Best-found layout still overlaps or never settled: shrink the
		// effective rectangles once and re-run from a fresh equal-step
		// seed. A second failure is accepted as-is.
		var retryOK bool
		angles, retryOK = relaxRing(sizes, g, radius, cfg, cfg.ShrinkFactor, cyclic)
		if !retryOK {
			res.Warnings = append(res.Warnings, convergenceWarning(g.parentID, cfg.MaxIterations, residualOverlap(sizes, angles, radius)))
		}
	}

	for i, id := range g.children {
		res.Positions[id] = geom.PointOnCircle(geom.Point{}, radius, angles[i])
	}

	// Subdivide the range for the next depth: budget proportional to
	// direct child count with a floor, normalized to sum to the range.
	weights := make([]float64, n)
	total := 0.0
	for i, id := range g.children {
		weights[i] = float64(len(t.VisibleChildren(id)))
		total += weights[i]
	}
	floor := g.size / float64(n*sectorFloorDivisor)
	sectors := make([]float64, n)
	sum := 0.0
	for i := range sectors {
		s := g.size / float64(n)
		if total > 0 {
			s = g.size * weights[i] / total
		}
		sectors[i] = math.Max(s, floor)
		sum += sectors[i]
	}
	for i := range sectors {
		sectors[i] *= g.size / sum
	}

	var next []ringGroup
	for i, id := range g.children {
		kids := t.VisibleChildren(id)
		if len(kids) == 0 {
			continue
		}
		next = append(next, ringGroup{
			parentID: id,
			children: kids,
			start:    angles[i] - g.dir*sectors[i]/2,
			size:     sectors[i],
			radius:   radius + cfg.LevelSpacing,
			dir:      g.dir,
		})
	}
	return next
}

// relaxRing seeds equal angular steps and iteratively equalizes the
// border-to-border spacing between angularly adjacent rectangles. shrink
// scales the rectangles used for distance measurement (the node-shrink
// fallback). It returns the final angles and whether the result both
// converged and is overlap-free.
func relaxRing(sizes []geom.Rect, g ringGroup, radius float64, cfg Config, shrink float64, cyclic bool) ([]float64, bool) {
	n := len(sizes)
	step := g.size / float64(n)

	angles := make([]float64, n)
	for i := range angles {
		angles[i] = g.start + g.dir*step*(float64(i)+0.5)
	}
	if n == 1 {
		return angles, true
	}

	eff := make([]geom.Rect, n)
	for i, r := range sizes {
		eff[i] = r.Scale(shrink)
	}
	rectAt := func(i int) geom.Rect {
		return geom.RectAt(geom.PointOnCircle(geom.Point{}, radius, angles[i]), eff[i].W, eff[i].H)
	}

	pairs := n - 1
	if cyclic {
		pairs = n
	}
	// Never cross a neighbor in a single step.
	maxDelta := step / 4

	converged := false
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		dist := make([]float64, pairs)
		target := 0.0
		for p := 0; p < pairs; p++ {
			dist[p] = rectAt(p).Distance(rectAt((p + 1) % n))
			target += dist[p]
		}
		target /= float64(pairs)

		maxMove := 0.0
		for i := 0; i < n; i++ {
			force := 0.0
			if i > 0 || cyclic {
				prev := (i - 1 + pairs) % pairs
				force += target - dist[prev] // previous too close pushes forward
			}
			if i < n-1 || cyclic {
				force -= target - dist[i%pairs] // next too close pushes backward
			}
			delta := g.dir * cfg.RelaxFactor * force / (2 * radius)
			delta = math.Max(-maxDelta, math.Min(maxDelta, delta))
			angles[i] += delta
			maxMove = math.Max(maxMove, math.Abs(delta)*radius)
		}
		if maxMove < cfg.ConvergenceThreshold {
			converged = true
			break
		}
	}

	overlapping := false
	for p := 0; p < pairs; p++ {
		if rectAt(p).Overlaps(rectAt((p + 1) % n)) {
			overlapping = true
			break
		}
	}
	return angles, converged && !overlapping
}

// residualOverlap reports the worst adjacent-pair penetration, for the
// convergence warning message.
func residualOverlap(sizes []geom.Rect, angles []float64, radius float64) float64 {
	worst := 0.0
	n := len(sizes)
	for i := 0; i < n; i++ {
		a := geom.RectAt(geom.PointOnCircle(geom.Point{}, radius, angles[i]), sizes[i].W, sizes[i].H)
		b := geom.RectAt(geom.PointOnCircle(geom.Point{}, radius, angles[(i+1)%n]), sizes[(i+1)%n].W, sizes[(i+1)%n].H)
		if a.Overlaps(b) {
			worst = math.Max(worst, math.Min(a.OverlapX(b), a.OverlapY(b)))
		}
	}
	return worst
}
