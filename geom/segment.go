package geom

import (
	"fmt"
	"math"
)

// Segment is a single drawable piece of a path: a line (Degree 1), a quadratic
// (Degree 2) or a cubic (Degree 3) Bézier curve. P[0] is the start point,
// P[Degree] the end point.
type Segment struct {
	Degree int
	P      [4]Point
}

// End returns the end point of s.
func (s Segment) End() Point {
	return s.P[s.Degree]
}

// Eval returns the point of s at parameter t ∈ [0,1].
func (s Segment) Eval(t float64) Point {
	mt := 1 - t
	switch s.Degree {
	case 1:
		return s.P[0].Lerp(s.P[1], t)
	case 2:
		return s.P[0].Mul(mt * mt).Add(s.P[1].Mul(2 * mt * t)).Add(s.P[2].Mul(t * t))
	case 3:
		return s.P[0].Mul(mt * mt * mt).
			Add(s.P[1].Mul(3 * mt * mt * t)).
			Add(s.P[2].Mul(3 * mt * t * t)).
			Add(s.P[3].Mul(t * t * t))
	}
	panic(fmt.Sprintf("geom: invalid segment degree %d", s.Degree))
}

// BoundingBox returns the exact bounding box of s.
func (s Segment) BoundingBox() Rect {
	box := EmptyRect().UnionPoint(s.P[0]).UnionPoint(s.End())
	for _, t := range s.extrema() {
		box = box.UnionPoint(s.Eval(t))
	}
	return box
}

// extrema returns the parameters in ]0,1[ where the derivative of s vanishes
// in x or y.
func (s Segment) extrema() []float64 {
	var ts []float64
	add := func(roots []float64) {
		for _, t := range roots {
			if t > 0 && t < 1 {
				ts = append(ts, t)
			}
		}
	}
	switch s.Degree {
	case 2:
		p0, p1, p2 := s.P[0], s.P[1], s.P[2]
		add(solveLinear(p1.X-p0.X, p0.X-2*p1.X+p2.X))
		add(solveLinear(p1.Y-p0.Y, p0.Y-2*p1.Y+p2.Y))
	case 3:
		p0, p1, p2, p3 := s.P[0], s.P[1], s.P[2], s.P[3]
		add(SolveQuadratic(p1.X-p0.X, 2*(p2.X-2*p1.X+p0.X), p3.X-3*p2.X+3*p1.X-p0.X))
		add(SolveQuadratic(p1.Y-p0.Y, 2*(p2.Y-2*p1.Y+p0.Y), p3.Y-3*p2.Y+3*p1.Y-p0.Y))
	}
	return ts
}

// rootEpsilon widens the parameter interval [0,1] for intersections to absorb
// rounding noise at segment end points.
const rootEpsilon = 1e-9

// IntersectHorizontal returns the parameters t ∈ [0,1] at which s crosses the
// horizontal line at height y. Segments running exactly along the line do not
// intersect it.
func (s Segment) IntersectHorizontal(y float64) []float64 {
	var roots []float64
	switch s.Degree {
	case 1:
		y0, y1 := s.P[0].Y, s.P[1].Y
		if y0 == y1 {
			return nil
		}
		roots = []float64{(y - y0) / (y1 - y0)}
	case 2:
		y0, y1, y2 := s.P[0].Y, s.P[1].Y, s.P[2].Y
		roots = SolveQuadratic(y0-y, 2*(y1-y0), y0-2*y1+y2)
	case 3:
		y0, y1, y2, y3 := s.P[0].Y, s.P[1].Y, s.P[2].Y, s.P[3].Y
		roots = SolveCubic(y0-y, 3*(y1-y0), 3*(y0-2*y1+y2), y3-3*y2+3*y1-y0)
	default:
		panic(fmt.Sprintf("geom: invalid segment degree %d", s.Degree))
	}
	ts := roots[:0]
	for _, t := range roots {
		if t >= -rootEpsilon && t <= 1+rootEpsilon {
			ts = append(ts, math.Max(0, math.Min(1, t)))
		}
	}
	return ts
}

// IntersectionPoints returns the points where s crosses the horizontal line
// at height y.
func (s Segment) IntersectionPoints(y float64) []Point {
	ts := s.IntersectHorizontal(y)
	if len(ts) == 0 {
		return nil
	}
	pts := make([]Point, len(ts))
	for i, t := range ts {
		pts[i] = s.Eval(t)
	}
	return pts
}
