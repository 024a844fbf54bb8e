package outline

import (
	"fmt"

	"github.com/npillmayer/letterspace/geom"
	"github.com/npillmayer/letterspace/glyph"
)

// Option configures the decoding of contours.
type Option func(*decoder)

// DecomposeSuperBeziers switches on the decomposition of cubic segments with
// more than two off-curve points into a chain of cubic curves. Without it, such
// segments are rejected with ErrUnsupportedSegmentDegree.
func DecomposeSuperBeziers(on bool) Option {
	return func(d *decoder) {
		d.superBeziers = on
	}
}

type decoder struct {
	superBeziers bool
	elements     []geom.Element
	controls     []geom.Point
}

// DecodeContour reconstructs the path elements of a contour.
//
// A contour without points yields no elements, a contour with a single point
// yields a single MoveTo. An open contour starts at its Move point. A closed
// contour is rotated to end at its first on-curve point, which is where the
// path starts; a closed contour consisting of off-curve points only (a
// quadratic "blob") starts at the implied on-curve point between its last and
// first control points. Closed contours are terminated by a Close element.
//
// Decoding is a pure function of the contour.
func DecodeContour(c glyph.Contour, opts ...Option) ([]geom.Element, error) {
	d := &decoder{}
	for _, opt := range opts {
		opt(d)
	}
	pts := c.Points
	switch len(pts) {
	case 0:
		return nil, nil
	case 1:
		return []geom.Element{geom.MoveTo(point(pts[0]))}, nil
	}
	closed := true
	var start glyph.ContourPoint
	var walk []glyph.ContourPoint
	if pts[0].Type == glyph.Move {
		closed = false
		start, walk = pts[0], pts[1:]
	} else if i := firstOnCurve(pts); i >= 0 {
		walk = rotateLeft(pts, i+1)
		start = walk[len(walk)-1]
	} else {
		first, last := pts[0], pts[len(pts)-1]
		start = glyph.ContourPoint{
			X:    0.5 * (first.X + last.X),
			Y:    0.5 * (first.Y + last.Y),
			Type: glyph.QCurve,
		}
		walk = make([]glyph.ContourPoint, 0, len(pts)+1)
		walk = append(append(walk, pts...), start)
	}
	d.elements = make([]geom.Element, 0, len(walk)+2)
	d.elements = append(d.elements, geom.MoveTo(point(start)))
	for _, cp := range walk {
		if err := d.step(cp); err != nil {
			return nil, err
		}
	}
	if len(d.controls) > 0 {
		return nil, contourError(ErrTrailingOffCurves, glyph.OffCurve, len(d.controls))
	}
	if closed {
		d.elements = append(d.elements, geom.Close())
	}
	return d.elements, nil
}

// step consumes a single contour point, either buffering it as a control point
// or flushing the pending control points into path elements.
func (d *decoder) step(cp glyph.ContourPoint) error {
	p := point(cp)
	n := len(d.controls)
	switch cp.Type {
	case glyph.OffCurve:
		d.controls = append(d.controls, p)
		return nil
	case glyph.Move:
		return contourError(ErrIllegalMove, cp.Type, n)
	case glyph.Line:
		if n > 0 {
			return contourError(ErrIllegalPointCount, cp.Type, n)
		}
		d.emit(geom.LineTo(p))
	case glyph.QCurve:
		switch n {
		case 0:
			d.emit(geom.LineTo(p))
		case 1:
			d.emit(geom.QuadTo(d.controls[0], p))
		default: // implied on-curve points between adjacent controls
			for i := 0; i < n-1; i++ {
				c := d.controls[i]
				d.emit(geom.QuadTo(c, c.Mid(d.controls[i+1])))
			}
			d.emit(geom.QuadTo(d.controls[n-1], p))
		}
	case glyph.Curve:
		switch n {
		case 0:
			d.emit(geom.LineTo(p))
		case 1:
			d.emit(geom.QuadTo(d.controls[0], p))
		case 2:
			d.emit(geom.CubeTo(d.controls[0], d.controls[1], p))
		default:
			if !d.superBeziers {
				return contourError(ErrUnsupportedSegmentDegree, cp.Type, n)
			}
			for _, c := range decomposeSuperBezier(d.controls, p) {
				d.emit(geom.CubeTo(c[0], c[1], c[2]))
			}
		}
	default:
		panic(fmt.Sprintf("outline: invalid point type %d", cp.Type))
	}
	d.controls = d.controls[:0]
	return nil
}

func (d *decoder) emit(e geom.Element) {
	d.elements = append(d.elements, e)
}

// decomposeSuperBezier splits a cubic segment with more than two control
// points into cubic curves, returned as (control1, control2, end) triples. The
// subdivision places new on-curve points between adjacent controls in the
// same way the fontTools pen protocol does.
func decomposeSuperBezier(controls []geom.Point, end geom.Point) [][3]geom.Point {
	points := make([]geom.Point, 0, len(controls)+1)
	points = append(append(points, controls...), end)
	n := len(points) - 1
	var curves [][3]geom.Point
	pt1 := points[0]
	var pt2 geom.Point
	havePt2 := false
	for i := 2; i <= n; i++ {
		divisions := min(i, 3, n-i+2)
		for j := 1; j < divisions; j++ {
			temp := points[i-2].Lerp(points[i-1], float64(j)/float64(divisions))
			if !havePt2 {
				pt2, havePt2 = temp, true
				continue
			}
			curves = append(curves, [3]geom.Point{pt1, pt2, pt2.Mid(temp)})
			pt1, havePt2 = temp, false
		}
	}
	return append(curves, [3]geom.Point{pt1, points[n-1], points[n]})
}

func point(cp glyph.ContourPoint) geom.Point {
	return geom.Pt(cp.X, cp.Y)
}

func firstOnCurve(pts []glyph.ContourPoint) int {
	for i, p := range pts {
		if p.Type.IsOnCurve() {
			return i
		}
	}
	return -1
}

// rotateLeft returns a copy of pts rotated left by k positions.
func rotateLeft(pts []glyph.ContourPoint, k int) []glyph.ContourPoint {
	r := make([]glyph.ContourPoint, 0, len(pts))
	return append(append(r, pts[k:]...), pts[:k]...)
}
