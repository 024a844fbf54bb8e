package geom

import (
	"fmt"
	"iter"
	"strings"
)

// Op is a path element's operator.
type Op uint8

const (
	OpMoveTo Op = iota
	OpLineTo
	OpQuadTo
	OpCubeTo
	OpClose
)

var opNames = [...]string{"M", "L", "Q", "C", "Z"}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", op)
}

// Element is a single path command.
//
// MoveTo and LineTo use Args[0]; QuadTo uses Args[0] as control point and Args[1]
// as end point; CubeTo uses all three Args. Close does not use Args.
type Element struct {
	Op   Op
	Args [3]Point
}

// MoveTo starts a new subpath at p.
func MoveTo(p Point) Element {
	return Element{Op: OpMoveTo, Args: [3]Point{p}}
}

// LineTo draws a straight line to p.
func LineTo(p Point) Element {
	return Element{Op: OpLineTo, Args: [3]Point{p}}
}

// QuadTo draws a quadratic Bézier curve with control point c to p.
func QuadTo(c, p Point) Element {
	return Element{Op: OpQuadTo, Args: [3]Point{c, p}}
}

// CubeTo draws a cubic Bézier curve with control points c1 and c2 to p.
func CubeTo(c1, c2, p Point) Element {
	return Element{Op: OpCubeTo, Args: [3]Point{c1, c2, p}}
}

// Close closes the current subpath.
func Close() Element {
	return Element{Op: OpClose}
}

// End returns the point an element leaves the pen at. Close does not carry
// its end point, ok is false for it.
func (e Element) End() (p Point, ok bool) {
	switch e.Op {
	case OpMoveTo, OpLineTo:
		return e.Args[0], true
	case OpQuadTo:
		return e.Args[1], true
	case OpCubeTo:
		return e.Args[2], true
	case OpClose:
		return Point{}, false
	}
	panic(fmt.Sprintf("geom: invalid path operator %d", e.Op))
}

func (e Element) String() string {
	switch e.Op {
	case OpMoveTo, OpLineTo:
		return fmt.Sprintf("%v%v", e.Op, e.Args[0])
	case OpQuadTo:
		return fmt.Sprintf("%v%v%v", e.Op, e.Args[0], e.Args[1])
	case OpCubeTo:
		return fmt.Sprintf("%v%v%v%v", e.Op, e.Args[0], e.Args[1], e.Args[2])
	}
	return e.Op.String()
}

// --- Paths -----------------------------------------------------------------

// Path is an ordered sequence of path elements, possibly holding more than one
// subpath.
type Path []Element

// IsEmpty reports whether the path has no elements at all.
func (p Path) IsEmpty() bool {
	return len(p) == 0
}

// Append adds elements to the end of the path.
func (p *Path) Append(els ...Element) {
	*p = append(*p, els...)
}

// Segments iterates over the drawable segments of a path. Close yields the
// closing line if the pen is away from the start of the subpath.
func (p Path) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		var start, cur Point
		for _, e := range p {
			var seg Segment
			switch e.Op {
			case OpMoveTo:
				start, cur = e.Args[0], e.Args[0]
				continue
			case OpLineTo:
				seg = Segment{Degree: 1, P: [4]Point{cur, e.Args[0]}}
			case OpQuadTo:
				seg = Segment{Degree: 2, P: [4]Point{cur, e.Args[0], e.Args[1]}}
			case OpCubeTo:
				seg = Segment{Degree: 3, P: [4]Point{cur, e.Args[0], e.Args[1], e.Args[2]}}
			case OpClose:
				if cur == start {
					continue
				}
				seg = Segment{Degree: 1, P: [4]Point{cur, start}}
			default:
				panic(fmt.Sprintf("geom: invalid path operator %d", e.Op))
			}
			cur = seg.End()
			if !yield(seg) {
				return
			}
		}
	}
}

// BoundingBox returns the exact bounding box of the path, including curve
// extrema. A path consisting of move-tos only is boxed by its points.
func (p Path) BoundingBox() Rect {
	box := EmptyRect()
	for seg := range p.Segments() {
		box = box.Union(seg.BoundingBox())
	}
	if box.IsEmpty() {
		for _, e := range p {
			if e.Op == OpMoveTo {
				box = box.UnionPoint(e.Args[0])
			}
		}
	}
	return box
}

func (p Path) String() string {
	var sb strings.Builder
	for i, e := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}
