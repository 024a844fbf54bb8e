package outline

import (
	"errors"
	"fmt"

	"github.com/npillmayer/letterspace/glyph"
)

// Errors signalled for malformed contours.
var (
	// ErrIllegalPointCount flags an on-curve point preceded by a number of
	// off-curve points it cannot take.
	ErrIllegalPointCount = errors.New("illegal number of off-curve points")
	// ErrIllegalMove flags a move point anywhere but at the start of a contour.
	ErrIllegalMove = errors.New("move point in the middle of a contour")
	// ErrTrailingOffCurves flags off-curve points left over at the end of a contour.
	ErrTrailingOffCurves = errors.New("trailing off-curve points")
	// ErrUnsupportedSegmentDegree flags a cubic segment with more than two
	// off-curve points (a "super-bézier").
	ErrUnsupportedSegmentDegree = errors.New("unsupported segment degree")
)

// ContourError reports a contour which could not be decoded.
type ContourError struct {
	Err   error           // one of the sentinel errors
	Type  glyph.PointType // type of the offending point
	Count int             // number of off-curve points pending at the offending point
}

func (e *ContourError) Error() string {
	if e.Count > 0 {
		return fmt.Sprintf("%v: %s point with %d pending off-curves", e.Err, e.Type, e.Count)
	}
	return fmt.Sprintf("%v: at %s point", e.Err, e.Type)
}

func (e *ContourError) Unwrap() error {
	return e.Err
}

func contourError(err error, t glyph.PointType, count int) *ContourError {
	return &ContourError{Err: err, Type: t, Count: count}
}

// GlyphError reports a glyph whose outline could not be turned into a path.
type GlyphError struct {
	Glyph     string // glyph name
	Contour   int    // index of the failing contour
	Component bool   // failing contour stems from a component
	Err       error
}

func (e *GlyphError) Error() string {
	where := "contour"
	if e.Component {
		where = "decomposed contour"
	}
	return fmt.Sprintf("glyph %q, %s #%d: %v", e.Glyph, where, e.Contour, e.Err)
}

func (e *GlyphError) Unwrap() error {
	return e.Err
}
