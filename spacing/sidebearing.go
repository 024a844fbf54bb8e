package spacing

import (
	"math"

	"github.com/npillmayer/letterspace/geom"
)

// PolygonArea returns the area enclosed by a polygon, using the shoelace
// formula. The polygon is implicitly closed. The result does not depend on the
// winding direction and is never negative.
func PolygonArea(pts []geom.Point) float64 {
	var sum float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum) / 2
}

// SidebearingValue converts the area of a spacing polygon into a sidebearing,
// measured from the in-zone extreme of the polygon's side.
//
// The model asks for a constant amount of white area per side: area (the
// target white area for 1000 units per em) is scaled to the font's units per
// em and weighted by the glyph's category factor, then stretched to the zone's
// height relative to the x-height. Whatever part of this target is not already
// covered by the polygon is distributed over the zone height.
func SidebearingValue(factor float64, zone Zone, area float64, polygon []geom.Point,
	unitsPerEm, xheight float64) float64 {
	//
	height := zone.Height()
	areaUPM := area * math.Pow(unitsPerEm/1000, 2)
	white := areaUPM * factor * 100
	target := height * white / xheight
	return (target - PolygonArea(polygon)) / height
}
