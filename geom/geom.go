/*
Package geom holds the small amount of computational geometry needed for spacing
glyphs: points, rectangles, affine transforms, Bézier paths and the intersection
of path segments with horizontal scanlines.

Coordinates are font units with the Y axis pointing up, as in font sources.
Affine transforms use the row-major layout of golang.org/x/image/math/f64.Aff3,
i.e. {xx, yx, dx, xy, yy, dy} with

	x' = xx·x + yx·y + dx
	y' = xy·x + yy·y + dy

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package geom

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// Point is a location in font units.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul scales p by s.
func (p Point) Mul(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Lerp interpolates linearly between p (t=0) and q (t=1).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + t*(q.X-p.X), p.Y + t*(q.Y-p.Y)}
}

// Mid returns the midpoint between p and q.
func (p Point) Mid(q Point) Point {
	return Point{0.5 * (p.X + q.X), 0.5 * (p.Y + q.Y)}
}

// Round rounds both coordinates to the nearest integer, halves away from zero.
func (p Point) Round() Point {
	return Point{math.Round(p.X), math.Round(p.Y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// --- Rectangles ------------------------------------------------------------

// Rect is an axis-aligned rectangle. A Rect with Min > Max on any axis is empty.
type Rect struct {
	Min, Max Point
}

// EmptyRect returns a rectangle which acts as the neutral element for Union.
func EmptyRect() Rect {
	inf := math.Inf(1)
	return Rect{Min: Point{inf, inf}, Max: Point{-inf, -inf}}
}

// IsEmpty reports whether r does not contain any point.
func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// UnionPoint returns the smallest rectangle containing r and p.
func (r Rect) UnionPoint(p Point) Rect {
	return Rect{
		Min: Point{math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)},
		Max: Point{math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)},
	}
}

// Union returns the smallest rectangle containing r and s.
func (r Rect) Union(s Rect) Rect {
	if s.IsEmpty() {
		return r
	}
	return r.UnionPoint(s.Min).UnionPoint(s.Max)
}

// Dx returns the horizontal extent of r.
func (r Rect) Dx() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.X - r.Min.X
}

// Dy returns the vertical extent of r.
func (r Rect) Dy() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.Y - r.Min.Y
}

func (r Rect) String() string {
	if r.IsEmpty() {
		return "[empty]"
	}
	return fmt.Sprintf("[%v %v]", r.Min, r.Max)
}

// --- Affine transforms -----------------------------------------------------

// Identity is the identity transform.
var Identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// Translate returns a transform moving points by (dx,dy).
func Translate(dx, dy float64) f64.Aff3 {
	return f64.Aff3{1, 0, dx, 0, 1, dy}
}

// Scale returns a transform scaling points by sx horizontally and sy vertically.
func Scale(sx, sy float64) f64.Aff3 {
	return f64.Aff3{sx, 0, 0, 0, sy, 0}
}

// Transform applies m to p.
func Transform(m f64.Aff3, p Point) Point {
	return Point{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}

// Concat returns the transform which applies inner first, then outer.
func Concat(outer, inner f64.Aff3) (r f64.Aff3) {
	r[0] = outer[0]*inner[0] + outer[1]*inner[3]
	r[1] = outer[0]*inner[1] + outer[1]*inner[4]
	r[2] = outer[0]*inner[2] + outer[1]*inner[5] + outer[2]
	r[3] = outer[3]*inner[0] + outer[4]*inner[3]
	r[4] = outer[3]*inner[1] + outer[4]*inner[4]
	r[5] = outer[3]*inner[2] + outer[4]*inner[5] + outer[5]
	return r
}
