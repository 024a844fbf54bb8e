package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/letterspace"
	"github.com/npillmayer/letterspace/geom"
	"github.com/npillmayer/letterspace/outline"
	"github.com/npillmayer/letterspace/spacing"
	"github.com/thatisuday/commando"
	"golang.org/x/image/vector"
)

var (
	polygonColor = color.RGBA{120, 170, 230, 255}
	zoneColor    = color.RGBA{180, 180, 180, 255}
	advanceColor = color.RGBA{220, 40, 40, 255}
)

func runViewCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(mustFlagBool(flags["verbose"], "verbose"))
	font := mustLoadFont(args)
	name := strings.TrimSpace(args["glyph"].Value)
	g := font.Glyphs.Glyph(name)
	if g == nil {
		fatalf("font %s has no glyph %q", font.Name, name)
	}
	outPath := mustFlagString(flags["output"], "output")
	if outPath == "" {
		fatalf("output path is empty")
	}
	height := mustFlagInt(flags["height"], "height")
	if height <= 0 {
		fatalf("--height must be > 0")
	}
	params := paramsFromFlags(flags)
	spacer := font.Spacer(params)
	res, err := spacer.Compute(g)
	if err != nil {
		fatalf("cannot space glyph %s: %v", name, err)
	}
	path, _, err := outline.PathForGlyph(g, font.Glyphs, outline.DecomposeSuperBeziers(true))
	if err != nil {
		fatalf("%v", err)
	}
	if err := renderSpacingPNG(font, path, res, outPath, height); err != nil {
		fatalf("render failed: %v", err)
	}
	if res.Defined {
		fmt.Printf("wrote %s (%s: LSB=%g RSB=%g)\n", outPath, name, res.Left, res.Right)
	} else {
		fmt.Printf("wrote %s (%s: sidebearings undefined)\n", outPath, name)
	}
}

// canvas maps font units to pixels: the baseline sits at 3/4 of the image
// height, a quarter em of margin is left on both sides of the glyph box.
type canvas struct {
	scale    float32
	originX  float32
	baseline float32
}

func (c canvas) pt(p geom.Point) (float32, float32) {
	return c.originX + float32(p.X)*c.scale, c.baseline - float32(p.Y)*c.scale
}

func renderSpacingPNG(font *letterspace.Font, path geom.Path, res spacing.Result, outPath string, height int) error {
	m := font.Metrics.Normalized()
	upem := m.UnitsPerEm
	box := path.BoundingBox()
	minX, maxX := 0.0, font.Glyphs.Glyph(res.Glyph).Advance
	if !box.IsEmpty() {
		minX, maxX = math.Min(minX, box.Min.X), math.Max(maxX, box.Max.X)
	}
	slant := -m.ItalicAngle // polygons are deskewed by this angle
	origin, advance, hasEdges := res.Edges()
	if hasEdges {
		// edges are slanted for italics, reaching furthest out at the zone limits
		for _, y := range []float64{res.Polygons.Zone.Lower, res.Polygons.Zone.Upper} {
			edges := spacing.Skew([]geom.Point{geom.Pt(origin, y), geom.Pt(advance, y)}, slant, m.XHeight)
			minX, maxX = math.Min(minX, edges[0].X), math.Max(maxX, edges[1].X)
		}
	}
	margin := upem / 4
	c := canvas{
		scale:    float32(float64(height) / (upem * 1.5)),
		baseline: float32(height) * 3 / 4,
	}
	c.originX = float32(margin-minX) * c.scale
	width := int(math.Ceil((maxX - minX + 2*margin) * float64(c.scale)))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)

	if res.Defined {
		for _, poly := range [][]geom.Point{res.Polygons.Left, res.Polygons.Right} {
			if slant != 0 {
				poly = spacing.Skew(poly, slant, m.XHeight)
			}
			rast := vector.NewRasterizer(width, height)
			rast.DrawOp = draw.Over
			for i, p := range poly {
				x, y := c.pt(p)
				if i == 0 {
					rast.MoveTo(x, y)
				} else {
					rast.LineTo(x, y)
				}
			}
			rast.ClosePath()
			rast.Draw(img, img.Bounds(), image.NewUniform(polygonColor), image.Point{})
		}
	}
	rast := vector.NewRasterizer(width, height)
	rast.DrawOp = draw.Over
	for _, el := range path {
		switch el.Op {
		case geom.OpMoveTo:
			rast.MoveTo(c.pt(el.Args[0]))
		case geom.OpLineTo:
			rast.LineTo(c.pt(el.Args[0]))
		case geom.OpQuadTo:
			x1, y1 := c.pt(el.Args[0])
			x2, y2 := c.pt(el.Args[1])
			rast.QuadTo(x1, y1, x2, y2)
		case geom.OpCubeTo:
			x1, y1 := c.pt(el.Args[0])
			x2, y2 := c.pt(el.Args[1])
			x3, y3 := c.pt(el.Args[2])
			rast.CubeTo(x1, y1, x2, y2, x3, y3)
		case geom.OpClose:
			rast.ClosePath()
		}
	}
	rast.Draw(img, img.Bounds(), image.Black, image.Point{})

	if res.Defined {
		zone := res.Polygons.Zone
		for _, y := range []float64{zone.Lower, zone.Upper} {
			_, py := c.pt(geom.Pt(0, y))
			drawHLine(img, int(py), zoneColor)
		}
		for _, x := range []float64{origin, advance} {
			c.drawEdge(img, x, slant, m.XHeight/2, advanceColor)
		}
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}

func drawHLine(img *image.RGBA, y int, c color.RGBA) {
	b := img.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	for x := b.Min.X; x < b.Max.X; x++ {
		img.SetRGBA(x, y, c)
	}
}

// drawEdge draws a line through font position (x, pivot), leaning by angle
// degrees to the right. An angle of 0 gives a vertical line.
func (c canvas) drawEdge(img *image.RGBA, x, angle, pivot float64, col color.RGBA) {
	b := img.Bounds()
	tan := math.Tan(angle * math.Pi / 180)
	for py := b.Min.Y; py < b.Max.Y; py++ {
		y := float64(c.baseline-float32(py)) / float64(c.scale)
		px, _ := c.pt(geom.Pt(x+(y-pivot)*tan, y))
		if ix := int(px); ix >= b.Min.X && ix < b.Max.X {
			img.SetRGBA(ix, py, col)
		}
	}
}
