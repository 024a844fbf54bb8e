package main

import (
	"fmt"

	"github.com/npillmayer/letterspace"
	"github.com/npillmayer/letterspace/category"
	"github.com/npillmayer/letterspace/glyph"
	"github.com/npillmayer/letterspace/outline"
	"github.com/npillmayer/letterspace/spacing"
	"github.com/pterm/pterm"
)

func printFontInfo(font *letterspace.Font) {
	st := font.Stats()
	data := [][]string{
		{"Property", "Value"},
		{"Name", font.Name},
		{"Type", font.Kind.String()},
		{"Units per em", fmt.Sprintf("%g", font.Metrics.UnitsPerEm)},
		{"x-height", fmt.Sprintf("%g", font.Metrics.XHeight)},
		{"Italic angle", fmt.Sprintf("%g", font.Metrics.ItalicAngle)},
		{"Glyphs", fmt.Sprintf("%d (%d composite, %d empty)", st.Glyphs, st.Composites, st.Empty)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printGlyph(g *glyph.Glyph, layer *glyph.Layer) {
	pterm.Printf("Glyph %s, advance %g\n", g.Name, g.Advance)
	if r, ok := category.Codepoint(g, layer); ok {
		pterm.Printf("Character: %s\n", category.Describe(r))
	}
	factor, ref := category.Default.ConfigFor(g, layer)
	pterm.Printf("Area factor %g, reference glyph %s\n", factor, ref.Name)
	if g.Outline.IsEmpty() {
		pterm.Println("No outline")
		return
	}
	for _, c := range g.Outline.Components {
		pterm.Printf("Component %s %v\n", c.Base, c.Transform)
	}
	path, _, err := outline.PathForGlyph(g, layer, outline.DecomposeSuperBeziers(true))
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	pterm.Printf("Path: %v\n", path)
	pterm.Printf("Bounding box: %v\n", path.BoundingBox())
	if l, r, ok, err := spacing.Margins(g, layer); err == nil && ok {
		pterm.Printf("Bounding box sidebearings: left %g, right %g\n", l, r)
	}
}

func printResult(font *letterspace.Font, res spacing.Result) {
	if !res.Defined {
		pterm.Info.Printf("%s: sidebearings undefined\n", res.Glyph)
		return
	}
	l, r, _ := res.Current(font.Glyphs.Glyph(res.Glyph).Advance)
	data := [][]string{
		{"", "Left", "Right"},
		{"current", fmt.Sprintf("%g", l), fmt.Sprintf("%g", r)},
		{"computed", fmt.Sprintf("%g", res.Left), fmt.Sprintf("%g", res.Right)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printf("factor %g, reference %s, zone %v\n", res.Factor, res.Reference, res.Polygons.Zone)
}

func printBatch(font *letterspace.Font, batch *spacing.Batch) {
	data := [][]string{{"Glyph", "LSB", "RSB", "new LSB", "new RSB"}}
	for _, res := range batch.Results {
		if !res.Defined {
			continue
		}
		l, r, _ := res.Current(font.Glyphs.Glyph(res.Glyph).Advance)
		data = append(data, []string{
			res.Glyph,
			fmt.Sprintf("%g", l), fmt.Sprintf("%g", r),
			fmt.Sprintf("%g", res.Left), fmt.Sprintf("%g", res.Right),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	for _, f := range batch.Failures {
		pterm.Error.Println(f.Error())
	}
	pterm.Info.Printf("%d glyphs spaced, %d failed\n", len(batch.Results), len(batch.Failures))
}

func printParams(p spacing.Params) {
	data := [][]string{
		{"Parameter", "Value"},
		{"area", fmt.Sprintf("%g", p.Area)},
		{"depth", fmt.Sprintf("%g", p.Depth)},
		{"overshoot", fmt.Sprintf("%g", p.Overshoot)},
		{"frequency", fmt.Sprintf("%d", p.Frequency)},
		{"workers", fmt.Sprintf("%d", p.Workers)},
		{"superbezier", fmt.Sprintf("%v", p.DecomposeSuperBeziers)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
