package main

import (
	"fmt"

	"github.com/npillmayer/letterspace/category"
	"github.com/npillmayer/letterspace/glyph"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(false)
	font := mustLoadFont(args)

	fmt.Printf("Path: %s\n", font.Path)
	fmt.Printf("Type: %s\n", font.Kind)
	fmt.Printf("Name: %s\n", font.Name)
	fmt.Printf("Units per em: %g\n", font.Metrics.UnitsPerEm)
	fmt.Printf("x-height: %g\n", font.Metrics.XHeight)
	fmt.Printf("Italic angle: %g\n", font.Metrics.ItalicAngle)
	if src := font.Source(); src != nil {
		fmt.Printf("UFO format: %d\n", src.FormatVersion)
		for _, l := range src.Layers {
			fmt.Printf("Layer: %s (%s)\n", l.Name, l.Dir)
		}
	}
	st := font.Stats()
	fmt.Printf("Glyphs: total=%d encoded=%d composite=%d empty=%d\n",
		st.Glyphs, st.Encoded, st.Composites, st.Empty)

	if !mustFlagBool(flags["glyphs"], "glyphs") {
		return
	}
	data := [][]string{{"Glyph", "Char", "Advance", "Contours", "Components"}}
	for g := range font.Glyphs.All() {
		var contours, components int
		if g.Outline != nil {
			contours, components = len(g.Outline.Contours), len(g.Outline.Components)
		}
		data = append(data, []string{
			g.Name, charName(g), fmt.Sprintf("%g", g.Advance),
			fmt.Sprintf("%d", contours), fmt.Sprintf("%d", components),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// charName describes the codepoint of a glyph, if it has one.
func charName(g *glyph.Glyph) string {
	if r, ok := g.Codepoint(); ok {
		return category.Describe(r)
	}
	return ""
}
