package main

import (
	"fmt"

	"github.com/npillmayer/letterspace"
	"github.com/npillmayer/letterspace/spacing"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runSpaceCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(mustFlagBool(flags["verbose"], "verbose"))
	font := mustLoadFont(args)
	params := paramsFromFlags(flags)
	names := splitCSVSpace(args["glyphs"].Value)
	spacer := font.Spacer(params)
	batch := spacer.SpaceLayer(names...)

	pterm.DefaultTable.WithHasHeader().WithData(resultTable(font, batch)).Render()
	for _, f := range batch.Failures {
		pterm.Error.Println(f.Error())
	}
	pterm.Info.Printf("%d glyphs spaced, %d failed\n", len(batch.Results), len(batch.Failures))

	output := mustFlagString(flags["output"], "output")
	if !mustFlagBool(flags["background"], "background") && output == "-" {
		return
	}
	dest := ""
	if output != "-" {
		dest = output
	}
	path, err := font.WriteBackground(batch, dest)
	if err != nil {
		fatalf("cannot write background layer: %v", err)
	}
	pterm.Info.Printf("wrote layer %s to %s\n", spacing.BackgroundLayer, path)
}

// resultTable lists current and computed sidebearings per glyph. Both are
// measured from the extreme points of the ink within the measurement zone,
// deskewed for italics.
func resultTable(font *letterspace.Font, batch *spacing.Batch) [][]string {
	data := [][]string{
		{"Glyph", "Char", "Factor", "Reference", "LSB", "RSB", "new LSB", "new RSB"},
	}
	for _, r := range batch.Results {
		g := font.Glyphs.Glyph(r.Glyph)
		row := []string{r.Glyph, charName(g), "", "", "", "", "-", "-"}
		if l, rr, ok := r.Current(g.Advance); ok {
			row[4], row[5] = fmt.Sprintf("%g", l), fmt.Sprintf("%g", rr)
			row[2] = fmt.Sprintf("%g", r.Factor)
			row[3] = r.Reference
			row[6], row[7] = fmt.Sprintf("%g", r.Left), fmt.Sprintf("%g", r.Right)
		}
		data = append(data, row)
	}
	return data
}
