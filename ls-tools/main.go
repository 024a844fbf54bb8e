package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/letterspace"
	"github.com/npillmayer/letterspace/spacing"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("ls-tools").
		SetVersion("v0.1.0").
		SetDescription("CLI for computing glyph sidebearings from outline geometry.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("space").
		SetDescription("Compute sidebearings for the glyphs of a font (UFO directory or TTF/OTF file) and print them as a table.").
		SetShortDescription("space glyphs").
		AddArgument("font", "UFO directory or OpenType font file path", "").
		AddArgument("glyphs...", "glyph names to space (default: all glyphs)", "").
		AddFlag("area,a", "target white area per side, for 1000 units per em", commando.String, "-").
		AddFlag("depth,d", "counterform depth cut in percent of x-height", commando.String, "-").
		AddFlag("overshoot,s", "zone overshoot in percent of x-height", commando.String, "-").
		AddFlag("frequency,f", "scanline distance in font units (0 uses default)", commando.Int, 0).
		AddFlag("workers,w", "number of concurrent workers (0: one per CPU)", commando.Int, 0).
		AddFlag("superbezier", "decompose curves with more than two off-curve points", commando.Bool, nil).
		AddFlag("background,b", "write spacing polygons into the public.background layer of the UFO (background glyphs of other glyphs are kept)", commando.Bool, nil).
		AddFlag("output,o", "write the UFO with background layer to a copy at this path", commando.String, "-").
		AddFlag("verbose,V", "trace spacing of every glyph", commando.Bool, nil).
		SetAction(runSpaceCommand)

	commando.
		Register("view").
		SetDescription("Render a glyph together with its spacing polygons to a PNG image.").
		SetShortDescription("glyph to image").
		AddArgument("font", "UFO directory or OpenType font file path", "").
		AddArgument("glyph", "glyph name", "").
		AddFlag("area,a", "target white area per side, for 1000 units per em", commando.String, "-").
		AddFlag("depth,d", "counterform depth cut in percent of x-height", commando.String, "-").
		AddFlag("overshoot,s", "zone overshoot in percent of x-height", commando.String, "-").
		AddFlag("frequency,f", "scanline distance in font units (0 uses default)", commando.Int, 0).
		AddFlag("superbezier", "decompose curves with more than two off-curve points", commando.Bool, nil).
		AddFlag("output,o", "output PNG file", commando.String, "ls-tools-view.png").
		AddFlag("height,H", "image height in pixels", commando.Int, 480).
		AddFlag("verbose,V", "trace spacing of the glyph", commando.Bool, nil).
		SetAction(runViewCommand)

	commando.
		Register("font").
		SetDescription("Print metrics and glyph statistics of a font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "UFO directory or OpenType font file path", "").
		AddFlag("glyphs,g", "list all glyphs", commando.Bool, nil).
		SetAction(runFontCommand)

	commando.Parse(nil)
}

// setupTracing directs trace output of the letterspace packages to stderr.
func setupTracing(verbose bool) {
	level := "Error"
	if verbose {
		level = "Info"
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":   "go",
		"trace.letterspace": level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("cannot configure tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

// paramsFromFlags maps the spacing flags onto configuration keys and reads
// the spacing parameters from there. Flags not given keep their defaults.
func paramsFromFlags(flags map[string]commando.FlagValue) spacing.Params {
	conf := testconfig.Conf{}
	for flag, key := range map[string]string{
		"area":      spacing.KeyArea,
		"depth":     spacing.KeyDepth,
		"overshoot": spacing.KeyOvershoot,
	} {
		if v, ok := flags[flag]; ok {
			if s := mustFlagString(v, flag); s != "-" {
				conf[key] = s
			}
		}
	}
	for flag, key := range map[string]string{
		"frequency": spacing.KeyFrequency,
		"workers":   spacing.KeyWorkers,
	} {
		if v, ok := flags[flag]; ok {
			if n := mustFlagInt(v, flag); n != 0 {
				conf[key] = n
			}
		}
	}
	if v, ok := flags["superbezier"]; ok && mustFlagBool(v, "superbezier") {
		conf[spacing.KeySuperBezier] = true
	}
	params, err := spacing.ParamsFromConfig(conf)
	if err != nil {
		fatalf("%v", err)
	}
	return params
}

func mustLoadFont(args map[string]commando.ArgValue) *letterspace.Font {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	font, err := letterspace.LoadFont(fontPath)
	if err != nil {
		fatalf("%v", err)
	}
	if font.Metrics.XHeight <= 0 {
		fatalf("font %s has no x-height and no glyph 'x' to measure it from", font.Name)
	}
	return font
}

func splitCSVSpace(list string) []string {
	return strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return strings.TrimSpace(s)
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "ls-tools: "+format+"\n", args...)
	os.Exit(1)
}
