package letterspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/letterspace/category"
	"github.com/npillmayer/letterspace/glyph"
	"github.com/npillmayer/letterspace/internal/fontload"
	"github.com/npillmayer/letterspace/outline"
	"github.com/npillmayer/letterspace/spacing"
	"github.com/npillmayer/letterspace/ufo"
)

// ErrNotASource is returned for operations which need a font source, when the
// font has been loaded from a compiled font file.
var ErrNotASource = errors.New("font is not a UFO source")

// FontError is an error type for font loading.
type FontError struct {
	Path string
	Err  error
}

func (e FontError) Error() string {
	return fmt.Sprintf("font %s: %v", e.Path, e.Err)
}

func (e FontError) Unwrap() error {
	return e.Err
}

// Kind tells the container format a font has been loaded from.
type Kind int8

// Container formats.
const (
	UFO  Kind = iota // UFO source directory
	SFNT             // compiled TrueType or OpenType font
)

func (k Kind) String() string {
	if k == UFO {
		return "UFO"
	}
	return "SFNT"
}

// Font is a font prepared for spacing: its glyphs and the metrics the spacing
// model depends on.
type Font struct {
	Name    string
	Path    string
	Kind    Kind
	Metrics glyph.FontMetrics
	Glyphs  *glyph.Layer
	source  *ufo.Font
}

// LoadFont loads a font from a UFO directory or from a TTF/OTF file.
//
// If the font does not declare an x-height, it is taken from the top of the
// glyph "x".
func LoadFont(path string) (*Font, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, FontError{Path: path, Err: err}
	}
	var f *Font
	if info.IsDir() {
		f, err = loadUFO(path)
	} else {
		f, err = loadSFNT(path)
	}
	if err != nil {
		return nil, FontError{Path: path, Err: err}
	}
	if f.Metrics.XHeight <= 0 {
		if xh, ok := XHeightFromGlyphs(f.Glyphs); ok {
			tracer().Infof("font %s declares no x-height, using %g from glyph 'x'", f.Name, xh)
			f.Metrics.XHeight = xh
		}
	}
	return f, nil
}

func loadUFO(path string) (*Font, error) {
	src, err := ufo.Open(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(src.Family + " " + src.Style)
	if name == "" {
		name = filepath.Base(path)
	}
	return &Font{
		Name:    name,
		Path:    path,
		Kind:    UFO,
		Metrics: src.Metrics,
		Glyphs:  src.Default,
		source:  src,
	}, nil
}

func loadSFNT(path string) (*Font, error) {
	sf, err := fontload.LoadOpenTypeFont(path)
	if err != nil {
		return nil, err
	}
	metrics, err := sf.Metrics()
	if err != nil {
		return nil, err
	}
	layer, err := sf.Layer(ufo.DefaultLayerName)
	if err != nil {
		return nil, err
	}
	return &Font{
		Name:    sf.Fontname,
		Path:    path,
		Kind:    SFNT,
		Metrics: metrics,
		Glyphs:  layer,
	}, nil
}

// XHeightFromGlyphs measures the x-height as the top of the glyph "x".
func XHeightFromGlyphs(layer *glyph.Layer) (float64, bool) {
	x := layer.Glyph("x")
	if x == nil {
		return 0, false
	}
	box, ok, err := outline.Bounds(x, layer, outline.DecomposeSuperBeziers(true))
	if err != nil || !ok || box.IsEmpty() || box.Max.Y <= 0 {
		return 0, false
	}
	return box.Max.Y, true
}

// Source returns the UFO the font has been loaded from, or nil for compiled
// fonts.
func (f *Font) Source() *ufo.Font {
	return f.source
}

// Spacer creates a Spacer for the glyphs of f, selecting factors and reference
// glyphs by Unicode category.
func (f *Font) Spacer(params spacing.Params) *spacing.Spacer {
	return f.SpacerWith(params, category.Default)
}

// SpacerWith creates a Spacer for the glyphs of f using a custom policy.
func (f *Font) SpacerWith(params spacing.Params, policy spacing.Policy) *spacing.Spacer {
	s := spacing.NewSpacer(f.Glyphs, f.Metrics, policy)
	s.Params = params
	return s
}

// WriteBackground stores the debug glyphs of a batch in the background layer
// of the font's UFO source. Background glyphs of glyphs not in the batch are
// kept, those of spaced glyphs are replaced. If dest is not empty, the UFO is copied to dest
// first and the original is left untouched. It returns the path of the UFO
// written to.
func (f *Font) WriteBackground(b *spacing.Batch, dest string) (string, error) {
	if f.source == nil {
		return "", FontError{Path: f.Path, Err: ErrNotASource}
	}
	target := f.source
	if dest != "" {
		c, err := f.source.CopyTo(dest)
		if err != nil {
			return "", err
		}
		target = c
	}
	if err := target.MergeLayer(b.Background()); err != nil {
		return "", err
	}
	return target.Path, nil
}

// Stats counts glyphs of a font by their kind of outline.
type Stats struct {
	Glyphs     int // all glyphs
	Composites int // glyphs with components
	Empty      int // glyphs without contours and components
	Encoded    int // glyphs with a codepoint
}

// Stats counts the glyphs of f.
func (f *Font) Stats() Stats {
	var st Stats
	for g := range f.Glyphs.All() {
		st.Glyphs++
		switch {
		case g.Outline.IsEmpty():
			st.Empty++
		case g.Outline.IsComposite():
			st.Composites++
		}
		if _, ok := g.Codepoint(); ok {
			st.Encoded++
		}
	}
	return st
}
