package glyph

import (
	"iter"
	"sort"
)

// Layer maps glyph names to glyphs. A layer is filled once with Insert and
// treated as read-only afterwards; it is then safe for concurrent readers.
type Layer struct {
	Name   string
	glyphs map[string]*Glyph
}

// NewLayer creates an empty layer.
func NewLayer(name string) *Layer {
	return &Layer{Name: name, glyphs: make(map[string]*Glyph)}
}

// Insert adds g to the layer, replacing a glyph of the same name.
func (l *Layer) Insert(g *Glyph) {
	if g == nil {
		return
	}
	if l.glyphs == nil {
		l.glyphs = make(map[string]*Glyph)
	}
	l.glyphs[g.Name] = g
}

// Glyph returns the glyph with the given name, or nil.
func (l *Layer) Glyph(name string) *Glyph {
	if l == nil {
		return nil
	}
	return l.glyphs[name]
}

// Has reports whether the layer contains a glyph with the given name.
func (l *Layer) Has(name string) bool {
	return l.Glyph(name) != nil
}

// Len returns the number of glyphs in the layer.
func (l *Layer) Len() int {
	if l == nil {
		return 0
	}
	return len(l.glyphs)
}

// Names returns the glyph names of the layer in sorted order.
func (l *Layer) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, 0, len(l.glyphs))
	for name := range l.glyphs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All iterates over the glyphs of the layer, ordered by name.
func (l *Layer) All() iter.Seq[*Glyph] {
	return func(yield func(*Glyph) bool) {
		for _, name := range l.Names() {
			if !yield(l.glyphs[name]) {
				return
			}
		}
	}
}
