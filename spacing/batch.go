package spacing

import (
	"fmt"

	"github.com/npillmayer/letterspace/glyph"
	"golang.org/x/sync/errgroup"
)

// BackgroundLayer is the name of the layer debug glyphs are collected in.
const BackgroundLayer = "public.background"

// Failure records a glyph which could not be spaced.
type Failure struct {
	Glyph string
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("glyph %s: %v", f.Glyph, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Batch is the outcome of spacing a set of glyphs.
type Batch struct {
	Results  []Result  // in the order the glyphs were requested
	Failures []Failure // glyphs skipped because of errors
}

// Result returns the result for the glyph with the given name.
func (b *Batch) Result(name string) (Result, bool) {
	for _, r := range b.Results {
		if r.Glyph == name {
			return r, true
		}
	}
	return Result{}, false
}

// Background collects the debug glyphs of all results into a layer.
func (b *Batch) Background() *glyph.Layer {
	layer := glyph.NewLayer(BackgroundLayer)
	for _, r := range b.Results {
		if r.Debug != nil {
			layer.Insert(r.Debug)
		}
	}
	return layer
}

// SpaceLayer computes the sidebearings of the named glyphs, or of all glyphs
// of the layer if no names are given. Glyphs are processed concurrently by
// up to Params.Workers workers. A glyph failing does not stop the batch; it is
// reported to the trace and recorded as a failure.
func (s *Spacer) SpaceLayer(names ...string) *Batch {
	if len(names) == 0 {
		names = s.Layer.Names()
	}
	results := make([]Result, len(names))
	errs := make([]error, len(names))
	var group errgroup.Group
	group.SetLimit(s.Params.workers())
	for i, name := range names {
		group.Go(func() error {
			g := s.Layer.Glyph(name)
			if g == nil {
				errs[i] = ErrGlyphNotFound
				return nil
			}
			results[i], errs[i] = s.Compute(g)
			return nil
		})
	}
	_ = group.Wait() // workers never fail, errors are collected per glyph
	batch := &Batch{Results: make([]Result, 0, len(names))}
	for i, name := range names {
		if errs[i] != nil {
			tracer().Errorf("glyph %s skipped: %v", name, errs[i])
			batch.Failures = append(batch.Failures, Failure{Glyph: name, Err: errs[i]})
			continue
		}
		tracer().Infof("%v", results[i])
		batch.Results = append(batch.Results, results[i])
	}
	return batch
}
