package spacing

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/npillmayer/schuko"
)

// Configuration keys read by ParamsFromConfig.
const (
	KeyArea        = "letterspace.area"
	KeyDepth       = "letterspace.depth"
	KeyOvershoot   = "letterspace.overshoot"
	KeyFrequency   = "letterspace.frequency"
	KeyWorkers     = "letterspace.workers"
	KeySuperBezier = "letterspace.superbezier"
)

// Params are the tunables of the spacing model.
type Params struct {
	Area      float64 // target white area per side, for 1000 units per em
	Depth     float64 // counterform depth cut, percent of x-height
	Overshoot float64 // widening of the reference zone, percent of x-height
	Frequency int     // distance between scanlines in font units
	Workers   int     // concurrent glyphs in a batch; 0 means one per CPU
	// DecomposeSuperBeziers accepts cubic segments with more than two
	// off-curve points instead of failing the glyph.
	DecomposeSuperBeziers bool
}

// DefaultParams returns the default tunables.
func DefaultParams() Params {
	return Params{
		Area:      400,
		Depth:     15,
		Overshoot: 0,
		Frequency: 5,
	}
}

// Validate checks p for values the spacing model cannot work with.
func (p Params) Validate() error {
	switch {
	case p.Frequency <= 0:
		return fmt.Errorf("spacing: scanline frequency must be positive, is %d", p.Frequency)
	case p.Area < 0:
		return fmt.Errorf("spacing: area must not be negative, is %g", p.Area)
	case p.Depth < 0:
		return fmt.Errorf("spacing: depth must not be negative, is %g", p.Depth)
	case p.Workers < 0:
		return fmt.Errorf("spacing: number of workers must not be negative, is %d", p.Workers)
	}
	return nil
}

func (p Params) workers() int {
	if p.Workers <= 0 {
		return runtime.NumCPU()
	}
	return p.Workers
}

// ParamsFromConfig reads the tunables from a configuration, starting from the
// defaults. Keys not set in conf keep their default value.
func ParamsFromConfig(conf schuko.Configuration) (Params, error) {
	p := DefaultParams()
	if conf == nil {
		return p, nil
	}
	var err error
	floatParam := func(key string, target *float64) {
		if err != nil || !conf.IsSet(key) {
			return
		}
		v, e := strconv.ParseFloat(conf.GetString(key), 64)
		if e != nil {
			err = fmt.Errorf("spacing: config key %s: %w", key, e)
			return
		}
		*target = v
	}
	intParam := func(key string, target *int) {
		if err != nil || !conf.IsSet(key) {
			return
		}
		v, e := strconv.Atoi(conf.GetString(key))
		if e != nil {
			err = fmt.Errorf("spacing: config key %s: %w", key, e)
			return
		}
		*target = v
	}
	floatParam(KeyArea, &p.Area)
	floatParam(KeyDepth, &p.Depth)
	floatParam(KeyOvershoot, &p.Overshoot)
	intParam(KeyFrequency, &p.Frequency)
	intParam(KeyWorkers, &p.Workers)
	if err != nil {
		return p, err
	}
	if conf.IsSet(KeySuperBezier) {
		b, e := strconv.ParseBool(conf.GetString(KeySuperBezier))
		if e != nil {
			return p, fmt.Errorf("spacing: config key %s: %w", KeySuperBezier, e)
		}
		p.DecomposeSuperBeziers = b
	}
	return p, p.Validate()
}
