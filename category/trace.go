package category

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'letterspace'
func tracer() tracing.Trace {
	return tracing.Select("letterspace")
}
