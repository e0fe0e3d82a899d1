package alsparse

// Option configures parsing behavior.
//
// Options use the functional options pattern:
//
//	project, err := alsparse.ParseFile("set.als",
//	    alsparse.WithStrictParsing(),
//	)
type Option func(*parseOptions)

// parseOptions holds configuration for a single parse.
type parseOptions struct {
	strictParsing  bool // fail on any warning
	skipTempoCache bool // leave the dense tempo cache unbuilt
}

// defaultOptions returns the default configuration.
func defaultOptions() *parseOptions {
	return &parseOptions{}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default the parser degrades gracefully on local problems - an
// unresolvable automation target, a set without a main track - and
// records them in Project.Warnings. With strict parsing enabled, the
// first such problem fails the parse instead.
func WithStrictParsing() Option {
	return func(o *parseOptions) {
		o.strictParsing = true
	}
}

// WithoutTempoCache skips the dense tempo sampling performed during
// assembly.
//
// The cache trades memory for constant-time Tempo queries and grows
// with project duration. Callers that only need the structure (tracks,
// clips, automation curves) can skip it; Tempo then answers every
// query with the base tempo.
func WithoutTempoCache() Option {
	return func(o *parseOptions) {
		o.skipTempoCache = true
	}
}
