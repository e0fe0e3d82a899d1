package types

// ParseOptions carries the assembly knobs a format package honors
// while building the model. The zero value is the default behavior.
type ParseOptions struct {
	// SkipTempoCache leaves the dense tempo cache unbuilt; Tempo then
	// answers every query with the base tempo.
	SkipTempoCache bool
}
