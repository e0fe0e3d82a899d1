// Package registry manages the format parsers a build of the library
// knows about. Format packages register themselves in init().
package registry

import "github.com/Coestaris/alsparse/internal/types"

// Parser is the interface a project-file format implementation
// provides.
type Parser interface {
	// Parse builds the project model from an in-memory document,
	// honoring the assembly knobs in opts.
	Parse(content []byte, opts types.ParseOptions) (*types.Project, error)

	// Probe reports whether content looks like this parser's format.
	// It must be side-effect free; callers use it both for format
	// auto-detection and to validate that a selected parser matches
	// the content it is about to parse.
	Probe(content []byte) bool

	// Extensions returns the file extensions (without dot) this
	// format is stored under.
	Extensions() []string

	// MIMETypes returns the MIME types declared for this format.
	MIMETypes() []string
}

// parsers holds every registered format in registration order.
var parsers []Parser

// Register adds a parser to the registry. Called by format packages
// during initialization.
func Register(p Parser) {
	parsers = append(parsers, p)
}

// All returns the registered parsers in registration order. The
// returned slice must not be modified.
func All() []Parser {
	return parsers
}

// ByExtension returns the parser registered for a file extension
// (without dot), or nil if none claims it.
func ByExtension(ext string) Parser {
	for _, p := range parsers {
		for _, e := range p.Extensions() {
			if e == ext {
				return p
			}
		}
	}
	return nil
}
