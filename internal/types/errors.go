package types

import "fmt"

// prefixLen bounds how much raw content an error message quotes.
const prefixLen = 16

// ContentPrefix returns the first few bytes of content for error
// messages, so diagnostics can show what the unrecognized data
// actually started with.
func ContentPrefix(content []byte) string {
	if len(content) > prefixLen {
		content = content[:prefixLen]
	}
	return string(content)
}

// UnrecognizedContentError is returned when the input is neither
// gzip-compressed nor a recognized markup document.
type UnrecognizedContentError struct {
	Prefix string
}

func (e *UnrecognizedContentError) Error() string {
	return fmt.Sprintf("unrecognized content: %q is neither gzip nor a known project document", e.Prefix)
}

// DecompressError is returned when the gzip magic number is present
// but the compressed stream is corrupt.
type DecompressError struct {
	Err error
}

func (e *DecompressError) Error() string {
	return fmt.Sprintf("decompress content: %v", e.Err)
}

func (e *DecompressError) Unwrap() error { return e.Err }

// MarkupError is returned when the document is recognized as markup
// but fails to parse as well-formed XML.
type MarkupError struct {
	Err error
}

func (e *MarkupError) Error() string {
	return fmt.Sprintf("malformed document: %v", e.Err)
}

func (e *MarkupError) Unwrap() error { return e.Err }

// StructuralError is returned when the markup parses but a required
// node or attribute is absent at a point where no fallback exists.
// Track and Element carry enough context to diagnose format drift
// across producer versions.
type StructuralError struct {
	Track   string // track name, empty for document-level failures
	Element string // dot-joined element path or attribute name
	Reason  string
}

func (e *StructuralError) Error() string {
	if e.Track != "" {
		return fmt.Sprintf("track %q: %s: %s", e.Track, e.Element, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Element, e.Reason)
}

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings degrade the model gracefully instead of aborting the parse:
// an unresolvable automation target is recorded with an empty target,
// a missing main track leaves the tempo unset. They are collected in
// Project.Warnings.
type Warning struct {
	// Stage where the warning occurred: "tracks", "automation", "tempo".
	Stage string

	// Track the warning relates to, empty for project-level issues.
	Track string

	// Warning message.
	Message string
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Track != "" {
		return fmt.Sprintf("%s (track %q): %s", w.Stage, w.Track, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
