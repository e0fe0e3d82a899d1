package alsparse

import (
	"github.com/Coestaris/alsparse/internal/types"
)

// UnrecognizedContentError is returned when the input is neither
// gzip-compressed nor a recognized markup document.
type UnrecognizedContentError = types.UnrecognizedContentError

// DecompressError is returned when the gzip magic number is present
// but the compressed stream is corrupt.
type DecompressError = types.DecompressError

// MarkupError is returned when the document is recognized as markup
// but fails to parse as well-formed XML.
type MarkupError = types.MarkupError

// StructuralError is returned when the markup parses but a required
// node or attribute is absent at a point where no fallback exists.
type StructuralError = types.StructuralError

// Warning is a non-fatal issue collected in Project.Warnings while
// parsing.
type Warning = types.Warning

func contentPrefix(content []byte) string {
	return types.ContentPrefix(content)
}
