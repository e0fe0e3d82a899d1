// Package ableton parses Ableton Live Set (.als) documents into the
// shared timeline model.
//
// A live set is an XML document, usually gzip-compressed, whose schema
// drifts across Live versions and is not published. Extraction is
// therefore tolerant where the format varies (automation targets,
// main track tag spelling) and strict where it does not (version
// attributes, the device-chain paths that hold clips).
package ableton

import (
	"bytes"
	"compress/gzip"
	"crypto/md5"
	"encoding/hex"
	"io"
	"log/slog"

	"github.com/antchfx/xmlquery"

	"github.com/Coestaris/alsparse/internal/types"
)

// gzipMagic is the two-byte gzip signature.
var gzipMagic = []byte{0x1f, 0x8b}

// xmlProlog is the exact prolog Live writes; it doubles as the format
// signature for uncompressed sets.
var xmlProlog = []byte(`<?xml version="1.0" encoding="UTF-8"?>`)

// IsGzip reports whether content starts with the gzip magic number.
func IsGzip(content []byte) bool {
	return bytes.HasPrefix(content, gzipMagic)
}

// IsXML reports whether content starts with the UTF-8 XML 1.0 prolog.
func IsXML(content []byte) bool {
	return bytes.HasPrefix(content, xmlProlog)
}

// loadDocument decompresses content if needed, parses the XML and
// returns the root element together with a digest of the original
// input bytes. The digest is computed before decompression so it keys
// on the content exactly as stored on disk.
func loadDocument(content []byte) (*xmlquery.Node, string, error) {
	sum := md5.Sum(content)
	digest := hex.EncodeToString(sum[:])

	if IsGzip(content) {
		slog.Debug("detected gzip compression, decompressing")
		zr, err := gzip.NewReader(bytes.NewReader(content))
		if err != nil {
			return nil, "", &types.DecompressError{Err: err}
		}
		raw, err := io.ReadAll(zr)
		if err != nil {
			return nil, "", &types.DecompressError{Err: err}
		}
		if err := zr.Close(); err != nil {
			return nil, "", &types.DecompressError{Err: err}
		}
		content = raw
	}

	if !IsXML(content) {
		return nil, "", &types.UnrecognizedContentError{Prefix: types.ContentPrefix(content)}
	}

	doc, err := xmlquery.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, "", &types.MarkupError{Err: err}
	}

	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n, digest, nil
		}
	}
	return nil, "", &types.StructuralError{Element: "document", Reason: "no root element"}
}
