package alsparse

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	// Register the Ableton Live Set parser.
	_ "github.com/Coestaris/alsparse/internal/ableton"
	"github.com/Coestaris/alsparse/internal/registry"
	"github.com/Coestaris/alsparse/internal/types"
)

// Parser is the interface a project-file format implementation
// provides. Probe must be side-effect free; it is used both to
// auto-detect the format of unknown content and to validate that a
// parser selected by extension actually matches the bytes it is
// given.
type Parser = registry.Parser

// Parse parses an in-memory project file, selecting the format by
// probing the content.
//
// The returned Project is immutable and safe to share. Non-fatal
// issues are collected in Project.Warnings; see WithStrictParsing to
// turn them into errors.
func Parse(content []byte, opts ...Option) (*Project, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	for _, p := range registry.All() {
		if p.Probe(content) {
			return parseWith(p, content, options)
		}
	}
	return nil, &UnrecognizedContentError{Prefix: contentPrefix(content)}
}

// ParseFile reads and parses a project file from disk.
//
// The parser is selected by file extension first; when no registered
// format claims the extension, the content itself is probed. Either
// way the selected parser's probe must accept the actual content
// before parsing begins.
//
// Example:
//
//	project, err := alsparse.ParseFile("set.als")
//	if err != nil {
//		return err
//	}
//	for _, track := range project.Tracks() {
//		fmt.Printf("%s: %s\n", track.Kind(), track.Name())
//	}
func ParseFile(path string, opts ...Option) (*Project, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	slog.Debug("selecting parser by extension", "path", path, "ext", ext)
	parser := registry.ByExtension(ext)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	if parser == nil {
		slog.Debug("extension not recognized, probing content", "path", path)
		for _, p := range registry.All() {
			if p.Probe(content) {
				parser = p
				break
			}
		}
	}
	if parser == nil {
		return nil, &UnrecognizedContentError{Prefix: contentPrefix(content)}
	}

	// The parser may have been chosen by extension alone; make sure
	// the content actually matches it.
	if !parser.Probe(content) {
		slog.Error("content does not match the detected parser", "path", path)
		return nil, &UnrecognizedContentError{Prefix: contentPrefix(content)}
	}

	return parseWith(parser, content, options)
}

// ParseMany parses several project files concurrently, using up to
// runtime.NumCPU() goroutines. Results are returned in input order.
// The first failure cancels the remaining work and is returned with
// the offending path attached.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	projects, err := alsparse.ParseMany(ctx, paths...)
func ParseMany(ctx context.Context, paths ...string) ([]*Project, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*Project, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			project, err := ParseFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = project
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SupportedExtensions returns the file extensions (without dot) of
// every registered format.
func SupportedExtensions() []string {
	var exts []string
	for _, p := range registry.All() {
		for _, e := range p.Extensions() {
			if !slices.Contains(exts, e) {
				exts = append(exts, e)
			}
		}
	}
	return exts
}

// SupportedMIMETypes returns the MIME types of every registered
// format.
func SupportedMIMETypes() []string {
	var mimes []string
	for _, p := range registry.All() {
		for _, m := range p.MIMETypes() {
			if !slices.Contains(mimes, m) {
				mimes = append(mimes, m)
			}
		}
	}
	return mimes
}

func parseWith(parser Parser, content []byte, options *parseOptions) (*Project, error) {
	project, err := parser.Parse(content, types.ParseOptions{
		SkipTempoCache: options.skipTempoCache,
	})
	if err != nil {
		return nil, err
	}
	if options.strictParsing && len(project.Warnings()) > 0 {
		return nil, fmt.Errorf("strict parsing failed: %s", project.Warnings()[0])
	}
	return project, nil
}
