package ableton

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/Coestaris/alsparse/internal/registry"
	"github.com/Coestaris/alsparse/internal/types"
)

// minorVersionRe matches Live's composite minor version, e.g.
// "10.0_377". Together with the integer MajorVersion attribute it is
// the format's signature: content that fails either check is not a
// live set.
var minorVersionRe = regexp.MustCompile(`^(\d+)\.(\d+)_(\d+)`)

// Parser parses Ableton Live Set documents.
type Parser struct{}

// Extensions returns the file extensions live sets are stored under.
func (p *Parser) Extensions() []string {
	return []string{"als"}
}

// MIMETypes returns the MIME types declared for live sets.
func (p *Parser) MIMETypes() []string {
	return []string{"application/x-ableton-live-project"}
}

// Probe reports whether content could be a live set: either the gzip
// magic or the XML prolog at the start.
func (p *Parser) Probe(content []byte) bool {
	return IsXML(content) || IsGzip(content)
}

// Parse builds the project model from an in-memory live set.
func (p *Parser) Parse(content []byte, opts types.ParseOptions) (*types.Project, error) {
	slog.Info("parsing Ableton live set", "size", len(content))

	root, digest, err := loadDocument(content)
	if err != nil {
		return nil, err
	}

	major, minorA, minorB, minorC, metadata, err := parseVersion(root)
	if err != nil {
		return nil, err
	}
	slog.Debug("parsed version",
		"major", major,
		"minor", fmt.Sprintf("%d.%d_%d", minorA, minorB, minorC))

	var projectOpts []types.ProjectOption
	if opts.SkipTempoCache {
		projectOpts = append(projectOpts, types.SkipTempoCache())
	}
	project := types.NewProject(major, minorA, minorB, minorC, metadata, digest, projectOpts...)
	tracks, err := parseTracks(project, root)
	if err != nil {
		return nil, err
	}
	project.SetTracks(tracks)

	return project, nil
}

// parseVersion reads the two mandatory version attributes off the
// root element and copies every other attribute verbatim into the
// metadata map.
//
// A typical root looks like:
//
//	<Ableton MajorVersion="5" MinorVersion="10.0_377"
//	         Creator="Ableton Live 10.1.7" Revision="f7eb..." ...>
func parseVersion(root *xmlquery.Node) (major, minorA, minorB, minorC int, metadata map[string]string, err error) {
	raw, ok := lookupAttr(root, "MajorVersion")
	if !ok {
		return 0, 0, 0, 0, nil, &types.StructuralError{
			Element: "MajorVersion", Reason: "attribute missing",
		}
	}
	major, err = strconv.Atoi(raw)
	if err != nil {
		return 0, 0, 0, 0, nil, &types.StructuralError{
			Element: "MajorVersion", Reason: fmt.Sprintf("not an integer: %q", raw),
		}
	}

	raw, ok = lookupAttr(root, "MinorVersion")
	if !ok {
		return 0, 0, 0, 0, nil, &types.StructuralError{
			Element: "MinorVersion", Reason: "attribute missing",
		}
	}
	m := minorVersionRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, 0, 0, 0, nil, &types.StructuralError{
			Element: "MinorVersion", Reason: fmt.Sprintf("%q does not match <int>.<int>_<int>", raw),
		}
	}
	minorA, _ = strconv.Atoi(m[1])
	minorB, _ = strconv.Atoi(m[2])
	minorC, _ = strconv.Atoi(m[3])

	metadata = make(map[string]string)
	for _, a := range root.Attr {
		key := a.Name.Local
		if key == "MajorVersion" || key == "MinorVersion" {
			continue
		}
		metadata[key] = a.Value
	}
	return major, minorA, minorB, minorC, metadata, nil
}

// parseTracks extracts every track under LiveSet/Tracks in document
// order, then appends the main track regardless of where it sits in
// the source. A missing main track degrades to a warning; a live set
// with no tracks at all is a structural failure.
func parseTracks(project *types.Project, root *xmlquery.Node) ([]*types.Track, error) {
	liveSet := root.SelectElement("LiveSet")
	if liveSet == nil {
		return nil, &types.StructuralError{Element: "LiveSet", Reason: "element not found"}
	}
	container := liveSet.SelectElement("Tracks")
	if container == nil {
		return nil, &types.StructuralError{Element: "LiveSet.Tracks", Reason: "element not found"}
	}

	var tracks []*types.Track
	for node := container.FirstChild; node != nil; node = node.NextSibling {
		if node.Type != xmlquery.ElementNode {
			continue
		}
		var (
			track *types.Track
			err   error
		)
		switch node.Data {
		case "AudioTrack":
			track, err = parseAudioTrack(project, node)
		case "MidiTrack":
			track, err = parseMidiTrack(project, node)
		case "GroupTrack":
			track, err = parseSimpleTrack(project, node, types.TrackGroup)
		case "ReturnTrack":
			track, err = parseSimpleTrack(project, node, types.TrackReturn)
		default:
			slog.Warn("unknown track type", "tag", node.Data)
			continue
		}
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}

	// Live 11 renamed MasterTrack to MainTrack; accept both.
	master := liveSet.SelectElement("MainTrack")
	if master == nil {
		master = liveSet.SelectElement("MasterTrack")
	}
	if master == nil {
		slog.Warn("main track not found")
		project.AddWarning(types.Warning{
			Stage:   "tracks",
			Message: "main track not found",
		})
	} else {
		track, err := parseSimpleTrack(project, master, types.TrackMaster)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}

	if len(tracks) == 0 {
		return nil, &types.StructuralError{Element: "LiveSet.Tracks", Reason: "live set contains no tracks"}
	}
	return tracks, nil
}

// lookupAttr returns the value of the named attribute, distinguishing
// an absent attribute from an empty one.
func lookupAttr(n *xmlquery.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// descend follows a chain of nested single-child lookups, failing with
// track context as soon as a link is missing.
func descend(node *xmlquery.Node, track string, path ...string) (*xmlquery.Node, error) {
	current := node
	for i, tag := range path {
		next := current.SelectElement(tag)
		if next == nil {
			return nil, &types.StructuralError{
				Track:   track,
				Element: strings.Join(path[:i+1], "."),
				Reason:  "element not found",
			}
		}
		current = next
	}
	return current, nil
}

// childValue reads the Value attribute of a named child element, the
// way Live stores almost every scalar field.
func childValue(node *xmlquery.Node, track, child string) (string, error) {
	el := node.SelectElement(child)
	if el == nil {
		return "", &types.StructuralError{
			Track:   track,
			Element: child,
			Reason:  "element not found",
		}
	}
	raw, ok := lookupAttr(el, "Value")
	if !ok {
		return "", &types.StructuralError{
			Track:   track,
			Element: child,
			Reason:  "Value attribute missing",
		}
	}
	return raw, nil
}

// childFloat reads the Value attribute of a named child element as a
// float.
func childFloat(node *xmlquery.Node, track, child string) (float64, error) {
	raw, err := childValue(node, track, child)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &types.StructuralError{
			Track:   track,
			Element: child,
			Reason:  fmt.Sprintf("not a number: %q", raw),
		}
	}
	return v, nil
}

func init() {
	registry.Register(&Parser{})
}
