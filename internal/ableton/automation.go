package ableton

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/Coestaris/alsparse/internal/types"
)

// shortcut collapses one verbose parameter path to the short name
// exposed through Automation.Target.
type shortcut struct {
	long  string
	short string
}

// automationShortcuts is built once at process start and never
// modified. Replacement order is the slice order; an alias that is a
// substring of another entry's replacement can in principle
// chain-substitute, which matches the historical output and is kept
// for compatibility with target strings persisted downstream.
var automationShortcuts = buildAutomationShortcuts()

// buildAutomationShortcuts expands the per-track-type path templates
// over every track tag Live has used. Tempo and TimeSignature exist
// only on the main track's mixer.
func buildAutomationShortcuts() []shortcut {
	templates := []shortcut{
		{"${track_type}.DeviceChain.Mixer.Volume", "Volume"},
		{"${track_type}.DeviceChain.Mixer.On", "On"},
		{"${track_type}.DeviceChain.Mixer.Pan", "Pan"},
		{"${track_type}.DeviceChain.Mixer.Sends.TrackSendHolder.Send", "Send"},
		{"${track_type}.DeviceChain.Mixer.SplitStereoPanL", "SplitStereoPanL"},
		{"${track_type}.DeviceChain.Mixer.SplitStereoPanR", "SplitStereoPanR"},
		{"${track_type}.DeviceChain.DeviceChain.Devices", "Plugins"},
	}
	trackTags := []string{
		"AudioTrack", "MidiTrack", "GroupTrack", "ReturnTrack",
		"MainTrack", "MasterTrack",
	}

	var table []shortcut
	for _, tag := range trackTags {
		for _, t := range templates {
			table = append(table, shortcut{
				long:  strings.ReplaceAll(t.long, "${track_type}", tag),
				short: t.short,
			})
		}
	}
	for _, tag := range []string{"MainTrack", "MasterTrack"} {
		table = append(table,
			shortcut{tag + ".DeviceChain.Mixer.Tempo", "Tempo"},
			shortcut{tag + ".DeviceChain.Mixer.TimeSignature", "TimeSignature"},
		)
	}
	return table
}

// resolveAutomationTarget finds which parameter an envelope controls.
//
// The envelope only names a numeric target id; the parameter itself is
// identified by where a matching <AutomationTarget Id="..."> node sits
// inside the track's subtree. A depth-first pre-order walk accumulates
// the tag names visited, and the path to the first matching marker
// (exclusive of the marker node) is the parameter's identity. Ids are
// assumed unique within a track.
func resolveAutomationTarget(id int, trackNode *xmlquery.Node) (string, bool) {
	var walk func(path []string, node *xmlquery.Node) []string
	walk = func(path []string, node *xmlquery.Node) []string {
		if node.Data == "AutomationTarget" {
			if raw, ok := lookupAttr(node, "Id"); ok {
				if nid, err := strconv.Atoi(raw); err == nil && nid == id {
					return path
				}
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != xmlquery.ElementNode {
				continue
			}
			if result := walk(append(path, node.Data), child); result != nil {
				return result
			}
		}
		return nil
	}

	path := walk(nil, trackNode)
	if path == nil {
		return "", false
	}

	target := strings.Join(path, ".")
	for _, s := range automationShortcuts {
		target = strings.ReplaceAll(target, s.long, s.short)
	}
	return target, true
}

// parseEnvelopes extracts every automation envelope recorded against a
// track. The container is mandatory even when empty:
//
//	<AutomationEnvelopes><Envelopes>
//	  <AutomationEnvelope Id="1">
//	    <EnvelopeTarget><PointeeId Value="8638" /></EnvelopeTarget>
//	    <Automation><Events>
//	      <FloatEvent Id="1" Time="0" Value="1" />
//
// An envelope whose target id cannot be resolved is kept with an empty
// target and reported as a warning rather than aborting the parse.
func parseEnvelopes(project *types.Project, track *types.Track, node *xmlquery.Node) ([]*types.Automation, error) {
	envelopes, err := descend(node, track.Name(), "AutomationEnvelopes", "Envelopes")
	if err != nil {
		return nil, err
	}

	var automations []*types.Automation
	for envelope := envelopes.FirstChild; envelope != nil; envelope = envelope.NextSibling {
		if envelope.Type != xmlquery.ElementNode {
			continue
		}

		pointee, err := descend(envelope, track.Name(), "EnvelopeTarget", "PointeeId")
		if err != nil {
			return nil, err
		}
		raw, ok := lookupAttr(pointee, "Value")
		if !ok {
			return nil, &types.StructuralError{
				Track:   track.Name(),
				Element: "EnvelopeTarget.PointeeId",
				Reason:  "Value attribute missing",
			}
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &types.StructuralError{
				Track:   track.Name(),
				Element: "EnvelopeTarget.PointeeId",
				Reason:  fmt.Sprintf("not an integer: %q", raw),
			}
		}

		target, resolved := resolveAutomationTarget(id, node)
		if !resolved {
			slog.Error("failed to resolve automation target", "track", track.Name(), "id", id)
			project.AddWarning(types.Warning{
				Stage:   "automation",
				Track:   track.Name(),
				Message: fmt.Sprintf("cannot resolve automation target %d", id),
			})
		}

		eventsNode, err := descend(envelope, track.Name(), "Automation", "Events")
		if err != nil {
			return nil, err
		}
		events, err := parseEvents(eventsNode, track.Name())
		if err != nil {
			return nil, err
		}

		automations = append(automations, types.NewAutomation("unknown", types.DefaultColor, track, target, events))
	}

	slog.Debug("parsed automation envelopes", "track", track.Name(), "count", len(automations))
	return automations, nil
}

// parseEvents collects an envelope's control points in authored order.
// Boolean parameters store literal "true"/"false" values and are
// encoded as 1/0; everything else is a float.
func parseEvents(eventsNode *xmlquery.Node, track string) ([]types.AutomationEvent, error) {
	var events []types.AutomationEvent
	for event := eventsNode.FirstChild; event != nil; event = event.NextSibling {
		if event.Type != xmlquery.ElementNode {
			continue
		}

		raw, ok := lookupAttr(event, "Time")
		if !ok {
			return nil, &types.StructuralError{
				Track:   track,
				Element: event.Data,
				Reason:  "Time attribute missing",
			}
		}
		time, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &types.StructuralError{
				Track:   track,
				Element: event.Data,
				Reason:  fmt.Sprintf("Time is not a number: %q", raw),
			}
		}

		raw, ok = lookupAttr(event, "Value")
		if !ok {
			return nil, &types.StructuralError{
				Track:   track,
				Element: event.Data,
				Reason:  "Value attribute missing",
			}
		}
		var value float64
		switch raw {
		case "true":
			value = 1
		case "false":
			value = 0
		default:
			value, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &types.StructuralError{
					Track:   track,
					Element: event.Data,
					Reason:  fmt.Sprintf("Value is not a number: %q", raw),
				}
			}
		}

		events = append(events, types.AutomationEvent{Time: time, Value: value})
	}
	return events, nil
}
