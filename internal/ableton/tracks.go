package ableton

import (
	"log/slog"
	"strconv"

	"github.com/antchfx/xmlquery"

	"github.com/Coestaris/alsparse/internal/types"
)

// trackName reads the track's effective display name. Every track
// variant stores it the same way:
//
//	<Name><EffectiveName Value="2-Audio" /></Name>
func trackName(node *xmlquery.Node) (string, error) {
	name := node.SelectElement("Name")
	if name == nil {
		return "", &types.StructuralError{Element: node.Data + ".Name", Reason: "element not found"}
	}
	// The display name is not known yet, so the track tag stands in as
	// the error context.
	return childValue(name, node.Data, "EffectiveName")
}

// trackColor reads the element's color. Live stores a palette index,
// not RGB; mapping indices to actual colors is not implemented, so
// every entity currently gets DefaultColor. The index is still read
// so a malformed value shows up in the debug log.
func trackColor(node *xmlquery.Node) types.Color {
	el := node.SelectElement("Color")
	if el == nil {
		return types.DefaultColor
	}
	raw, ok := lookupAttr(el, "Value")
	if !ok {
		return types.DefaultColor
	}
	if _, err := strconv.Atoi(raw); err != nil {
		slog.Debug("unreadable color index", "tag", node.Data, "value", raw)
	}
	return types.DefaultColor
}

// parseAudioTrack extracts an audio track: name, color, audio clips
// and automation envelopes.
//
// Clips sit at the end of a fixed device-chain path:
//
//	<AudioTrack>
//	  <DeviceChain><MainSequencer><Sample>
//	    <ArrangerAutomation><Events>
//	      <AudioClip ...>
func parseAudioTrack(project *types.Project, node *xmlquery.Node) (*types.Track, error) {
	name, err := trackName(node)
	if err != nil {
		return nil, err
	}

	track := types.NewTrack(name, trackColor(node), project, types.TrackAudio)
	events, err := descend(node, name, "DeviceChain", "MainSequencer", "Sample", "ArrangerAutomation", "Events")
	if err != nil {
		return nil, err
	}

	var clips []*types.Clip
	for _, clipNode := range events.SelectElements("AudioClip") {
		start, end, clipName, disabled, err := clipFields(clipNode, name)
		if err != nil {
			return nil, err
		}
		// Analysis data lives in sidecar .asd files the parser does
		// not read, so the envelope starts out empty.
		clips = append(clips, types.NewAudioClip(clipName, trackColor(clipNode), track, start, end, disabled, nil))
	}
	track.SetClips(clips)

	automations, err := parseEnvelopes(project, track, node)
	if err != nil {
		return nil, err
	}
	track.SetAutomations(automations)
	return track, nil
}

// parseMidiTrack extracts a MIDI track. The descent mirrors the audio
// variant but passes through ClipTimeable instead of Sample:
//
//	<MidiTrack>
//	  <DeviceChain><MainSequencer><ClipTimeable>
//	    <ArrangerAutomation><Events>
//	      <MidiClip ...>
func parseMidiTrack(project *types.Project, node *xmlquery.Node) (*types.Track, error) {
	name, err := trackName(node)
	if err != nil {
		return nil, err
	}

	track := types.NewTrack(name, trackColor(node), project, types.TrackMidi)
	events, err := descend(node, name, "DeviceChain", "MainSequencer", "ClipTimeable", "ArrangerAutomation", "Events")
	if err != nil {
		return nil, err
	}

	var clips []*types.Clip
	for _, clipNode := range events.SelectElements("MidiClip") {
		start, end, clipName, disabled, err := clipFields(clipNode, name)
		if err != nil {
			return nil, err
		}
		// TODO: parse the clip's Notes/KeyTracks subtree into Note
		// values instead of leaving every MIDI clip empty.
		clips = append(clips, types.NewMidiClip(clipName, trackColor(clipNode), track, start, end, disabled))
	}
	track.SetClips(clips)

	automations, err := parseEnvelopes(project, track, node)
	if err != nil {
		return nil, err
	}
	track.SetAutomations(automations)
	return track, nil
}

// parseSimpleTrack extracts the variants that carry no clips (group,
// return, master): just name, color and automation envelopes.
func parseSimpleTrack(project *types.Project, node *xmlquery.Node, kind types.TrackKind) (*types.Track, error) {
	name, err := trackName(node)
	if err != nil {
		return nil, err
	}

	track := types.NewTrack(name, trackColor(node), project, kind)
	automations, err := parseEnvelopes(project, track, node)
	if err != nil {
		return nil, err
	}
	track.SetAutomations(automations)
	return track, nil
}

// clipFields reads the attributes every clip variant stores on its own
// child elements: position, display name and the disabled flag.
func clipFields(clipNode *xmlquery.Node, track string) (start, end types.ProjectTime, name string, disabled bool, err error) {
	start, err = childFloat(clipNode, track, "CurrentStart")
	if err != nil {
		return 0, 0, "", false, err
	}
	end, err = childFloat(clipNode, track, "CurrentEnd")
	if err != nil {
		return 0, 0, "", false, err
	}
	name, err = childValue(clipNode, track, "Name")
	if err != nil {
		return 0, 0, "", false, err
	}
	raw, err := childValue(clipNode, track, "Disabled")
	if err != nil {
		return 0, 0, "", false, err
	}
	return start, end, name, raw == "true", nil
}
