package ableton

import (
	"math"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"

	"github.com/Coestaris/alsparse/internal/types"
)

func parseTrackNode(t *testing.T, xml string) *xmlquery.Node {
	t.Helper()
	doc, err := xmlquery.Parse(strings.NewReader(xml))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	t.Fatal("fixture has no root element")
	return nil
}

func TestBuildAutomationShortcuts(t *testing.T) {
	table := buildAutomationShortcuts()

	lookup := make(map[string]string, len(table))
	for _, s := range table {
		lookup[s.long] = s.short
	}

	tests := []struct {
		long  string
		short string
	}{
		{"AudioTrack.DeviceChain.Mixer.Volume", "Volume"},
		{"MidiTrack.DeviceChain.Mixer.Pan", "Pan"},
		{"GroupTrack.DeviceChain.Mixer.On", "On"},
		{"ReturnTrack.DeviceChain.Mixer.Sends.TrackSendHolder.Send", "Send"},
		{"AudioTrack.DeviceChain.DeviceChain.Devices", "Plugins"},
		{"MainTrack.DeviceChain.Mixer.Tempo", "Tempo"},
		{"MasterTrack.DeviceChain.Mixer.Tempo", "Tempo"},
		{"MainTrack.DeviceChain.Mixer.TimeSignature", "TimeSignature"},
	}
	for _, tc := range tests {
		if got := lookup[tc.long]; got != tc.short {
			t.Errorf("shortcut for %s = %q, want %q", tc.long, got, tc.short)
		}
	}

	// Tempo belongs to the main track's mixer only.
	if _, ok := lookup["AudioTrack.DeviceChain.Mixer.Tempo"]; ok {
		t.Error("Tempo must not be aliased for ordinary tracks")
	}
}

func TestResolveAutomationTarget(t *testing.T) {
	track := parseTrackNode(t, audioTrack("audio", envelopes()))

	target, ok := resolveAutomationTarget(volumeTargetID, track)
	if !ok {
		t.Fatal("volume target should resolve")
	}
	if target != "Volume" {
		t.Errorf("target = %q, want Volume (alias-collapsed)", target)
	}

	if target, _ := resolveAutomationTarget(panTargetID, track); target != "Pan" {
		t.Errorf("target = %q, want Pan", target)
	}
}

func TestResolveAutomationTarget_Idempotent(t *testing.T) {
	track := parseTrackNode(t, audioTrack("audio", envelopes()))

	first, ok1 := resolveAutomationTarget(volumeTargetID, track)
	second, ok2 := resolveAutomationTarget(volumeTargetID, track)
	if !ok1 || !ok2 {
		t.Fatal("target should resolve both times")
	}
	if first != second {
		t.Errorf("resolution is not idempotent: %q vs %q", first, second)
	}
}

func TestResolveAutomationTarget_UncollapsedPath(t *testing.T) {
	// A target marker outside any known mixer path keeps its verbose
	// dot-joined form.
	track := parseTrackNode(t,
		`<AudioTrack><DeviceChain><DeviceChain><Devices><PluginDevice>`+
			`<ParameterA><AutomationTarget Id="7"/></ParameterA>`+
			`</PluginDevice></Devices></DeviceChain></DeviceChain></AudioTrack>`)

	target, ok := resolveAutomationTarget(7, track)
	if !ok {
		t.Fatal("target should resolve")
	}
	if target != "Plugins.PluginDevice.ParameterA" {
		t.Errorf("target = %q, want Plugins.PluginDevice.ParameterA", target)
	}
}

func TestResolveAutomationTarget_NotFound(t *testing.T) {
	track := parseTrackNode(t, audioTrack("audio", envelopes()))

	if _, ok := resolveAutomationTarget(424242, track); ok {
		t.Error("unknown target id should not resolve")
	}
}

func TestParse_AutomationEnvelopes(t *testing.T) {
	doc := liveSet(
		audioTrack("audio",
			envelopes(
				envelope(volumeTargetID,
					floatEvent("0", "0"),
					floatEvent("10", "1"),
				),
				envelope(panTargetID,
					floatEvent("0", "true"),
					floatEvent("4", "false"),
				),
			),
		),
		simpleTrack("MainTrack", "Master", envelopes()),
	)

	project, err := (&Parser{}).Parse(doc, types.ParseOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	automations := project.Tracks()[0].Automations()
	if len(automations) != 2 {
		t.Fatalf("len(automations) = %d, want 2", len(automations))
	}

	volume := automations[0]
	if volume.Target() != "Volume" {
		t.Errorf("target = %q, want Volume", volume.Target())
	}
	if len(volume.Events()) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(volume.Events()))
	}
	if got := volume.ValueAt(5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("ValueAt(5) = %v, want 0.5", got)
	}

	// Boolean parameters encode true/false as 1/0.
	pan := automations[1]
	if pan.Events()[0].Value != 1 || pan.Events()[1].Value != 0 {
		t.Errorf("boolean events = %v, want 1 then 0", pan.Events())
	}
}

func TestParse_UnresolvableAutomationTarget(t *testing.T) {
	doc := liveSet(
		audioTrack("audio",
			envelopes(envelope(424242, floatEvent("0", "1"))),
		),
		simpleTrack("MainTrack", "Master", envelopes()),
	)

	project, err := (&Parser{}).Parse(doc, types.ParseOptions{})
	if err != nil {
		t.Fatalf("unresolvable target must not abort the parse: %v", err)
	}

	automations := project.Tracks()[0].Automations()
	if len(automations) != 1 {
		t.Fatalf("len(automations) = %d, want 1 (curve kept)", len(automations))
	}
	if automations[0].Target() != "" {
		t.Errorf("target = %q, want empty for unresolved id", automations[0].Target())
	}

	found := false
	for _, w := range project.Warnings() {
		if w.Stage == "automation" && w.Track == "audio" {
			found = true
		}
	}
	if !found {
		t.Errorf("unresolved target should be recorded as a warning, got %v", project.Warnings())
	}
}

func TestParse_TempoCache(t *testing.T) {
	doc := liveSet(
		audioTrack("audio", envelopes(), audioClip("clip", 0, 10, false)),
		simpleTrack("MainTrack", "Master",
			envelopes(
				envelope(tempoTargetID,
					floatEvent("0", "100"),
					floatEvent("10", "200"),
				),
			),
		),
	)

	project, err := (&Parser{}).Parse(doc, types.ParseOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	master := project.Tracks()[len(project.Tracks())-1]
	if master.Kind() != types.TrackMaster {
		t.Fatalf("last track should be the master, got %v", master.Kind())
	}
	if got := master.Automations()[0].Target(); got != "Tempo" {
		t.Fatalf("master automation target = %q, want Tempo", got)
	}

	if got := project.Tempo(types.ProjectStart); got != 100 {
		t.Errorf("Tempo(start) = %v, want 100", got)
	}
	if got := project.Tempo(5); math.Abs(got-150) > 0.1 {
		t.Errorf("Tempo(5) = %v, want ~150", got)
	}
}

func TestParse_SkipTempoCache(t *testing.T) {
	doc := liveSet(
		audioTrack("audio", envelopes(), audioClip("clip", 0, 10, false)),
		simpleTrack("MainTrack", "Master",
			envelopes(
				envelope(tempoTargetID,
					floatEvent("0", "100"),
					floatEvent("10", "200"),
				),
			),
		),
	)

	project, err := (&Parser{}).Parse(doc, types.ParseOptions{SkipTempoCache: true})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	// Structure is intact, only the dense sampling is skipped: every
	// tempo query answers with the base tempo.
	if len(project.Tracks()) != 2 {
		t.Fatalf("len(tracks) = %d, want 2", len(project.Tracks()))
	}
	for _, at := range []types.ProjectTime{types.ProjectStart, 2.5, 5} {
		if got := project.Tempo(at); got != 100 {
			t.Errorf("Tempo(%v) = %v, want the base tempo 100", at, got)
		}
	}
}
