package ableton

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"strings"
	"testing"
)

// Builders for in-memory live set documents. Tests assemble documents
// from these instead of carrying binary testdata around.

const prolog = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// liveSet wraps tracks (and an optional main track) in a complete
// document with the default version attributes.
func liveSet(tracks ...string) []byte {
	return liveSetAttrs(`MajorVersion="5" MinorVersion="10.0_377" Creator="Ableton Live 10.1.7" SchemaChangeCount="3"`, tracks...)
}

func liveSetAttrs(attrs string, tracks ...string) []byte {
	var inside, master strings.Builder
	for _, t := range tracks {
		// The main track sits outside the Tracks container.
		if strings.HasPrefix(t, "<MainTrack") || strings.HasPrefix(t, "<MasterTrack") {
			master.WriteString(t)
			continue
		}
		inside.WriteString(t)
	}
	doc := prolog +
		"<Ableton " + attrs + ">" +
		"<LiveSet>" +
		"<Tracks>" + inside.String() + "</Tracks>" +
		master.String() +
		"</LiveSet>" +
		"</Ableton>"
	return []byte(doc)
}

// nameAndColor is the header every track variant shares.
func nameAndColor(name string) string {
	return `<Name><EffectiveName Value="` + name + `"/></Name><Color Value="12"/>`
}

// envelopes wraps automation envelopes in their mandatory container.
func envelopes(list ...string) string {
	return "<AutomationEnvelopes><Envelopes>" + strings.Join(list, "") + "</Envelopes></AutomationEnvelopes>"
}

// envelope builds one automation envelope pointing at a target id.
func envelope(id int, events ...string) string {
	return fmt.Sprintf(
		`<AutomationEnvelope Id="1"><EnvelopeTarget><PointeeId Value="%d"/></EnvelopeTarget>`+
			`<Automation><Events>%s</Events></Automation></AutomationEnvelope>`,
		id, strings.Join(events, ""))
}

func floatEvent(time, value string) string {
	return fmt.Sprintf(`<FloatEvent Id="1" Time="%s" Value="%s"/>`, time, value)
}

// audioTrack builds an audio track with the given clips and an
// optional extra subtree (mixer with automation targets, envelopes).
func audioTrack(name, extra string, clips ...string) string {
	return `<AudioTrack Id="10">` + nameAndColor(name) + extra +
		`<DeviceChain>` +
		mixer() +
		`<MainSequencer><Sample><ArrangerAutomation><Events>` +
		strings.Join(clips, "") +
		`</Events></ArrangerAutomation></Sample></MainSequencer>` +
		`</DeviceChain></AudioTrack>`
}

func midiTrack(name, extra string, clips ...string) string {
	return `<MidiTrack Id="11">` + nameAndColor(name) + extra +
		`<DeviceChain>` +
		mixer() +
		`<MainSequencer><ClipTimeable><ArrangerAutomation><Events>` +
		strings.Join(clips, "") +
		`</Events></ArrangerAutomation></ClipTimeable></MainSequencer>` +
		`</DeviceChain></MidiTrack>`
}

func simpleTrack(tag, name, extra string) string {
	return "<" + tag + ` Id="12">` + nameAndColor(name) + extra +
		"<DeviceChain>" + mixer() + "</DeviceChain></" + tag + ">"
}

// mixer carries the automation target markers resolution walks for.
// Ids are fixed per parameter so tests can reference them.
const (
	volumeTargetID = 8638
	panTargetID    = 8639
	tempoTargetID  = 8640
)

func mixer() string {
	return fmt.Sprintf(
		`<Mixer>`+
			`<Volume><AutomationTarget Id="%d"/></Volume>`+
			`<Pan><AutomationTarget Id="%d"/></Pan>`+
			`<Tempo><AutomationTarget Id="%d"/></Tempo>`+
			`</Mixer>`,
		volumeTargetID, panTargetID, tempoTargetID)
}

func audioClip(name string, start, end float64, disabled bool) string {
	return fmt.Sprintf(
		`<AudioClip Id="1" Time="%v"><CurrentStart Value="%v"/><CurrentEnd Value="%v"/>`+
			`<Name Value="%s"/><Color Value="5"/><Disabled Value="%t"/></AudioClip>`,
		start, start, end, name, disabled)
}

func midiClip(name string, start, end float64, disabled bool) string {
	return fmt.Sprintf(
		`<MidiClip Id="1" Time="%v"><CurrentStart Value="%v"/><CurrentEnd Value="%v"/>`+
			`<Name Value="%s"/><Color Value="5"/><Disabled Value="%t"/></MidiClip>`,
		start, start, end, name, disabled)
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}
