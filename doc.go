// Package alsparse reads digital-audio-workstation project files into
// an in-memory, queryable timeline model: tracks, clips, automation
// curves, tempo and duration.
//
// # Quick Start
//
// Parsing a project file:
//
//	project, err := alsparse.ParseFile("set.als")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("%s %s, %d tracks, duration %.2f\n",
//		project.DAW(), project.DAWVersion(),
//		len(project.Tracks()), project.Duration())
//
// # Supported Formats
//
// Ableton Live Set (.als): gzip-compressed or plain XML documents.
// The format is selected by file extension or, failing that, by
// probing the content itself.
//
// # Graceful Degradation
//
// Once a document is recognized, parsing is all or nothing: a corrupt
// stream or a missing required element aborts with a typed error and
// no model is returned. Purely local problems - an automation curve
// whose target cannot be resolved, a set without a main track - do
// not abort; they degrade the affected fields and are collected in
// Project.Warnings.
//
// # Model
//
// The parsed model is immutable and safe to share across goroutines:
//
//	[Project]            - version, metadata, content hash, duration, tempo
//	  └─ [Track]         - Audio / Midi / Group / Return / Master
//	       ├─ [Clip]     - start/end on the timeline, audio or MIDI
//	       └─ [Automation] - (time, value) control points per parameter
//
// All times are project-relative musical time units, not seconds.
// ContentHash identifies the raw input bytes and is intended as a
// cache key for downstream consumers.
package alsparse
