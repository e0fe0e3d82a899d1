package types

import (
	"fmt"
	"log/slog"
)

// tempoResolution is the sampling step of the dense tempo cache: one
// sample per 1/1000 of a time unit.
const tempoResolution ProjectTime = 1.0 / 1000

// maxTempoSamples bounds the dense tempo cache. At the current
// resolution it covers sets tens of hours long; a duration beyond it
// (a clip with a corrupt end time, typically) keeps the base tempo
// only instead of allocating without bound.
const maxTempoSamples = 1 << 26

// Project is the assembled, queryable result of a parse: the version
// triple, opaque document metadata, the ordered tracks, and timeline
// quantities derived from them.
//
// A Project is immutable after SetTracks and safe to share across
// goroutines without synchronization.
type Project struct {
	entity

	majorVersion int
	minorA       int
	minorB       int
	minorC       int
	metadata     map[string]string
	contentHash  string

	tracks   []*Track
	warnings []Warning

	tracksSet      bool
	duration       ProjectTime
	baseTempo      float64
	tempoCache     []float64
	skipTempoCache bool
}

// ProjectOption configures project assembly.
type ProjectOption func(*Project)

// SkipTempoCache leaves the dense tempo cache unbuilt. The base tempo
// is still resolved, so Tempo answers every query with it.
func SkipTempoCache() ProjectOption {
	return func(p *Project) {
		p.skipTempoCache = true
	}
}

// NewProject builds a project root with the given version triple,
// document metadata and content digest. Tracks are attached afterwards
// with SetTracks, because they back-reference the project.
func NewProject(majorVersion, minorA, minorB, minorC int, metadata map[string]string, contentHash string, opts ...ProjectOption) *Project {
	p := &Project{
		entity:       entity{name: "Project", color: Color{}},
		majorVersion: majorVersion,
		minorA:       minorA,
		minorB:       minorB,
		minorC:       minorC,
		metadata:     metadata,
		contentHash:  contentHash,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetTracks attaches the ordered track list and computes the derived
// fields (duration, tempo cache) exactly once. Intended for format
// packages during assembly; the first call wins and later calls have
// no effect.
func (p *Project) SetTracks(tracks []*Track) {
	if p.tracksSet {
		return
	}
	p.tracks = tracks
	p.tracksSet = true
	p.duration = p.calculateDuration()
	p.buildTempoCache()
}

// AddWarning records a non-fatal parse issue. Intended for format
// packages during assembly, not for external use.
func (p *Project) AddWarning(w Warning) {
	p.warnings = append(p.warnings, w)
}

// Warnings returns the non-fatal issues collected while parsing. The
// returned slice must not be modified.
func (p *Project) Warnings() []Warning { return p.warnings }

// MajorVersion returns the format's major version.
func (p *Project) MajorVersion() int { return p.majorVersion }

// MinorVersion returns the three components of the format's composite
// minor version ("A.B_C" in the document).
func (p *Project) MinorVersion() (minorA, minorB, minorC int) {
	return p.minorA, p.minorB, p.minorC
}

// Metadata returns every top-level document attribute that was not
// consumed as version information, values verbatim. The returned map
// must not be modified.
func (p *Project) Metadata() map[string]string { return p.metadata }

// ContentHash returns the digest of the raw input bytes, a stable
// identity key for external caching.
func (p *Project) ContentHash() string { return p.contentHash }

// Tracks returns the tracks in document order, with the main track
// last. The returned slice must not be modified.
func (p *Project) Tracks() []*Track { return p.tracks }

// DAW returns the name of the producing workstation.
func (p *Project) DAW() string { return "Ableton Live" }

// DAWVersion returns the workstation version derived from the minor
// version triple.
func (p *Project) DAWVersion() string {
	return fmt.Sprintf("%d.%d.%d", p.minorA, p.minorB, p.minorC)
}

// Duration returns the end of the last clip across all tracks, or 0
// for a project with no clips.
func (p *Project) Duration() ProjectTime { return p.duration }

// Tempo returns the tempo at the given time.
//
// At ProjectStart the base (t=0) tempo is returned. Without a main
// track or a tempo envelope the project has no tempo information and
// Tempo returns 0 for any time. Queries beyond the project duration
// clamp to the last cached sample. When assembly skipped the dense
// cache (SkipTempoCache), every query returns the base tempo.
func (p *Project) Tempo(at ProjectTime) float64 {
	if at == ProjectStart || len(p.tempoCache) == 0 {
		return p.baseTempo
	}
	idx := int(at / tempoResolution)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.tempoCache) {
		idx = len(p.tempoCache) - 1
	}
	return p.tempoCache[idx]
}

func (p *Project) calculateDuration() ProjectTime {
	var max ProjectTime
	for _, t := range p.tracks {
		if d := t.Duration(); d > max {
			max = d
		}
	}
	return max
}

// buildTempoCache densely samples the main track's tempo envelope
// over [0, duration) so Tempo is a constant-time lookup. A single
// cursor sweeps the event list as the sample time increases, keeping
// the build linear in events + samples.
func (p *Project) buildTempoCache() {
	var master *Track
	for _, t := range p.tracks {
		if t.Kind() == TrackMaster {
			master = t
			break
		}
	}
	if master == nil {
		slog.Warn("no main track, tempo unavailable")
		return
	}

	var tempo *Automation
	for _, a := range master.Automations() {
		if a.Target() == "Tempo" {
			tempo = a
			break
		}
	}
	if tempo == nil {
		slog.Warn("main track has no tempo envelope, tempo unavailable")
		return
	}

	p.baseTempo = tempo.ValueAt(ProjectStart)
	if p.skipTempoCache {
		return
	}

	span := p.duration / tempoResolution
	if !(span >= 0) || span > maxTempoSamples {
		slog.Warn("duration exceeds the tempo cache bound, keeping base tempo only", "duration", p.duration)
		return
	}

	events := tempo.Events()
	samples := int(span)
	cache := make([]float64, samples)
	cursor := 0
	for i := range cache {
		at := ProjectTime(i) * tempoResolution
		for cursor+1 < len(events) && events[cursor+1].Time <= at {
			cursor++
		}
		switch {
		case len(events) == 0:
			cache[i] = 0
		case at <= events[0].Time:
			cache[i] = events[0].Value
		case cursor == len(events)-1:
			cache[i] = events[cursor].Value
		default:
			lo, hi := events[cursor], events[cursor+1]
			f := (at - lo.Time) / (hi.Time - lo.Time)
			cache[i] = lo.Value + f*(hi.Value-lo.Value)
		}
	}
	p.tempoCache = cache
}
