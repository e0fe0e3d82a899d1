package types

// TrackKind is the closed classification of a track's role. It is
// fixed at construction and never changes.
type TrackKind int

const (
	// TrackAudio holds audio clips.
	TrackAudio TrackKind = iota
	// TrackMidi holds MIDI clips.
	TrackMidi
	// TrackGroup groups other tracks; no clips of its own.
	TrackGroup
	// TrackReturn is a send/return bus; no clips.
	TrackReturn
	// TrackMaster is the main output track; carries tempo and time
	// signature automation.
	TrackMaster
)

// String returns a human-readable track kind.
func (k TrackKind) String() string {
	switch k {
	case TrackAudio:
		return "Audio"
	case TrackMidi:
		return "Midi"
	case TrackGroup:
		return "Group"
	case TrackReturn:
		return "Return"
	case TrackMaster:
		return "Master"
	default:
		return "Unknown"
	}
}

// Track is one lane of the timeline: an ordered sequence of clips plus
// the automation envelopes recorded against the track's parameters.
type Track struct {
	entity
	kind   TrackKind
	frozen bool

	clips       []*Clip
	automations []*Automation

	clipsSet       bool
	automationsSet bool
}

// NewTrack builds an empty track of the given kind owned by parent.
// Clips and automations are attached afterwards with SetClips and
// SetAutomations, because they back-reference the track.
func NewTrack(name string, color Color, parent Entity, kind TrackKind) *Track {
	return &Track{
		entity: entity{name: name, color: color, parent: parent},
		kind:   kind,
	}
}

// SetClips attaches the track's clips. Intended for format packages
// during assembly; the first call wins and later calls have no effect.
func (t *Track) SetClips(clips []*Clip) {
	if t.clipsSet {
		return
	}
	t.clips = clips
	t.clipsSet = true
}

// SetAutomations attaches the track's automation envelopes. Intended
// for format packages during assembly; the first call wins and later
// calls have no effect.
func (t *Track) SetAutomations(automations []*Automation) {
	if t.automationsSet {
		return
	}
	t.automations = automations
	t.automationsSet = true
}

// Kind reports the track variant.
func (t *Track) Kind() TrackKind { return t.kind }

// Frozen reports whether the track is frozen. Always false at the
// moment; the format stores freeze state in data the parser does not
// read yet.
func (t *Track) Frozen() bool { return t.frozen }

// Clips returns the track's clips in document order. The returned
// slice must not be modified.
func (t *Track) Clips() []*Clip { return t.clips }

// Automations returns the track's automation envelopes in document
// order. The returned slice must not be modified.
func (t *Track) Automations() []*Automation { return t.automations }

// Duration returns the end of the last clip on the track, or 0 when
// the track has no clips.
func (t *Track) Duration() ProjectTime {
	var max ProjectTime
	for _, c := range t.clips {
		if c.End() > max {
			max = c.End()
		}
	}
	return max
}
