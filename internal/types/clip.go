package types

// ClipKind distinguishes the two clip variants a track can carry.
type ClipKind int

const (
	// ClipAudio is a clip referencing recorded audio.
	ClipAudio ClipKind = iota
	// ClipMidi is a clip holding MIDI notes.
	ClipMidi
)

// String returns a human-readable clip kind.
func (k ClipKind) String() string {
	switch k {
	case ClipAudio:
		return "Audio"
	case ClipMidi:
		return "Midi"
	default:
		return "Unknown"
	}
}

// Note is a single MIDI note inside a clip.
//
// Pitch is a MIDI note number (A0 = 21, C4 = 60, C8 = 108). Start and
// End are relative to the clip start, not the project start.
type Note struct {
	Pitch int
	Start ProjectTime
	End   ProjectTime
}

// Clip is a region on a track's timeline. The variant is fixed at
// construction: audio clips may carry analyzed loudness data, MIDI
// clips carry notes.
type Clip struct {
	entity
	kind     ClipKind
	start    ProjectTime
	end      ProjectTime
	disabled bool
	analyzed []float64
	notes    []Note
}

// NewAudioClip builds an audio clip owned by parent.
//
// analyzed is the loudness envelope, values in [0, 1] where 0 is
// silence. The parser leaves it empty; the field exists for producers
// that run audio analysis.
func NewAudioClip(name string, color Color, parent *Track, start, end ProjectTime, disabled bool, analyzed []float64) *Clip {
	return &Clip{
		entity:   entity{name: name, color: color, parent: parent},
		kind:     ClipAudio,
		start:    start,
		end:      end,
		disabled: disabled,
		analyzed: analyzed,
	}
}

// NewMidiClip builds a MIDI clip owned by parent. Notes are left
// empty; note extraction is intentionally not implemented.
func NewMidiClip(name string, color Color, parent *Track, start, end ProjectTime, disabled bool) *Clip {
	return &Clip{
		entity:   entity{name: name, color: color, parent: parent},
		kind:     ClipMidi,
		start:    start,
		end:      end,
		disabled: disabled,
	}
}

// Kind reports whether this is an audio or a MIDI clip.
func (c *Clip) Kind() ClipKind { return c.kind }

// Start returns the clip start, relative to the project start.
func (c *Clip) Start() ProjectTime { return c.start }

// End returns the clip end, relative to the project start.
func (c *Clip) End() ProjectTime { return c.end }

// Disabled reports whether the clip is deactivated in the set.
func (c *Clip) Disabled() bool { return c.disabled }

// AnalyzedData returns the loudness envelope of an audio clip, values
// in [0, 1]. Empty for MIDI clips and for audio clips that were never
// analyzed. The returned slice must not be modified.
func (c *Clip) AnalyzedData() []float64 { return c.analyzed }

// Notes returns the notes of a MIDI clip. Always empty with the
// current parser; structurally present for format fidelity. The
// returned slice must not be modified.
func (c *Clip) Notes() []Note { return c.notes }
