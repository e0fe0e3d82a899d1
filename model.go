package alsparse

import (
	"github.com/Coestaris/alsparse/internal/types"
)

// ProjectTime is a project-relative position on the timeline,
// expressed in the set's own musical time units (beats), not seconds.
type ProjectTime = types.ProjectTime

// ProjectStart is the beginning of the timeline.
const ProjectStart = types.ProjectStart

// Color is an RGBA color attached to an entity.
type Color = types.Color

// DefaultColor is used where the document stores a palette index the
// parser cannot map to RGBA yet.
var DefaultColor = types.DefaultColor

// Entity is the common surface of everything the parser builds.
type Entity = types.Entity

// Project is the assembled, queryable result of a parse.
type Project = types.Project

// Track is one lane of the timeline.
type Track = types.Track

// TrackKind is the closed classification of a track's role.
type TrackKind = types.TrackKind

// Track kinds.
const (
	TrackAudio  = types.TrackAudio
	TrackMidi   = types.TrackMidi
	TrackGroup  = types.TrackGroup
	TrackReturn = types.TrackReturn
	TrackMaster = types.TrackMaster
)

// Clip is a region on a track's timeline.
type Clip = types.Clip

// ClipKind distinguishes audio clips from MIDI clips.
type ClipKind = types.ClipKind

// Clip kinds.
const (
	ClipAudio = types.ClipAudio
	ClipMidi  = types.ClipMidi
)

// Note is a single MIDI note inside a clip.
type Note = types.Note

// Automation is a named envelope controlling one parameter over time.
type Automation = types.Automation

// AutomationEvent is one control point of an automation curve.
type AutomationEvent = types.AutomationEvent
