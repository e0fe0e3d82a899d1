// Package types holds the shared timeline model populated by format
// parsers: projects, tracks, clips and automation curves.
//
// The model is immutable once assembled. Setters exist only for the
// two-phase build performed by format packages (children carry a
// back-reference to an owner that must already exist) and become no-ops
// after first use.
package types

// ProjectTime is a project-relative position on the timeline. It is
// expressed in the set's own musical time units (beats), not seconds.
type ProjectTime = float64

// ProjectStart is the beginning of the timeline.
const ProjectStart ProjectTime = 0

// Color is an RGBA color attached to an entity.
type Color struct {
	R, G, B, A uint8
}

// DefaultColor is used where the document stores a palette index the
// parser cannot map to RGBA yet.
var DefaultColor = Color{A: 255}

// Entity is the common surface of everything the parser builds:
// projects, tracks, clips and automations.
//
// Parent returns the owning entity (nil for the project root). The
// back-reference is set once at construction and never reassigned; it
// exists for lookup only and implies no ownership.
type Entity interface {
	Name() string
	Color() Color
	Parent() Entity
}

// entity carries the fields shared by all model types.
type entity struct {
	name   string
	color  Color
	parent Entity
}

func (e *entity) Name() string   { return e.name }
func (e *entity) Color() Color   { return e.color }
func (e *entity) Parent() Entity { return e.parent }
