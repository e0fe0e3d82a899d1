package types

import "sort"

// AutomationEvent is one control point of an automation curve.
//
// Value is either a continuous signal in an unspecified range or a
// boolean encoded as 0.0/1.0.
type AutomationEvent struct {
	Time  ProjectTime
	Value float64
}

// Automation is a named envelope controlling one parameter over time.
//
// Target is the canonical dot-joined parameter path ("Volume", "Pan",
// "Tempo", ...). Empty when the parser could not resolve which
// parameter the curve controls.
//
// Events are kept in authored order and are assumed time-ascending;
// the parser does not sort them. Out-of-order input yields undefined
// interpolation results.
type Automation struct {
	entity
	target string
	events []AutomationEvent
}

// NewAutomation builds an automation envelope owned by parent.
func NewAutomation(name string, color Color, parent *Track, target string, events []AutomationEvent) *Automation {
	return &Automation{
		entity: entity{name: name, color: color, parent: parent},
		target: target,
		events: events,
	}
}

// Target returns the canonical parameter path this curve controls.
func (a *Automation) Target() string { return a.target }

// Events returns the control points in authored order. The returned
// slice must not be modified.
func (a *Automation) Events() []AutomationEvent { return a.events }

// ValueAt samples the curve at time at.
//
// With no events the value is 0. Before the first event or after the
// last, the boundary event's value is returned unchanged; between two
// events the value is linearly interpolated.
func (a *Automation) ValueAt(at ProjectTime) float64 {
	if len(a.events) == 0 {
		return 0
	}
	if at <= a.events[0].Time {
		return a.events[0].Value
	}
	last := a.events[len(a.events)-1]
	if at >= last.Time {
		return last.Value
	}

	i := sort.Search(len(a.events), func(i int) bool {
		return a.events[i].Time >= at
	})
	lo, hi := a.events[i-1], a.events[i]
	if hi.Time == lo.Time {
		return hi.Value
	}
	f := (at - lo.Time) / (hi.Time - lo.Time)
	return lo.Value + f*(hi.Value-lo.Value)
}
