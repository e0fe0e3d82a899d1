package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Coestaris/alsparse"
)

// Serializable views of the parsed model for the structured output
// formats.

type projectDump struct {
	Name     string            `json:"name" yaml:"name"`
	DAW      string            `json:"daw" yaml:"daw"`
	Version  string            `json:"version" yaml:"version"`
	Hash     string            `json:"hash" yaml:"hash"`
	Duration float64           `json:"duration" yaml:"duration"`
	Tempo    float64           `json:"tempo" yaml:"tempo"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Tracks   []trackDump       `json:"tracks" yaml:"tracks"`
	Warnings []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type trackDump struct {
	Name        string           `json:"name" yaml:"name"`
	Kind        string           `json:"kind" yaml:"kind"`
	Duration    float64          `json:"duration" yaml:"duration"`
	Clips       []clipDump       `json:"clips,omitempty" yaml:"clips,omitempty"`
	Automations []automationDump `json:"automations,omitempty" yaml:"automations,omitempty"`
}

type clipDump struct {
	Name     string  `json:"name" yaml:"name"`
	Kind     string  `json:"kind" yaml:"kind"`
	Start    float64 `json:"start" yaml:"start"`
	End      float64 `json:"end" yaml:"end"`
	Disabled bool    `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

type automationDump struct {
	Target string      `json:"target" yaml:"target"`
	Events []eventDump `json:"events,omitempty" yaml:"events,omitempty"`
	Count  int         `json:"count" yaml:"count"`
}

type eventDump struct {
	Time  float64 `json:"time" yaml:"time"`
	Value float64 `json:"value" yaml:"value"`
}

func buildDump(project *alsparse.Project, withEvents bool) projectDump {
	dump := projectDump{
		Name:     project.Name(),
		DAW:      project.DAW(),
		Version:  project.DAWVersion(),
		Hash:     project.ContentHash(),
		Duration: project.Duration(),
		Tempo:    project.Tempo(alsparse.ProjectStart),
		Metadata: project.Metadata(),
	}
	for _, w := range project.Warnings() {
		dump.Warnings = append(dump.Warnings, w.String())
	}

	for _, track := range project.Tracks() {
		td := trackDump{
			Name:     track.Name(),
			Kind:     track.Kind().String(),
			Duration: track.Duration(),
		}
		for _, clip := range track.Clips() {
			td.Clips = append(td.Clips, clipDump{
				Name:     clip.Name(),
				Kind:     clip.Kind().String(),
				Start:    clip.Start(),
				End:      clip.End(),
				Disabled: clip.Disabled(),
			})
		}
		for _, auto := range track.Automations() {
			ad := automationDump{
				Target: auto.Target(),
				Count:  len(auto.Events()),
			}
			if withEvents {
				for _, e := range auto.Events() {
					ad.Events = append(ad.Events, eventDump{Time: e.Time, Value: e.Value})
				}
			}
			td.Automations = append(td.Automations, ad)
		}
		dump.Tracks = append(dump.Tracks, td)
	}
	return dump
}

func render(project *alsparse.Project, format string, withEvents bool) (string, error) {
	dump := buildDump(project, withEvents)

	switch format {
	case "text":
		return renderText(dump), nil
	case "json":
		out, err := json.MarshalIndent(dump, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal json: %w", err)
		}
		return string(out) + "\n", nil
	case "yaml":
		out, err := yaml.Marshal(dump)
		if err != nil {
			return "", fmt.Errorf("marshal yaml: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

func renderText(dump projectDump) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Project: %q (%s %s)\n", dump.Name, dump.DAW, dump.Version)
	fmt.Fprintf(&b, "  Duration: %.2f, Tempo: %.2f, Hash: %s\n", dump.Duration, dump.Tempo, dump.Hash)
	for _, track := range dump.Tracks {
		fmt.Fprintf(&b, "  %s Track: %q\n", track.Kind, track.Name)
		for _, clip := range track.Clips {
			disabled := ""
			if clip.Disabled {
				disabled = " (disabled)"
			}
			fmt.Fprintf(&b, "    Clip: %q. Start: %.2f, End: %.2f%s\n", clip.Name, clip.Start, clip.End, disabled)
		}
		for _, auto := range track.Automations {
			target := auto.Target
			if target == "" {
				target = "<unresolved>"
			}
			fmt.Fprintf(&b, "    Automation: %q. Events: %d\n", target, auto.Count)
			for _, e := range auto.Events {
				fmt.Fprintf(&b, "      Event: %.3f, %.3f\n", e.Time, e.Value)
			}
		}
	}
	for _, w := range dump.Warnings {
		fmt.Fprintf(&b, "  Warning: %s\n", w)
	}
	return b.String()
}
