// Package report encodes interpreter event streams for output.
//
// Three formats are supported:
//   - text: one human-readable line per event
//   - json: one JSON object per line
//   - yaml: a single YAML sequence of event mappings
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/zurustar/robol/pkg/interpreter"
)

// Encoder writes an event stream to w.
type Encoder interface {
	Encode(w io.Writer, events []interpreter.Event) error
}

// New returns the encoder for format ("text", "json" or "yaml").
func New(format string) (Encoder, error) {
	switch format {
	case "", "text":
		return TextEncoder{}, nil
	case "json":
		return JSONEncoder{}, nil
	case "yaml":
		return YAMLEncoder{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Record is the structured form of an event used by the json and yaml
// encoders. Fields that do not apply to Kind are omitted.
type Record struct {
	Kind        string `json:"kind" yaml:"kind"`
	East        *int64 `json:"east,omitempty" yaml:"east,omitempty"`
	North       *int64 `json:"north,omitempty" yaml:"north,omitempty"`
	Orientation string `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	Count       *int64 `json:"count,omitempty" yaml:"count,omitempty"`
}

// NewRecord converts e to its structured form.
func NewRecord(e interpreter.Event) Record {
	r := Record{Kind: string(e.Kind)}
	switch e.Kind {
	case interpreter.EventStartPosition, interpreter.EventEndPosition:
		east, north := e.East, e.North
		r.East, r.North = &east, &north
	case interpreter.EventDirectionChanged:
		r.Orientation = e.Orientation.String()
	case interpreter.EventStepsTaken:
		count := e.Count
		r.Count = &count
	}
	return r
}

// TextEncoder writes the reference text rendering.
type TextEncoder struct{}

// Line renders a single event as text.
func Line(e interpreter.Event) string {
	switch e.Kind {
	case interpreter.EventStartPosition:
		return fmt.Sprintf("Start position: (%d, %d)", e.East, e.North)
	case interpreter.EventDirectionChanged:
		return fmt.Sprintf("Direction: %s", e.Orientation)
	case interpreter.EventStepsTaken:
		return fmt.Sprintf("Steps: %d", e.Count)
	case interpreter.EventEndPosition:
		return fmt.Sprintf("End position: (%d, %d)", e.East, e.North)
	default:
		return e.String()
	}
}

func (TextEncoder) Encode(w io.Writer, events []interpreter.Event) error {
	for _, e := range events {
		if _, err := fmt.Fprintln(w, Line(e)); err != nil {
			return err
		}
	}
	return nil
}

// JSONEncoder writes JSON lines.
type JSONEncoder struct{}

func (JSONEncoder) Encode(w io.Writer, events []interpreter.Event) error {
	enc := json.NewEncoder(w)
	for _, e := range events {
		if err := enc.Encode(NewRecord(e)); err != nil {
			return fmt.Errorf("failed to encode %s: %w", e.Kind, err)
		}
	}
	return nil
}

// YAMLEncoder writes one YAML document holding the event sequence.
type YAMLEncoder struct{}

func (YAMLEncoder) Encode(w io.Writer, events []interpreter.Event) error {
	records := make([]Record, len(events))
	for i, e := range events {
		records[i] = NewRecord(e)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}
	return enc.Close()
}
