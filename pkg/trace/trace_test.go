package trace

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/bmp"

	"github.com/zurustar/robol/pkg/interpreter"
)

func square() []interpreter.Event {
	return []interpreter.Event{
		{Kind: interpreter.EventStartPosition, East: 0, North: 5},
		{Kind: interpreter.EventStepsTaken, Count: 5},
		{Kind: interpreter.EventDirectionChanged, Orientation: interpreter.SOUTH},
		{Kind: interpreter.EventStepsTaken, Count: 5},
		{Kind: interpreter.EventDirectionChanged, Orientation: interpreter.WEST},
		{Kind: interpreter.EventStepsTaken, Count: 2},
		{Kind: interpreter.EventEndPosition, East: 3, North: 0},
	}
}

func TestReplay(t *testing.T) {
	want := []interpreter.Position{
		{East: 0, North: 5},
		{East: 5, North: 5},
		{East: 5, North: 0},
		{East: 3, North: 0},
	}
	if diff := cmp.Diff(want, Replay(square())); diff != "" {
		t.Errorf("Replay() mismatch (-want +got):\n%s", diff)
	}
}

func TestReplay_WithoutStart(t *testing.T) {
	events := []interpreter.Event{
		{Kind: interpreter.EventDirectionChanged, Orientation: interpreter.NORTH},
		{Kind: interpreter.EventStepsTaken, Count: 2},
	}
	want := []interpreter.Position{{East: 0, North: 2}}
	if diff := cmp.Diff(want, Replay(events)); diff != "" {
		t.Errorf("Replay() mismatch (-want +got):\n%s", diff)
	}
}

func TestDraw(t *testing.T) {
	const scale = 10
	img, err := Draw(10, 10, square(), scale)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	c := Canvas{East: 10, North: 10, Scale: scale}
	width, height := c.Size()
	if img.Bounds().Dx() != width || img.Bounds().Dy() != height {
		t.Fatalf("image size = %v, want %dx%d", img.Bounds().Size(), width, height)
	}

	tests := []struct {
		name string
		at   interpreter.Position
		want color.RGBA
	}{
		{"start marker", interpreter.Position{East: 0, North: 5}, colorStart},
		{"end marker", interpreter.Position{East: 3, North: 0}, colorEnd},
		{"path corner", interpreter.Position{East: 5, North: 5}, colorPath},
		{"path middle", interpreter.Position{East: 5, North: 2}, colorPath},
		{"untouched grid crossing", interpreter.Position{East: 9, North: 9}, colorGrid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := c.Point(tt.at)
			if got := img.RGBAAt(p.X, p.Y); got != tt.want {
				t.Errorf("pixel at %v = %v, want %v", tt.at, got, tt.want)
			}
		})
	}

	// between grid lines nothing is drawn
	p := c.Point(interpreter.Position{East: 8, North: 8})
	if got := img.RGBAAt(p.X+scale/2, p.Y+scale/2); got != colorBackground {
		t.Errorf("cell interior = %v, want background", got)
	}
}

func TestRender_BMP(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, 10, 10, square(), 4); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	img, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a BMP: %v", err)
	}
	width, height := Canvas{East: 10, North: 10, Scale: 4}.Size()
	if img.Bounds().Dx() != width || img.Bounds().Dy() != height {
		t.Errorf("decoded size = %v, want %dx%d", img.Bounds().Size(), width, height)
	}
}

func TestDraw_Errors(t *testing.T) {
	tests := []struct {
		name        string
		east, north int64
		scale       int
	}{
		{"zero scale", 5, 5, 0},
		{"negative extent", -1, 5, 4},
		{"too large", MaxDimension, 1, 2},
		{"extent overflows when scaled", 1 << 62, 1, 16},
		{"north overflows when scaled", 1, 1 << 62, 16},
		{"largest int64 extent", 1<<63 - 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Draw(tt.east, tt.north, nil, tt.scale); err == nil {
				t.Error("Draw() expected error")
			}
		})
	}
}

func TestDraw_NoEvents(t *testing.T) {
	if _, err := Draw(0, 0, nil, 1); err != nil {
		t.Errorf("Draw() of empty grid error = %v", err)
	}
}
