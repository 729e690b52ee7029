// Package trace turns an interpreter event stream into a picture of the
// robot's path.
package trace

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/zurustar/robol/pkg/interpreter"
)

// MaxDimension bounds the width and height of a rendered image in pixels.
const MaxDimension = 8192

const margin = 8

var (
	colorBackground = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorGrid       = color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
	colorPath       = color.RGBA{0x20, 0x40, 0xc0, 0xff}
	colorStart      = color.RGBA{0x20, 0xa0, 0x20, 0xff}
	colorEnd        = color.RGBA{0xc0, 0x20, 0x20, 0xff}
	colorLabel      = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

// Replay reconstructs the visited positions from events, starting at
// (0,0) facing EAST like a fresh robot. Every start_position and
// steps_taken event appends one point.
func Replay(events []interpreter.Event) []interpreter.Position {
	var (
		pos    interpreter.Position
		facing = interpreter.EAST
		points []interpreter.Position
	)

	for _, e := range events {
		switch e.Kind {
		case interpreter.EventStartPosition:
			pos = interpreter.Position{East: e.East, North: e.North}
			points = append(points, pos)
		case interpreter.EventDirectionChanged:
			facing = e.Orientation
		case interpreter.EventStepsTaken:
			switch facing {
			case interpreter.EAST:
				pos.East += e.Count
			case interpreter.SOUTH:
				pos.North -= e.Count
			case interpreter.WEST:
				pos.East -= e.Count
			case interpreter.NORTH:
				pos.North += e.Count
			}
			points = append(points, pos)
		}
	}
	return points
}

// Canvas maps grid coordinates to pixels. North grows upward.
type Canvas struct {
	East, North int64
	Scale       int
}

// Size returns the image size in pixels, including the label strip.
func (c Canvas) Size() (width, height int) {
	width = int(c.East)*c.Scale + 2*margin
	height = int(c.North)*c.Scale + 2*margin + labelHeight()
	return width, height
}

// Point returns the pixel position of grid position p.
func (c Canvas) Point(p interpreter.Position) image.Point {
	return image.Point{
		X: margin + int(p.East)*c.Scale,
		Y: margin + int(c.North-p.North)*c.Scale,
	}
}

func labelHeight() int {
	return basicfont.Face7x13.Metrics().Height.Ceil() + margin
}

// Render draws the grid, the replayed path and start/end markers and
// encodes the result as BMP to w. east and north are the grid extents.
func Render(w io.Writer, east, north int64, events []interpreter.Event, scale int) error {
	img, err := Draw(east, north, events, scale)
	if err != nil {
		return err
	}
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	return nil
}

// Draw renders the trace image without encoding it.
func Draw(east, north int64, events []interpreter.Event, scale int) (*image.RGBA, error) {
	if scale < 1 {
		return nil, fmt.Errorf("trace scale must be positive, got %d", scale)
	}
	if east < 0 || north < 0 {
		return nil, fmt.Errorf("invalid grid extents %d*%d", east, north)
	}
	if limit := int64(MaxDimension / scale); east > limit || north > limit {
		return nil, fmt.Errorf("trace for grid %d*%d at scale %d exceeds %d pixels", east, north, scale, MaxDimension)
	}

	c := Canvas{East: east, North: north, Scale: scale}
	width, height := c.Size()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	// grid lines
	for e := int64(0); e <= east; e++ {
		p := c.Point(interpreter.Position{East: e, North: north})
		fill(img, image.Rect(p.X, p.Y, p.X+1, p.Y+int(north)*scale+1), colorGrid)
	}
	for n := int64(0); n <= north; n++ {
		p := c.Point(interpreter.Position{East: 0, North: n})
		fill(img, image.Rect(p.X, p.Y, p.X+int(east)*scale+1, p.Y+1), colorGrid)
	}

	points := Replay(events)
	for i := 1; i < len(points); i++ {
		a, b := c.Point(points[i-1]), c.Point(points[i])
		// consecutive points differ on one axis only
		fill(img, image.Rect(min(a.X, b.X), min(a.Y, b.Y), max(a.X, b.X)+1, max(a.Y, b.Y)+1), colorPath)
	}

	if len(points) > 0 {
		marker(img, c.Point(points[0]), colorStart)
		marker(img, c.Point(points[len(points)-1]), colorEnd)
	}

	drawLabel(img, label(points), height-margin/2)
	return img, nil
}

func label(points []interpreter.Position) string {
	if len(points) == 0 {
		return "no movement"
	}
	return fmt.Sprintf("start %s  end %s", points[0], points[len(points)-1])
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

func marker(img *image.RGBA, p image.Point, c color.Color) {
	fill(img, image.Rect(p.X-2, p.Y-2, p.X+3, p.Y+3), c)
}

func drawLabel(img *image.RGBA, text string, baseline int) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(colorLabel),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(margin), Y: fixed.I(baseline)},
	}
	drawer.DrawString(text)
}
