package interpreter

import (
	"fmt"
	"maps"
)

// Orientation is the direction the robot faces.
// The constants are in clockwise order so turning is modular arithmetic.
type Orientation int

const (
	EAST Orientation = iota
	SOUTH
	WEST
	NORTH
)

var orientationNames = [...]string{"EAST", "SOUTH", "WEST", "NORTH"}

func (o Orientation) String() string {
	if o < EAST || o > NORTH {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return orientationNames[o]
}

// Clockwise returns the cyclic successor of o.
func (o Orientation) Clockwise() Orientation {
	return (o + 1) % 4
}

// Counterclockwise returns the cyclic predecessor of o.
func (o Orientation) Counterclockwise() Orientation {
	return (o + 3) % 4
}

// Position is a point on the grid. East grows to the right, North grows up.
type Position struct {
	East  int64
	North int64
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.East, p.North)
}

// Robot is the mutable runtime state of one program execution.
type Robot struct {
	Position    Position
	Orientation Orientation
	Bindings    map[string]int64

	// stack is the evaluation stack. Every expression pushes exactly one
	// value which its consumer pops.
	stack []int64
}

// NewRobot returns a robot at (0,0) facing EAST with no bindings.
func NewRobot() *Robot {
	return &Robot{
		Orientation: EAST,
		Bindings:    make(map[string]int64),
		stack:       make([]int64, 0, 8),
	}
}

// Lookup returns the value bound to name.
func (r *Robot) Lookup(name string) (int64, bool) {
	v, ok := r.Bindings[name]
	return v, ok
}

// Snapshot returns a copy of the bindings.
func (r *Robot) Snapshot() map[string]int64 {
	return maps.Clone(r.Bindings)
}

// StackDepth reports the number of values on the evaluation stack.
func (r *Robot) StackDepth() int {
	return len(r.stack)
}

func (r *Robot) push(v int64) {
	r.stack = append(r.stack, v)
}

func (r *Robot) pop() (int64, bool) {
	if len(r.stack) == 0 {
		return 0, false
	}
	v := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	return v, true
}

// resetStack discards whatever a failed evaluation left behind.
func (r *Robot) resetStack() {
	r.stack = r.stack[:0]
}
