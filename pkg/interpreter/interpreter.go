// Package interpreter executes robol programs.
//
// An Interpreter walks the program tree front to back against a fresh
// Robot, enforcing the grid bounds on every movement and emitting an
// ordered stream of events. Any runtime error stops execution.
package interpreter

import (
	"log/slog"

	"github.com/zurustar/robol/pkg/compiler/ast"
	"github.com/zurustar/robol/pkg/logger"
)

// Interpreter executes one program.
type Interpreter struct {
	program *ast.Program
	robot   *Robot
	events  []Event

	// Configuration
	handler       EventHandler
	maxIterations int

	log *slog.Logger
}

// Result is the outcome of Run. It is returned even when Run fails and
// then holds the state at the point of failure.
type Result struct {
	Events      []Event
	Position    Position
	Orientation Orientation
	Bindings    map[string]int64
}

// Option is a functional option for configuring the Interpreter.
type Option func(*Interpreter)

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(in *Interpreter) {
		in.log = log
	}
}

// WithEventHandler streams every event to h as it is emitted.
func WithEventHandler(h EventHandler) Option {
	return func(in *Interpreter) {
		in.handler = h
	}
}

// WithMaxIterations bounds how many times a single loop may run its body.
// Zero means unlimited.
func WithMaxIterations(n int) Option {
	return func(in *Interpreter) {
		in.maxIterations = n
	}
}

// New creates an Interpreter for program.
func New(program *ast.Program, opts ...Option) *Interpreter {
	in := &Interpreter{
		program: program,
		log:     logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Run executes the program against a fresh robot.
func (in *Interpreter) Run() (*Result, error) {
	in.robot = NewRobot()
	in.events = nil

	if in.program == nil || in.program.Grid == nil {
		return in.result(), invariant(nil, "program has no grid")
	}

	in.log.Debug("Interpreter started", "statements", len(in.program.Statements), "grid", in.program.Grid.String())

	for _, stmt := range in.program.Statements {
		in.robot.resetStack()
		if err := in.execute(stmt); err != nil {
			in.log.Debug("Interpreter stopped", "error", err)
			return in.result(), err
		}
	}

	in.log.Debug("Interpreter finished", "events", len(in.events), "position", in.robot.Position.String())
	return in.result(), nil
}

// Robot returns the robot of the last Run, or nil before the first.
func (in *Interpreter) Robot() *Robot {
	return in.robot
}

func (in *Interpreter) result() *Result {
	return &Result{
		Events:      in.events,
		Position:    in.robot.Position,
		Orientation: in.robot.Orientation,
		Bindings:    in.robot.Snapshot(),
	}
}

func (in *Interpreter) emit(e Event) {
	in.events = append(in.events, e)
	if in.handler != nil {
		in.handler(e)
	}
}

func (in *Interpreter) execute(stmt ast.Statement) error {
	line, column := stmt.Pos()
	in.log.Debug("Execute", "stmt", stmt.String(), "line", line, "column", column)

	switch s := stmt.(type) {
	case *ast.Binding:
		return in.executeBinding(s)
	case *ast.Start:
		return in.executeStart(s)
	case *ast.Turn:
		return in.executeTurn(s)
	case *ast.Step:
		return in.executeStep(s)
	case *ast.Assignment:
		return in.executeAssignment(s)
	case *ast.Loop:
		return in.executeLoop(s)
	case *ast.Stop:
		in.emit(endPosition(in.robot.Position))
		return nil
	default:
		return invariant(stmt, "unknown statement %T", stmt)
	}
}

func (in *Interpreter) executeBinding(s *ast.Binding) error {
	v, err := Evaluate(s.Value, in.robot)
	if err != nil {
		return err
	}
	in.robot.Bindings[s.Name.Name] = v
	return nil
}

func (in *Interpreter) executeStart(s *ast.Start) error {
	east, err := Evaluate(s.East, in.robot)
	if err != nil {
		return err
	}
	north, err := Evaluate(s.North, in.robot)
	if err != nil {
		return err
	}

	extents, err := in.extents()
	if err != nil {
		return err
	}
	p := Position{East: east, North: north}
	if !extents.contains(p) {
		return NewRuntimeError(ErrorOutOfBounds, s,
			"start position %s outside grid %s", p, extents)
	}

	in.robot.Position = p
	in.emit(startPosition(p))
	return nil
}

func (in *Interpreter) executeTurn(s *ast.Turn) error {
	switch s.Direction {
	case ast.CLOCKWISE:
		in.robot.Orientation = in.robot.Orientation.Clockwise()
	case ast.COUNTERCLOCKWISE:
		in.robot.Orientation = in.robot.Orientation.Counterclockwise()
	default:
		return invariant(s, "unknown direction %s", s.Direction)
	}
	in.emit(directionChanged(in.robot.Orientation))
	return nil
}

func (in *Interpreter) executeStep(s *ast.Step) error {
	n, err := Evaluate(s.Steps, in.robot)
	if err != nil {
		return err
	}
	extents, err := in.extents()
	if err != nil {
		return err
	}

	p := in.robot.Position
	switch in.robot.Orientation {
	case EAST:
		p.East += n
	case SOUTH:
		p.North -= n
	case WEST:
		p.East -= n
	case NORTH:
		p.North += n
	default:
		return invariant(s, "unknown orientation %s", in.robot.Orientation)
	}

	if !extents.contains(p) {
		return NewRuntimeError(ErrorOutOfBounds, s,
			"step %d %s from %s leaves grid %s", n, in.robot.Orientation, in.robot.Position, extents)
	}

	in.robot.Position = p
	in.emit(stepsTaken(n))
	return nil
}

func (in *Interpreter) executeAssignment(s *ast.Assignment) error {
	v, ok := in.robot.Lookup(s.Name.Name)
	if !ok {
		return unboundIdentifier(s.Name)
	}
	switch s.Op {
	case ast.INC:
		v++
	case ast.DEC:
		v--
	default:
		return invariant(s, "unknown assignment operator %s", s.Op)
	}
	in.robot.Bindings[s.Name.Name] = v
	return nil
}

// executeLoop runs the body, then tests the condition (do-while).
func (in *Interpreter) executeLoop(s *ast.Loop) error {
	for iteration := 1; ; iteration++ {
		for _, stmt := range s.Body {
			if err := in.execute(stmt); err != nil {
				return err
			}
		}

		again, err := EvaluateCondition(s.Condition, in.robot)
		if err != nil {
			return err
		}
		if !again {
			in.log.Debug("Loop finished", "iterations", iteration)
			return nil
		}
		if in.maxIterations > 0 && iteration >= in.maxIterations {
			return NewRuntimeError(ErrorIterationLimit, s,
				"loop did not finish within %d iterations", in.maxIterations)
		}
	}
}

// gridExtents are the inclusive upper bounds of both axes.
type gridExtents struct {
	East  int64
	North int64
}

func (g gridExtents) contains(p Position) bool {
	return p.East >= 0 && p.East <= g.East && p.North >= 0 && p.North <= g.North
}

func (g gridExtents) String() string {
	return Position(g).String()
}

// extents evaluates the grid against the current bindings.
func (in *Interpreter) extents() (gridExtents, error) {
	east, north, err := GridExtents(in.program.Grid, in.robot)
	if err != nil {
		return gridExtents{}, err
	}
	return gridExtents{East: east, North: north}, nil
}

// GridExtents evaluates both grid extents against r's bindings.
// A negative extent is an ErrInvalidGrid error.
func GridExtents(grid *ast.Grid, r *Robot) (east, north int64, err error) {
	if grid == nil {
		return 0, 0, invariant(nil, "program has no grid")
	}
	east, err = Evaluate(grid.East, r)
	if err != nil {
		return 0, 0, err
	}
	north, err = Evaluate(grid.North, r)
	if err != nil {
		return 0, 0, err
	}
	if east < 0 || north < 0 {
		return 0, 0, NewRuntimeError(ErrorInvalidGrid, grid,
			"grid extents %d*%d must not be negative", east, north)
	}
	return east, north, nil
}
