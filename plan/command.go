// Package plan records the instructions planned for one layer.
//
// A Recorder implements primetower.LayerPlan: the tower calls it while a
// layer is planned, and every call becomes a typed command. The finished
// Recording can be inspected or replayed to a Backend, for example the PNG
// preview renderer.
//
//	rec := plan.NewRecorder(nr, scene)
//	tower.AddToGcode(rec, uses, prev, next)
//	r := rec.FinishRecording()
//	r.Playback(backend)
package plan

import (
	"github.com/gogpu/primetower"
	"github.com/gogpu/primetower/geom"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdTravel CommandType = iota // Non-printing move
	CmdPrint                     // Print closed polygons
	CmdMark                      // Prime tower done for an extruder
)

var commandTypeNames = [...]string{
	CmdTravel: "Travel",
	CmdPrint:  "Print",
	CmdMark:   "Mark",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// TravelCommand moves to a point without extruding.
type TravelCommand struct {
	To geom.Point
}

// Type implements Command.
func (TravelCommand) Type() CommandType { return CmdTravel }

// PrintCommand prints closed polygons in order, each starting at its first
// vertex.
type PrintCommand struct {
	Paths  geom.Shape
	Config primetower.PathConfig
}

// Type implements Command.
func (PrintCommand) Type() CommandType { return CmdPrint }

// MarkCommand records that the tower was planned for an extruder.
type MarkCommand struct {
	Extruder int
}

// Type implements Command.
func (MarkCommand) Type() CommandType { return CmdMark }
