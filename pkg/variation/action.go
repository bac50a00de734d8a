// Package variation records a chess game as an append-only log of actions
// and replays it into a board.Position on demand. It sits one level above
// pkg/board: where a board.Tape records the low-level Alterations a single
// move expands into, a variation.Log records the higher-level actions (new
// game, setup, make, nested variation, halt) that a game transcript is made
// of, and compiles them down to Alterations lazily when replayed.
package variation

import (
	"fmt"

	"github.com/kestrelchess/hazel/pkg/board"
)

// Delim marks the start or end of a nested variation block.
type Delim int

const (
	Start Delim = iota
	End
)

func (d Delim) String() string {
	if d == Start {
		return "Start"
	}
	return "End"
}

// Reason records why a variation was halted.
type Reason int

const (
	Ongoing Reason = iota
	Checkmate
	Stalemate
	Resignation
	DrawAgreed
	Aborted
)

func (r Reason) String() string {
	switch r {
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	case Resignation:
		return "Resignation"
	case DrawAgreed:
		return "DrawAgreed"
	case Aborted:
		return "Aborted"
	default:
		return "Ongoing"
	}
}

// ActionKind identifies the kind of a recorded Action.
type ActionKind int

const (
	NewGame ActionKind = iota
	Setup
	Make
	VariationDelim
	Halt
)

func (k ActionKind) String() string {
	switch k {
	case NewGame:
		return "NewGame"
	case Setup:
		return "Setup"
	case Make:
		return "Make"
	case VariationDelim:
		return "VariationDelim"
	case Halt:
		return "Halt"
	default:
		return "Unknown"
	}
}

// Action is a single entry in a variation's log. Exactly one of its payload
// fields is meaningful, selected by Kind, mirroring board.Alteration's
// tagged-union shape.
type Action struct {
	Kind  ActionKind
	FEN   string     // Setup
	Move  board.Move // Make
	Delim Delim      // VariationDelim
	Halt  Reason     // Halt
}

func NewGameAction() Action { return Action{Kind: NewGame} }

func SetupAction(fen string) Action { return Action{Kind: Setup, FEN: fen} }

func MakeAction(m board.Move) Action { return Action{Kind: Make, Move: m} }

func VariationAction(d Delim) Action { return Action{Kind: VariationDelim, Delim: d} }

func HaltAction(r Reason) Action { return Action{Kind: Halt, Halt: r} }

func (a Action) String() string {
	switch a.Kind {
	case NewGame:
		return "NewGame"
	case Setup:
		return fmt.Sprintf("Setup(%v)", a.FEN)
	case Make:
		return fmt.Sprintf("Make(%v)", a.Move)
	case VariationDelim:
		return fmt.Sprintf("Variation(%v)", a.Delim)
	case Halt:
		return fmt.Sprintf("Halt(%v)", a.Halt)
	default:
		return "Unknown"
	}
}
