package variation

import (
	"context"
	"fmt"

	"github.com/kestrelchess/hazel/pkg/board"
	"github.com/kestrelchess/hazel/pkg/board/fen"
)

// Familiar is a stepwise cursor over a Variation's committed action log,
// maintaining a live board.Position that tracks the cursor position. It is
// the variation-log counterpart to board.Familiar: where board.Familiar
// folds Alterations one at a time into any Alter-capable state, Familiar
// here folds whole Actions, using board.Position.Make/Unmake to step
// through Make actions so the underlying tape, hash and cache all stay
// consistent with the cursor.
//
// Going forward, a nested variation's body is skipped as a unit: the
// mainline's own position is unaffected by a variation recorded against it.
// Going backward, crossing into a variation is a real cursor move, not a
// skip: a variation is recorded as an alternative to the mainline move
// immediately before it (the same convention PGN uses for a variation
// printed right after a move), so entering it backward takes that move
// back and replays the variation's own actions on top.
type Familiar struct {
	zobrist *board.ZobristTable
	cache   *board.PositionCache

	actions []Action
	pos     int // index of the next action StepForward would apply

	board *board.Position
}

// NewFamiliar returns a Familiar positioned before the first action of v.
func NewFamiliar(v *Variation, zobrist *board.ZobristTable, cache *board.PositionCache) *Familiar {
	return &Familiar{
		zobrist: zobrist,
		cache:   cache,
		actions: v.Actions(),
	}
}

// Position reports the index of the next action to apply.
func (f *Familiar) Position() int {
	return f.pos
}

// Board returns the live board.Position, or nil if no Setup/NewGame has
// been stepped over yet.
func (f *Familiar) Board() *board.Position {
	return f.board
}

// AtEnd reports whether every action has been applied.
func (f *Familiar) AtEnd() bool {
	return f.pos >= len(f.actions)
}

// StepForward applies the next action to the live board and advances the
// cursor. A nested variation's body is skipped as a unit.
func (f *Familiar) StepForward(ctx context.Context) error {
	if f.AtEnd() {
		return fmt.Errorf("variation: %w", board.ErrTapeExhausted)
	}

	a := f.actions[f.pos]
	switch a.Kind {
	case NewGame:
		f.board = board.NewPosition(f.zobrist, f.cache)
	case Setup:
		p, err := fen.Decode(f.zobrist, f.cache, a.FEN)
		if err != nil {
			return fmt.Errorf("variation: setup action: %w", err)
		}
		f.board = p
	case Make:
		if f.board == nil {
			return fmt.Errorf("variation: make action before any setup")
		}
		if err := f.board.Make(ctx, a.Move); err != nil {
			return fmt.Errorf("variation: make action %v: %w", a.Move, err)
		}
	case VariationDelim:
		if a.Delim == Start {
			end, ok := skipVariationBody(f.actions, f.pos)
			if !ok {
				return ErrUnbalancedVariation
			}
			f.pos = end + 1
			return nil
		}
	case Halt:
		// no board effect
	}

	f.pos++
	return nil
}

// StepBackward undoes the action at pos-1 and moves the cursor back onto
// it. Make actions undo in place via board.Position.Unmake. Crossing a
// variation's End enters it: the mainline move the variation replaces is
// taken back and the variation's own actions are replayed on top, so the
// resulting position is the one the variation's last move produced.
// Crossing back across the matching Start exits the variation by restoring
// the move it replaced. Stepping back across a Setup or NewGame requires
// re-running the log from the start, since those actions don't carry an
// inverse.
func (f *Familiar) StepBackward(ctx context.Context) error {
	if f.pos == 0 {
		return board.ErrCannotUnwindPastStart
	}

	prev := f.actions[f.pos-1]
	switch prev.Kind {
	case Make:
		if err := f.board.Unmake(); err != nil {
			return err
		}

	case VariationDelim:
		if prev.Delim == End {
			startIdx, ok := matchingVariationStart(f.actions, f.pos-1)
			if !ok {
				return ErrUnbalancedVariation
			}
			if _, ok := replacedMove(f.actions, startIdx); ok {
				if err := f.board.Unmake(); err != nil {
					return err
				}
			}
			if err := f.replay(ctx, startIdx+1, f.pos-1); err != nil {
				return err
			}
		} else {
			if mv, ok := replacedMove(f.actions, f.pos-1); ok {
				if err := f.board.Make(ctx, mv); err != nil {
					return err
				}
			}
		}

	case NewGame, Setup:
		return fmt.Errorf("variation: cannot step backward across a %v action; reset and replay from start", prev.Kind)
	}

	f.pos--
	return nil
}

// replay applies actions[start:end] forward onto the live board, the same
// way StepForward would, skipping any nested variation bodies along the
// way. It is used to re-enter a variation's own actions when StepBackward
// crosses into it from the mainline side of its End marker.
func (f *Familiar) replay(ctx context.Context, start, end int) error {
	for i := start; i < end; i++ {
		a := f.actions[i]
		switch a.Kind {
		case Make:
			if err := f.board.Make(ctx, a.Move); err != nil {
				return fmt.Errorf("variation: make action %v: %w", a.Move, err)
			}
		case VariationDelim:
			if a.Delim == Start {
				bodyEnd, ok := skipVariationBody(f.actions, i)
				if !ok {
					return ErrUnbalancedVariation
				}
				i = bodyEnd
			}
		}
	}
	return nil
}

// matchingVariationStart returns the index of the VariationDelim Start that
// opens the body closed by the End at actions[end], accounting for nesting,
// scanning backward. It is skipVariationBody's mirror image.
func matchingVariationStart(actions []Action, end int) (int, bool) {
	depth := 1
	for i := end - 1; i >= 0; i-- {
		if actions[i].Kind != VariationDelim {
			continue
		}
		if actions[i].Delim == End {
			depth++
		} else {
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// replacedMove returns the Make action immediately before the
// VariationDelim Start at startIdx, if any: the mainline move the
// variation is recorded as an alternative to. A variation can also open
// with no preceding move (right after a Setup or NewGame, or nested
// directly after another variation's Start), in which case it forks from
// whatever position is already live and there is nothing to take back.
func replacedMove(actions []Action, startIdx int) (board.Move, bool) {
	if startIdx == 0 || actions[startIdx-1].Kind != Make {
		return board.Move(0), false
	}
	return actions[startIdx-1].Move, true
}

// FEN renders the current board state as FEN. It returns board.ErrMalformedDescriptor
// wrapped if no position has been established yet.
func (f *Familiar) FEN() (string, error) {
	if f.board == nil {
		return "", fmt.Errorf("variation: %w: no position established", board.ErrMalformedDescriptor)
	}
	return fen.Encode(f.board)
}
