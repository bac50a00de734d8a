package variation

import (
	"context"
	"fmt"

	"github.com/kestrelchess/hazel/pkg/board"
	"github.com/kestrelchess/hazel/pkg/board/fen"
)

// Log is an append-only, two-phase action journal: Record stages an action,
// Commit makes every staged action since the last commit visible to readers
// in one atomic step. This mirrors how board.Tape separates "written" from
// "read" but one level up, so a caller can build up a batch of actions (e.g.
// everything typed before the player presses return) and publish it as a
// unit, or discard it by never committing.
type Log struct {
	committed []Action
	staged    []Action
	halted    bool
}

// NewLog returns an empty, unhalted log.
func NewLog() *Log {
	return &Log{}
}

// Record stages an action. It is invisible to Committed/CurrentPosition
// until the next Commit.
func (l *Log) Record(a Action) error {
	if l.halted {
		return ErrHalted
	}
	l.staged = append(l.staged, a)
	return nil
}

// Commit publishes every staged action, in order, since the last commit.
func (l *Log) Commit() {
	if len(l.staged) == 0 {
		return
	}
	l.committed = append(l.committed, l.staged...)
	l.staged = nil
}

// CommitAll is Commit under another name, used when flushing an entire
// nested variation's log into its parent in one shot.
func (l *Log) CommitAll() {
	l.Commit()
}

// Committed returns every committed action, in order. The slice is owned by
// the Log; callers must not mutate it.
func (l *Log) Committed() []Action {
	return l.committed
}

// Halted reports whether the log has been halted by Variation.HaltRecord.
// A Halt action passed to Record directly does not halt the log.
func (l *Log) Halted() bool {
	return l.halted
}

// Variation is the game-facing wrapper around a Log: it provides the
// builder-style recording API (NewGame, Setup, Make, nested Variation
// blocks, Halt) and replay into a board.Position.
type Variation struct {
	log *Log
}

// New returns an empty Variation.
func New() *Variation {
	return &Variation{log: NewLog()}
}

func (v *Variation) record(a Action) *Variation {
	_ = v.log.Record(a)
	return v
}

// NewGameRecord stages a NewGame action.
func (v *Variation) NewGameRecord() *Variation {
	return v.record(NewGameAction())
}

// SetupRecord stages a Setup action carrying a FEN string.
func (v *Variation) SetupRecord(record string) *Variation {
	return v.record(SetupAction(record))
}

// MakeRecord stages a Make action.
func (v *Variation) MakeRecord(m board.Move) *Variation {
	return v.record(MakeAction(m))
}

// HaltRecord stages a Halt action and marks the log halted once committed.
func (v *Variation) HaltRecord(r Reason) *Variation {
	v.record(HaltAction(r))
	v.Commit()
	v.log.halted = true
	return v
}

// SubVariation records a self-contained nested variation: block runs
// against a fresh Variation, whose entire committed log is folded between
// a VariationDelim Start/End pair staged onto v. block's own sub-variation,
// if it calls SubVariation itself, nests the same way.
func (v *Variation) SubVariation(block func(*Variation)) *Variation {
	child := New()
	block(child)
	child.log.CommitAll()

	v.record(VariationAction(Start))
	for _, a := range child.log.Committed() {
		v.record(a)
	}
	v.record(VariationAction(End))
	return v
}

// Commit publishes staged actions.
func (v *Variation) Commit() *Variation {
	v.log.Commit()
	return v
}

// Actions returns the committed action log.
func (v *Variation) Actions() []Action {
	return v.log.Committed()
}

// CurrentPosition replays the committed mainline (skipping over the body of
// any nested variation) into a fresh board.Position wired to zobrist and
// cache, and returns it.
func (v *Variation) CurrentPosition(ctx context.Context, zobrist *board.ZobristTable, cache *board.PositionCache) (*board.Position, error) {
	var pos *board.Position

	actions := v.log.Committed()
	for i := 0; i < len(actions); i++ {
		a := actions[i]
		switch a.Kind {
		case NewGame:
			pos = board.NewPosition(zobrist, cache)
		case Setup:
			p, err := fen.Decode(zobrist, cache, a.FEN)
			if err != nil {
				return nil, fmt.Errorf("variation: setup action: %w", err)
			}
			pos = p
		case Make:
			if pos == nil {
				return nil, fmt.Errorf("variation: make action before any setup")
			}
			if err := pos.Make(ctx, a.Move); err != nil {
				return nil, fmt.Errorf("variation: make action %v: %w", a.Move, err)
			}
		case VariationDelim:
			if a.Delim == Start {
				end, ok := skipVariationBody(actions, i)
				if !ok {
					return nil, ErrUnbalancedVariation
				}
				i = end
			}
		case Halt:
			// No board effect. HaltRecord commits the Halt and then refuses
			// further actions, so it is the last mainline action.
		}
	}

	if pos == nil {
		return nil, ErrEmptyLog
	}
	return pos, nil
}

// skipVariationBody returns the index of the matching VariationDelim End for
// the Start at actions[start], accounting for nesting, and false if no match
// is found before the log ends.
func skipVariationBody(actions []Action, start int) (int, bool) {
	depth := 1
	i := start + 1
	for ; i < len(actions); i++ {
		if actions[i].Kind != VariationDelim {
			continue
		}
		if actions[i].Delim == Start {
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
