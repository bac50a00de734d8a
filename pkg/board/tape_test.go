package board_test

import (
	"testing"

	"github.com/kestrelchess/hazel/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTapeWriteAndRead(t *testing.T) {
	tape := board.NewTape(8)
	a := board.PlaceAlteration(board.D4, board.NewOccupant(board.White, board.Pawn))
	require.NoError(t, tape.Write(a))

	got, ok := tape.ReadAt(0)
	require.True(t, ok)
	assert.Equal(t, a, got)
	assert.Equal(t, 1, tape.WriteHead())
}

func TestTapeExhausted(t *testing.T) {
	tape := board.NewTape(1)
	require.NoError(t, tape.Write(board.PlaceAlteration(board.A1, board.EmptyOccupant)))
	assert.ErrorIs(t, tape.Write(board.PlaceAlteration(board.A2, board.EmptyOccupant)), board.ErrTapeExhausted)
}

func TestTapeStepForwardBackward(t *testing.T) {
	tape := board.NewTape(8)
	require.NoError(t, tape.Write(board.TurnAlteration(board.White)))
	require.NoError(t, tape.Write(board.TurnAlteration(board.Black)))

	a, err := tape.StepForward()
	require.NoError(t, err)
	assert.Equal(t, board.White, a.Turn)

	a, err = tape.StepForward()
	require.NoError(t, err)
	assert.Equal(t, board.Black, a.Turn)

	_, err = tape.StepForward()
	assert.ErrorIs(t, err, board.ErrTapeExhausted)

	a, err = tape.StepBackward()
	require.NoError(t, err)
	assert.Equal(t, board.Black, a.Turn)
}

func TestTapeCannotUnwindPastStart(t *testing.T) {
	tape := board.NewTape(4)
	_, err := tape.StepBackward()
	assert.ErrorIs(t, err, board.ErrCannotUnwindPastStart)
}

func TestTapeTruncate(t *testing.T) {
	tape := board.NewTape(8)
	require.NoError(t, tape.Write(board.TurnAlteration(board.White)))
	require.NoError(t, tape.Write(board.TurnAlteration(board.Black)))
	tape.Truncate(1)
	assert.Equal(t, 1, tape.WriteHead())
	_, ok := tape.ReadAt(1)
	assert.False(t, ok)
}
