package board_test

import (
	"testing"

	"github.com/kestrelchess/hazel/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTape(t *testing.T) *board.Tape {
	t.Helper()
	tape := board.NewTape(16)
	require.NoError(t, tape.Write(board.PlaceAlteration(board.D2, board.NewOccupant(board.White, board.Pawn))))
	require.NoError(t, tape.Write(board.PlaceAlteration(board.D7, board.NewOccupant(board.Black, board.Pawn))))
	require.NoError(t, tape.Write(board.EndAlteration()))
	require.NoError(t, tape.Write(board.RemoveAlteration(board.D2, board.NewOccupant(board.White, board.Pawn))))
	require.NoError(t, tape.Write(board.PlaceAlteration(board.D4, board.NewOccupant(board.White, board.Pawn))))
	require.NoError(t, tape.Write(board.EndAlteration()))
	return tape
}

func TestFamiliarAdvanceAndRewindAreInverses(t *testing.T) {
	tape := buildTape(t)
	table := board.NewZobristTable(1)

	fam := board.NewFamiliar[*board.ZobristAccumulator](tape, board.NewZobristAccumulator(table))
	require.NoError(t, fam.AdvanceToEnd())
	afterAdvance := fam.State().Current

	require.NoError(t, fam.RewindToStart())
	assert.Equal(t, board.ZobristHash(0), fam.State().Current)

	require.NoError(t, fam.AdvanceToEnd())
	assert.Equal(t, afterAdvance, fam.State().Current)
}

func TestFamiliarRewindUntilPosition(t *testing.T) {
	tape := buildTape(t)
	table := board.NewZobristTable(1)

	fam := board.NewFamiliar[*board.ZobristAccumulator](tape, board.NewZobristAccumulator(table))
	require.NoError(t, fam.AdvanceToEnd())

	require.NoError(t, fam.RewindUntil(func(f *board.Familiar[*board.ZobristAccumulator]) bool {
		return f.Position() == 3
	}))
	assert.Equal(t, 3, fam.Position())
}

func TestFamiliarSeek(t *testing.T) {
	tape := buildTape(t)
	table := board.NewZobristTable(1)

	fam := board.NewFamiliar[*board.ZobristAccumulator](tape, board.NewZobristAccumulator(table))
	require.NoError(t, fam.Seek(3))
	assert.Equal(t, 3, fam.Position())

	require.NoError(t, fam.Seek(0))
	assert.Equal(t, 0, fam.Position())
}
