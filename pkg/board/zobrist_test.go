package board_test

import (
	"context"
	"testing"

	"github.com/kestrelchess/hazel/pkg/board"
	"github.com/kestrelchess/hazel/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two different move orderings that reach the same placement and metadata
// must hash equal: transposition equivalence. After the four transposed
// moves the en passant file and halfmove clock still differ, so both lines
// end with the same pawn push (e3), which clears the en passant file and
// resets the halfmove clock in both.
func TestZobristTranspositionEquivalence(t *testing.T) {
	zobrist := board.NewZobristTable(29)
	ctx := context.Background()

	playA := []board.Move{
		board.NewMove(board.D2, board.D4, board.DoublePawnPush),
		board.NewMove(board.D7, board.D5, board.DoublePawnPush),
		board.NewMove(board.C1, board.F4, board.Quiet),
		board.NewMove(board.G8, board.F6, board.Quiet),
		board.NewMove(board.E2, board.E3, board.Quiet),
	}
	playB := []board.Move{
		board.NewMove(board.D2, board.D4, board.DoublePawnPush),
		board.NewMove(board.G8, board.F6, board.Quiet),
		board.NewMove(board.C1, board.F4, board.Quiet),
		board.NewMove(board.D7, board.D5, board.DoublePawnPush),
		board.NewMove(board.E2, board.E3, board.Quiet),
	}

	posA, err := fen.Decode(zobrist, board.NewPositionCache(false), fen.Initial)
	require.NoError(t, err)
	for _, m := range playA {
		require.NoError(t, posA.Make(ctx, m))
	}

	posB, err := fen.Decode(zobrist, board.NewPositionCache(false), fen.Initial)
	require.NoError(t, err)
	for _, m := range playB {
		require.NoError(t, posB.Make(ctx, m))
	}

	fenA, err := fen.Encode(posA)
	require.NoError(t, err)
	fenB, err := fen.Encode(posB)
	require.NoError(t, err)
	require.Equal(t, fenA, fenB, "both move orders should reach the identical position")

	assert.Equal(t, posA.Hash(), posB.Hash())
}

func TestZobristHashMatchesFromScratchComputation(t *testing.T) {
	zobrist := board.NewZobristTable(31)
	pos, err := fen.Decode(zobrist, board.NewPositionCache(false), fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, zobrist.Hash(pos), pos.Hash())
}
