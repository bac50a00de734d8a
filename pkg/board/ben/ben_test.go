package ben_test

import (
	"testing"

	"github.com/kestrelchess/hazel/pkg/board"
	"github.com/kestrelchess/hazel/pkg/board/ben"
	"github.com/kestrelchess/hazel/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
	}

	zobrist := board.NewZobristTable(13)
	for _, tt := range tests {
		pos, err := fen.Decode(zobrist, board.NewPositionCache(false), tt)
		require.NoError(t, err)

		encoded, err := ben.Encode(pos)
		require.NoError(t, err)

		restored, err := ben.DecodeInto(zobrist, board.NewPositionCache(false), encoded)
		require.NoError(t, err)

		out, err := fen.Encode(restored)
		require.NoError(t, err)
		assert.Equal(t, tt, out)
		assert.Equal(t, pos.Hash(), restored.Hash())
	}
}

func TestEncodeSize(t *testing.T) {
	zobrist := board.NewZobristTable(13)
	pos, err := fen.Decode(zobrist, board.NewPositionCache(false), fen.Initial)
	require.NoError(t, err)

	encoded, err := ben.Encode(pos)
	require.NoError(t, err)
	assert.Len(t, encoded, ben.Size)
}

func TestDecodeEmptyBoard(t *testing.T) {
	zobrist := board.NewZobristTable(13)
	pos, err := fen.Decode(zobrist, board.NewPositionCache(false), fen.Empty)
	require.NoError(t, err)

	encoded, err := ben.Encode(pos)
	require.NoError(t, err)

	alts, err := ben.Decode(encoded)
	require.NoError(t, err)
	// Clear + Assert + End, no Place alterations on an empty board.
	assert.Len(t, alts, 3)
}
