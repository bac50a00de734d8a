package board_test

import (
	"testing"

	"github.com/kestrelchess/hazel/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuery struct {
	occ map[board.Square]board.Occupant
	md  board.PositionMetadata
	has bool
}

func (f fakeQuery) Get(sq board.Square) board.Occupant {
	return f.occ[sq]
}

func (f fakeQuery) TryMetadata() (board.PositionMetadata, bool) {
	return f.md, f.has
}

func TestMovePackUnpack(t *testing.T) {
	m := board.NewMove(board.E2, board.E4, board.DoublePawnPush)
	assert.Equal(t, board.E2, m.Source())
	assert.Equal(t, board.E4, m.Target())
	assert.Equal(t, board.DoublePawnPush, m.Kind())
	assert.Equal(t, "e2e4", m.String())
}

func TestMoveStringPromotion(t *testing.T) {
	m := board.NewMove(board.A7, board.A8, board.PromoteQueen)
	assert.Equal(t, "a7a8q", m.String())
}

func TestParseUCI(t *testing.T) {
	u, err := board.ParseUCI("e7e8q")
	require.NoError(t, err)
	assert.Equal(t, board.E7, u.Source)
	assert.Equal(t, board.E8, u.Target)
	p, ok := u.Promotion.V()
	require.True(t, ok)
	assert.Equal(t, board.Queen, p)

	_, err = board.ParseUCI("xyz")
	assert.ErrorIs(t, err, board.ErrMalformedMove)
}

func TestDisambiguateQuietAndDoublePawnPush(t *testing.T) {
	q := fakeQuery{occ: map[board.Square]board.Occupant{
		board.E2: board.NewOccupant(board.White, board.Pawn),
		board.D7: board.NewOccupant(board.Black, board.Pawn),
	}}

	u, err := board.ParseUCI("e2e3")
	require.NoError(t, err)
	m, err := u.Disambiguate(q)
	require.NoError(t, err)
	assert.Equal(t, board.Quiet, m.Kind())

	u2, err := board.ParseUCI("e2e4")
	require.NoError(t, err)
	m2, err := u2.Disambiguate(q)
	require.NoError(t, err)
	assert.Equal(t, board.DoublePawnPush, m2.Kind())
}

func TestDisambiguateCastle(t *testing.T) {
	q := fakeQuery{occ: map[board.Square]board.Occupant{
		board.E1: board.NewOccupant(board.White, board.King),
		board.H1: board.NewOccupant(board.White, board.Rook),
	}}
	u, err := board.ParseUCI("e1g1")
	require.NoError(t, err)
	m, err := u.Disambiguate(q)
	require.NoError(t, err)
	assert.Equal(t, board.ShortCastleMove, m.Kind())
}

func TestDisambiguateEnPassant(t *testing.T) {
	md := board.PositionMetadata{EnPassantFile: lang.Some(board.FileD)}
	q := fakeQuery{
		occ: map[board.Square]board.Occupant{
			board.E5: board.NewOccupant(board.White, board.Pawn),
			board.D5: board.NewOccupant(board.Black, board.Pawn),
		},
		md:  md,
		has: true,
	}
	u, err := board.ParseUCI("e5d6")
	require.NoError(t, err)
	m, err := u.Disambiguate(q)
	require.NoError(t, err)
	assert.Equal(t, board.EnPassantCapture, m.Kind())
}

func TestDisambiguateDefaultsMissingPromotionToQueen(t *testing.T) {
	q := fakeQuery{occ: map[board.Square]board.Occupant{
		board.E7: board.NewOccupant(board.White, board.Pawn),
	}}
	u, err := board.ParseUCI("e7e8")
	require.NoError(t, err)
	_, ok := u.Promotion.V()
	require.False(t, ok, "no promotion letter was given")

	m, err := u.Disambiguate(q)
	require.NoError(t, err)
	assert.Equal(t, board.PromoteQueen, m.Kind())
}

func TestCompileCastleMovesRook(t *testing.T) {
	q := fakeQuery{occ: map[board.Square]board.Occupant{
		board.E1: board.NewOccupant(board.White, board.King),
		board.H1: board.NewOccupant(board.White, board.Rook),
	}}
	m := board.NewMove(board.E1, board.G1, board.ShortCastleMove)
	alts, err := m.Compile(q)
	require.NoError(t, err)
	require.Len(t, alts, 4)
}
