package board_test

import (
	"math/rand"
	"testing"

	"github.com/kestrelchess/hazel/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestKnightAndKingAttacks(t *testing.T) {
	assert.Equal(t, 2, board.KnightAttacks(board.A1).PopCount())
	assert.Equal(t, 8, board.KnightAttacks(board.D4).PopCount())
	assert.Equal(t, 3, board.KingAttacks(board.A1).PopCount())
	assert.Equal(t, 8, board.KingAttacks(board.D4).PopCount())
}

func TestPawnAttacks(t *testing.T) {
	assert.Equal(t, board.BitMask(board.D3)|board.BitMask(board.F3), board.PawnAttacks(board.White, board.E2))
	assert.Equal(t, board.BitMask(board.D5)|board.BitMask(board.F5), board.PawnAttacks(board.Black, board.E6))
	assert.Equal(t, 1, board.PawnAttacks(board.White, board.A2).PopCount())
}

// naiveSlide computes a slider's attack set by raytracing, independent of
// the PEXT table construction, to cross-check the PEXT result.
func naiveSlide(sq board.Square, occupied board.Bitboard, dirs [][2]int) board.Bitboard {
	var ret board.Bitboard
	f0, r0 := int(sq.File()), int(sq.Rank())
	for _, d := range dirs {
		f, r := f0, r0
		for {
			f += d[0]
			r += d[1]
			if f < 0 || f > 7 || r < 0 || r > 7 {
				break
			}
			s := board.NewSquare(board.File(f), board.Rank(r))
			ret = ret.Set(s)
			if occupied.IsSet(s) {
				break
			}
		}
	}
	return ret
}

func TestPextAttacksAgreeWithNaiveSliding(t *testing.T) {
	rookDirs := [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirs := [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	rnd := rand.New(rand.NewSource(42))

	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		for i := 0; i < 64; i++ {
			occ := board.Bitboard(rnd.Uint64())

			assert.Equal(t, naiveSlide(sq, occ, rookDirs), board.RookAttacks(sq, occ), "rook @ %v occ=%x", sq, uint64(occ))
			assert.Equal(t, naiveSlide(sq, occ, bishopDirs), board.BishopAttacks(sq, occ), "bishop @ %v occ=%x", sq, uint64(occ))
		}
	}
}

func TestQueenAttacksIsUnion(t *testing.T) {
	occ := board.BitMask(board.D1) | board.BitMask(board.A4) | board.BitMask(board.G4)
	want := board.RookAttacks(board.D4, occ) | board.BishopAttacks(board.D4, occ)
	assert.Equal(t, want, board.QueenAttacks(board.D4, occ))
}
