package board

import (
	"fmt"

	"github.com/seekerror/stdlib/pkg/lang"
)

// PositionMetadata is everything about a position that isn't captured by
// piece placement: whose turn it is, castling rights, the en passant
// target file (if the last move was a double pawn push), the halfmove
// clock and the fullmove number. It is small enough to pass by value and
// packs losslessly into the 32-bit metadata word BEN uses (pkg/board/ben).
type PositionMetadata struct {
	SideToMove     Color
	CastlingRights Castling
	EnPassantFile  lang.Optional[File]
	HalfmoveClock  uint8
	FullmoveNumber uint16
}

// NewGameMetadata returns the metadata for the standard starting position.
func NewGameMetadata() PositionMetadata {
	return PositionMetadata{
		SideToMove:     White,
		CastlingRights: FullCastleRights,
		FullmoveNumber: 1,
	}
}

// Pack encodes the metadata into a single 32-bit word:
//
//	bit  0      side to move (0=white, 1=black)
//	bits 1-4    castling rights
//	bit  5      en passant file present
//	bits 6-8    en passant file
//	bits 9-15   halfmove clock (0-127)
//	bits 16-31  fullmove number (0-65535)
func (m PositionMetadata) Pack() uint32 {
	var w uint32
	if m.SideToMove == Black {
		w |= 1 << 0
	}
	w |= uint32(m.CastlingRights) << 1
	if f, ok := m.EnPassantFile.V(); ok {
		w |= 1 << 5
		w |= uint32(f) << 6
	}
	w |= uint32(m.HalfmoveClock) << 9
	w |= uint32(m.FullmoveNumber) << 16
	return w
}

// UnpackMetadata is the inverse of PositionMetadata.Pack.
func UnpackMetadata(w uint32) PositionMetadata {
	m := PositionMetadata{}
	if w&(1<<0) != 0 {
		m.SideToMove = Black
	} else {
		m.SideToMove = White
	}
	m.CastlingRights = Castling((w >> 1) & 0xf)
	if w&(1<<5) != 0 {
		m.EnPassantFile = lang.Some(File((w >> 6) & 0x7))
	}
	m.HalfmoveClock = uint8((w >> 9) & 0x7f)
	m.FullmoveNumber = uint16(w >> 16)
	return m
}

func (m PositionMetadata) String() string {
	ep := "-"
	if f, ok := m.EnPassantFile.V(); ok {
		ep = f.String()
	}
	return fmt.Sprintf("turn=%v castle=%v ep=%v halfmove=%v fullmove=%v",
		m.SideToMove, m.CastlingRights, ep, m.HalfmoveClock, m.FullmoveNumber)
}
