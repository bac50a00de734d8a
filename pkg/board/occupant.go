package board

import "strings"

// Occupant is the content of a single square: either Empty or a (piece,
// color) pair. It packs into a nibble: bit 3 is the color, bits 0-2 are the
// piece, which is how the BEN descriptor (pkg/board/ben) lays out placement.
type Occupant uint8

// EmptyOccupant is the zero value, matching an empty square.
const EmptyOccupant Occupant = 0

const occupantColorBit = Occupant(1 << 3)

// NewOccupant builds an Occupant for the given color and piece.
func NewOccupant(c Color, p Piece) Occupant {
	if p == NoPiece {
		return EmptyOccupant
	}
	o := Occupant(p)
	if c == Black {
		o |= occupantColorBit
	}
	return o
}

// IsEmpty reports whether the occupant represents an empty square.
func (o Occupant) IsEmpty() bool {
	return o.Piece() == NoPiece
}

func (o Occupant) Piece() Piece {
	return Piece(o &^ occupantColorBit)
}

func (o Occupant) Color() Color {
	if o&occupantColorBit != 0 {
		return Black
	}
	return White
}

// Split is a convenience accessor returning (color, piece, ok); ok is false
// for an empty square.
func (o Occupant) Split() (Color, Piece, bool) {
	if o.IsEmpty() {
		return White, NoPiece, false
	}
	return o.Color(), o.Piece(), true
}

func (o Occupant) String() string {
	if o.IsEmpty() {
		return "-"
	}
	s := o.Piece().String()
	if o.Color() == White {
		return strings.ToUpper(s)
	}
	return s
}
