// Package ben implements BEN (Board-Encoded Notation), a byte-packed
// equivalent of FEN: 32 bytes of nibble-packed piece placement (two squares
// per byte, in ascending square order) followed by a 4-byte metadata word.
// It round-trips losslessly with FEN and is meant for compact storage and
// wire transfer where text parsing overhead matters.
package ben

import (
	"encoding/binary"
	"fmt"

	"github.com/kestrelchess/hazel/pkg/board"
)

// Size is the fixed length of an encoded BEN record: 32 placement bytes
// plus a 4-byte little-endian metadata word.
const Size = 36

// BEN is a fixed-size byte-packed position descriptor.
type BEN [Size]byte

// Encode packs q's placement and metadata into a BEN record.
func Encode(q board.Query) (BEN, error) {
	md, ok := q.TryMetadata()
	if !ok {
		return BEN{}, fmt.Errorf("%w: query has no metadata to encode", board.ErrMalformedDescriptor)
	}

	var b BEN
	for sq := board.ZeroSquare; sq < board.NumSquares; sq += 2 {
		hi := byte(q.Get(sq))
		lo := byte(q.Get(sq + 1))
		b[sq/2] = (hi << 4) | lo
	}

	binary.LittleEndian.PutUint32(b[32:36], md.Pack())
	return b, nil
}

// Decode unpacks a BEN record into the Alteration sequence that establishes
// it from an empty board (Clear, a Place per occupied square, an Assert
// carrying the metadata, and a terminal End) — the same shape
// pkg/board/fen.ParseAlterations produces, so both descriptors feed
// Position.Setup identically.
func Decode(b BEN) ([]board.Alteration, error) {
	alts := []board.Alteration{board.ClearAlteration()}

	for sq := board.ZeroSquare; sq < board.NumSquares; sq += 2 {
		packed := b[sq/2]
		hi := board.Occupant(packed >> 4)
		lo := board.Occupant(packed & 0x0f)

		if !hi.IsEmpty() {
			alts = append(alts, board.PlaceAlteration(sq, hi))
		}
		if !lo.IsEmpty() {
			alts = append(alts, board.PlaceAlteration(sq+1, lo))
		}
	}

	md := board.UnpackMetadata(binary.LittleEndian.Uint32(b[32:36]))
	alts = append(alts, board.AssertAlteration(board.PositionMetadata{}, md), board.EndAlteration())
	return alts, nil
}

// DecodeInto decodes b and applies it to a fresh Position wired to the
// given Zobrist table and cache.
func DecodeInto(zobrist *board.ZobristTable, cache *board.PositionCache, b BEN) (*board.Position, error) {
	alts, err := Decode(b)
	if err != nil {
		return nil, err
	}
	pos := board.NewPosition(zobrist, cache)
	if err := pos.Setup(alts); err != nil {
		return nil, err
	}
	return pos, nil
}

func (b BEN) String() string {
	return fmt.Sprintf("%x", [Size]byte(b))
}
