// Package fen reads and writes chess positions in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/seekerror/stdlib/pkg/lang"

	"github.com/kestrelchess/hazel/pkg/board"
)

// Initial is the FEN for the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Empty is the FEN for a board with no pieces, used as the "nothing set up
// yet" sentinel (e.g. in tests).
const Empty = "8/8/8/8/8/8/8/8 w - - 0 1"

// ParseAlterations decodes a FEN string into the Alteration sequence that
// establishes it from an empty board: a Clear, a Place per occupied square,
// an Assert carrying the full metadata, and a terminal End. This is the
// descriptor-to-Alteration bridge that Decode here, and through it a
// Variation's Setup action, goes through; pkg/board/ben's Decode produces
// the same shape from a BEN record.
func ParseAlterations(record string) ([]board.Alteration, error) {
	parts := strings.Split(strings.TrimSpace(record), " ")
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: expected 6 fields, got %v: %q", board.ErrMalformedDescriptor, len(parts), record)
	}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: expected 8 ranks, got %v: %q", board.ErrMalformedDescriptor, len(ranks), record)
	}

	alts := []board.Alteration{board.ClearAlteration()}

	for i, row := range ranks {
		r := board.Rank(7 - i)
		f := board.ZeroFile
		for _, ch := range row {
			switch {
			case unicode.IsDigit(ch):
				f += board.File(ch - '0')
			case unicode.IsLetter(ch):
				piece, ok := board.ParsePiece(ch)
				if !ok {
					return nil, fmt.Errorf("%w: invalid piece %q: %q", board.ErrMalformedDescriptor, ch, record)
				}
				color := board.Black
				if unicode.IsUpper(ch) {
					color = board.White
				}
				if !f.IsValid() {
					return nil, fmt.Errorf("%w: rank overflow: %q", board.ErrMalformedDescriptor, record)
				}
				alts = append(alts, board.PlaceAlteration(board.NewSquare(f, r), board.NewOccupant(color, piece)))
				f++
			default:
				return nil, fmt.Errorf("%w: invalid rank character %q: %q", board.ErrMalformedDescriptor, ch, record)
			}
		}
		if f != board.NumFiles {
			return nil, fmt.Errorf("%w: rank %v has %v files, want 8: %q", board.ErrMalformedDescriptor, r, f, record)
		}
	}

	turn, ok := parseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("%w: invalid active color: %q", board.ErrMalformedDescriptor, record)
	}

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("%w: invalid castling availability: %q", board.ErrMalformedDescriptor, record)
	}

	var ep lang.Optional[board.File]
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid en passant square: %q", board.ErrMalformedDescriptor, record)
		}
		ep = lang.Some(sq.File())
	}

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("%w: invalid halfmove clock: %q", board.ErrMalformedDescriptor, record)
	}

	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 0 {
		return nil, fmt.Errorf("%w: invalid fullmove number: %q", board.ErrMalformedDescriptor, record)
	}

	md := board.PositionMetadata{
		SideToMove:     turn,
		CastlingRights: castling,
		EnPassantFile:  ep,
		HalfmoveClock:  uint8(halfmove),
		FullmoveNumber: uint16(fullmove),
	}
	alts = append(alts, board.AssertAlteration(board.PositionMetadata{}, md), board.EndAlteration())
	return alts, nil
}

// Decode parses record and builds a fresh Position from it, wired to the
// given Zobrist table and position cache.
func Decode(zobrist *board.ZobristTable, cache *board.PositionCache, record string) (*board.Position, error) {
	alts, err := ParseAlterations(record)
	if err != nil {
		return nil, err
	}
	pos := board.NewPosition(zobrist, cache)
	if err := pos.Setup(alts); err != nil {
		return nil, err
	}
	return pos, nil
}

// Encode renders q (typically a *board.Position) as a FEN string. q must
// report a metadata; callers that only have placement with no metadata
// should supply one (e.g. board.NewGameMetadata()) before encoding.
func Encode(q board.Query) (string, error) {
	md, ok := q.TryMetadata()
	if !ok {
		return "", fmt.Errorf("%w: query has no metadata to encode", board.ErrMalformedDescriptor)
	}

	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			occ := q.Get(board.NewSquare(f, board.Rank(r)))
			if occ.IsEmpty() {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(printPiece(occ))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r > 0 {
			sb.WriteRune('/')
		}
	}

	ep := "-"
	if f, ok := md.EnPassantFile.V(); ok {
		epRank := board.Rank6
		if md.SideToMove == board.Black {
			epRank = board.Rank3
		}
		ep = board.NewSquare(f, epRank).String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), md.SideToMove, md.CastlingRights, ep, md.HalfmoveClock, md.FullmoveNumber), nil
}

func parseColor(s string) (board.Color, bool) {
	switch s {
	case "w":
		return board.White, true
	case "b":
		return board.Black, true
	default:
		return 0, false
	}
}

func parseCastling(s string) (board.Castling, bool) {
	if s == "-" {
		return board.NoCastleRights, true
	}
	var ret board.Castling
	for _, r := range s {
		switch r {
		case 'K':
			ret |= board.WhiteShortCastle
		case 'Q':
			ret |= board.WhiteLongCastle
		case 'k':
			ret |= board.BlackShortCastle
		case 'q':
			ret |= board.BlackLongCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func printPiece(o board.Occupant) string {
	return o.String()
}
