package board

import (
	"fmt"

	"github.com/seekerror/stdlib/pkg/lang"
)

// MoveKind tags the effect a Move has on the board. The 16 variants fill
// exactly 4 bits: the six non-promotion kinds, the eight promotion kinds
// (4 pieces x quiet/capture), Null, and UciAmbiguous.
type MoveKind uint8

const (
	Quiet MoveKind = iota
	DoublePawnPush
	ShortCastleMove
	LongCastleMove
	CaptureMove
	EnPassantCapture
	NullMoveKind
	UciAmbiguous

	PromoteKnight
	PromoteBishop
	PromoteRook
	PromoteQueen
	PromoteCaptureKnight
	PromoteCaptureBishop
	PromoteCaptureRook
	PromoteCaptureQueen
)

func (k MoveKind) IsPromotion() bool {
	return k&0x8 != 0
}

func (k MoveKind) IsCapture() bool {
	switch k {
	case CaptureMove, EnPassantCapture, PromoteCaptureKnight, PromoteCaptureBishop, PromoteCaptureRook, PromoteCaptureQueen:
		return true
	default:
		return false
	}
}

// PromotionPiece returns the piece a promotion kind promotes to.
func (k MoveKind) PromotionPiece() (Piece, bool) {
	switch k {
	case PromoteKnight, PromoteCaptureKnight:
		return Knight, true
	case PromoteBishop, PromoteCaptureBishop:
		return Bishop, true
	case PromoteRook, PromoteCaptureRook:
		return Rook, true
	case PromoteQueen, PromoteCaptureQueen:
		return Queen, true
	default:
		return NoPiece, false
	}
}

// promoteKind returns the (quiet, capture) kind pair for a promotion piece.
func promoteKind(p Piece, capture bool) MoveKind {
	switch p {
	case Knight:
		if capture {
			return PromoteCaptureKnight
		}
		return PromoteKnight
	case Bishop:
		if capture {
			return PromoteCaptureBishop
		}
		return PromoteBishop
	case Rook:
		if capture {
			return PromoteCaptureRook
		}
		return PromoteRook
	default:
		if capture {
			return PromoteCaptureQueen
		}
		return PromoteQueen
	}
}

func (k MoveKind) String() string {
	switch k {
	case Quiet:
		return "quiet"
	case DoublePawnPush:
		return "double-pawn-push"
	case ShortCastleMove:
		return "short-castle"
	case LongCastleMove:
		return "long-castle"
	case CaptureMove:
		return "capture"
	case EnPassantCapture:
		return "en-passant-capture"
	case NullMoveKind:
		return "null"
	case UciAmbiguous:
		return "uci-ambiguous"
	case PromoteKnight, PromoteBishop, PromoteRook, PromoteQueen:
		p, _ := k.PromotionPiece()
		return "promote-" + p.String()
	case PromoteCaptureKnight, PromoteCaptureBishop, PromoteCaptureRook, PromoteCaptureQueen:
		p, _ := k.PromotionPiece()
		return "promote-capture-" + p.String()
	default:
		return "?"
	}
}

// Move is a 16-bit packed word: source (bits 15-10), target (bits 9-4), kind
// (bits 3-0). It is intentionally small enough to pass and store by value in
// bulk (movegen buffers, the tape, move lists) without indirection.
type Move uint16

// NullMove is the move that alters nothing but still advances the side to
// move; used to represent a skipped turn (e.g. for null-move-style probing
// by a caller, or as a sentinel value).
var NullMove = NewMove(ZeroSquare, ZeroSquare, NullMoveKind)

func NewMove(source, target Square, kind MoveKind) Move {
	return Move(uint16(source)<<10 | uint16(target)<<4 | uint16(kind))
}

func (m Move) Source() Square {
	return Square(m >> 10 & 0x3f)
}

func (m Move) Target() Square {
	return Square(m >> 4 & 0x3f)
}

func (m Move) Kind() MoveKind {
	return MoveKind(m & 0xf)
}

func (m Move) IsNull() bool {
	return m.Kind() == NullMoveKind
}

func (m Move) IsCapture() bool {
	return m.Kind().IsCapture()
}

func (m Move) IsPromotion() bool {
	return m.Kind().IsPromotion()
}

func (m Move) IsCastle() bool {
	return m.Kind() == ShortCastleMove || m.Kind() == LongCastleMove
}

// String renders the move as a UCI (LAN) string, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.Source().String() + m.Target().String()
	if p, ok := m.Kind().PromotionPiece(); ok {
		s += p.String()
	}
	return s
}

// UCIMove is the result of parsing a UCI move string: a (source, target,
// optional promotion) triple. UCI text alone cannot say whether a move is a
// capture, an en passant capture, a castle or a double pawn push — that
// requires looking at the board, which is what Disambiguate does. This is
// the one place the engine accepts the ambiguity the wire format forces on
// it, rather than threading a UciAmbiguous Move kind through the rest of
// the core.
type UCIMove struct {
	Source, Target Square
	Promotion      lang.Optional[Piece]
}

// ParseUCI parses a long algebraic notation move string such as "e2e4" or
// "a7a8q". It performs no board lookups, so it cannot reject illegal or
// even nonsensical moves; that's Disambiguate's job.
func ParseUCI(s string) (UCIMove, error) {
	if len(s) != 4 && len(s) != 5 {
		return UCIMove{}, fmt.Errorf("%w: %q", ErrMalformedMove, s)
	}

	source, err := ParseSquareStr(s[0:2])
	if err != nil {
		return UCIMove{}, fmt.Errorf("%w: %q: %v", ErrMalformedMove, s, err)
	}
	target, err := ParseSquareStr(s[2:4])
	if err != nil {
		return UCIMove{}, fmt.Errorf("%w: %q: %v", ErrMalformedMove, s, err)
	}

	u := UCIMove{Source: source, Target: target}
	if len(s) == 5 {
		p, ok := ParsePiece(rune(s[4]))
		if !ok || p == Pawn || p == King {
			return UCIMove{}, fmt.Errorf("%w: %q: invalid promotion piece", ErrMalformedMove, s)
		}
		u.Promotion = lang.Some(p)
	}
	return u, nil
}

// Disambiguate resolves a UCIMove into a fully-kinded Move by consulting q
// for the piece being moved, what (if anything) occupies the target square,
// and the en passant file, if any, in the current metadata.
func (u UCIMove) Disambiguate(q Query) (Move, error) {
	occ := q.Get(u.Source)
	color, piece, ok := occ.Split()
	if !ok {
		return 0, fmt.Errorf("%w: no piece on %v", ErrIllegalMove, u.Source)
	}

	targetOccupant := q.Get(u.Target)
	isCapture := !targetOccupant.IsEmpty()

	if p, ok := u.Promotion.V(); ok {
		return NewMove(u.Source, u.Target, promoteKind(p, isCapture)), nil
	}

	if piece == King {
		fileDiff := int(u.Target.File()) - int(u.Source.File())
		if fileDiff == 2 {
			return NewMove(u.Source, u.Target, ShortCastleMove), nil
		}
		if fileDiff == -2 {
			return NewMove(u.Source, u.Target, LongCastleMove), nil
		}
	}

	if piece == Pawn {
		diff := int(u.Target) - int(u.Source)
		if diff == color.PawnDirection()*2 {
			return NewMove(u.Source, u.Target, DoublePawnPush), nil
		}
		if u.Source.File() != u.Target.File() && !isCapture {
			if md, ok := q.TryMetadata(); ok {
				if f, ok := md.EnPassantFile.V(); ok && f == u.Target.File() {
					return NewMove(u.Source, u.Target, EnPassantCapture), nil
				}
			}
		}
		if u.Target.Rank() == color.PromotionRank() {
			// UCI text omitted the promotion letter; default to Queen rather
			// than reject the move, since most clients leave it implicit.
			return NewMove(u.Source, u.Target, promoteKind(Queen, isCapture)), nil
		}
	}

	if isCapture {
		return NewMove(u.Source, u.Target, CaptureMove), nil
	}
	return NewMove(u.Source, u.Target, Quiet), nil
}

// Compile expands a fully-kinded Move into the Alteration sequence that
// applies it: a Place/Remove pair for the moving piece, plus whatever extra
// bookkeeping the kind requires (captured piece removal, rook relocation
// for castling, captured pawn removal for en passant, piece substitution
// for promotion). It does not include the metadata transition or the ply's
// End marker; Position.Make appends those (an AssertState and an
// EndVariation) itself.
func (m Move) Compile(q Query) ([]Alteration, error) {
	if m.IsNull() {
		return nil, nil
	}

	source, target, kind := m.Source(), m.Target(), m.Kind()

	occ := q.Get(source)
	color, piece, ok := occ.Split()
	if !ok {
		return nil, fmt.Errorf("%w: no piece on %v", ErrIllegalMove, source)
	}

	var alts []Alteration
	alts = append(alts, RemoveAlteration(source, occ))

	switch kind {
	case EnPassantCapture:
		capturedSq := NewSquare(target.File(), source.Rank())
		capturedOcc := q.Get(capturedSq)
		alts = append(alts, RemoveAlteration(capturedSq, capturedOcc))
		alts = append(alts, PlaceAlteration(target, occ))

	case ShortCastleMove, LongCastleMove:
		alts = append(alts, PlaceAlteration(target, occ))
		rookFrom, rookTo := castleRookSquares(color, kind)
		rookOcc := q.Get(rookFrom)
		alts = append(alts, RemoveAlteration(rookFrom, rookOcc))
		alts = append(alts, PlaceAlteration(rookTo, rookOcc))

	default:
		if kind.IsCapture() {
			targetOcc := q.Get(target)
			alts = append(alts, RemoveAlteration(target, targetOcc))
		}
		if p, promotes := kind.PromotionPiece(); promotes {
			alts = append(alts, PlaceAlteration(target, NewOccupant(color, p)))
		} else {
			alts = append(alts, PlaceAlteration(target, occ))
		}
		_ = piece
	}

	return alts, nil
}

// castleRookSquares returns the rook's (from, to) squares for a castle of
// the given kind by the given color.
func castleRookSquares(c Color, kind MoveKind) (Square, Square) {
	home := c.HomeRank()
	if kind == ShortCastleMove {
		return NewSquare(FileH, home), NewSquare(FileF, home)
	}
	return NewSquare(FileA, home), NewSquare(FileD, home)
}
