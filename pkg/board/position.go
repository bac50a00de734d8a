package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Position is a bitboard-backed board representation together with the
// side-channel bookkeeping (castling rights, en passant, move clocks) that
// pseudo-legal generation and FEN/BEN round-tripping need. Every mutation
// flows through AlterMut, and Make/Unmake record (and unwind) the
// Alterations they produce on a Tape, so the position is always
// reconstructible from its own history.
type Position struct {
	placement [NumSquares]Occupant
	byColor   [NumColors]Bitboard
	byPiece   [NumPieces]Bitboard
	metadata  PositionMetadata
	hash      ZobristHash

	zobrist *ZobristTable
	cache   *PositionCache
	tape    *Tape
}

// NewPosition returns an empty position wired to the given Zobrist table
// and position cache, with a tape of the default capacity.
func NewPosition(zobrist *ZobristTable, cache *PositionCache) *Position {
	return &Position{zobrist: zobrist, cache: cache, tape: NewTape(DefaultTapeCapacity)}
}

// Get implements Query.
func (p *Position) Get(sq Square) Occupant {
	return p.placement[sq]
}

// TryMetadata implements Query.
func (p *Position) TryMetadata() (PositionMetadata, bool) {
	return p.metadata, true
}

func (p *Position) Metadata() PositionMetadata {
	return p.metadata
}

func (p *Position) Hash() ZobristHash {
	return p.hash
}

func (p *Position) Tape() *Tape {
	return p.tape
}

// Occupied returns the union of every occupied square.
func (p *Position) Occupied() Bitboard {
	return p.byColor[White] | p.byColor[Black]
}

// ColorBitboard returns every square occupied by a piece of the given color.
func (p *Position) ColorBitboard(c Color) Bitboard {
	return p.byColor[c]
}

// PieceBitboard returns every square occupied by a piece of the given type,
// of either color.
func (p *Position) PieceBitboard(piece Piece) Bitboard {
	return p.byPiece[piece]
}

// KingSquare returns the square of the given color's king. Panics if the
// position has no king of that color, which should never happen for a
// position built from a well-formed descriptor.
func (p *Position) KingSquare(c Color) Square {
	kings := p.byPiece[King] & p.byColor[c]
	if kings == EmptyBitboard {
		panic(fmt.Sprintf("board: position has no %v king", c))
	}
	return kings.FirstSquare()
}

// AlterMut folds a single Alteration into the position's placement,
// bitboards, metadata and incremental hash. It implements Alter.
func (p *Position) AlterMut(a Alteration) {
	switch a.Kind {
	case Place:
		p.placement[a.Square] = a.Occupant
		if c, piece, ok := a.Occupant.Split(); ok {
			p.byColor[c] = p.byColor[c].Set(a.Square)
			p.byPiece[piece] = p.byPiece[piece].Set(a.Square)
		}
		p.hash = p.zobrist.Fold(p.hash, a)

	case Remove:
		p.placement[a.Square] = EmptyOccupant
		if c, piece, ok := a.Occupant.Split(); ok {
			p.byColor[c] = p.byColor[c].Unset(a.Square)
			p.byPiece[piece] = p.byPiece[piece].Unset(a.Square)
		}
		p.hash = p.zobrist.Fold(p.hash, a)

	case SetTurn:
		p.metadata.SideToMove = a.Turn
		p.hash = p.zobrist.Fold(p.hash, a)

	case AssertState:
		p.hash = p.zobrist.FoldMetadata(p.hash, p.metadata, a.Metadata)
		p.metadata = a.Metadata

	case ClearBoard:
		p.placement = [NumSquares]Occupant{}
		p.byColor = [NumColors]Bitboard{}
		p.byPiece = [NumPieces]Bitboard{}

	case EndVariation, Inform:
		// No placement/metadata effect; these are replay/annotation markers.
	}
}

// Setup writes alts to the tape and folds each into the position in order,
// establishing an initial position (e.g. from a FEN/BEN descriptor). It is
// the caller's responsibility to end the sequence with an EndAlteration if
// the position will subsequently be driven by Make/Unmake, which rely on
// End markers to delimit plies.
func (p *Position) Setup(alts []Alteration) error {
	if err := p.tape.WriteAll(alts); err != nil {
		return err
	}
	for _, a := range alts {
		p.AlterMut(a)
	}
	return nil
}

// nextMetadata computes the metadata the position will have after m is
// made, following standard chess bookkeeping rules for castling rights, en
// passant file, the halfmove clock and the fullmove number.
func (p *Position) nextMetadata(m Move) PositionMetadata {
	md := p.metadata
	mover := md.SideToMove

	if m.IsNull() {
		md.SideToMove = mover.Opponent()
		return md
	}

	source, target, kind := m.Source(), m.Target(), m.Kind()

	_, piece, _ := p.Get(source).Split()

	md.SideToMove = mover.Opponent()
	md.EnPassantFile = lang.Optional[File]{}

	if kind == DoublePawnPush {
		md.EnPassantFile = lang.Some(source.File())
	}

	if piece == Pawn || kind.IsCapture() {
		md.HalfmoveClock = 0
	} else {
		md.HalfmoveClock++
	}

	if mover == Black {
		md.FullmoveNumber++
	}

	if piece == King {
		md.CastlingRights = md.CastlingRights.Without(BothRights(mover))
	}
	md.CastlingRights = md.CastlingRights.Without(castleRightLostBySquareTouch(source))
	md.CastlingRights = md.CastlingRights.Without(castleRightLostBySquareTouch(target))

	return md
}

// castleRightLostBySquareTouch returns the castling right forfeited when a
// rook's home square is vacated or a piece lands on it (capturing the
// rook), or NoCastleRights if sq isn't a rook home square.
func castleRightLostBySquareTouch(sq Square) Castling {
	switch sq {
	case A1:
		return WhiteLongCastle
	case H1:
		return WhiteShortCastle
	case A8:
		return BlackLongCastle
	case H8:
		return BlackShortCastle
	default:
		return NoCastleRights
	}
}

// Make applies m: it compiles m into Alterations, appends the metadata
// transition and an EndVariation marker, and folds the whole sequence into
// the position. Before mutating, it computes the prospective hash and
// checks the position cache; on a hit the new placement and metadata are
// taken directly from the cached entry instead of being recomputed move by
// move, which is the point of keeping the cache at all.
func (p *Position) Make(ctx context.Context, m Move) error {
	alts, err := m.Compile(p)
	if err != nil {
		return err
	}

	newMetadata := p.nextMetadata(m)
	alts = append(alts, AssertAlteration(p.metadata, newMetadata), EndAlteration())

	prospective := p.hash
	for _, a := range alts {
		switch a.Kind {
		case Place, Remove, SetTurn:
			prospective = p.zobrist.Fold(prospective, a)
		case AssertState:
			prospective = p.zobrist.FoldMetadata(prospective, p.metadata, a.Metadata)
		}
	}

	if entry, ok, err := p.cache.Get(ctx, p.zobrist, prospective); err == nil && ok {
		if err := p.tape.WriteAll(alts); err != nil {
			return err
		}
		p.placement = entry.Placement
		p.metadata = entry.Metadata
		p.hash = prospective
		p.rebuildBitboards()
		return nil
	}

	if err := p.tape.WriteAll(alts); err != nil {
		return err
	}
	for _, a := range alts {
		p.AlterMut(a)
	}
	p.cache.Put(p.hash, CacheEntry{Placement: p.placement, Metadata: p.metadata})
	return nil
}

func (p *Position) rebuildBitboards() {
	p.byColor = [NumColors]Bitboard{}
	p.byPiece = [NumPieces]Bitboard{}
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if c, piece, ok := p.placement[sq].Split(); ok {
			p.byColor[c] = p.byColor[c].Set(sq)
			p.byPiece[piece] = p.byPiece[piece].Set(sq)
		}
	}
}

// Unmake reverts the last Make, walking the tape backward from the write
// head, folding the inverse of every alteration back into the position
// until it crosses the EndVariation marker of the previous ply, then
// truncates the tape to reclaim the space. Returns ErrCannotUnwindPastStart
// if the tape is empty.
func (p *Position) Unmake() error {
	if p.tape.WriteHead() == 0 {
		return ErrCannotUnwindPastStart
	}

	idx := p.tape.WriteHead() - 1
	if a, ok := p.tape.ReadAt(idx); ok && a.Kind == EndVariation {
		idx--
	}

	for idx >= 0 {
		a, ok := p.tape.ReadAt(idx)
		if !ok || a.Kind == EndVariation {
			break
		}
		p.AlterMut(a.Inverse())
		idx--
	}

	p.tape.Truncate(idx + 1)
	return nil
}

// AttackersTo returns every square occupied by a piece of color by that
// attacks sq, under the position's current occupancy. Pawns are handled by
// the usual symmetry trick: a pawn of by attacks sq iff sq would attack
// that pawn's square if it carried the opposite color's capture pattern.
func (p *Position) AttackersTo(sq Square, by Color) Bitboard {
	occ := p.Occupied()
	var att Bitboard
	att |= KnightAttacks(sq) & p.byPiece[Knight] & p.byColor[by]
	att |= KingAttacks(sq) & p.byPiece[King] & p.byColor[by]
	att |= RookAttacks(sq, occ) & (p.byPiece[Rook] | p.byPiece[Queen]) & p.byColor[by]
	att |= BishopAttacks(sq, occ) & (p.byPiece[Bishop] | p.byPiece[Queen]) & p.byColor[by]
	att |= PawnAttacks(by.Opponent(), sq) & p.byPiece[Pawn] & p.byColor[by]
	return att
}

// IsSquareAttackedBy reports whether sq is attacked by any piece of color by.
func (p *Position) IsSquareAttackedBy(sq Square, by Color) bool {
	return p.AttackersTo(sq, by) != EmptyBitboard
}

// InCheck reports whether c's king is currently attacked.
func (p *Position) InCheck(c Color) bool {
	return p.IsSquareAttackedBy(p.KingSquare(c), c.Opponent())
}

// CheckingSquares returns the squares of every enemy piece currently
// checking c's king — empty if c is not in check, one square for a single
// check, two for a discovered-plus-direct double check.
func (p *Position) CheckingSquares(c Color) Bitboard {
	return p.AttackersTo(p.KingSquare(c), c.Opponent())
}

// PseudoLegalMoves generates every move for the side to move that is legal
// by the rules governing how each piece moves, without checking whether it
// leaves that side's own king in check.
func (p *Position) PseudoLegalMoves() []Move {
	us := p.metadata.SideToMove
	them := us.Opponent()
	friendly := p.byColor[us]
	enemy := p.byColor[them]
	occ := friendly | enemy

	var moves []Move
	moves = p.genPawnMoves(moves, us, enemy, occ)
	moves = p.genLeaperMoves(moves, Knight, KnightAttacks, us, friendly)
	moves = p.genSliderMoves(moves, Bishop, us, friendly, occ)
	moves = p.genSliderMoves(moves, Rook, us, friendly, occ)
	moves = p.genSliderMoves(moves, Queen, us, friendly, occ)
	moves = p.genLeaperMoves(moves, King, KingAttacks, us, friendly)
	moves = p.genCastlingAndEnPassantMoves(moves, us, occ)
	return moves
}

func (p *Position) genLeaperMoves(moves []Move, piece Piece, attacksFrom func(Square) Bitboard, us Color, friendly Bitboard) []Move {
	pieces := p.byPiece[piece] & friendly
	for pieces != EmptyBitboard {
		var sq Square
		sq, pieces = pieces.PopFirst()
		targets := attacksFrom(sq) &^ friendly
		moves = appendTargets(moves, sq, targets, p.byColor[us.Opponent()])
	}
	return moves
}

func (p *Position) genSliderMoves(moves []Move, piece Piece, us Color, friendly, occ Bitboard) []Move {
	pieces := p.byPiece[piece] & friendly
	for pieces != EmptyBitboard {
		var sq Square
		sq, pieces = pieces.PopFirst()
		targets := AttacksFrom(piece, sq, occ) &^ friendly
		moves = appendTargets(moves, sq, targets, occ&^friendly)
	}
	return moves
}

func appendTargets(moves []Move, source Square, targets, enemy Bitboard) []Move {
	for targets != EmptyBitboard {
		var target Square
		target, targets = targets.PopFirst()
		if enemy.IsSet(target) {
			moves = append(moves, NewMove(source, target, CaptureMove))
		} else {
			moves = append(moves, NewMove(source, target, Quiet))
		}
	}
	return moves
}

func (p *Position) genPawnMoves(moves []Move, us Color, enemy, occ Bitboard) []Move {
	pawns := p.byPiece[Pawn] & p.byColor[us]
	dir := North
	if us == Black {
		dir = South
	}
	promoRank := BitRank(us.PromotionRank())

	for bb := pawns; bb != EmptyBitboard; {
		var sq Square
		sq, bb = bb.PopFirst()

		single := BitMask(sq).Shift(dir)
		if single&^occ != EmptyBitboard {
			target := single.FirstSquare()
			moves = appendPawnMove(moves, sq, target, false, promoRank)

			if sq.Rank() == us.PawnHomeRank() {
				double := single.Shift(dir)
				if double&^occ != EmptyBitboard {
					moves = append(moves, NewMove(sq, double.FirstSquare(), DoublePawnPush))
				}
			}
		}

		for _, target := range PawnAttacks(us, sq).Squares() {
			if enemy.IsSet(target) {
				moves = appendPawnMove(moves, sq, target, true, promoRank)
			}
		}
	}

	return moves
}

func appendPawnMove(moves []Move, source, target Square, capture bool, promoRank Bitboard) []Move {
	if promoRank.IsSet(target) {
		for _, pp := range PromotionPieces {
			moves = append(moves, NewMove(source, target, promoteKind(pp, capture)))
		}
		return moves
	}
	if capture {
		return append(moves, NewMove(source, target, CaptureMove))
	}
	return append(moves, NewMove(source, target, Quiet))
}

func (p *Position) genCastlingAndEnPassantMoves(moves []Move, us Color, occ Bitboard) []Move {
	them := us.Opponent()
	home := us.HomeRank()

	if p.metadata.CastlingRights.IsAllowed(ShortRight(us)) {
		f, g := NewSquare(FileF, home), NewSquare(FileG, home)
		if occ&(BitMask(f)|BitMask(g)) == EmptyBitboard &&
			!p.IsSquareAttackedBy(NewSquare(FileE, home), them) &&
			!p.IsSquareAttackedBy(f, them) &&
			!p.IsSquareAttackedBy(g, them) {
			moves = append(moves, NewMove(NewSquare(FileE, home), g, ShortCastleMove))
		}
	}
	if p.metadata.CastlingRights.IsAllowed(LongRight(us)) {
		b, c, d := NewSquare(FileB, home), NewSquare(FileC, home), NewSquare(FileD, home)
		if occ&(BitMask(b)|BitMask(c)|BitMask(d)) == EmptyBitboard &&
			!p.IsSquareAttackedBy(NewSquare(FileE, home), them) &&
			!p.IsSquareAttackedBy(d, them) &&
			!p.IsSquareAttackedBy(c, them) {
			moves = append(moves, NewMove(NewSquare(FileE, home), c, LongCastleMove))
		}
	}

	// En passant, deferred here since it needs the EP file from metadata
	// rather than board geometry alone.
	if f, ok := p.metadata.EnPassantFile.V(); ok {
		epRank := Rank6
		if us == Black {
			epRank = Rank3
		}
		target := NewSquare(f, epRank)
		attackers := PawnAttacks(them, target) & p.byPiece[Pawn] & p.byColor[us]
		for attackers != EmptyBitboard {
			var source Square
			source, attackers = attackers.PopFirst()
			moves = append(moves, NewMove(source, target, EnPassantCapture))
		}
	}

	return moves
}

// LegalMoves filters PseudoLegalMoves down to those that don't leave the
// mover's own king in check, using make/unmake for correctness rather than
// a specialized pin/check analysis.
func (p *Position) LegalMoves(ctx context.Context) []Move {
	us := p.metadata.SideToMove
	pseudo := p.PseudoLegalMoves()

	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if contextx.IsCancelled(ctx) {
			break
		}
		if err := p.Make(ctx, m); err != nil {
			continue
		}
		if !p.InCheck(us) {
			legal = append(legal, m)
		}
		_ = p.Unmake()
	}
	return legal
}

func (p *Position) String() string {
	var sb strings.Builder
	for r := int(Rank8); r >= 0; r-- {
		for f := ZeroFile; f < NumFiles; f++ {
			sb.WriteString(p.placement[NewSquare(f, Rank(r))].String())
		}
		if r != 0 {
			sb.WriteRune('/')
		}
	}
	return fmt.Sprintf("%v %v", sb.String(), p.metadata)
}
