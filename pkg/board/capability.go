package board

// Query is the core's read-only capability contract: any board-like
// representation that can answer "what's on this square" and "what is the
// current metadata" can stand in for a Position wherever movegen or move
// compilation needs to look at board context (e.g. SAN/UCI disambiguation).
type Query interface {
	// Get returns the occupant of the given square.
	Get(sq Square) Occupant
	// TryMetadata returns the current position metadata, if the
	// implementation tracks one. A bare piece-placement board may not.
	TryMetadata() (PositionMetadata, bool)
}

// Alter is the core's write capability contract: an implementor folds a
// single Alteration into itself. Composition law: applying a sequence and
// then the reversed, inverted sequence must return the original state.
type Alter interface {
	// AlterMut folds a into the receiver in place.
	AlterMut(a Alteration)
}
