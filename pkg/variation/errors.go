package variation

import "errors"

var (
	// ErrHalted is returned by Log.Record once the log has been halted.
	// Variation's builder methods drop it, so actions recorded through them
	// after a halt are discarded.
	ErrHalted = errors.New("variation: log is halted")

	// ErrUnbalancedVariation is returned during replay when a VariationDelim
	// Start has no matching End, or an End has no matching Start.
	ErrUnbalancedVariation = errors.New("variation: unbalanced variation delimiters")

	// ErrEmptyLog is returned by operations that need at least one committed action.
	ErrEmptyLog = errors.New("variation: log has no committed actions")
)
