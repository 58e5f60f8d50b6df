package game

// MoveValidator decides whether a move is acceptable for the given
// session state. The default implementation only checks board bounds;
// a full rules engine can be injected behind the same contract without
// touching session-lifecycle code.
type MoveValidator interface {
	Validate(state State, from, to Position) error
}

// BoundsValidator accepts any move whose endpoints lie on the board. It
// deliberately ignores piece movement rules, captures, check and
// checkmate.
type BoundsValidator struct{}

// Validate implements MoveValidator.
func (BoundsValidator) Validate(_ State, from, to Position) error {
	if !from.InBounds() || !to.InBounds() {
		return ErrOutOfBounds
	}
	return nil
}
