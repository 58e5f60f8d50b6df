// Package color provides the two-valued turn indicator for a game session
package color

// Color represents a side in a session. White always moves first.
type Color string

// Possible sides in a session
const (
	White Color = "white"
	Black Color = "black"
)

// Opp returns the opposite color for the given color.
func (c Color) Opp() Color {
	if c == White {
		return Black
	}

	return White
}
