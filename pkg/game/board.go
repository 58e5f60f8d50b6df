package game

import (
	"encoding/json"

	"github.com/cvasile/chess-arena/internal/color"
)

// Board extents of the hosted double-width chess variant.
const (
	BoardWidth  = 16
	BoardHeight = 10
)

// Position is a square on the board. It travels over the wire as a
// two-element array [x, y].
type Position struct {
	X int
	Y int
}

// InBounds reports whether the position lies on the board.
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < BoardWidth && p.Y >= 0 && p.Y < BoardHeight
}

// MarshalJSON encodes the position as [x, y].
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON decodes a [x, y] array.
func (p *Position) UnmarshalJSON(data []byte) error {
	var coords [2]int
	if err := json.Unmarshal(data, &coords); err != nil {
		return err
	}
	p.X, p.Y = coords[0], coords[1]
	return nil
}

// Board is the piece-tracking snapshot each side sees. Pieces and
// locations are parallel slices; the snapshot exists for bounds checking
// and client rendering, not for legality.
type Board struct {
	WhitePieces    []string   `json:"white_pieces"`
	BlackPieces    []string   `json:"black_pieces"`
	WhiteLocations []Position `json:"white_locations"`
	BlackLocations []Position `json:"black_locations"`
}

// Each side fields fourteen major pieces across the doubled back ranks
// plus sixteen pawns.
var (
	startingWhitePieces = append([]string{
		"rook", "rook", "knight", "knight", "bishop", "bishop", "king", "queen",
		"bishop", "bishop", "knight", "knight", "rook", "rook",
	}, pawnRank()...)
	startingBlackPieces = append([]string{
		"rook", "rook", "knight", "knight", "bishop", "bishop", "queen", "king",
		"bishop", "bishop", "knight", "knight", "rook", "rook",
	}, pawnRank()...)
	startingWhiteLocations = []Position{
		{0, 0}, {1, 0}, {4, 1}, {5, 1}, {4, 0}, {5, 0}, {8, 0}, {7, 0},
		{10, 0}, {11, 0}, {10, 1}, {11, 1}, {14, 0}, {15, 0},
		{0, 1}, {0, 2}, {1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 1}, {3, 2},
		{4, 2}, {5, 2}, {6, 1}, {6, 2}, {7, 1}, {7, 2}, {8, 1}, {8, 2},
	}
	startingBlackLocations = []Position{
		{0, 9}, {1, 9}, {4, 8}, {5, 8}, {4, 9}, {5, 9}, {7, 9}, {8, 9},
		{10, 9}, {11, 9}, {10, 8}, {11, 8}, {14, 9}, {15, 9},
		{0, 8}, {0, 7}, {1, 8}, {1, 7}, {2, 8}, {2, 7}, {3, 8}, {3, 7},
		{4, 7}, {5, 7}, {6, 8}, {6, 7}, {7, 8}, {7, 7}, {8, 8}, {8, 7},
	}
)

func pawnRank() []string {
	pawns := make([]string, 16)
	for i := range pawns {
		pawns[i] = "pawn"
	}
	return pawns
}

// NewBoard returns the standard starting layout.
func NewBoard() *Board {
	b := &Board{
		WhitePieces:    make([]string, len(startingWhitePieces)),
		BlackPieces:    make([]string, len(startingBlackPieces)),
		WhiteLocations: make([]Position, len(startingWhiteLocations)),
		BlackLocations: make([]Position, len(startingBlackLocations)),
	}

	copy(b.WhitePieces, startingWhitePieces)
	copy(b.BlackPieces, startingBlackPieces)
	copy(b.WhiteLocations, startingWhiteLocations)
	copy(b.BlackLocations, startingBlackLocations)

	return b
}

// MovePiece relocates the side's piece standing on from to to. It reports
// whether a piece was found; an empty from square leaves the board
// untouched, which the shallow validator permits.
func (b *Board) MovePiece(side color.Color, from, to Position) bool {
	locations := b.WhiteLocations
	if side == color.Black {
		locations = b.BlackLocations
	}

	for i, loc := range locations {
		if loc == from {
			locations[i] = to
			return true
		}
	}

	return false
}

// clone returns a deep copy for snapshots handed outside the directory.
func (b *Board) clone() Board {
	out := Board{
		WhitePieces:    make([]string, len(b.WhitePieces)),
		BlackPieces:    make([]string, len(b.BlackPieces)),
		WhiteLocations: make([]Position, len(b.WhiteLocations)),
		BlackLocations: make([]Position, len(b.BlackLocations)),
	}
	copy(out.WhitePieces, b.WhitePieces)
	copy(out.BlackPieces, b.BlackPieces)
	copy(out.WhiteLocations, b.WhiteLocations)
	copy(out.BlackLocations, b.BlackLocations)
	return out
}
