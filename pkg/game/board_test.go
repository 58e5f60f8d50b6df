package game_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvasile/chess-arena/internal/color"
	"github.com/cvasile/chess-arena/pkg/game"
)

func TestNewBoard_StartingLayout(t *testing.T) {
	b := game.NewBoard()

	// Fourteen major pieces plus sixteen pawns per side.
	require.Len(t, b.WhitePieces, 30)
	require.Len(t, b.BlackPieces, 30)
	require.Len(t, b.WhiteLocations, 30)
	require.Len(t, b.BlackLocations, 30)

	for _, loc := range append(b.WhiteLocations, b.BlackLocations...) {
		assert.True(t, loc.InBounds(), "starting square %v off board", loc)
	}

	// Kings and queens sit on the doubled back ranks.
	assert.Equal(t, "king", b.WhitePieces[6])
	assert.Equal(t, game.Position{X: 8, Y: 0}, b.WhiteLocations[6])
	assert.Equal(t, "queen", b.WhitePieces[7])
	assert.Equal(t, game.Position{X: 7, Y: 0}, b.WhiteLocations[7])

	assert.Equal(t, "queen", b.BlackPieces[6])
	assert.Equal(t, game.Position{X: 7, Y: 9}, b.BlackLocations[6])
	assert.Equal(t, "king", b.BlackPieces[7])
	assert.Equal(t, game.Position{X: 8, Y: 9}, b.BlackLocations[7])

	pawns := 0
	for _, kind := range b.WhitePieces {
		if kind == "pawn" {
			pawns++
		}
	}
	assert.Equal(t, 16, pawns)
}

func TestNewBoard_IndependentCopies(t *testing.T) {
	first := game.NewBoard()
	second := game.NewBoard()

	moved := first.MovePiece(color.White, game.Position{X: 0, Y: 0}, game.Position{X: 0, Y: 3})
	require.True(t, moved)

	assert.Equal(t, game.Position{X: 0, Y: 0}, second.WhiteLocations[0])
}

func TestBoard_MovePiece(t *testing.T) {
	b := game.NewBoard()

	moved := b.MovePiece(color.White, game.Position{X: 0, Y: 1}, game.Position{X: 0, Y: 3})
	require.True(t, moved)
	assert.Contains(t, b.WhiteLocations, game.Position{X: 0, Y: 3})
	assert.NotContains(t, b.WhiteLocations, game.Position{X: 0, Y: 1})

	// Black's pieces are untouched by a white move.
	assert.Contains(t, b.BlackLocations, game.Position{X: 0, Y: 8})

	// Moving from an empty square changes nothing.
	moved = b.MovePiece(color.Black, game.Position{X: 9, Y: 5}, game.Position{X: 9, Y: 6})
	assert.False(t, moved)
}

func TestPosition_Bounds(t *testing.T) {
	tests := []struct {
		pos  game.Position
		want bool
	}{
		{game.Position{X: 0, Y: 0}, true},
		{game.Position{X: 15, Y: 9}, true},
		{game.Position{X: 16, Y: 0}, false},
		{game.Position{X: 0, Y: 10}, false},
		{game.Position{X: -1, Y: 0}, false},
		{game.Position{X: 0, Y: 99}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.pos.InBounds(), "position %v", tt.pos)
	}
}

func TestPosition_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(game.Position{X: 3, Y: 7})
	require.NoError(t, err)
	assert.JSONEq(t, `[3,7]`, string(data))

	var p game.Position
	require.NoError(t, json.Unmarshal([]byte(`[12,4]`), &p))
	assert.Equal(t, game.Position{X: 12, Y: 4}, p)
}
