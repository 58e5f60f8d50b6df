package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cvasile/chess-arena/internal/auth"
)

func TestAPIKeyAuth(t *testing.T) {
	a := auth.NewAPIKeyAuth([]string{"alpha", "beta", ""})

	assert.True(t, a.Enabled())
	assert.True(t, a.IsValidKey("alpha"))
	assert.False(t, a.IsValidKey("gamma"))
	assert.False(t, a.IsValidKey(""))

	a.AddKey("gamma")
	assert.True(t, a.IsValidKey("gamma"))

	a.RemoveKey("alpha")
	assert.False(t, a.IsValidKey("alpha"))
}

func TestAPIKeyAuth_DisabledWhenUnconfigured(t *testing.T) {
	a := auth.NewAPIKeyAuth(nil)
	assert.False(t, a.Enabled())
}
