package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Dashboard", 1, 100)
	assert.Contains(t, h, "Goalify")
	assert.Contains(t, h, "Dashboard")
	assert.Contains(t, h, "1 day")

	assert.Contains(t, RenderHeader("", 12, 100), "12 days")
}

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(MinWidth-1, MinHeight))
	assert.True(t, IsTooSmall(MinWidth, MinHeight-1))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 60)
	assert.Contains(t, f, "Esc")
	assert.Contains(t, f, "Back")
}
