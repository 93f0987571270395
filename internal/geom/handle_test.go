package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHandles_FiltersUnknown(t *testing.T) {
	got := ValidateHandles([]Handle{"tl", "xx", "br"})
	require.Len(t, got, 3)
	assert.Equal(t, HandleTL, got[0])
	assert.Equal(t, HandleNone, got[1])
	assert.Equal(t, HandleBR, got[2])
}

func TestValidateHandles_Empty(t *testing.T) {
	assert.Empty(t, ValidateHandles(nil))
	assert.Empty(t, ValidateHandles([]Handle{}))
}

func TestValidateHandles_AllCanonical(t *testing.T) {
	assert.Equal(t, AllHandles, ValidateHandles(AllHandles))
}

func TestHandle_Valid(t *testing.T) {
	for _, h := range AllHandles {
		assert.True(t, h.Valid(), "handle %q", h)
	}
	assert.False(t, HandleNone.Valid())
	assert.False(t, Handle("TL").Valid())
}

func TestHandle_Anchor(t *testing.T) {
	fx, fy := HandleBR.Anchor()
	assert.Equal(t, 1.0, fx)
	assert.Equal(t, 1.0, fy)
	fx, fy = HandleTM.Anchor()
	assert.Equal(t, 0.5, fx)
	assert.Equal(t, 0.0, fy)
}
