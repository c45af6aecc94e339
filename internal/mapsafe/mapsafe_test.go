package mapsafe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	m := map[string]any{
		"workers": float64(8), // YAML numbers may decode as float64
		"name":    "ptfn",
		"enabled": true,
	}

	assert.Equal(t, 8, Get(m, "workers", 1))
	assert.Equal(t, "ptfn", Get(m, "name", ""))
	assert.True(t, Get(m, "enabled", false))

	// Missing keys and type mismatches fall back to the default.
	assert.Equal(t, 4, Get(m, "missing", 4))
	assert.Equal(t, 0, Get(m, "name", 0))
	assert.Equal(t, "", Get[string](nil, "anything", ""))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "4", Format(4))
	assert.Equal(t, "4", Format(float64(4)))
	assert.Equal(t, "0.5", Format(0.5))
	assert.Equal(t, "true", Format(true))
	assert.Equal(t, "adam", Format("adam"))
}
