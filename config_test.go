// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewConfig fills every field with a usable default.
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	require.NotNil(t, cfg)

	// ErrClassifier should classify nil as the empty string
	assert.Equal(t, "", cfg.ErrClassifier.Classify(nil))

	// Exit and Stderr should point to the real process facilities
	assert.NotNil(t, cfg.Exit)
	assert.Equal(t, os.Stderr, cfg.Stderr)

	// MaxAllocSize should not restrict anything the runtime allows
	assert.Equal(t, uint(math.MaxInt), cfg.MaxAllocSize)

	// TimeNow should be set and return a valid time
	now := cfg.TimeNow()
	assert.False(t, now.IsZero())
}
