// SPDX-License-Identifier: GPL-3.0-or-later

package mu

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DefaultSLogger discards everything.
func TestDefaultSLogger(t *testing.T) {
	logger := DefaultSLogger()

	// Should return a non-nil logger
	assert.NotNil(t, logger)

	// Should be able to call Debug and Info without panic (discards output)
	logger.Debug("debug message", "key", "value")
	logger.Info("info message", "key", "value")
}

// doneAttrs includes the error, its class and both timestamps.
func TestDoneAttrs(t *testing.T) {
	t0 := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	t1 := t0.Add(time.Second)
	wantErr := errors.New("mocked error")
	classifier := ErrClassifierFunc(func(error) string { return "EMOCK" })

	attrs := doneAttrs(classifier, wantErr, t0, t1)

	want := []slog.Attr{
		slog.Any("err", wantErr),
		slog.String("errClass", "EMOCK"),
		slog.Time("t0", t0),
		slog.Time("t", t1),
	}
	require.Len(t, attrs, len(want))
	for idx, attr := range attrs {
		got, ok := attr.(slog.Attr)
		require.True(t, ok)
		assert.True(t, want[idx].Equal(got), "got %v, want %v", got, want[idx])
	}
}
