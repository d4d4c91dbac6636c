package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/askiada/go-teambalance/internal/logging"
)

func TestNewWithWriterJSON(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger, err := logging.NewWithWriter(logging.Config{Level: "info", Format: logging.FormatJSON}, buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("roster loaded", zap.Int("people", 16))
	require.NoError(t, logger.Sync())

	entry := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "roster loaded", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.InDelta(t, 16, entry["people"], 0)
	assert.Contains(t, entry, "timestamp")
}

func TestNewWithWriterConsole(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger, err := logging.NewWithWriter(logging.Config{Level: "debug", Format: logging.FormatConsole}, buf)
	require.NoError(t, err)

	logger.Debug("search started", zap.Int("workers", 4))
	require.NoError(t, logger.Sync())

	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "search started")
	assert.Contains(t, buf.String(), `"workers": 4`)
}

func TestNewWithWriterErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		cfg         logging.Config
		expectedErr error
	}{
		"unknown format": {
			cfg:         logging.Config{Level: "info", Format: "xml"},
			expectedErr: logging.ErrUnknownFormat,
		},
		"unknown level": {
			cfg: logging.Config{Level: "loud", Format: logging.FormatJSON},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := logging.NewWithWriter(tc.cfg, &bytes.Buffer{})
			require.Error(t, err)

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
			}
		})
	}
}
