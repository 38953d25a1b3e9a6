package log_test

import (
	"bytes"
	"encoding/json"
	stdlog "log"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "bistro/internal/log"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldW, oldFlags := stdlog.Writer(), stdlog.Flags()
	stdlog.SetOutput(&buf)
	stdlog.SetFlags(0)
	t.Cleanup(func() {
		stdlog.SetOutput(oldW)
		stdlog.SetFlags(oldFlags)
	})
	return &buf
}

func TestEventLine(t *testing.T) {
	buf := capture(t)
	at := time.Date(2025, 3, 1, 12, 30, 0, 0, time.FixedZone("SAST", 2*60*60))
	applog.Event("draft.published", "d-1", at, map[string]any{"price": "21.50"})

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "audit", got["level"])
	assert.Equal(t, "event.draft.published", got["action"])
	assert.Equal(t, "d-1", got["key"])
	assert.Equal(t, "2025-03-01T10:30:00Z", got["at"])
	assert.Equal(t, map[string]any{"price": "21.50"}, got["payload"])
}

func TestEventWithoutTime(t *testing.T) {
	buf := capture(t)
	applog.Event("cart.checkout", "r-9", time.Time{}, nil)
	assert.NotContains(t, buf.String(), `"at"`)
	assert.Contains(t, buf.String(), `"key":"r-9"`)
}

func TestUnencodablePayloadStillLogs(t *testing.T) {
	buf := capture(t)
	applog.Event("cart.checkout", "r-1", time.Time{}, math.Inf(1))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "event.cart.checkout", got["action"])
	assert.NotEmpty(t, got["err"])
	assert.Nil(t, got["payload"])
}

func TestBackgroundAudit(t *testing.T) {
	buf := capture(t)
	applog.Audit(nil, "seed.loaded", map[string]any{"dishes": 5})

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "seed.loaded", got["action"])
	assert.NotContains(t, got, "req_id")
}
