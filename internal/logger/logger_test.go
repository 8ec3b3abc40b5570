package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javakishore-veleti/eventsgrasp/internal/config"
)

func TestNew(t *testing.T) {
	cfg := config.Logging{Level: "debug", Service: "test-svc"}
	l, closer := New(cfg)
	defer closer.Close()
	assert.NotNil(t, l)
}

func TestNewAsync(t *testing.T) {
	cfg := config.Logging{Level: "debug", Service: "test-svc", Async: true}
	l, closer := New(cfg)
	assert.NotNil(t, l)
	closer.Close()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"unknown", "INFO"},
		{"", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input).String())
		})
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()

	// Empty context returns empty string
	assert.Empty(t, RequestID(ctx))

	ctx = WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", RequestID(ctx))
}

func TestCustomerIDContext(t *testing.T) {
	_, ok := CustomerID(context.Background())
	assert.False(t, ok, "expected no customer id")

	id, ok := CustomerID(WithCustomerID(context.Background(), 42))
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestContextAttributesLogged(t *testing.T) {
	for _, async := range []bool{false, true} {
		var buf bytes.Buffer
		l, closer := newWithWriter(config.Logging{Level: "info", Service: "eventsgrasp", Async: async}, &buf)

		ctx := WithCustomerID(WithRequestID(context.Background(), "req-9"), 7)
		l.InfoContext(ctx, "credential created", "credential_id", 3)
		closer.Close()

		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &rec), "async=%v", async)
		assert.Equal(t, "eventsgrasp", rec["service"], "async=%v", async)
		assert.Equal(t, "req-9", rec["request_id"], "async=%v", async)
		assert.Equal(t, float64(7), rec["customer_id"], "async=%v", async)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, closer := newWithWriter(config.Logging{Level: "warn"}, &buf)
	defer closer.Close()

	l.Info("hidden")
	assert.Zero(t, buf.Len(), "expected info to be filtered")
}
