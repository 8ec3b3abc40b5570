package logger

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureHandler keeps every record it is given.
type captureHandler struct {
	mu    sync.Mutex
	recs  []slog.Record
	delay time.Duration
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, rec slog.Record) error { //nolint:gocritic // slog.Handler interface requires value receiver
	if h.delay > 0 {
		time.Sleep(h.delay)
	}
	h.mu.Lock()
	h.recs = append(h.recs, rec)
	h.mu.Unlock()
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func (h *captureHandler) messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.recs))
	for i, r := range h.recs {
		out[i] = r.Message
	}
	return out
}

func emit(h slog.Handler, msg string) {
	_ = h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, msg, 0))
}

func TestAsyncHandlerDeliversAfterClose(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		writers int
		each    int
	}{
		{"single writer", 1, 1, 1},
		{"request burst", 4, 50, 40},
		{"zero workers coerced", 0, 2, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &captureHandler{}
			ah := NewAsyncHandler(sink, tt.writers*tt.each, tt.workers)

			var wg sync.WaitGroup
			for range tt.writers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for range tt.each {
						emit(ah, "credential created")
					}
				}()
			}
			wg.Wait()
			ah.Close()

			assert.Len(t, sink.messages(), tt.writers*tt.each)
			assert.Zero(t, ah.DroppedCount())
		})
	}
}

func TestAsyncHandlerReportsDropsOnClose(t *testing.T) {
	sink := &captureHandler{delay: 5 * time.Millisecond}
	ah := NewAsyncHandler(sink, 1, 1)

	for range 40 {
		emit(ah, "remote cache failed")
	}
	ah.Close()

	dropped := ah.DroppedCount()
	require.Positive(t, dropped, "expected a full queue to drop records")
	msgs := sink.messages()
	require.NotEmpty(t, msgs)
	assert.Equal(t, "async logger dropped records", msgs[len(msgs)-1])
	assert.Equal(t, int64(40), int64(len(msgs)-1)+dropped)
}

func TestAsyncHandlerAfterCloseDrops(t *testing.T) {
	sink := &captureHandler{}
	ah := NewAsyncHandler(sink, 10, 1)
	ah.Close()
	ah.Close()

	emit(ah, "late shutdown record")

	assert.Equal(t, int64(1), ah.DroppedCount(), "late record counts as dropped")
	assert.Empty(t, sink.messages())
}

func TestAsyncHandlerDerivedHandlersShareQueue(t *testing.T) {
	sink := &captureHandler{}
	ah := NewAsyncHandler(sink, 10, 1)
	derived := ah.WithAttrs([]slog.Attr{slog.Int64("customer_id", 7)}).WithGroup("auth")

	emit(derived, "customer rejected")
	ah.Close()

	assert.Equal(t, []string{"customer rejected"}, sink.messages())
	emit(derived, "after close")
	assert.Equal(t, int64(1), ah.DroppedCount(), "derived handler should see the closed queue")
}
