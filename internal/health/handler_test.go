package health

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lelo88/collectibles-api-golang/internal/httpx"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err      error
	calls    int
	deadline time.Time
}

func (pinger *fakePinger) Ping(ctx context.Context) error {
	pinger.calls++
	pinger.deadline, _ = ctx.Deadline()
	return pinger.err
}

// steppingClock avanza step en cada llamada.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		value := current
		current = current.Add(step)
		return value
	}
}

func TestHealth_DoesNotPing(t *testing.T) {
	pinger := &fakePinger{err: errors.New("down")}
	handler := New(pinger)
	handler.now = func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) }

	rec := httptest.NewRecorder()
	handler.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := asMap(t, decodeResponse(t, rec).Data)
	require.Equal(t, "ok", data["status"])
	require.Equal(t, "2024-03-09T12:00:00Z", data["time"])
	require.Zero(t, pinger.calls)
}

func TestReady(t *testing.T) {
	tests := []struct {
		name        string
		pinger      *fakePinger
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "no database",
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    "not_ready",
			wantMessage: "database pool not configured",
		},
		{
			name:        "ping fails",
			pinger:      &fakePinger{err: errors.New("connection refused")},
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    "not_ready",
			wantMessage: "database is not reachable",
		},
		{
			name:       "database answers",
			pinger:     &fakePinger{},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var handler *Handler
			if tt.pinger == nil {
				handler = New(nil)
			} else {
				handler = New(tt.pinger)
			}
			handler.now = steppingClock(time.Now(), 15*time.Millisecond)

			rec := httptest.NewRecorder()
			handler.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeResponse(t, rec)
			if tt.wantCode != "" {
				require.NotNil(t, resp.Error)
				require.Equal(t, tt.wantCode, resp.Error.Code)
				require.Equal(t, tt.wantMessage, resp.Error.Message)
			} else {
				data := asMap(t, resp.Data)
				require.Equal(t, "ready", data["status"])
				require.Equal(t, json.Number("15"), data["db_ping_ms"])
			}
			if tt.pinger != nil {
				require.Equal(t, 1, tt.pinger.calls)
				require.False(t, tt.pinger.deadline.IsZero())
				require.LessOrEqual(t, time.Until(tt.pinger.deadline), readyTimeout)
			}
		})
	}
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) httpx.Response {
	t.Helper()

	var response httpx.Response
	decoder := json.NewDecoder(bytes.NewReader(recorder.Body.Bytes()))
	decoder.UseNumber()
	require.NoError(t, decoder.Decode(&response))
	return response
}

func asMap(t *testing.T, value any) map[string]any {
	t.Helper()

	out, ok := value.(map[string]any)
	require.True(t, ok, "expected map, got %T", value)
	return out
}
