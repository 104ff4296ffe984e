package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggerRecordsRequest(t *testing.T) {
	var buf bytes.Buffer
	h := RequestID(Logger(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	})))
	req := httptest.NewRequest(http.MethodPost, "/v1/donations", nil)
	req.Header.Set("X-Request-ID", "req-42")
	req = req.WithContext(ContextWithSessionID(req.Context(), "sess-1"))
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	checks := map[string]any{
		"method":     "POST",
		"path":       "/v1/donations",
		"status":     float64(http.StatusCreated),
		"bytes":      float64(2),
		"request_id": "req-42",
		"session_id": "sess-1",
	}
	for k, want := range checks {
		if entry[k] != want {
			t.Fatalf("log field %s = %#v, want %#v", k, entry[k], want)
		}
	}
}
