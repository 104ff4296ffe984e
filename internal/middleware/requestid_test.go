package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "propagates caller id", incoming: "req-123", keep: true},
		{name: "mints when missing"},
		{name: "mints when too long", incoming: strings.Repeat("x", 200)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestIDFromContext(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.incoming != "" {
				req.Header.Set("X-Request-ID", tc.incoming)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if seen == "" || rr.Header().Get("X-Request-ID") != seen {
				t.Fatalf("context id %q, header %q", seen, rr.Header().Get("X-Request-ID"))
			}
			if tc.keep && seen != tc.incoming {
				t.Fatalf("request id = %q, want %q", seen, tc.incoming)
			}
			if !tc.keep && seen == tc.incoming {
				t.Fatalf("expected a freshly minted id")
			}
		})
	}
}
