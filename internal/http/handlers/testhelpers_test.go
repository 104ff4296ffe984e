package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"reliefdesk/internal/clock"
	"reliefdesk/internal/donation"
	"reliefdesk/internal/middleware"
	"reliefdesk/internal/session"
)

var fixedNow = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestApp(t *testing.T) *App {
	t.Helper()
	clk := clock.NewManual(fixedNow)
	ids := &donation.SequenceIDs{}
	reg, err := session.NewRegistry(func(string) (*donation.Manager, error) {
		return donation.NewManager(donation.Options{IDs: ids, Clock: clk})
	}, time.Hour, clk, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return NewApp(reg, zerolog.Nop())
}

type testRequest struct {
	method  string
	path    string
	body    string
	session string
	locale  string
	params  map[string]string
}

func (tr testRequest) build() *http.Request {
	var req *http.Request
	if tr.body != "" {
		req = httptest.NewRequest(tr.method, tr.path, strings.NewReader(tr.body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(tr.method, tr.path, nil)
	}
	sid := tr.session
	if sid == "" {
		sid = "test-session"
	}
	ctx := middleware.ContextWithSessionID(req.Context(), sid)
	if tr.locale != "" {
		ctx = context.WithValue(ctx, middleware.LocaleKey, tr.locale)
	}
	if len(tr.params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range tr.params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func serve(h http.HandlerFunc, tr testRequest) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, tr.build())
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}
