package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func sessionEcho() (http.Handler, *string) {
	var got string
	return Session(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionIDFromContext(r.Context())
	})), &got
}

func TestSessionMintsCookie(t *testing.T) {
	h, got := sessionEcho()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if *got == "" {
		t.Fatalf("expected a session id in context")
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie || cookies[0].Value != *got {
		t.Fatalf("unexpected cookies: %#v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
	if rr.Header().Get(SessionHeader) != *got {
		t.Fatalf("X-Session-ID header = %q, want %q", rr.Header().Get(SessionHeader), *got)
	}
}

func TestSessionReusesCookieAndHeader(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *http.Request)
		want  string
	}{
		{
			name: "cookie",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
			},
			want: "from-cookie",
		},
		{
			name: "header wins over cookie",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
				r.Header.Set(SessionHeader, "from-header")
			},
			want: "from-header",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, got := sessionEcho()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tc.setup(req)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if *got != tc.want {
				t.Fatalf("session id = %q, want %q", *got, tc.want)
			}
			if len(rr.Result().Cookies()) != 0 {
				t.Fatalf("existing session must not reissue a cookie")
			}
		})
	}
}
