package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"reliefdesk/internal/donation"
	"reliefdesk/internal/locale"
	"reliefdesk/internal/middleware"
	"reliefdesk/internal/session"
)

// App holds the dependencies shared by every handler.
type App struct {
	Sessions *session.Registry
	Logger   zerolog.Logger
}

func NewApp(sessions *session.Registry, logger zerolog.Logger) *App {
	return &App{Sessions: sessions, Logger: logger}
}

// manager returns the donation manager bound to the request's session.
func (a *App) manager(w http.ResponseWriter, r *http.Request) (*donation.Manager, bool) {
	id := middleware.SessionIDFromContext(r.Context())
	m, err := a.Sessions.Get(id)
	if err != nil {
		a.Logger.Error().Err(err).Str("session_id", id).Msg("session lookup failed")
		a.error(w, http.StatusInternalServerError, "internal", "session unavailable")
		return nil, false
	}
	return m, true
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorBody{Error: errorDetail{Code: errCode, Message: message}})
}

// decodeOptional decodes a JSON body into v. An empty body is not an error
// and reports false.
func decodeOptional(r *http.Request, v any) (bool, error) {
	if r.Body == nil {
		return false, nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (a *App) badPayload(w http.ResponseWriter, r *http.Request) {
	a.error(w, http.StatusBadRequest, "bad_request", locale.Sprintf(middleware.LocaleFromContext(r.Context()), locale.MsgInvalidPayload))
}
