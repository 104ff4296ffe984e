package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"reliefdesk/internal/clock"
	"reliefdesk/internal/http/handlers"
	"reliefdesk/internal/middleware"
)

// Options carries the middleware settings of the router.
type Options struct {
	AllowedOrigins  []string
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
	SecureCookies   bool
	RateLimitPerMin int
	Clock           clock.Clock
	Logger          zerolog.Logger
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.Session(opts.SecureCookies),
		middleware.Logger(opts.Logger),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)
		r.Get("/presets", app.Presets)

		r.Route("/draft", func(r chi.Router) {
			r.Get("/", app.DraftGet)
			r.Patch("/", app.DraftUpdate)
			r.Post("/preset", app.DraftSelectPreset)
		})

		r.Route("/donations", func(r chi.Router) {
			r.Get("/", app.DonationsList)
			r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute, opts.Clock)).Post("/", app.DonationsCreate)
			r.Get("/{id}", app.DonationGet)
			r.Post("/{id}/approve", app.DonationApprove)
			r.Post("/{id}/reject", app.DonationReject)
			r.Post("/{id}/review", app.DonationReview)
		})
	})

	return r
}
