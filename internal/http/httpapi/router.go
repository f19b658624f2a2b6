package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"songrelay/internal/http/handlers"
	"songrelay/internal/middleware"
)

// Options configures the router around the handlers.
type Options struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	// StaticDir, when set, is served under /app/ and / redirects there.
	StaticDir string
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
	)

	r.Get("/health", app.Health)
	r.Get("/openapi.json", app.OpenAPIJSON)
	r.Get("/docs", app.OpenAPIDocs)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", app.Generate)
		r.Post("/callback", app.Callback)
		r.Get("/status/{taskId}", app.TaskStatus)
		r.Get("/job/{taskId}", app.Job)

		r.Post("/submit-word", app.SubmitWord)
		r.Get("/word-count", app.WordCount)
		r.Get("/word-frequencies", app.WordFrequencies)
		r.Route("/words", func(r chi.Router) {
			r.Get("/", app.ListWords)
			r.Delete("/", app.ClearWords)
			r.Delete("/{index}", app.RemoveWord)
		})
	})

	if dir := strings.TrimSpace(opts.StaticDir); dir != "" {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/app/", http.StatusFound)
		})
		r.Handle("/app", http.RedirectHandler("/app/", http.StatusMovedPermanently))
		r.Handle("/app/*", http.StripPrefix("/app/", http.FileServer(http.Dir(dir))))
	}

	return r
}
