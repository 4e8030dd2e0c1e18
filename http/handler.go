package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/jmattson/quell"
)

// CORSConfig controls CORS handling for non-static routes. Static file
// responses carry their own Access-Control-Allow-Origin header computed by
// the quell layer, so this middleware only wraps the fallthrough routes.
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// HandlerConfig configures the HTTP stack.
type HandlerConfig struct {
	Static quell.Options
	Mounts []quell.Mount
	CORS   CORSConfig
}

// Handler owns the assembled stack: a fallthrough chi router wrapped by the
// static file layer.
type Handler struct {
	config HandlerConfig
	static *quell.Quell
}

// NewHandler builds the stack and registers every configured mount. In
// static mode the mounts are walked here, so construction fails if a root is
// unreadable.
func NewHandler(config *HandlerConfig) (*Handler, error) {
	r := chi.NewRouter()

	if config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   config.CORS.AllowedOrigins,
			AllowedMethods:   config.CORS.AllowedMethods,
			AllowedHeaders:   config.CORS.AllowedHeaders,
			ExposedHeaders:   config.CORS.ExposedHeaders,
			AllowCredentials: config.CORS.AllowCredentials,
			MaxAge:           config.CORS.MaxAge,
		}))
	}

	r.Get("/healthz", handleHealth)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "not_found", "No such file")
	})

	static := quell.New(r, config.Static)
	for _, m := range config.Mounts {
		if err := static.AddDirectory(m.Root, m.Prefix); err != nil {
			return nil, fmt.Errorf("add directory %s: %w", m.Root, err)
		}
	}

	return &Handler{
		config: *config,
		static: static,
	}, nil
}

// Router returns the full request pipeline.
func (h *Handler) Router() http.Handler {
	return RequestLogger(h.static)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
