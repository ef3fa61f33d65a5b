package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/repository"
	"github.com/m-mizutani/regmig/pkg/utils/errutil"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is not from user input
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logging.Default().Error("fail to marshal response", slog.Any("error", err))
		safeWrite(w, http.StatusInternalServerError, []byte(`{"error":"internal error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, body)
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInvalidOption),
		errors.Is(err, types.ErrInvalidTransition),
		errors.Is(err, repository.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the status mapped from err. Only server side failures are reported to
// the error sink.
func writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	code := errorStatus(err)
	if code >= http.StatusInternalServerError {
		errutil.HandleError(r.Context(), msg, err)
	} else {
		logging.From(r.Context()).Warn(msg, slog.Any("error", err), slog.Int("status", code))
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

type config struct {
	notificationSecret types.NotificationSecret
	metricsHandler     http.Handler
}

type Option func(*config)

// WithNotificationSecret requires registry notifications to carry the secret as a bearer token.
func WithNotificationSecret(secret types.NotificationSecret) Option {
	return func(cfg *config) {
		cfg.notificationSecret = secret
	}
}

func WithMetricsHandler(h http.Handler) Option {
	return func(cfg *config) {
		cfg.metricsHandler = h
	}
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	if cfg.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.metricsHandler)
	}

	r.Post("/workers/{name}", handleRunWorker(uc))

	r.Route("/registry/repositories", func(r chi.Router) {
		r.Use(bearerAuth(cfg.notificationSecret))
		r.Put("/*", handleRegistryNotification(uc))
	})

	r.Route("/batches", func(r chi.Router) {
		r.Post("/", handleStartBatchImport(uc))
		r.Get("/{id}", handleGetBatchImport(uc))
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}
