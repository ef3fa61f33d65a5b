package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/controller/server"
	"github.com/m-mizutani/regmig/pkg/domain/mock"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/infra"
	"github.com/m-mizutani/regmig/pkg/usecase"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

func newTestMux(pattern string, h http.HandlerFunc) http.Handler {
	mux := server.New(usecase.New(infra.New())).Mux()
	mux.HandleFunc(pattern, h)
	return mux
}

func TestPreProcess(t *testing.T) {
	t.Run("request carries logger and request ID", func(t *testing.T) {
		var captured context.Context
		mux := newTestMux("/test", func(w http.ResponseWriter, r *http.Request) {
			captured = r.Context()
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		gt.True(t, logging.From(captured) != logging.From(context.Background()))

		reqID, _ := logging.CtxRequestID(captured)
		gt.V(t, rec.Header().Get("X-Request-Id")).Equal(string(reqID))
	})

	t.Run("request IDs differ per request", func(t *testing.T) {
		mux := newTestMux("/test", func(w http.ResponseWriter, r *http.Request) {})

		first := httptest.NewRecorder()
		mux.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/test", nil))
		second := httptest.NewRecorder()
		mux.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/test", nil))

		gt.V(t, first.Header().Get("X-Request-Id")).NotEqual(second.Header().Get("X-Request-Id"))
	})

	testCases := map[string]struct {
		handler http.HandlerFunc
		expect  int
	}{
		"explicit status": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
			},
			expect: http.StatusConflict,
		},
		"implicit 200": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("ok"))
			},
			expect: http.StatusOK,
		},
		"slow handler": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(10 * time.Millisecond)
				w.WriteHeader(http.StatusNoContent)
			},
			expect: http.StatusNoContent,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestMux("/status", tc.handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
			gt.V(t, rec.Code).Equal(tc.expect)
		})
	}
}

func TestBearerAuth(t *testing.T) {
	newServer := func(secret types.NotificationSecret) (*server.Server, *mock.UseCaseMock) {
		uc := &mock.UseCaseMock{
			HandleRegistryNotificationFunc: func(ctx context.Context, notification *model.RegistryNotification) error {
				return nil
			},
		}
		var options []server.Option
		if secret != "" {
			options = append(options, server.WithNotificationSecret(secret))
		}
		return server.New(uc, options...), uc
	}

	send := func(srv *server.Server, auth string) int {
		body := strings.NewReader(`{"status":"import_complete"}`)
		req := httptest.NewRequest(http.MethodPut, "/registry/repositories/group/image/migration/status", body)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		rec := httptest.NewRecorder()
		srv.Mux().ServeHTTP(rec, req)
		return rec.Code
	}

	testCases := map[string]struct {
		secret types.NotificationSecret
		auth   string
		expect int
		called int
	}{
		"no secret configured accepts any request": {
			expect: http.StatusOK,
			called: 1,
		},
		"valid token": {
			secret: "s3cret",
			auth:   "Bearer s3cret",
			expect: http.StatusOK,
			called: 1,
		},
		"missing token": {
			secret: "s3cret",
			expect: http.StatusUnauthorized,
		},
		"wrong token": {
			secret: "s3cret",
			auth:   "Bearer other",
			expect: http.StatusUnauthorized,
		},
		"wrong scheme": {
			secret: "s3cret",
			auth:   "Basic s3cret",
			expect: http.StatusUnauthorized,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			srv, uc := newServer(tc.secret)
			gt.V(t, send(srv, tc.auth)).Equal(tc.expect)
			gt.A(t, uc.HandleRegistryNotificationCalls()).Length(tc.called)
		})
	}
}
