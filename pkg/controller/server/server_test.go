package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/controller/server"
	"github.com/m-mizutani/regmig/pkg/domain/mock"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/infra"
	"github.com/m-mizutani/regmig/pkg/repository"
	"github.com/m-mizutani/regmig/pkg/usecase"
)

var usecaseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func serve(srv *server.Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Mux().ServeHTTP(rec, req)
	return rec
}

func TestRouterSmokeTests(t *testing.T) {
	t.Run("GET /health returns 200", func(t *testing.T) {
		srv := server.New(usecase.New(infra.New()))

		rec := serve(srv, http.MethodGet, "/health", "")
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal("ok")
	})

	t.Run("GET /metrics is served only when configured", func(t *testing.T) {
		srv := server.New(&mock.UseCaseMock{})
		gt.V(t, serve(srv, http.MethodGet, "/metrics", "").Code).Equal(http.StatusNotFound)

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		})
		srv = server.New(&mock.UseCaseMock{}, server.WithMetricsHandler(handler))
		rec := serve(srv, http.MethodGet, "/metrics", "")
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, rec.Body.String()).Equal("# metrics")
	})
}

func TestRunWorker(t *testing.T) {
	newReport := func(worker types.WorkerName) *model.WorkerReport {
		r := model.NewWorkerReport(worker, usecaseTime)
		r.Set("handled_count", 1)
		return r
	}

	uc := &mock.UseCaseMock{
		RunEnqueuerFunc: func(ctx context.Context) (*model.WorkerReport, error) {
			return newReport(types.WorkerEnqueuer), nil
		},
		RunGuardFunc: func(ctx context.Context) (*model.WorkerReport, error) {
			return newReport(types.WorkerGuard), nil
		},
		RunObserverFunc: func(ctx context.Context) (*model.WorkerReport, error) {
			return newReport(types.WorkerObserver), nil
		},
		RunStuckImportSweepFunc: func(ctx context.Context) (*model.WorkerReport, error) {
			return newReport(types.WorkerStuckImports), nil
		},
	}
	srv := server.New(uc)

	for _, name := range types.WorkerNames {
		t.Run(string(name), func(t *testing.T) {
			rec := serve(srv, http.MethodPost, "/workers/"+string(name), "")
			gt.V(t, rec.Code).Equal(http.StatusOK)

			var resp struct {
				Worker   types.WorkerName `json:"worker"`
				Metadata map[string]any   `json:"metadata"`
			}
			gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			gt.V(t, resp.Worker).Equal(name)
			gt.V(t, resp.Metadata["handled_count"]).Equal(float64(1))
		})
	}

	gt.A(t, uc.RunEnqueuerCalls()).Length(1)
	gt.A(t, uc.RunGuardCalls()).Length(1)
	gt.A(t, uc.RunObserverCalls()).Length(1)
	gt.A(t, uc.RunStuckImportSweepCalls()).Length(1)

	t.Run("unknown worker", func(t *testing.T) {
		rec := serve(srv, http.MethodPost, "/workers/unknown", "")
		gt.V(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("worker failure", func(t *testing.T) {
		failing := &mock.UseCaseMock{
			RunGuardFunc: func(ctx context.Context) (*model.WorkerReport, error) {
				return nil, goerr.New("settings unavailable")
			},
		}
		rec := serve(server.New(failing), http.MethodPost, "/workers/guard", "")
		gt.V(t, rec.Code).Equal(http.StatusInternalServerError)
	})

	t.Run("worker is not canceled with request", func(t *testing.T) {
		var ctxErr error
		uc := &mock.UseCaseMock{
			RunObserverFunc: func(ctx context.Context) (*model.WorkerReport, error) {
				ctxErr = ctx.Err()
				return newReport(types.WorkerObserver), nil
			},
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		req := httptest.NewRequest(http.MethodPost, "/workers/observer", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		server.New(uc).Mux().ServeHTTP(rec, req)

		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.NoError(t, ctxErr)
	})
}

func TestRegistryNotification(t *testing.T) {
	t.Run("passes path and status", func(t *testing.T) {
		uc := &mock.UseCaseMock{
			HandleRegistryNotificationFunc: func(ctx context.Context, notification *model.RegistryNotification) error {
				return nil
			},
		}
		srv := server.New(uc)

		rec := serve(srv, http.MethodPut, "/registry/repositories/group/project/image/migration/status", `{"status":"pre_import_complete"}`)
		gt.V(t, rec.Code).Equal(http.StatusOK)

		calls := uc.HandleRegistryNotificationCalls()
		gt.A(t, calls).Length(1)
		gt.V(t, calls[0].Notification.Path).Equal(types.RepositoryPath("group/project/image"))
		gt.V(t, calls[0].Notification.Status).Equal(types.NotificationPreImportComplete)
	})

	t.Run("path from URL wins over body", func(t *testing.T) {
		uc := &mock.UseCaseMock{
			HandleRegistryNotificationFunc: func(ctx context.Context, notification *model.RegistryNotification) error {
				return nil
			},
		}
		srv := server.New(uc)

		rec := serve(srv, http.MethodPut, "/registry/repositories/a/b/migration/status", `{"path":"other","status":"import_complete"}`)
		gt.V(t, rec.Code).Equal(http.StatusOK)
		gt.V(t, uc.HandleRegistryNotificationCalls()[0].Notification.Path).Equal(types.RepositoryPath("a/b"))
	})

	testCases := map[string]struct {
		path   string
		body   string
		err    error
		expect int
	}{
		"route without status suffix": {
			path:   "/registry/repositories/group/image",
			body:   `{"status":"import_complete"}`,
			expect: http.StatusNotFound,
		},
		"broken body": {
			path:   "/registry/repositories/group/image/migration/status",
			body:   `{"status":`,
			expect: http.StatusBadRequest,
		},
		"unknown repository": {
			path:   "/registry/repositories/group/image/migration/status",
			body:   `{"status":"import_complete"}`,
			err:    goerr.Wrap(repository.ErrNotFound, "repository not found"),
			expect: http.StatusNotFound,
		},
		"invalid transition": {
			path:   "/registry/repositories/group/image/migration/status",
			body:   `{"status":"import_complete"}`,
			err:    goerr.Wrap(types.ErrInvalidTransition, "not allowed"),
			expect: http.StatusBadRequest,
		},
		"invalid status": {
			path:   "/registry/repositories/group/image/migration/status",
			body:   `{"status":"bogus"}`,
			err:    goerr.Wrap(types.ErrInvalidOption, "invalid notification status"),
			expect: http.StatusBadRequest,
		},
		"store failure": {
			path:   "/registry/repositories/group/image/migration/status",
			body:   `{"status":"import_complete"}`,
			err:    goerr.New("connection refused"),
			expect: http.StatusInternalServerError,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			uc := &mock.UseCaseMock{
				HandleRegistryNotificationFunc: func(ctx context.Context, notification *model.RegistryNotification) error {
					return tc.err
				},
			}
			rec := serve(server.New(uc), http.MethodPut, tc.path, tc.body)
			gt.V(t, rec.Code).Equal(tc.expect)
		})
	}
}

func TestBatches(t *testing.T) {
	t.Run("start batch import", func(t *testing.T) {
		uc := &mock.UseCaseMock{
			StartBatchImportFunc: func(ctx context.Context, input *model.StartBatchImportInput) (*model.BatchImport, error) {
				return &model.BatchImport{
					ID:              "batch-1",
					Paths:           input.Paths,
					Stage:           types.BatchStagePreImport,
					Status:          types.BatchStatusScheduled,
					TimeoutStrategy: input.TimeoutStrategy,
				}, nil
			},
		}
		srv := server.New(uc)

		rec := serve(srv, http.MethodPost, "/batches", `{"paths":["a/b","c/d"],"timeout_strategy":"pessimistic"}`)
		gt.V(t, rec.Code).Equal(http.StatusAccepted)

		var batch model.BatchImport
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &batch))
		gt.V(t, batch.ID).Equal(types.BatchImportID("batch-1"))
		gt.V(t, batch.Status).Equal(types.BatchStatusScheduled)

		calls := uc.StartBatchImportCalls()
		gt.A(t, calls).Length(1)
		gt.A(t, calls[0].Input.Paths).Length(2)
		gt.V(t, calls[0].Input.TimeoutStrategy).Equal(types.TimeoutStrategyPessimistic)
	})

	t.Run("invalid batch request", func(t *testing.T) {
		uc := &mock.UseCaseMock{
			StartBatchImportFunc: func(ctx context.Context, input *model.StartBatchImportInput) (*model.BatchImport, error) {
				return nil, goerr.Wrap(types.ErrInvalidOption, "paths must not be empty")
			},
		}
		srv := server.New(uc)

		gt.V(t, serve(srv, http.MethodPost, "/batches", `{"paths":[]}`).Code).Equal(http.StatusBadRequest)
		gt.V(t, serve(srv, http.MethodPost, "/batches", `not json`).Code).Equal(http.StatusBadRequest)
		gt.A(t, uc.StartBatchImportCalls()).Length(1)
	})

	t.Run("get batch import", func(t *testing.T) {
		uc := &mock.UseCaseMock{
			GetBatchImportFunc: func(ctx context.Context, id types.BatchImportID) (*model.BatchImport, error) {
				if id != "batch-1" {
					return nil, goerr.Wrap(repository.ErrNotFound, "batch import not found")
				}
				return &model.BatchImport{ID: id, Status: types.BatchStatusFinished}, nil
			},
		}
		srv := server.New(uc)

		rec := serve(srv, http.MethodGet, "/batches/batch-1", "")
		gt.V(t, rec.Code).Equal(http.StatusOK)
		var batch model.BatchImport
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &batch))
		gt.V(t, batch.Status).Equal(types.BatchStatusFinished)

		gt.V(t, serve(srv, http.MethodGet, "/batches/unknown", "").Code).Equal(http.StatusNotFound)
	})
}
