package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/repository"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

const (
	maxBodySize = 1 << 20

	migrationStatusSuffix = "/migration/status"
)

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(types.ErrInvalidOption, "invalid request body", goerr.V("reason", err.Error()))
	}
	return nil
}

func workerFunc(uc interfaces.UseCase, name types.WorkerName) func(ctx context.Context) (*model.WorkerReport, error) {
	switch name {
	case types.WorkerEnqueuer:
		return uc.RunEnqueuer
	case types.WorkerGuard:
		return uc.RunGuard
	case types.WorkerObserver:
		return uc.RunObserver
	case types.WorkerStuckImports:
		return uc.RunStuckImportSweep
	default:
		return nil
	}
}

// handleRunWorker runs a worker synchronously. The run is detached from the request so that a
// disconnecting caller does not interrupt it halfway.
func handleRunWorker(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := types.WorkerName(chi.URLParam(r, "name"))
		run := workerFunc(uc, name)
		if run == nil {
			writeError(w, r, "unknown worker", goerr.Wrap(repository.ErrNotFound, "unknown worker", goerr.V("name", name)))
			return
		}

		ctx := logging.Detach(r.Context())
		ctx = logging.With(ctx, logging.From(ctx).With(slog.String("worker", string(name))))

		report, err := run(ctx)
		if err != nil {
			writeError(w, r, "worker failed", err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

func handleRegistryNotification(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		route := chi.URLParam(r, "*")
		if !strings.HasSuffix(route, migrationStatusSuffix) {
			http.NotFound(w, r)
			return
		}

		var notification model.RegistryNotification
		if err := decodeBody(w, r, &notification); err != nil {
			writeError(w, r, "fail to decode registry notification", err)
			return
		}
		notification.Path = types.RepositoryPath(strings.TrimSuffix(route, migrationStatusSuffix))

		logging.From(r.Context()).Info("received registry notification", slog.Any("notification", notification))

		if err := uc.HandleRegistryNotification(r.Context(), &notification); err != nil {
			writeError(w, r, "fail to handle registry notification", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func handleStartBatchImport(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input model.StartBatchImportInput
		if err := decodeBody(w, r, &input); err != nil {
			writeError(w, r, "fail to decode batch import request", err)
			return
		}

		batch, err := uc.StartBatchImport(r.Context(), &input)
		if err != nil {
			writeError(w, r, "fail to start batch import", err)
			return
		}
		writeJSON(w, http.StatusAccepted, batch)
	}
}

func handleGetBatchImport(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.BatchImportID(chi.URLParam(r, "id"))

		batch, err := uc.GetBatchImport(r.Context(), id)
		if err != nil {
			writeError(w, r, "fail to get batch import", err)
			return
		}
		writeJSON(w, http.StatusOK, batch)
	}
}
