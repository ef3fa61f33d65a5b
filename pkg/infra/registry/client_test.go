package registry_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/infra/registry"
)

func newClient(t *testing.T, handler http.HandlerFunc) *registry.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := registry.New(srv.URL, "test-token",
		registry.WithRateLimit(0, 0),
		registry.WithRetryMaxElapsedTime(5*time.Second),
	)
	gt.NoError(t, err)
	return client
}

func TestNew(t *testing.T) {
	_, err := registry.New("ftp://registry.example.com", "")
	gt.Error(t, err)

	_, err = registry.New("https://registry.example.com", "")
	gt.NoError(t, err)
}

func TestImportRepository(t *testing.T) {
	testCases := map[string]struct {
		code   int
		expect types.ImportResponse
	}{
		"accepted":     {http.StatusAccepted, types.ImportResponseOK},
		"ok":           {http.StatusOK, types.ImportResponseAlreadyImported},
		"bad request":  {http.StatusBadRequest, types.ImportResponseBadRequest},
		"unauthorized": {http.StatusUnauthorized, types.ImportResponseUnauthorized},
		"not found":    {http.StatusNotFound, types.ImportResponseNotFound},
		"conflict":     {http.StatusConflict, types.ImportResponseAlreadyBeingImported},
		"too early":    {http.StatusTooEarly, types.ImportResponseAlreadyBeingImported},
		"failed dep":   {http.StatusFailedDependency, types.ImportResponsePreImportFailed},
		"too many":     {http.StatusTooManyRequests, types.ImportResponseTooManyImports},
		"server error": {http.StatusInternalServerError, types.ImportResponseError},
		"unknown 2xx":  {http.StatusNoContent, types.ImportResponseError},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var called bool
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				called = true
				gt.V(t, r.Method).Equal(http.MethodPut)
				gt.V(t, r.URL.Path).Equal("/gitlab/v1/import/group/project/app/")
				gt.V(t, r.URL.Query().Get("import_type")).Equal("pre")
				gt.V(t, r.Header.Get("Authorization")).Equal("Bearer test-token")
				w.WriteHeader(tc.code)
			})

			resp, err := client.ImportRepository(context.Background(), "group/project/app", types.ImportTypePre)
			gt.NoError(t, err)
			gt.V(t, resp).Equal(tc.expect)
			gt.True(t, called)
		})
	}
}

func TestImportRepositoryFinal(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.V(t, r.URL.Query().Get("import_type")).Equal("final")
		w.WriteHeader(http.StatusAccepted)
	})

	resp, err := client.ImportRepository(context.Background(), "group/app", types.ImportTypeFinal)
	gt.NoError(t, err)
	gt.V(t, resp).Equal(types.ImportResponseOK)
}

func TestImportStatus(t *testing.T) {
	t.Run("returns status in body", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			gt.V(t, r.Method).Equal(http.MethodGet)
			gt.V(t, r.URL.Path).Equal("/gitlab/v1/import/group/app/")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"app","path":"group/app","status":"import_in_progress"}`))
		})

		status, err := client.ImportStatus(context.Background(), "group/app")
		gt.NoError(t, err)
		gt.V(t, status).Equal(types.ExternalStatusImportInProgress)
	})

	t.Run("non 2xx is error status", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		status, err := client.ImportStatus(context.Background(), "group/app")
		gt.NoError(t, err)
		gt.V(t, status).Equal(types.ExternalStatusError)
	})

	t.Run("retries server errors", func(t *testing.T) {
		var count atomic.Int32
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			if count.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`{"status":"pre_import_complete"}`))
		})

		status, err := client.ImportStatus(context.Background(), "group/app")
		gt.NoError(t, err)
		gt.V(t, status).Equal(types.ExternalStatusPreImportComplete)
		gt.V(t, count.Load()).Equal(int32(3))
	})

	t.Run("missing status is not retried", func(t *testing.T) {
		var count atomic.Int32
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			count.Add(1)
			_, _ = w.Write([]byte(`{}`))
		})

		status, err := client.ImportStatus(context.Background(), "group/app")
		gt.Error(t, err)
		gt.V(t, status).Equal(types.ExternalStatusError)
		gt.V(t, count.Load()).Equal(int32(1))
	})
}

func TestCancelRepositoryImport(t *testing.T) {
	testCases := map[string]struct {
		code         int
		body         string
		force        bool
		expectStatus types.CancelStatus
		expectState  types.ExternalImportStatus
	}{
		"canceled": {
			code:         http.StatusAccepted,
			body:         `{"status":"import_canceled"}`,
			expectStatus: types.CancelStatusOK,
			expectState:  types.ExternalStatusImportCanceled,
		},
		"rejected with state": {
			code:         http.StatusBadRequest,
			body:         `{"status":"import_complete"}`,
			expectStatus: types.CancelStatusBadRequest,
			expectState:  types.ExternalStatusImportComplete,
		},
		"not found": {
			code:         http.StatusNotFound,
			force:        true,
			expectStatus: types.CancelStatusNotFound,
		},
		"other": {
			code:         http.StatusInternalServerError,
			body:         "oops",
			expectStatus: types.CancelStatusError,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				gt.V(t, r.Method).Equal(http.MethodDelete)
				if tc.force {
					gt.V(t, r.URL.Query().Get("force")).Equal("true")
				} else {
					gt.V(t, r.URL.RawQuery).Equal("")
				}
				w.WriteHeader(tc.code)
				_, _ = w.Write([]byte(tc.body))
			})

			result, err := client.CancelRepositoryImport(context.Background(), "group/app", tc.force)
			gt.NoError(t, err)
			gt.V(t, result.Status).Equal(tc.expectStatus)
			gt.V(t, result.State).Equal(tc.expectState)
		})
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client, err := registry.New(srv.URL, "", registry.WithRateLimit(0, 0))
	gt.NoError(t, err)

	resp, err := client.ImportRepository(context.Background(), "group/app", types.ImportTypePre)
	gt.Error(t, err)
	gt.V(t, resp).Equal(types.ImportResponseError)

	result, err := client.CancelRepositoryImport(context.Background(), "group/app", false)
	gt.Error(t, err)
	gt.V(t, result.Status).Equal(types.CancelStatusError)
}
