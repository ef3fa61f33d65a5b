package registry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/domain/interfaces"
	"github.com/m-mizutani/regmig/pkg/domain/model"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
	"github.com/m-mizutani/regmig/pkg/utils/safe"
	"golang.org/x/time/rate"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the import API of the container registry.
type Client struct {
	baseURL    *url.URL
	token      types.RegistryToken
	httpClient HTTPClient
	limiter    *rate.Limiter
	maxRetry   time.Duration
}

var _ interfaces.RegistryClient = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(client HTTPClient) Option {
	return func(x *Client) {
		x.httpClient = client
	}
}

// WithRateLimit throttles all requests to the registry. Zero disables throttling.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(x *Client) {
		if perSecond <= 0 {
			x.limiter = nil
			return
		}
		x.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithRetryMaxElapsedTime bounds retries of the status query.
func WithRetryMaxElapsedTime(d time.Duration) Option {
	return func(x *Client) {
		x.maxRetry = d
	}
}

func New(baseURL string, token types.RegistryToken, options ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse registry URL", goerr.V("url", baseURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "registry URL must be http or https", goerr.V("url", baseURL))
	}
	if u.Path == "" {
		u.Path = "/"
	}

	client := &Client{
		baseURL:    u,
		token:      token,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(10), 10),
		maxRetry:   30 * time.Second,
	}
	for _, opt := range options {
		opt(client)
	}
	return client, nil
}

func (x *Client) importURL(path types.RepositoryPath) *url.URL {
	u := x.baseURL.JoinPath("gitlab", "v1", "import", path.String())
	u.Path += "/"
	if u.RawPath != "" {
		u.RawPath += "/"
	}
	return u
}

type statusBody struct {
	Status string `json:"status"`
}

// do sends a request and returns status code and the decoded status field of the body. A body
// that is not JSON leaves the status empty.
func (x *Client) do(ctx context.Context, method string, u *url.URL) (int, string, error) {
	if x.limiter != nil {
		if err := x.limiter.Wait(ctx); err != nil {
			return 0, "", goerr.Wrap(err, "rate limiter canceled")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return 0, "", goerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	if x.token != "" {
		req.Header.Set("Authorization", "Bearer "+string(x.token))
	}

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return 0, "", goerr.Wrap(err, "failed to send request", goerr.V("method", method), goerr.V("url", u.String()))
	}
	defer safe.Close(resp.Body)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, "", goerr.Wrap(err, "failed to read response body")
	}

	var body statusBody
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			logging.From(ctx).Debug("registry response is not JSON",
				"method", method,
				"url", u.String(),
				"code", resp.StatusCode,
			)
		}
	}
	return resp.StatusCode, body.Status, nil
}

var importResponses = map[int]types.ImportResponse{
	http.StatusOK:               types.ImportResponseAlreadyImported,
	http.StatusAccepted:         types.ImportResponseOK,
	http.StatusBadRequest:       types.ImportResponseBadRequest,
	http.StatusUnauthorized:     types.ImportResponseUnauthorized,
	http.StatusNotFound:         types.ImportResponseNotFound,
	http.StatusConflict:         types.ImportResponseAlreadyBeingImported,
	http.StatusTooEarly:         types.ImportResponseAlreadyBeingImported,
	http.StatusFailedDependency: types.ImportResponsePreImportFailed,
	http.StatusTooManyRequests:  types.ImportResponseTooManyImports,
}

// ImportRepository starts a pre-import or final import of the repository.
func (x *Client) ImportRepository(ctx context.Context, path types.RepositoryPath, importType types.ImportType) (types.ImportResponse, error) {
	u := x.importURL(path)
	q := u.Query()
	q.Set("import_type", string(importType))
	u.RawQuery = q.Encode()

	code, _, err := x.do(ctx, http.MethodPut, u)
	if err != nil {
		return types.ImportResponseError, goerr.Wrap(err, "failed to request import",
			goerr.V("path", path),
			goerr.V("import_type", importType),
		)
	}

	resp, ok := importResponses[code]
	if !ok {
		logging.From(ctx).Warn("unexpected import response", "path", path, "code", code)
		return types.ImportResponseError, nil
	}
	return resp, nil
}

// ImportStatus returns the import status the registry holds. Transport failures and 5xx are
// retried with exponential backoff. Any other non-2xx response is reported as error status.
func (x *Client) ImportStatus(ctx context.Context, path types.RepositoryPath) (types.ExternalImportStatus, error) {
	u := x.importURL(path)

	operation := func() (types.ExternalImportStatus, error) {
		code, status, err := x.do(ctx, http.MethodGet, u)
		if err != nil {
			return "", err
		}
		if code >= 500 {
			return "", goerr.New("registry server error", goerr.V("code", code))
		}
		if code < 200 || code > 299 {
			return types.ExternalStatusError, nil
		}
		if status == "" {
			return "", backoff.Permanent(goerr.Wrap(types.ErrInvalidResponse, "status is missing in response", goerr.V("path", path)))
		}
		return types.ExternalImportStatus(status), nil
	}

	status, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(x.maxRetry),
	)
	if err != nil {
		return types.ExternalStatusError, goerr.Wrap(err, "failed to get import status", goerr.V("path", path))
	}
	return status, nil
}

var cancelStatuses = map[int]types.CancelStatus{
	http.StatusAccepted:   types.CancelStatusOK,
	http.StatusBadRequest: types.CancelStatusBadRequest,
	http.StatusNotFound:   types.CancelStatusNotFound,
}

// CancelRepositoryImport cancels an ongoing import. The registry reports its view of the import
// in the body, which the caller uses to reconcile a rejected cancel.
func (x *Client) CancelRepositoryImport(ctx context.Context, path types.RepositoryPath, force bool) (*model.CancelResult, error) {
	u := x.importURL(path)
	if force {
		q := u.Query()
		q.Set("force", "true")
		u.RawQuery = q.Encode()
	}

	code, status, err := x.do(ctx, http.MethodDelete, u)
	if err != nil {
		return &model.CancelResult{Status: types.CancelStatusError}, goerr.Wrap(err, "failed to cancel import",
			goerr.V("path", path),
			goerr.V("force", force),
		)
	}

	result := &model.CancelResult{
		Status: types.CancelStatusError,
		State:  types.ExternalImportStatus(status),
	}
	if s, ok := cancelStatuses[code]; ok {
		result.Status = s
	}
	return result, nil
}
