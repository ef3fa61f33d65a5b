package errutil_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/utils/errutil"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

func TestHandleError(t *testing.T) {
	t.Run("logs error with message", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := logging.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))
		err := goerr.New("registry unavailable", goerr.V("path", "group/image"))

		errutil.HandleError(ctx, "failed to start pre-import", err)

		var record map[string]any
		gt.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		gt.V(t, record["level"]).Equal("ERROR")
		gt.V(t, record["msg"]).Equal("failed to start pre-import")
		gt.True(t, bytes.Contains(buf.Bytes(), []byte("registry unavailable")))
	})

	t.Run("handle nil error", func(t *testing.T) {
		// Should not panic
		errutil.HandleError(context.Background(), "test message", nil)
	})
}
