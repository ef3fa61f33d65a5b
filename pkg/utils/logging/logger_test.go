package logging_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/domain/types"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { _ = logging.Configure("text", "info", "stdout") })

	t.Run("json to file masks secrets and carries service name", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "regmig.log")
		gt.NoError(t, logging.Configure("json", "info", path))

		logging.Default().Debug("hidden")
		logging.Default().Info("registry configured",
			"token", types.RegistryToken("glpat-very-secret"),
			"worker", types.WorkerEnqueuer,
		)

		raw := gt.R1(os.ReadFile(path)).NoError(t)
		lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
		gt.A(t, lines).Length(1)

		var record map[string]any
		gt.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
		gt.V(t, record["msg"]).Equal("registry configured")
		gt.V(t, record["service"]).Equal(logging.ServiceName)
		gt.V(t, record["worker"]).Equal(string(types.WorkerEnqueuer))
		gt.False(t, strings.Contains(string(raw), "glpat-very-secret"))
	})

	t.Run("file output is appended", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "regmig.log")
		gt.NoError(t, logging.Configure("json", "info", path))
		logging.Default().Info("first")
		gt.NoError(t, logging.Configure("json", "info", path))
		logging.Default().Info("second")

		raw := gt.R1(os.ReadFile(path)).NoError(t)
		gt.A(t, strings.Split(strings.TrimSpace(string(raw)), "\n")).Length(2)
	})

	t.Run("text format", func(t *testing.T) {
		gt.NoError(t, logging.Configure("text", "debug", "stderr"))
	})

	testCases := map[string]struct {
		format, level, output string
	}{
		"invalid format":    {"yaml", "info", "stdout"},
		"invalid level":     {"json", "trace", "stdout"},
		"unwritable output": {"json", "info", filepath.Join(t.TempDir(), "missing", "regmig.log")},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := logging.Configure(tc.format, tc.level, tc.output)
			gt.Error(t, err)
			if name != "unwritable output" {
				gt.True(t, errors.Is(err, types.ErrInvalidOption))
			}
		})
	}
}
