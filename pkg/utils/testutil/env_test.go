package testutil_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/regmig/pkg/utils/testutil"
)

func TestGetEnvsOrSkip(t *testing.T) {
	t.Run("returns values in order", func(t *testing.T) {
		t.Setenv("TEST_REGMIG_PROJECT", "project")
		t.Setenv("TEST_REGMIG_DATABASE", "database")

		values := testutil.GetEnvsOrSkip(t, "TEST_REGMIG_PROJECT", "TEST_REGMIG_DATABASE")
		gt.A(t, values).Equal([]string{"project", "database"})
		gt.V(t, testutil.GetEnvOrSkip(t, "TEST_REGMIG_DATABASE")).Equal("database")
	})

	t.Run("skips when one key is missing", func(t *testing.T) {
		t.Setenv("TEST_REGMIG_PROJECT", "project")
		t.Setenv("TEST_REGMIG_DATABASE", "")

		var inner *testing.T
		var reached bool
		t.Run("integration", func(t *testing.T) {
			inner = t
			testutil.GetEnvsOrSkip(t, "TEST_REGMIG_PROJECT", "TEST_REGMIG_DATABASE")
			reached = true
		})
		gt.True(t, inner.Skipped())
		gt.False(t, reached)
	})
}
