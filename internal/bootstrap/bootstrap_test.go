package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onboarding/backend/internal/config"
	"onboarding/backend/internal/errdefs"
	"onboarding/backend/internal/logging"
)

// recorder builds fake stages that append their name to calls.
type recorder struct {
	calls []string

	provisionErr error
	migrateErr   error
	importErr    error
	created      bool
}

func (r *recorder) provisioner() Provisioner {
	return ProvisionerFunc(func(ctx context.Context) (bool, error) {
		r.calls = append(r.calls, "ensure")
		return r.created, r.provisionErr
	})
}

func (r *recorder) migrator() Migrator {
	return MigratorFunc(func(ctx context.Context) (int, error) {
		r.calls = append(r.calls, "migrate")
		return 1, r.migrateErr
	})
}

func (r *recorder) importer() Importer {
	return ImporterFunc(func(ctx context.Context) error {
		r.calls = append(r.calls, "import")
		return r.importErr
	})
}

func testConfig() *config.Config {
	return &config.Config{Profile: "local", DBName: "onboarding_local"}
}

func newTestRunner(r *recorder) *Runner {
	logger := logging.NewLoggerWithLevel(logging.LevelError)
	return NewRunner(testConfig(), logger, r.provisioner(), r.migrator(), r.importer())
}

func TestRunnerRun(t *testing.T) {
	ctx := context.Background()

	t.Run("runs ensure then migrate", func(t *testing.T) {
		r := &recorder{created: true}
		err := newTestRunner(r).Run(ctx, Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"ensure", "migrate"}, r.calls)
	})

	t.Run("import runs last when requested", func(t *testing.T) {
		r := &recorder{}
		err := newTestRunner(r).Run(ctx, Options{Import: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"ensure", "migrate", "import"}, r.calls)
	})

	t.Run("provisioning failure stops before migrating", func(t *testing.T) {
		cause := errors.New("server unreachable")
		r := &recorder{provisionErr: cause}

		err := newTestRunner(r).Run(ctx, Options{Import: true})
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)

		var depErr *errdefs.DependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Equal(t, "database setup", depErr.Stage)

		assert.Equal(t, []string{"ensure"}, r.calls)
	})

	t.Run("migration failure stops before importing", func(t *testing.T) {
		cause := errors.New("syntax error at or near")
		r := &recorder{migrateErr: cause}

		err := newTestRunner(r).Run(ctx, Options{Import: true})
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)

		var depErr *errdefs.DependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Equal(t, "migration", depErr.Stage)

		assert.Equal(t, []string{"ensure", "migrate"}, r.calls)
	})

	t.Run("import failure is a dependency error", func(t *testing.T) {
		cause := errors.New("disk full")
		r := &recorder{importErr: cause}

		err := newTestRunner(r).Run(ctx, Options{Import: true})
		require.Error(t, err)

		var depErr *errdefs.DependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Equal(t, "import", depErr.Stage)
	})

	t.Run("import without an importer fails", func(t *testing.T) {
		r := &recorder{}
		logger := logging.NewLoggerWithLevel(logging.LevelError)
		runner := NewRunner(testConfig(), logger, r.provisioner(), r.migrator(), nil)

		err := runner.Run(ctx, Options{Import: true})
		assert.ErrorContains(t, err, "no importer configured")
	})
}
