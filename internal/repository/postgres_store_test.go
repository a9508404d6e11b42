package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"onboarding/backend/internal/logging"
	"onboarding/backend/internal/migrations"
	"onboarding/backend/pkg/models"
)

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test-db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2)),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatal(err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Close()

	// Bring up the real schema.
	logger := logging.NewLoggerWithLevel(logging.LevelError)
	_, err = migrations.New(pool, migrations.DefaultSource(), logger).Up(ctx)
	require.NoError(t, err)

	store := NewPostgresStore(pool)

	seed := []*models.SkinCancerRecord{
		{DataType: "Incidence", CancerGroup: "Melanoma of the skin", Year: 2016, Sex: "Males", AgeGroup: "45-49", Count: 401},
		{DataType: "Incidence", CancerGroup: "Melanoma of the skin", Year: 2016, Sex: "Females", AgeGroup: "45-49", Count: 364},
		{DataType: "Incidence", CancerGroup: "Melanoma of the skin", Year: 2017, Sex: "Males", AgeGroup: "45-49", Count: 409},
		{DataType: "Mortality", CancerGroup: "Melanoma of the skin", Year: 2016, Sex: "Males", AgeGroup: "45-49", Count: 31},
	}

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})

	t.Run("Insert and Count", func(t *testing.T) {
		require.NoError(t, store.InsertSkinCancerRecords(ctx, seed))

		count, err := store.CountSkinCancerRecords(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, len(seed), count)

		// Inserting assigned IDs to the records in place.
		for _, rec := range seed {
			assert.NotEmpty(t, rec.ID)
		}
	})

	t.Run("List with filters", func(t *testing.T) {
		records, err := store.ListSkinCancerRecords(ctx, SkinCancerFilter{
			DataType: "Incidence",
			Sex:      "Males",
		})
		require.NoError(t, err)
		require.Len(t, records, 2)
		// Newest year first.
		assert.Equal(t, 2017, records[0].Year)
		assert.Equal(t, 2016, records[1].Year)

		records, err = store.ListSkinCancerRecords(ctx, SkinCancerFilter{Year: 2016})
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})

	t.Run("List respects the limit", func(t *testing.T) {
		records, err := store.ListSkinCancerRecords(ctx, SkinCancerFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("DeleteAll", func(t *testing.T) {
		deleted, err := store.DeleteAllSkinCancerRecords(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, len(seed), deleted)

		count, err := store.CountSkinCancerRecords(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
