//go:build integration_test || all_tests

package strength_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/2beens/overload/internal/db"
	"github.com/2beens/overload/internal/overload/strength"
	pkgtesting "github.com/2beens/overload/pkg/testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func testRedisStore(t *testing.T) (strength.Store, func()) {
	t.Helper()
	rdb := pkgtesting.RedisClient(t)
	return strength.NewRedisStore(rdb), func() {}
}

func testPostgresStore(t *testing.T) (strength.Store, func()) {
	t.Helper()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	params := db.NewDBPoolParams{
		DBHost: envOr("POSTGRES_HOST", "localhost"),
		DBPort: envOr("POSTGRES_PORT", "5432"),
		DBName: envOr("POSTGRES_DB", "overload"),
	}
	require.NoError(t, db.Migrate(params.ConnString()))

	dbPool, err := db.NewDBPool(timeoutCtx, params)
	require.NoError(t, err)

	return strength.NewPostgresStore(dbPool), func() {
		dbPool.Close()
	}
}

func TestStores_ConcurrentAppendsKeepPRsConsistent(t *testing.T) {
	setups := map[string]func(t *testing.T) (strength.Store, func()){
		"redis":    testRedisStore,
		"postgres": testPostgresStore,
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			store, shutdown := setup(t)
			defer shutdown()

			ctx := context.Background()
			tracker := strength.NewTracker(store)
			userID := gofakeit.UUID()

			const workers = 4
			const perWorker = 10
			inputs := make([][]strength.SetParams, workers)
			for w := 0; w < workers; w++ {
				for i := 0; i < perWorker; i++ {
					inputs[w] = append(inputs[w], strength.SetParams{
						UserID:     userID,
						ExerciseID: "bench_press",
						Weight:     gofakeit.Float64Range(40, 140),
						Reps:       gofakeit.Number(1, 10),
					})
				}
			}

			var wg sync.WaitGroup
			for w := 0; w < workers; w++ {
				wg.Add(1)
				go func(params []strength.SetParams) {
					defer wg.Done()
					for _, p := range params {
						_, err := tracker.Record(ctx, p)
						assert.NoError(t, err)
					}
				}(inputs[w])
			}
			wg.Wait()

			history, err := tracker.History(ctx, userID, "bench_press", 0)
			require.NoError(t, err)
			require.Len(t, history, workers*perWorker)

			best := -1.0
			for i := len(history) - 1; i >= 0; i-- {
				rec := history[i]
				assert.Equal(t, rec.EstimatedOneRepMax > best, rec.IsPR, "record %s", rec.ID)
				if rec.EstimatedOneRepMax > best {
					best = rec.EstimatedOneRepMax
				}
			}

			prs, err := tracker.AllPRs(ctx, userID, 0)
			require.NoError(t, err)
			assert.NotEmpty(t, prs)
		})
	}
}
