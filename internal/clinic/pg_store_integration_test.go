//go:build integration

package clinic_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hackgods/clinic-records-api/internal/clinic"
	"github.com/hackgods/clinic-records-api/internal/db"
)

// Run with: POSTGRES_DSN=postgres://... go test -tags integration ./internal/clinic/
// The tables in that database are truncated.
func TestPgStoreContract(t *testing.T) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, db.EnsureSchema(ctx, pool))

	storeContract(t, func(t *testing.T) clinic.Store {
		_, err := pool.Exec(context.Background(),
			`TRUNCATE event_logs, prescriptions, appointments, medicines, doctors, patients RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
		return clinic.NewPgStore(pool)
	})
}
