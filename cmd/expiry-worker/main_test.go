package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackgods/clinic-records-api/internal/config"
)

func TestOpenStoreRejectsMemoryStorage(t *testing.T) {
	store, closeStore, err := openStore(context.Background(), config.Config{Storage: config.StorageMemory})
	require.ErrorIs(t, err, errMemoryStorage)
	assert.Nil(t, store)
	assert.Nil(t, closeStore)
}

func TestOpenStoreReportsBadDSN(t *testing.T) {
	_, _, err := openStore(context.Background(), config.Config{
		Storage:     config.StoragePostgres,
		PostgresDSN: "postgres://clinic@localhost:notaport/clinic",
	})
	assert.ErrorContains(t, err, "parse postgres dsn")
}
