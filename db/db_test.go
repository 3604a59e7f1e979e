package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	src, err := iofs.New(migrationFS, "migrations")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	require.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	require.Equal(t, uint(2), next)

	for _, v := range []uint{first, next} {
		r, _, err := src.ReadUp(v)
		require.NoError(t, err)
		r.Close()
		r, _, err = src.ReadDown(v)
		require.NoError(t, err)
		r.Close()
	}
}

func TestConfigurePool(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	configurePool(db)
	require.Equal(t, maxOpenConns, db.Stats().MaxOpenConnections)
}
