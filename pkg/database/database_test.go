package database_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CPTV27/Scan2Plan-OS-sub002/pkg/database"
)

func testConfig() database.Config {
	return database.Config{
		Host:            "127.0.0.1",
		Port:            1,
		Name:            "brief",
		User:            "brief",
		SSLMode:         "disable",
		MaxOpenConns:    42,
		MaxIdleConns:    7,
		ConnMaxLifetime: "10m",
		ConnTimeout:     "200ms",
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewSetsPoolParams(t *testing.T) {
	cfg := testConfig()
	sys, err := database.New(&cfg, discard())
	require.NoError(t, err)

	conn := sys.Connection()
	require.NotNil(t, conn)
	defer conn.Close()

	assert.Equal(t, 42, conn.Stats().MaxOpenConnections)
	assert.False(t, sys.Ready(), "not ready before ping")
}

func TestPingUnreachable(t *testing.T) {
	cfg := testConfig()
	sys, err := database.New(&cfg, discard())
	require.NoError(t, err)
	defer sys.Connection().Close()

	err = sys.Ping(context.Background())
	assert.ErrorIs(t, err, database.ErrNotReady)
	assert.False(t, sys.Ready())
}
