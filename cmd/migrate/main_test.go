package main

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDSN(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv(envDSN, "")
		dsn = ""
		assert.Equal(t, defaultDSN, resolveDSN())
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv(envDSN, "postgres://env@db/brief")
		dsn = ""
		assert.Equal(t, "postgres://env@db/brief", resolveDSN())
	})

	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(envDSN, "postgres://env@db/brief")
		dsn = "postgres://flag@db/brief"
		t.Cleanup(func() { dsn = "" })
		assert.Equal(t, "postgres://flag@db/brief", resolveDSN())
	})
}

func TestMigrationsArePaired(t *testing.T) {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, f := range files {
		name := strings.TrimPrefix(f, "migrations/")
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file %s", name)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestStepsRequiresArgument(t *testing.T) {
	err := stepsCmd.Args(stepsCmd, []string{})
	assert.Error(t, err)
}
