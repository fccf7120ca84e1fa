package db

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func TestOpenRetrySurfacesPingFailure(t *testing.T) {
	pingErr := errors.New("no route to host")

	// Open succeeds against the in-memory store; only the ping fails. The
	// dead connection must not be handed back as a working one.
	base, err := openRetry(sqlite.Open(":memory:"), 2, 0, func(*sql.DB) error {
		return pingErr
	})
	assert.Nil(t, base)
	assert.ErrorIs(t, err, pingErr)
}

func TestOpenRetryReturnsPingedConnection(t *testing.T) {
	base, err := openRetry(sqlite.Open(":memory:"), 1, 0, func(sqlDB *sql.DB) error {
		return sqlDB.Ping()
	})
	require.NoError(t, err)
	assert.NotNil(t, base)
}
