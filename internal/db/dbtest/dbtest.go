// Package dbtest opens isolated in-memory databases for tests.
package dbtest

import (
	"context"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/nutshop/internal/config"
	"github.com/Skotchmaster/nutshop/internal/db"
)

// New returns a migrated, unseeded in-memory sqlite database private to t.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	gdb, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), db.GormConfig(config.DriverSQLite))
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(context.Background(), gdb))
	return gdb
}

// NewSeeded is New plus the default catalog.
func NewSeeded(t testing.TB) *gorm.DB {
	t.Helper()

	gdb := New(t)
	_, err := db.Seed(context.Background(), gdb)
	require.NoError(t, err)
	return gdb
}
