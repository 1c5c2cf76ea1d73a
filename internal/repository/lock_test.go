package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oggyb/accountadate/internal/db"
)

// dryRunMySQL builds a mysql handle that renders SQL without a server.
func dryRunMySQL(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "app:app@tcp(127.0.0.1:3306)/accountadate?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return gdb
}

func TestSwipeLocksOnMySQL(t *testing.T) {
	gdb := dryRunMySQL(t)

	accounts := gdb.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var users []db.User
		return lockAccounts(tx, []uint64{3, 7}).Find(&users)
	})
	assert.Contains(t, accounts, "IN (3,7)")
	assert.Contains(t, accounts, "ORDER BY id")
	assert.Contains(t, accounts, "FOR UPDATE")

	like := gdb.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var n int64
		return reciprocalLike(tx, 7, 3).Count(&n)
	})
	assert.Contains(t, like, "FOR UPDATE")
}

func TestSwipeLocksSkippedOnSQLite(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{DryRun: true})
	require.NoError(t, err)

	accounts := gdb.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var users []db.User
		return lockAccounts(tx, []uint64{3, 7}).Find(&users)
	})
	assert.Contains(t, accounts, "ORDER BY id")
	assert.NotContains(t, accounts, "FOR UPDATE")
}
