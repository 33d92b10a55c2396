package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"apnadoctor/internal/infra"
	"apnadoctor/internal/models/db_models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "apnadoctor.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, email string) db_models.Account {
	t.Helper()
	account := db_models.Account{FullName: "Test User", Email: email, PasswordHash: "x"}
	require.NoError(t, NewAccountRepository(db).Insert(context.Background(), &account))
	require.NotEqual(t, uuid.Nil, account.ID)
	return account
}
