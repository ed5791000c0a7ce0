package repository

import (
	"path/filepath"
	"testing"

	"github.com/nitchakan-dev/filevault/entity"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.FileObject{},
		&entity.User{},
		&entity.AuditEvent{},
	))

	return db
}

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(newTestDB(t))
}
