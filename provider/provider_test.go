package provider

import (
	"path/filepath"
	"testing"

	"github.com/nitchakan-dev/filevault/config"
	"github.com/nitchakan-dev/filevault/entity"
	infraPkg "github.com/nitchakan-dev/filevault/infra"
	"github.com/nitchakan-dev/filevault/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	provider *Provider
	repo     *repository.Repository
	blob     infraPkg.BlobStorage
	db       *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
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

	blob, err := infraPkg.NewLocalBlobStorage(t.TempDir())
	require.NoError(t, err)

	cfg := &config.EnvConfig{}
	infr := &infraPkg.Infra{
		Logger: infraPkg.InitLoggerClient(cfg),
		Blob:   blob,
	}
	repo := repository.NewRepository(db)

	return &testEnv{
		provider: NewProvider(cfg, infr, repo),
		repo:     repo,
		blob:     blob,
		db:       db,
	}
}
