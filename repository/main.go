package repository

import (
	"github.com/nitchakan-dev/filevault/infra"
	"gorm.io/gorm"
)

type Repository struct {
	FileObjectRepo *FileObjectRepository
	UserRepo       *UserRepository
	AuditEventRepo *AuditEventRepository

	db *gorm.DB
}

var repository *Repository

func InitRepository(infra *infra.Infra) *Repository {
	repository = NewRepository(infra.Postgres.DB)
	return repository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		FileObjectRepo: NewFileObjectRepository(db),
		UserRepo:       NewUserRepository(db),
		AuditEventRepo: NewAuditEventRepository(db),
		db:             db,
	}
}

func GetRepository() *Repository {
	if repository == nil {
		panic("repository not initialized")
	}
	return repository
}

func (r *Repository) DB() *gorm.DB {
	return r.db
}

func (r *Repository) BeginTransaction() *gorm.DB {
	return r.db.Begin()
}

func (r *Repository) WithTransaction(tx *gorm.DB) *Repository {
	return &Repository{
		FileObjectRepo: NewFileObjectRepository(tx),
		UserRepo:       NewUserRepository(tx),
		AuditEventRepo: NewAuditEventRepository(tx),
		db:             tx,
	}
}
