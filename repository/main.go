package repository

import (
	"gorm.io/gorm"

	"github.com/imgdose/imgdose-api/infra"
)

type Repository struct {
	ImageRepo *ImageRepository
	AuditRepo *AuditEventRepository
}

var repository *Repository

func InitRepository(infra *infra.Infra) *Repository {
	repository = &Repository{
		ImageRepo: NewImageRepository(infra.Postgres.DB),
		AuditRepo: NewAuditEventRepository(infra.Postgres.DB),
	}
	return repository
}

func GetRepository() *Repository {
	if repository == nil {
		panic("repository not initialized")
	}
	return repository
}

func (r *Repository) BeginTransaction(db *gorm.DB) *gorm.DB {
	return db.Begin()
}

func (r *Repository) WithTransaction(tx *gorm.DB) *Repository {
	return &Repository{
		ImageRepo: NewImageRepository(tx),
		AuditRepo: NewAuditEventRepository(tx),
	}
}
