package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=settings_repo.go -destination=mock/settings_repo_mock.go -package=mock
type Repository interface {
	Get(ctx context.Context) (*CompanySettings, error)
	Create(ctx context.Context, s *CompanySettings) error
	Upsert(ctx context.Context, s *CompanySettings) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (*CompanySettings, error) {
	var s CompanySettings
	err := r.db.WithContext(ctx).First(&s, "id = ?", 1).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Create(ctx context.Context, s *CompanySettings) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) Upsert(ctx context.Context, s *CompanySettings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(s).Error
}
