package repositories

import (
	"context"

	"gorm.io/gorm"
	"tripcraft/internal/models/db_models"
)

type IGenerationRepository interface {
	Create(ctx context.Context, record *db_models.GenerationRecord) error
	CountByStatus(ctx context.Context, kind db_models.GenerationKind, status db_models.GenerationStatus) (int64, error)
}

type GenerationRepository struct {
	db *gorm.DB
}

// NewGenerationRepository returns a no-op repository when db is nil, so the
// generation log can be switched off without touching callers.
func NewGenerationRepository(db *gorm.DB) IGenerationRepository {
	if db == nil {
		return nopGenerationRepository{}
	}
	return &GenerationRepository{db: db}
}

func (g *GenerationRepository) Create(ctx context.Context, record *db_models.GenerationRecord) error {
	return g.db.WithContext(ctx).Create(record).Error
}

func (g *GenerationRepository) CountByStatus(ctx context.Context, kind db_models.GenerationKind, status db_models.GenerationStatus) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).
		Model(&db_models.GenerationRecord{}).
		Where("kind = ? AND status = ?", kind, status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

type nopGenerationRepository struct{}

func (nopGenerationRepository) Create(context.Context, *db_models.GenerationRecord) error {
	return nil
}

func (nopGenerationRepository) CountByStatus(context.Context, db_models.GenerationKind, db_models.GenerationStatus) (int64, error) {
	return 0, nil
}
