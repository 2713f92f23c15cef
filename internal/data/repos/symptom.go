package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/motodiag-backend/internal/domain"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
)

type SymptomRepo interface {
	Create(ctx context.Context, tx *gorm.DB, symptoms []*domain.Symptom) ([]*domain.Symptom, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Symptom, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*domain.Symptom, error)
	GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*domain.Symptom, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type symptomRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSymptomRepo(db *gorm.DB, baseLog *logger.Logger) SymptomRepo {
	repoLog := baseLog.With("repo", "SymptomRepo")
	return &symptomRepo{db: db, log: repoLog}
}

func (sr *symptomRepo) Create(ctx context.Context, tx *gorm.DB, symptoms []*domain.Symptom) ([]*domain.Symptom, error) {
	if len(symptoms) == 0 {
		return []*domain.Symptom{}, nil
	}
	if err := pick(tx, sr.db).WithContext(ctx).Create(&symptoms).Error; err != nil {
		return nil, err
	}
	return symptoms, nil
}

func (sr *symptomRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Symptom, error) {
	var results []*domain.Symptom
	if err := pick(tx, sr.db).WithContext(ctx).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *symptomRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*domain.Symptom, error) {
	var results []*domain.Symptom
	if len(ids) == 0 {
		return results, nil
	}
	if err := pick(tx, sr.db).WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *symptomRepo) GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*domain.Symptom, error) {
	var results []*domain.Symptom
	if len(codes) == 0 {
		return results, nil
	}
	if err := pick(tx, sr.db).WithContext(ctx).
		Where("code IN ?", codes).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *symptomRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := pick(tx, sr.db).WithContext(ctx).
		Model(&domain.Symptom{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
