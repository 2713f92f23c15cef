package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/motodiag-backend/internal/domain"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
)

type ConsultationRepo interface {
	// Create inserts the consultation together with its symptom rows.
	Create(ctx context.Context, tx *gorm.DB, c *domain.Consultation) (*domain.Consultation, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Consultation, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*domain.Consultation, error)
}

type consultationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConsultationRepo(db *gorm.DB, baseLog *logger.Logger) ConsultationRepo {
	repoLog := baseLog.With("repo", "ConsultationRepo")
	return &consultationRepo{db: db, log: repoLog}
}

func (cr *consultationRepo) Create(ctx context.Context, tx *gorm.DB, c *domain.Consultation) (*domain.Consultation, error) {
	if c == nil {
		return nil, fmt.Errorf("consultation is nil")
	}
	// gorm creates the Symptoms association in the same statement batch.
	if err := pick(tx, cr.db).WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (cr *consultationRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Consultation, error) {
	var results []*domain.Consultation
	if err := pick(tx, cr.db).WithContext(ctx).
		Preload("Symptoms", orderByID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *consultationRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uint) ([]*domain.Consultation, error) {
	var results []*domain.Consultation
	if err := pick(tx, cr.db).WithContext(ctx).
		Preload("Symptoms", orderByID).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
