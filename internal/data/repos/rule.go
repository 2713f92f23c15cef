package repos

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/motodiag-backend/internal/domain"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
)

type RuleRepo interface {
	// Create inserts the rule and one join row per entry in symptomIDs.
	Create(ctx context.Context, tx *gorm.DB, damageID uint, symptomIDs []uint) (*domain.Rule, error)
	// ListOrdered returns every rule by ascending id with its symptom links
	// resolved. A link whose symptom no longer exists has a nil Symptom.
	ListOrdered(ctx context.Context, tx *gorm.DB) ([]*domain.Rule, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Rule, error)
}

type ruleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRuleRepo(db *gorm.DB, baseLog *logger.Logger) RuleRepo {
	repoLog := baseLog.With("repo", "RuleRepo")
	return &ruleRepo{db: db, log: repoLog}
}

func (rr *ruleRepo) Create(ctx context.Context, tx *gorm.DB, damageID uint, symptomIDs []uint) (*domain.Rule, error) {
	create := func(tx *gorm.DB) (*domain.Rule, error) {
		r := &domain.Rule{DamageID: damageID}
		if err := tx.WithContext(ctx).Create(r).Error; err != nil {
			return nil, fmt.Errorf("create rule: %w", err)
		}
		links := make([]*domain.RuleSymptom, 0, len(symptomIDs))
		for _, sid := range symptomIDs {
			links = append(links, &domain.RuleSymptom{RuleID: r.ID, SymptomID: sid})
		}
		if len(links) > 0 {
			if err := tx.WithContext(ctx).Create(&links).Error; err != nil {
				return nil, fmt.Errorf("create rule symptoms: %w", err)
			}
		}
		for _, l := range links {
			r.Symptoms = append(r.Symptoms, *l)
		}
		return r, nil
	}

	if tx != nil {
		return create(tx)
	}
	var out *domain.Rule
	err := rr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := create(tx)
		out = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (rr *ruleRepo) ListOrdered(ctx context.Context, tx *gorm.DB) ([]*domain.Rule, error) {
	var results []*domain.Rule
	if err := pick(tx, rr.db).WithContext(ctx).
		Preload("Symptoms", orderByID).
		Preload("Symptoms.Symptom").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *ruleRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Rule, error) {
	var r domain.Rule
	if err := pick(tx, rr.db).WithContext(ctx).
		Preload("Symptoms", orderByID).
		Preload("Symptoms.Symptom").
		First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}
