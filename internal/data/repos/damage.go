package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/motodiag-backend/internal/domain"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
)

type DamageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, damages []*domain.Damage) ([]*domain.Damage, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Damage, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Damage, error)
	GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*domain.Damage, error)
	Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	AddCauses(ctx context.Context, tx *gorm.DB, causes []*domain.Cause) ([]*domain.Cause, error)
	AddSolutions(ctx context.Context, tx *gorm.DB, solutions []*domain.Solution) ([]*domain.Solution, error)
	// Delete removes the damage with its causes and solutions. Rules that
	// conclude it are left in place.
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type damageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDamageRepo(db *gorm.DB, baseLog *logger.Logger) DamageRepo {
	repoLog := baseLog.With("repo", "DamageRepo")
	return &damageRepo{db: db, log: repoLog}
}

func orderByID(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }

func withChildren(db *gorm.DB) *gorm.DB {
	return db.Preload("Causes", orderByID).Preload("Solutions", orderByID)
}

func (dr *damageRepo) Create(ctx context.Context, tx *gorm.DB, damages []*domain.Damage) ([]*domain.Damage, error) {
	if len(damages) == 0 {
		return []*domain.Damage{}, nil
	}
	if err := pick(tx, dr.db).WithContext(ctx).Create(&damages).Error; err != nil {
		return nil, err
	}
	for _, d := range damages {
		normalizeDamage(d)
	}
	return damages, nil
}

func (dr *damageRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Damage, error) {
	var results []*domain.Damage
	if err := withChildren(pick(tx, dr.db).WithContext(ctx)).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	for _, d := range results {
		normalizeDamage(d)
	}
	return results, nil
}

// GetByID returns the damage with causes and solutions in creation order, or
// gorm.ErrRecordNotFound.
func (dr *damageRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Damage, error) {
	var d domain.Damage
	if err := withChildren(pick(tx, dr.db).WithContext(ctx)).First(&d, id).Error; err != nil {
		return nil, err
	}
	normalizeDamage(&d)
	return &d, nil
}

func (dr *damageRepo) GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*domain.Damage, error) {
	var results []*domain.Damage
	if len(codes) == 0 {
		return results, nil
	}
	if err := pick(tx, dr.db).WithContext(ctx).
		Where("code IN ?", codes).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *damageRepo) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := pick(tx, dr.db).WithContext(ctx).
		Model(&domain.Damage{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (dr *damageRepo) AddCauses(ctx context.Context, tx *gorm.DB, causes []*domain.Cause) ([]*domain.Cause, error) {
	if len(causes) == 0 {
		return []*domain.Cause{}, nil
	}
	if err := pick(tx, dr.db).WithContext(ctx).Create(&causes).Error; err != nil {
		return nil, err
	}
	return causes, nil
}

func (dr *damageRepo) AddSolutions(ctx context.Context, tx *gorm.DB, solutions []*domain.Solution) ([]*domain.Solution, error) {
	if len(solutions) == 0 {
		return []*domain.Solution{}, nil
	}
	if err := pick(tx, dr.db).WithContext(ctx).Create(&solutions).Error; err != nil {
		return nil, err
	}
	return solutions, nil
}

func (dr *damageRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	res := pick(tx, dr.db).WithContext(ctx).
		Select("Causes", "Solutions").
		Delete(&domain.Damage{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// API consumers expect empty arrays rather than null.
func normalizeDamage(d *domain.Damage) {
	if d.Causes == nil {
		d.Causes = []domain.Cause{}
	}
	if d.Solutions == nil {
		d.Solutions = []domain.Solution{}
	}
}
