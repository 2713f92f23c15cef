package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/motodiag-backend/internal/domain"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
)

type MotorcycleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, motorcycles []*domain.Motorcycle) ([]*domain.Motorcycle, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Motorcycle, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Motorcycle, error)
}

type motorcycleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMotorcycleRepo(db *gorm.DB, baseLog *logger.Logger) MotorcycleRepo {
	repoLog := baseLog.With("repo", "MotorcycleRepo")
	return &motorcycleRepo{db: db, log: repoLog}
}

func (mr *motorcycleRepo) Create(ctx context.Context, tx *gorm.DB, motorcycles []*domain.Motorcycle) ([]*domain.Motorcycle, error) {
	if len(motorcycles) == 0 {
		return []*domain.Motorcycle{}, nil
	}
	if err := pick(tx, mr.db).WithContext(ctx).Create(&motorcycles).Error; err != nil {
		return nil, err
	}
	return motorcycles, nil
}

func (mr *motorcycleRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Motorcycle, error) {
	var results []*domain.Motorcycle
	if err := pick(tx, mr.db).WithContext(ctx).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByID returns gorm.ErrRecordNotFound when the motorcycle does not exist.
func (mr *motorcycleRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*domain.Motorcycle, error) {
	var m domain.Motorcycle
	if err := pick(tx, mr.db).WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
