package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/motodiag-backend/internal/data/db"
	"github.com/yungbote/motodiag-backend/internal/data/repos"
	"github.com/yungbote/motodiag-backend/internal/domain"
	"github.com/yungbote/motodiag-backend/internal/platform/apierr"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
)

type EntryInput struct {
	Code        string
	Name        string
	Description string
}

// CatalogService manages the reference data rules are built from.
type CatalogService interface {
	CreateMotorcycle(ctx context.Context, brand, model string) (*domain.Motorcycle, error)
	ListMotorcycles(ctx context.Context) ([]*domain.Motorcycle, error)
	CreateSymptom(ctx context.Context, in EntryInput) (*domain.Symptom, error)
	ListSymptoms(ctx context.Context) ([]*domain.Symptom, error)
	CreateDamage(ctx context.Context, in EntryInput) (*domain.Damage, error)
	ListDamages(ctx context.Context) ([]*domain.Damage, error)
	GetDamage(ctx context.Context, id uint) (*domain.Damage, error)
	DeleteDamage(ctx context.Context, id uint) error
	AddCauses(ctx context.Context, damageID uint, descriptions []string) (*domain.Damage, error)
	AddSolutions(ctx context.Context, damageID uint, descriptions []string) (*domain.Damage, error)
}

type catalogService struct {
	db             *gorm.DB
	log            *logger.Logger
	motorcycleRepo repos.MotorcycleRepo
	symptomRepo    repos.SymptomRepo
	damageRepo     repos.DamageRepo
}

func NewCatalogService(
	db *gorm.DB,
	log *logger.Logger,
	motorcycleRepo repos.MotorcycleRepo,
	symptomRepo repos.SymptomRepo,
	damageRepo repos.DamageRepo,
) CatalogService {
	return &catalogService{
		db:             db,
		log:            log.With("service", "CatalogService"),
		motorcycleRepo: motorcycleRepo,
		symptomRepo:    symptomRepo,
		damageRepo:     damageRepo,
	}
}

func (cs *catalogService) CreateMotorcycle(ctx context.Context, brand, model string) (*domain.Motorcycle, error) {
	m := &domain.Motorcycle{Brand: strings.TrimSpace(brand), Model: strings.TrimSpace(model)}
	if m.Brand == "" || m.Model == "" {
		return nil, apierr.BadRequest("invalid_request", "brand and model are required")
	}
	if _, err := cs.motorcycleRepo.Create(ctx, nil, []*domain.Motorcycle{m}); err != nil {
		return nil, fmt.Errorf("create motorcycle: %w", err)
	}
	return m, nil
}

func (cs *catalogService) ListMotorcycles(ctx context.Context) ([]*domain.Motorcycle, error) {
	return cs.motorcycleRepo.List(ctx, nil)
}

func (cs *catalogService) CreateSymptom(ctx context.Context, in EntryInput) (*domain.Symptom, error) {
	code, name, err := normalizeEntry(in)
	if err != nil {
		return nil, err
	}
	s := &domain.Symptom{Code: code, Name: name, Description: strings.TrimSpace(in.Description)}
	if _, err := cs.symptomRepo.Create(ctx, nil, []*domain.Symptom{s}); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apierr.Conflict("duplicate_code", fmt.Sprintf("symptom code %q already exists", code))
		}
		return nil, fmt.Errorf("create symptom: %w", err)
	}
	return s, nil
}

func (cs *catalogService) ListSymptoms(ctx context.Context) ([]*domain.Symptom, error) {
	return cs.symptomRepo.List(ctx, nil)
}

func (cs *catalogService) CreateDamage(ctx context.Context, in EntryInput) (*domain.Damage, error) {
	code, name, err := normalizeEntry(in)
	if err != nil {
		return nil, err
	}
	d := &domain.Damage{
		Code:        code,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Causes:      []domain.Cause{},
		Solutions:   []domain.Solution{},
	}
	if _, err := cs.damageRepo.Create(ctx, nil, []*domain.Damage{d}); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apierr.Conflict("duplicate_code", fmt.Sprintf("damage code %q already exists", code))
		}
		return nil, fmt.Errorf("create damage: %w", err)
	}
	return d, nil
}

func (cs *catalogService) ListDamages(ctx context.Context) ([]*domain.Damage, error) {
	return cs.damageRepo.List(ctx, nil)
}

func (cs *catalogService) GetDamage(ctx context.Context, id uint) (*domain.Damage, error) {
	d, err := cs.damageRepo.GetByID(ctx, nil, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apierr.NotFound("damage_not_found", fmt.Sprintf("damage %d not found", id))
		}
		return nil, fmt.Errorf("get damage: %w", err)
	}
	return d, nil
}

// DeleteDamage removes the damage with its causes and solutions. Rules still
// pointing at it are left in place and will surface as integrity failures.
func (cs *catalogService) DeleteDamage(ctx context.Context, id uint) error {
	if err := cs.damageRepo.Delete(ctx, nil, id); err != nil {
		if db.IsNotFound(err) {
			return apierr.NotFound("damage_not_found", fmt.Sprintf("damage %d not found", id))
		}
		return fmt.Errorf("delete damage: %w", err)
	}
	cs.log.Info("Damage deleted", "damage_id", id)
	return nil
}

func (cs *catalogService) AddCauses(ctx context.Context, damageID uint, descriptions []string) (*domain.Damage, error) {
	texts, err := cleanDescriptions(descriptions)
	if err != nil {
		return nil, err
	}
	var out *domain.Damage
	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := cs.requireDamage(ctx, tx, damageID); err != nil {
			return err
		}
		causes := make([]*domain.Cause, 0, len(texts))
		for _, t := range texts {
			causes = append(causes, &domain.Cause{DamageID: damageID, Description: t})
		}
		if _, err := cs.damageRepo.AddCauses(ctx, tx, causes); err != nil {
			return fmt.Errorf("add causes: %w", err)
		}
		out, err = cs.damageRepo.GetByID(ctx, tx, damageID)
		return err
	})
	return out, err
}

func (cs *catalogService) AddSolutions(ctx context.Context, damageID uint, descriptions []string) (*domain.Damage, error) {
	texts, err := cleanDescriptions(descriptions)
	if err != nil {
		return nil, err
	}
	var out *domain.Damage
	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := cs.requireDamage(ctx, tx, damageID); err != nil {
			return err
		}
		solutions := make([]*domain.Solution, 0, len(texts))
		for _, t := range texts {
			solutions = append(solutions, &domain.Solution{DamageID: damageID, Description: t})
		}
		if _, err := cs.damageRepo.AddSolutions(ctx, tx, solutions); err != nil {
			return fmt.Errorf("add solutions: %w", err)
		}
		out, err = cs.damageRepo.GetByID(ctx, tx, damageID)
		return err
	})
	return out, err
}

func (cs *catalogService) requireDamage(ctx context.Context, tx *gorm.DB, id uint) error {
	ok, err := cs.damageRepo.Exists(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("check damage: %w", err)
	}
	if !ok {
		return apierr.NotFound("damage_not_found", fmt.Sprintf("damage %d not found", id))
	}
	return nil
}

func normalizeEntry(in EntryInput) (string, string, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return "", "", apierr.BadRequest("invalid_request", "code and name are required")
	}
	return code, name, nil
}

func cleanDescriptions(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, apierr.BadRequest("invalid_request", "at least one description is required")
	}
	return out, nil
}
