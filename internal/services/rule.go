package services

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/yungbote/motodiag-backend/internal/data/repos"
	"github.com/yungbote/motodiag-backend/internal/domain"
	"github.com/yungbote/motodiag-backend/internal/platform/apierr"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
)

// RuleService creates rules and guards the invariants the engine relies on:
// a rule's damage exists and its symptom set is non-empty and resolvable.
type RuleService interface {
	Create(ctx context.Context, damageID uint, symptomIDs []uint) (*domain.Rule, error)
	List(ctx context.Context) ([]*domain.Rule, error)
}

type ruleService struct {
	db          *gorm.DB
	log         *logger.Logger
	ruleRepo    repos.RuleRepo
	damageRepo  repos.DamageRepo
	symptomRepo repos.SymptomRepo
}

func NewRuleService(
	db *gorm.DB,
	log *logger.Logger,
	ruleRepo repos.RuleRepo,
	damageRepo repos.DamageRepo,
	symptomRepo repos.SymptomRepo,
) RuleService {
	return &ruleService{
		db:          db,
		log:         log.With("service", "RuleService"),
		ruleRepo:    ruleRepo,
		damageRepo:  damageRepo,
		symptomRepo: symptomRepo,
	}
}

func (rs *ruleService) Create(ctx context.Context, damageID uint, symptomIDs []uint) (*domain.Rule, error) {
	ids := dedupeIDs(symptomIDs)
	if len(ids) == 0 {
		return nil, apierr.BadRequest("invalid_rule", "a rule needs at least one symptom")
	}
	if damageID == 0 {
		return nil, apierr.BadRequest("invalid_rule", "damage_id is required")
	}

	var created *domain.Rule
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := rs.damageRepo.Exists(ctx, tx, damageID)
		if err != nil {
			return fmt.Errorf("check damage: %w", err)
		}
		if !ok {
			return apierr.BadRequest("invalid_rule", fmt.Sprintf("damage %d does not exist", damageID))
		}
		found, err := rs.symptomRepo.GetByIDs(ctx, tx, ids)
		if err != nil {
			return fmt.Errorf("load symptoms: %w", err)
		}
		if missing := missingIDs(ids, found); len(missing) > 0 {
			return apierr.BadRequest("invalid_rule", fmt.Sprintf("unknown symptom ids %v", missing))
		}
		created, err = rs.ruleRepo.Create(ctx, tx, damageID, ids)
		if err != nil {
			return err
		}
		created, err = rs.ruleRepo.GetByID(ctx, tx, created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	rs.log.Info("Rule created", "rule_id", created.ID, "damage_id", damageID, "symptoms", ids)
	return created, nil
}

func (rs *ruleService) List(ctx context.Context) ([]*domain.Rule, error) {
	return rs.ruleRepo.ListOrdered(ctx, nil)
}

// dedupeIDs drops zeros and duplicates and sorts the rest.
func dedupeIDs(in []uint) []uint {
	seen := make(map[uint]struct{}, len(in))
	out := make([]uint, 0, len(in))
	for _, id := range in {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func missingIDs(want []uint, found []*domain.Symptom) []uint {
	have := make(map[uint]struct{}, len(found))
	for _, s := range found {
		have[s.ID] = struct{}{}
	}
	var missing []uint
	for _, id := range want {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
