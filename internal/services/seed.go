package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/motodiag-backend/internal/data/repos"
	"github.com/yungbote/motodiag-backend/internal/data/seed"
	"github.com/yungbote/motodiag-backend/internal/domain"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
)

type SeedReport struct {
	Skipped     bool `json:"skipped"`
	Motorcycles int  `json:"motorcycles"`
	Symptoms    int  `json:"symptoms"`
	Damages     int  `json:"damages"`
	Rules       int  `json:"rules"`
	Users       int  `json:"users"`
}

type SeedService interface {
	// Seed loads the knowledge base unless symptoms already exist.
	Seed(ctx context.Context) (*SeedReport, error)
}

type seedService struct {
	db             *gorm.DB
	log            *logger.Logger
	knowledge      *seed.Knowledge
	motorcycleRepo repos.MotorcycleRepo
	symptomRepo    repos.SymptomRepo
	damageRepo     repos.DamageRepo
	ruleRepo       repos.RuleRepo
	userRepo       repos.UserRepo
}

func NewSeedService(
	db *gorm.DB,
	log *logger.Logger,
	knowledge *seed.Knowledge,
	motorcycleRepo repos.MotorcycleRepo,
	symptomRepo repos.SymptomRepo,
	damageRepo repos.DamageRepo,
	ruleRepo repos.RuleRepo,
	userRepo repos.UserRepo,
) SeedService {
	return &seedService{
		db:             db,
		log:            log.With("service", "SeedService"),
		knowledge:      knowledge,
		motorcycleRepo: motorcycleRepo,
		symptomRepo:    symptomRepo,
		damageRepo:     damageRepo,
		ruleRepo:       ruleRepo,
		userRepo:       userRepo,
	}
}

func (ss *seedService) Seed(ctx context.Context) (*SeedReport, error) {
	if ss.knowledge == nil {
		return nil, fmt.Errorf("no knowledge base configured")
	}
	k := ss.knowledge
	report := &SeedReport{}

	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := ss.symptomRepo.Count(ctx, tx)
		if err != nil {
			return fmt.Errorf("count symptoms: %w", err)
		}
		if n > 0 {
			report.Skipped = true
			return nil
		}

		motorcycles := make([]*domain.Motorcycle, 0, len(k.Motorcycles))
		for _, m := range k.Motorcycles {
			motorcycles = append(motorcycles, &domain.Motorcycle{Brand: m.Brand, Model: m.Model})
		}
		if _, err := ss.motorcycleRepo.Create(ctx, tx, motorcycles); err != nil {
			return fmt.Errorf("seed motorcycles: %w", err)
		}
		report.Motorcycles = len(motorcycles)

		symptomIDs := make(map[string]uint, len(k.Symptoms))
		symptoms := make([]*domain.Symptom, 0, len(k.Symptoms))
		for _, s := range k.Symptoms {
			symptoms = append(symptoms, &domain.Symptom{Code: s.Code, Name: s.Name, Description: s.Description})
		}
		if _, err := ss.symptomRepo.Create(ctx, tx, symptoms); err != nil {
			return fmt.Errorf("seed symptoms: %w", err)
		}
		for _, s := range symptoms {
			symptomIDs[s.Code] = s.ID
		}
		report.Symptoms = len(symptoms)

		damageIDs := make(map[string]uint, len(k.Damages))
		damages := make([]*domain.Damage, 0, len(k.Damages))
		for _, d := range k.Damages {
			dm := &domain.Damage{Code: d.Code, Name: d.Name, Description: d.Description}
			for _, c := range d.Causes {
				dm.Causes = append(dm.Causes, domain.Cause{Description: c})
			}
			for _, s := range d.Solutions {
				dm.Solutions = append(dm.Solutions, domain.Solution{Description: s})
			}
			damages = append(damages, dm)
		}
		if _, err := ss.damageRepo.Create(ctx, tx, damages); err != nil {
			return fmt.Errorf("seed damages: %w", err)
		}
		for _, d := range damages {
			damageIDs[d.Code] = d.ID
		}
		report.Damages = len(damages)

		// Rules are created one by one so their ids follow file order.
		for _, r := range k.Rules {
			ids := make([]uint, 0, len(r.Symptoms))
			for _, code := range r.Symptoms {
				ids = append(ids, symptomIDs[code])
			}
			if _, err := ss.ruleRepo.Create(ctx, tx, damageIDs[r.Damage], dedupeIDs(ids)); err != nil {
				return fmt.Errorf("seed rule for %s: %w", r.Damage, err)
			}
			report.Rules++
		}

		for _, u := range k.Users {
			exists, err := ss.userRepo.UsernameExists(ctx, tx, u.Username)
			if err != nil {
				return fmt.Errorf("check user %s: %w", u.Username, err)
			}
			if exists {
				continue
			}
			hashed, err := HashPassword(u.Password)
			if err != nil {
				return err
			}
			user := &domain.User{Username: u.Username, Password: hashed, Role: u.Role}
			if _, err := ss.userRepo.Create(ctx, tx, []*domain.User{user}); err != nil {
				return fmt.Errorf("seed user %s: %w", u.Username, err)
			}
			report.Users++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if report.Skipped {
		ss.log.Info("Knowledge base already present, seed skipped")
	} else {
		ss.log.Info("Knowledge base seeded",
			"motorcycles", report.Motorcycles,
			"symptoms", report.Symptoms,
			"damages", report.Damages,
			"rules", report.Rules,
			"users", report.Users,
		)
	}
	return report, nil
}
