package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/motodiag-backend/internal/data/db"
	"github.com/yungbote/motodiag-backend/internal/data/repos"
	"github.com/yungbote/motodiag-backend/internal/diagnosis"
	"github.com/yungbote/motodiag-backend/internal/domain"
	"github.com/yungbote/motodiag-backend/internal/platform/apierr"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
	"github.com/yungbote/motodiag-backend/internal/realtime"
	"github.com/yungbote/motodiag-backend/internal/realtime/bus"
)

const NoMatchMessage = "No matching diagnosis found"

type DiagnoseInput struct {
	MotorcycleID uint
	SymptomIDs   []uint
	// UserID is nil for anonymous consultations.
	UserID *uint
}

type DiagnoseOutput struct {
	Consultation *domain.Consultation
	// Damage and Rule are nil when no rule matched.
	Damage *domain.Damage
	Rule   *domain.Rule
}

func (o *DiagnoseOutput) Matched() bool { return o != nil && o.Damage != nil }

type DiagnosisService interface {
	Diagnose(ctx context.Context, in DiagnoseInput) (*DiagnoseOutput, error)
	// ResolveSymptomCodes maps codes such as "G4" to symptom ids, preserving
	// input order. Unknown codes are an error.
	ResolveSymptomCodes(ctx context.Context, codes []string) ([]uint, error)
}

type diagnosisService struct {
	db               *gorm.DB
	log              *logger.Logger
	motorcycleRepo   repos.MotorcycleRepo
	symptomRepo      repos.SymptomRepo
	ruleRepo         repos.RuleRepo
	damageRepo       repos.DamageRepo
	consultationRepo repos.ConsultationRepo
	events           bus.Bus
}

func NewDiagnosisService(
	db *gorm.DB,
	log *logger.Logger,
	motorcycleRepo repos.MotorcycleRepo,
	symptomRepo repos.SymptomRepo,
	ruleRepo repos.RuleRepo,
	damageRepo repos.DamageRepo,
	consultationRepo repos.ConsultationRepo,
	events bus.Bus,
) DiagnosisService {
	if events == nil {
		events = bus.NewNoopBus()
	}
	return &diagnosisService{
		db:               db,
		log:              log.With("service", "DiagnosisService"),
		motorcycleRepo:   motorcycleRepo,
		symptomRepo:      symptomRepo,
		ruleRepo:         ruleRepo,
		damageRepo:       damageRepo,
		consultationRepo: consultationRepo,
		events:           events,
	}
}

// Diagnose runs the engine over a rule snapshot read inside the same
// transaction that records the consultation. A consultation is stored for
// every successful diagnosis, matched or not.
func (ds *diagnosisService) Diagnose(ctx context.Context, in DiagnoseInput) (*DiagnoseOutput, error) {
	if in.MotorcycleID == 0 {
		return nil, apierr.BadRequest("invalid_request", "motorcycle_id is required")
	}
	observed := dedupeIDs(in.SymptomIDs)
	if len(observed) == 0 {
		return nil, apierr.BadRequest("invalid_request", "symptom_ids is required")
	}

	out := &DiagnoseOutput{}
	err := ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ds.motorcycleRepo.GetByID(ctx, tx, in.MotorcycleID); err != nil {
			if db.IsNotFound(err) {
				return apierr.NotFound("motorcycle_not_found", fmt.Sprintf("motorcycle %d not found", in.MotorcycleID))
			}
			return fmt.Errorf("load motorcycle: %w", err)
		}
		found, err := ds.symptomRepo.GetByIDs(ctx, tx, observed)
		if err != nil {
			return fmt.Errorf("load symptoms: %w", err)
		}
		if missing := missingIDs(observed, found); len(missing) > 0 {
			return apierr.BadRequest("invalid_symptoms", fmt.Sprintf("unknown symptom ids %v", missing))
		}

		engine := diagnosis.NewEngine(
			txRuleSource{repo: ds.ruleRepo, tx: tx},
			txDamageSource{repo: ds.damageRepo, tx: tx},
		)
		res, err := engine.Diagnose(ctx, observed)
		if err != nil {
			return classifyDiagnosisError(err)
		}

		c := &domain.Consultation{
			UserID:           in.UserID,
			MotorcycleID:     in.MotorcycleID,
			ConsultationDate: time.Now().UTC(),
		}
		for _, id := range observed {
			c.Symptoms = append(c.Symptoms, domain.ConsultationSymptom{SymptomID: id})
		}
		if res.Matched() {
			c.DamageID = &res.Damage.ID
			c.RuleID = &res.Rule.ID
			snap, err := json.Marshal(res.Damage)
			if err != nil {
				return fmt.Errorf("snapshot damage: %w", err)
			}
			c.DamageSnapshot = datatypes.JSON(snap)
		}
		if _, err := ds.consultationRepo.Create(ctx, tx, c); err != nil {
			return fmt.Errorf("record consultation: %w", err)
		}
		out.Consultation = c
		out.Damage = res.Damage
		out.Rule = res.Rule
		return nil
	})
	if err != nil {
		if errors.Is(err, diagnosis.ErrDataIntegrity) {
			ds.log.Error("Knowledge base integrity failure", "error", err)
		}
		return nil, err
	}

	ds.log.Info("Consultation recorded",
		"consultation_id", out.Consultation.ID,
		"motorcycle_id", in.MotorcycleID,
		"matched", out.Matched(),
	)
	ds.publish(ctx, out.Consultation)
	return out, nil
}

func (ds *diagnosisService) publish(ctx context.Context, c *domain.Consultation) {
	evt := realtime.ConsultationEvent{
		Event:          realtime.EventConsultationRecorded,
		ConsultationID: c.ID,
		MotorcycleID:   c.MotorcycleID,
		UserID:         c.UserID,
		DamageID:       c.DamageID,
		RuleID:         c.RuleID,
		SymptomIDs:     c.SymptomIDs(),
		RecordedAt:     c.ConsultationDate,
	}
	if err := ds.events.Publish(ctx, evt); err != nil {
		ds.log.Warn("Failed to publish consultation event", "consultation_id", c.ID, "error", err)
	}
}

func (ds *diagnosisService) ResolveSymptomCodes(ctx context.Context, codes []string) ([]uint, error) {
	norm := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			norm = append(norm, c)
		}
	}
	if len(norm) == 0 {
		return nil, apierr.BadRequest("invalid_request", "no symptom codes given")
	}
	found, err := ds.symptomRepo.GetByCodes(ctx, nil, norm)
	if err != nil {
		return nil, fmt.Errorf("load symptoms: %w", err)
	}
	byCode := make(map[string]uint, len(found))
	for _, s := range found {
		byCode[s.Code] = s.ID
	}
	ids := make([]uint, 0, len(norm))
	var unknown []string
	for _, c := range norm {
		id, ok := byCode[c]
		if !ok {
			unknown = append(unknown, c)
			continue
		}
		ids = append(ids, id)
	}
	if len(unknown) > 0 {
		return nil, apierr.BadRequest("invalid_symptoms", fmt.Sprintf("unknown symptom codes %v", unknown))
	}
	return ids, nil
}

func classifyDiagnosisError(err error) error {
	switch {
	case errors.Is(err, diagnosis.ErrDataIntegrity):
		return apierr.New(http.StatusInternalServerError, "data_integrity", err)
	case errors.Is(err, diagnosis.ErrRepositoryUnavailable):
		return apierr.New(http.StatusServiceUnavailable, "repository_unavailable", err)
	default:
		return err
	}
}

// txRuleSource and txDamageSource bind the engine to one transaction so the
// rule snapshot and the recorded consultation are consistent.
type txRuleSource struct {
	repo repos.RuleRepo
	tx   *gorm.DB
}

func (s txRuleSource) ListRules(ctx context.Context) ([]*domain.Rule, error) {
	return s.repo.ListOrdered(ctx, s.tx)
}

type txDamageSource struct {
	repo repos.DamageRepo
	tx   *gorm.DB
}

func (s txDamageSource) GetDamage(ctx context.Context, id uint) (*domain.Damage, error) {
	d, err := s.repo.GetByID(ctx, s.tx, id)
	if db.IsNotFound(err) {
		return nil, fmt.Errorf("%w: damage %d", diagnosis.ErrDamageNotFound, id)
	}
	return d, err
}
