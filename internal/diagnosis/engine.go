// Package diagnosis maps observed symptoms to a damage using stored rules.
//
// A rule matches when all of its required symptoms are in the observed set;
// extra observed symptoms never disqualify a rule. Rules are evaluated in
// source order and the first match wins, even if later rules also match.
package diagnosis

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/motodiag-backend/internal/domain"
)

// RuleSource lists every rule in stable evaluation order (creation order).
type RuleSource interface {
	ListRules(ctx context.Context) ([]*domain.Rule, error)
}

// DamageSource resolves a damage with its causes and solutions.
type DamageSource interface {
	GetDamage(ctx context.Context, id uint) (*domain.Damage, error)
}

// Result is the outcome of a diagnosis. A zero Result means no rule matched.
type Result struct {
	Rule   *domain.Rule
	Damage *domain.Damage
}

func (r Result) Matched() bool { return r.Damage != nil }

// Engine holds no mutable state and is safe for concurrent use as long as
// its sources are.
type Engine struct {
	rules   RuleSource
	damages DamageSource
}

func NewEngine(rules RuleSource, damages DamageSource) *Engine {
	return &Engine{rules: rules, damages: damages}
}

var tracer = otel.Tracer("github.com/yungbote/motodiag-backend/internal/diagnosis")

// Diagnose returns the damage concluded by the earliest rule whose required
// symptoms are all present in observed. The rule list is read once per call.
//
// Every rule in the snapshot is checked for integrity before matching; one
// broken rule fails the whole diagnosis with ErrDataIntegrity.
func (e *Engine) Diagnose(ctx context.Context, observed []uint) (Result, error) {
	ctx, span := tracer.Start(ctx, "diagnosis.Diagnose")
	defer span.End()

	set := NewSymptomSet(observed)
	span.SetAttributes(attribute.Int("diagnosis.observed", set.Len()))
	if set.Len() == 0 {
		span.SetAttributes(attribute.Bool("diagnosis.matched", false))
		return Result{}, nil
	}

	rules, err := e.rules.ListRules(ctx)
	if err != nil {
		return Result{}, fail(span, fmt.Errorf("%w: list rules: %w", ErrRepositoryUnavailable, err))
	}
	span.SetAttributes(attribute.Int("diagnosis.rules", len(rules)))

	for _, r := range rules {
		if err := Validate(r); err != nil {
			return Result{}, fail(span, err)
		}
	}

	for _, r := range rules {
		if !set.ContainsAll(r.SymptomIDs()) {
			continue
		}
		damage, err := e.damages.GetDamage(ctx, r.DamageID)
		switch {
		case errors.Is(err, ErrDamageNotFound):
			return Result{}, fail(span, fmt.Errorf("%w: rule %d concludes missing damage %d", ErrDataIntegrity, r.ID, r.DamageID))
		case err != nil:
			return Result{}, fail(span, fmt.Errorf("%w: get damage %d: %w", ErrRepositoryUnavailable, r.DamageID, err))
		case damage == nil:
			return Result{}, fail(span, fmt.Errorf("%w: rule %d concludes missing damage %d", ErrDataIntegrity, r.ID, r.DamageID))
		}
		span.SetAttributes(
			attribute.Bool("diagnosis.matched", true),
			attribute.Int64("diagnosis.rule_id", int64(r.ID)),
			attribute.Int64("diagnosis.damage_id", int64(damage.ID)),
		)
		return Result{Rule: r, Damage: damage}, nil
	}

	span.SetAttributes(attribute.Bool("diagnosis.matched", false))
	return Result{}, nil
}

// Validate reports ErrDataIntegrity for a rule that can never be evaluated
// safely. An empty requirement set would match every observation.
func Validate(r *domain.Rule) error {
	if r == nil {
		return fmt.Errorf("%w: nil rule", ErrDataIntegrity)
	}
	if len(r.Symptoms) == 0 {
		return fmt.Errorf("%w: rule %d has no required symptoms", ErrDataIntegrity, r.ID)
	}
	for _, rs := range r.Symptoms {
		if rs.Symptom == nil || rs.Symptom.ID != rs.SymptomID {
			return fmt.Errorf("%w: rule %d requires missing symptom %d", ErrDataIntegrity, r.ID, rs.SymptomID)
		}
	}
	return nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
