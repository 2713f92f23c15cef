package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/motodiag-backend/internal/domain"
)

func SeedMotorcycle(tb testing.TB, ctx context.Context, tx *gorm.DB, brand, model string) *domain.Motorcycle {
	tb.Helper()
	m := &domain.Motorcycle{Brand: brand, Model: model}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed motorcycle: %v", err)
	}
	return m
}

// SeedSymptoms creates one symptom per code, in order.
func SeedSymptoms(tb testing.TB, ctx context.Context, tx *gorm.DB, codes ...string) []*domain.Symptom {
	tb.Helper()
	out := make([]*domain.Symptom, 0, len(codes))
	for _, code := range codes {
		s := &domain.Symptom{Code: code, Name: "symptom " + code}
		if err := tx.WithContext(ctx).Create(s).Error; err != nil {
			tb.Fatalf("seed symptom %s: %v", code, err)
		}
		out = append(out, s)
	}
	return out
}

func SeedDamage(tb testing.TB, ctx context.Context, tx *gorm.DB, code, name string, causes, solutions []string) *domain.Damage {
	tb.Helper()
	d := &domain.Damage{Code: code, Name: name}
	for _, c := range causes {
		d.Causes = append(d.Causes, domain.Cause{Description: c})
	}
	for _, s := range solutions {
		d.Solutions = append(d.Solutions, domain.Solution{Description: s})
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed damage %s: %v", code, err)
	}
	return d
}

func SeedRule(tb testing.TB, ctx context.Context, tx *gorm.DB, damageID uint, symptomIDs ...uint) *domain.Rule {
	tb.Helper()
	r := &domain.Rule{DamageID: damageID}
	for _, sid := range symptomIDs {
		r.Symptoms = append(r.Symptoms, domain.RuleSymptom{SymptomID: sid})
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed rule: %v", err)
	}
	return r
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username, role string) *domain.User {
	tb.Helper()
	u := &domain.User{Username: username, Password: "pw", Role: role}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}
