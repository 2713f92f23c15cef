package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/yungbote/motodiag-backend/internal/data/repos/testutil"
	"github.com/yungbote/motodiag-backend/internal/domain"
)

func TestConsultationListScopesByRole(t *testing.T) {
	ctx := context.Background()
	e := seeded(t)
	admin, err := e.users.GetByUsername(ctx, nil, "admin")
	if err != nil {
		t.Fatalf("admin: %v", err)
	}
	alice := testutil.SeedUser(t, ctx, e.db, "alice", domain.RoleUser)
	bob := testutil.SeedUser(t, ctx, e.db, "bob", domain.RoleTechnician)

	g4 := e.symptomIDs(t, "G4")
	for _, uid := range []*uint{&alice.ID, &alice.ID, &bob.ID, nil} {
		if _, err := e.diagnosis.Diagnose(ctx, DiagnoseInput{MotorcycleID: 1, SymptomIDs: g4, UserID: uid}); err != nil {
			t.Fatalf("Diagnose: %v", err)
		}
	}

	all, err := e.consultation.List(asUser(ctx, admin))
	if err != nil || len(all) != 4 {
		t.Fatalf("admin sees %d, %v", len(all), err)
	}
	mine, err := e.consultation.List(asUser(ctx, alice))
	if err != nil || len(mine) != 2 {
		t.Fatalf("alice sees %d, %v", len(mine), err)
	}
	for _, c := range mine {
		if c.UserID == nil || *c.UserID != alice.ID {
			t.Fatalf("alice sees consultation of %v", c.UserID)
		}
	}
	if mine[0].ID >= mine[1].ID {
		t.Fatalf("consultations not in id order")
	}
	theirs, err := e.consultation.List(asUser(ctx, bob))
	if err != nil || len(theirs) != 1 {
		t.Fatalf("bob sees %d, %v", len(theirs), err)
	}

	_, err = e.consultation.List(ctx)
	wantAPIErr(t, err, http.StatusUnauthorized, "unauthorized")
}
