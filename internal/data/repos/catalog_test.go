package repos

import (
	"context"
	"testing"

	"github.com/yungbote/motodiag-backend/internal/data/repos/testutil"
	"github.com/yungbote/motodiag-backend/internal/domain"
)

func TestMotorcycleAndSymptomRepos(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	motos := NewMotorcycleRepo(db, testutil.Logger(t))
	symptoms := NewSymptomRepo(db, testutil.Logger(t))

	if _, err := motos.Create(ctx, nil, []*domain.Motorcycle{{Brand: "Yamaha", Model: "NMAX"}, {Brand: "Yamaha", Model: "Mio"}}); err != nil {
		t.Fatalf("Create motorcycles: %v", err)
	}
	list, err := motos.List(ctx, nil)
	if err != nil || len(list) != 2 || list[0].Model != "NMAX" {
		t.Fatalf("List motorcycles: %+v err=%v", list, err)
	}
	if m, err := motos.GetByID(ctx, nil, list[1].ID); err != nil || m.Model != "Mio" {
		t.Fatalf("GetByID: %+v err=%v", m, err)
	}

	testutil.SeedSymptoms(t, ctx, db, "G1", "G2", "G3")
	n, err := symptoms.Count(ctx, nil)
	if err != nil || n != 3 {
		t.Fatalf("Count = %d err=%v", n, err)
	}
	byCode, err := symptoms.GetByCodes(ctx, nil, []string{"G3", "G1", "G9"})
	if err != nil || len(byCode) != 2 || byCode[0].Code != "G1" {
		t.Fatalf("GetByCodes: %+v err=%v", byCode, err)
	}
	byID, err := symptoms.GetByIDs(ctx, nil, []uint{byCode[1].ID})
	if err != nil || len(byID) != 1 || byID[0].Code != "G3" {
		t.Fatalf("GetByIDs: %+v err=%v", byID, err)
	}
}
