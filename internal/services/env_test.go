package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/motodiag-backend/internal/data/repos"
	"github.com/yungbote/motodiag-backend/internal/data/repos/testutil"
	"github.com/yungbote/motodiag-backend/internal/data/seed"
	"github.com/yungbote/motodiag-backend/internal/domain"
	"github.com/yungbote/motodiag-backend/internal/platform/ctxutil"
	"github.com/yungbote/motodiag-backend/internal/realtime/bus"
)

const testSecret = "test_secret"

type testEnv struct {
	db          *gorm.DB
	motorcycles repos.MotorcycleRepo
	symptoms    repos.SymptomRepo
	damages     repos.DamageRepo
	rules       repos.RuleRepo
	consults    repos.ConsultationRepo
	users       repos.UserRepo
	events      *bus.MemoryBus

	auth         AuthService
	catalog      CatalogService
	ruleSvc      RuleService
	diagnosis    DiagnosisService
	consultation ConsultationService
	seed         SeedService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)

	e := &testEnv{
		db:          gdb,
		motorcycles: repos.NewMotorcycleRepo(gdb, log),
		symptoms:    repos.NewSymptomRepo(gdb, log),
		damages:     repos.NewDamageRepo(gdb, log),
		rules:       repos.NewRuleRepo(gdb, log),
		consults:    repos.NewConsultationRepo(gdb, log),
		users:       repos.NewUserRepo(gdb, log),
		events:      bus.NewMemoryBus(),
	}
	k, err := seed.Bundled()
	if err != nil {
		t.Fatalf("load knowledge base: %v", err)
	}
	e.auth = NewAuthService(gdb, log, e.users, testSecret, time.Hour)
	e.catalog = NewCatalogService(gdb, log, e.motorcycles, e.symptoms, e.damages)
	e.ruleSvc = NewRuleService(gdb, log, e.rules, e.damages, e.symptoms)
	e.diagnosis = NewDiagnosisService(gdb, log, e.motorcycles, e.symptoms, e.rules, e.damages, e.consults, e.events)
	e.consultation = NewConsultationService(gdb, log, e.consults)
	e.seed = NewSeedService(gdb, log, k, e.motorcycles, e.symptoms, e.damages, e.rules, e.users)
	return e
}

// seeded returns an env loaded with the bundled knowledge base.
func seeded(t *testing.T) *testEnv {
	t.Helper()
	e := newTestEnv(t)
	if _, err := e.seed.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return e
}

func (e *testEnv) symptomIDs(t *testing.T, codes ...string) []uint {
	t.Helper()
	ids, err := e.diagnosis.ResolveSymptomCodes(context.Background(), codes)
	if err != nil {
		t.Fatalf("resolve %v: %v", codes, err)
	}
	return ids
}

func (e *testEnv) damageByCode(t *testing.T, code string) *domain.Damage {
	t.Helper()
	ds, err := e.damages.GetByCodes(context.Background(), nil, []string{code})
	if err != nil || len(ds) != 1 {
		t.Fatalf("damage %s: %v (found %d)", code, err, len(ds))
	}
	return ds[0]
}

func asUser(ctx context.Context, u *domain.User) context.Context {
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	})
}
