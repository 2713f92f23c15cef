package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/motodiag-backend/internal/data/repos"
	"github.com/yungbote/motodiag-backend/internal/data/repos/testutil"
	"github.com/yungbote/motodiag-backend/internal/data/seed"
	httpH "github.com/yungbote/motodiag-backend/internal/http/handlers"
	httpMW "github.com/yungbote/motodiag-backend/internal/http/middleware"
	"github.com/yungbote/motodiag-backend/internal/realtime/bus"
	"github.com/yungbote/motodiag-backend/internal/services"
)

type apiClient struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T, withSeedRoute bool) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb := testutil.DB(t)
	log := testutil.Logger(t)

	motorcycles := repos.NewMotorcycleRepo(gdb, log)
	symptoms := repos.NewSymptomRepo(gdb, log)
	damages := repos.NewDamageRepo(gdb, log)
	rules := repos.NewRuleRepo(gdb, log)
	consults := repos.NewConsultationRepo(gdb, log)
	users := repos.NewUserRepo(gdb, log)

	k, err := seed.Bundled()
	if err != nil {
		t.Fatalf("knowledge: %v", err)
	}
	auth := services.NewAuthService(gdb, log, users, "router_test_secret", time.Hour)
	seedSvc := services.NewSeedService(gdb, log, k, motorcycles, symptoms, damages, rules, users)
	if _, err := seedSvc.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := RouterConfig{
		Log:            log,
		AllowOrigins:   []string{"http://localhost:5173"},
		AuthMiddleware: httpMW.NewAuthMiddleware(log, auth),
		AuthHandler:    httpH.NewAuthHandler(auth),
		CatalogHandler: httpH.NewCatalogHandler(services.NewCatalogService(gdb, log, motorcycles, symptoms, damages)),
		RuleHandler:    httpH.NewRuleHandler(services.NewRuleService(gdb, log, rules, damages, symptoms)),
		DiagnosisHandler: httpH.NewDiagnosisHandler(
			services.NewDiagnosisService(gdb, log, motorcycles, symptoms, rules, damages, consults, bus.NewNoopBus()),
		),
		ConsultationHandler: httpH.NewConsultationHandler(services.NewConsultationService(gdb, log, consults)),
		HealthHandler:       httpH.NewHealthHandler("test"),
	}
	if withSeedRoute {
		cfg.SeedHandler = httpH.NewSeedHandler(seedSvc)
	}
	return &apiClient{t: t, router: NewRouter(cfg)}
}

func (a *apiClient) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *apiClient) login(username, password string) string {
	a.t.Helper()
	rec := a.do(nethttp.MethodPost, "/api/login", "", map[string]string{"username": username, "password": password})
	if rec.Code != nethttp.StatusOK {
		a.t.Fatalf("login %s: %d %s", username, rec.Code, rec.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	decode(a.t, rec, &out)
	return out.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestPublicRoutes(t *testing.T) {
	api := newAPI(t, false)

	if rec := api.do(nethttp.MethodGet, "/healthcheck", "", nil); rec.Code != nethttp.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck = %d %q", rec.Code, rec.Body.String())
	}
	if rec := api.do(nethttp.MethodGet, "/", "", nil); rec.Code != nethttp.StatusOK {
		t.Fatalf("index = %d", rec.Code)
	}

	var symptoms []map[string]any
	rec := api.do(nethttp.MethodGet, "/api/symptoms", "", nil)
	decode(t, rec, &symptoms)
	if len(symptoms) != 29 {
		t.Fatalf("symptoms = %d", len(symptoms))
	}

	var rules []struct {
		ID       uint   `json:"id"`
		DamageID uint   `json:"damage_id"`
		Symptoms []uint `json:"symptoms"`
	}
	decode(t, api.do(nethttp.MethodGet, "/api/rules", "", nil), &rules)
	if len(rules) != 3 || len(rules[1].Symptoms) != 3 {
		t.Fatalf("rules = %+v", rules)
	}

	var damage struct {
		Code   string `json:"code"`
		Causes []any  `json:"causes"`
	}
	decode(t, api.do(nethttp.MethodGet, "/api/damages/1", "", nil), &damage)
	if damage.Code != "K1" || len(damage.Causes) != 1 {
		t.Fatalf("damage = %+v", damage)
	}
	if rec := api.do(nethttp.MethodGet, "/api/damages/abc", "", nil); rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("bad id = %d", rec.Code)
	}
	if rec := api.do(nethttp.MethodPost, "/api/seed", "", nil); rec.Code != nethttp.StatusNotFound {
		t.Fatalf("seed route should be disabled, got %d", rec.Code)
	}
}

func TestDiagnoseFlow(t *testing.T) {
	api := newAPI(t, false)

	if rec := api.do(nethttp.MethodPost, "/api/register", "", map[string]string{"username": "rider", "password": "pw"}); rec.Code != nethttp.StatusCreated {
		t.Fatalf("register = %d %s", rec.Code, rec.Body.String())
	}
	token := api.login("rider", "pw")

	// G1, G2, G7 -> K4.
	var matched struct {
		ConsultationID uint `json:"consultation_id"`
		Diagnosis      *struct {
			Code      string `json:"code"`
			Solutions []any  `json:"solutions"`
		} `json:"diagnosis"`
		RuleID *uint `json:"rule_id"`
	}
	rec := api.do(nethttp.MethodPost, "/api/diagnose", token, map[string]any{"motorcycle_id": 1, "symptom_ids": []uint{7, 1, 2}})
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("diagnose = %d %s", rec.Code, rec.Body.String())
	}
	decode(t, rec, &matched)
	if matched.Diagnosis == nil || matched.Diagnosis.Code != "K4" || matched.RuleID == nil || *matched.RuleID != 2 {
		t.Fatalf("diagnosis = %+v", matched)
	}

	var unmatched struct {
		ConsultationID uint   `json:"consultation_id"`
		Diagnosis      any    `json:"diagnosis"`
		Message        string `json:"message"`
	}
	rec = api.do(nethttp.MethodPost, "/api/diagnose", "", map[string]any{"motorcycle_id": 1, "symptom_ids": []uint{3}})
	decode(t, rec, &unmatched)
	if unmatched.Diagnosis != nil || unmatched.Message != services.NoMatchMessage || unmatched.ConsultationID == 0 {
		t.Fatalf("no match = %+v", unmatched)
	}

	if rec := api.do(nethttp.MethodPost, "/api/diagnose", "", map[string]any{"motorcycle_id": 1, "symptom_ids": []uint{}}); rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("empty symptoms = %d", rec.Code)
	}
	if rec := api.do(nethttp.MethodPost, "/api/diagnose", "", map[string]any{"motorcycle_id": 77, "symptom_ids": []uint{4}}); rec.Code != nethttp.StatusNotFound {
		t.Fatalf("unknown motorcycle = %d", rec.Code)
	}
	if rec := api.do(nethttp.MethodPost, "/api/diagnose", "garbage", map[string]any{"motorcycle_id": 1, "symptom_ids": []uint{4}}); rec.Code != nethttp.StatusUnauthorized {
		t.Fatalf("bad token on optional route = %d", rec.Code)
	}

	var mine []struct {
		ID       uint   `json:"id"`
		UserID   *uint  `json:"user_id"`
		Symptoms []uint `json:"symptoms"`
	}
	rec = api.do(nethttp.MethodGet, "/api/consultations", token, nil)
	decode(t, rec, &mine)
	if len(mine) != 1 || mine[0].ID != matched.ConsultationID || len(mine[0].Symptoms) != 3 {
		t.Fatalf("rider consultations = %+v", mine)
	}

	var all []map[string]any
	decode(t, api.do(nethttp.MethodGet, "/api/consultations", api.login("admin", "admin123"), nil), &all)
	if len(all) != 2 {
		t.Fatalf("admin sees %d consultations", len(all))
	}

	if rec := api.do(nethttp.MethodGet, "/api/consultations", "", nil); rec.Code != nethttp.StatusUnauthorized {
		t.Fatalf("anonymous consultations = %d", rec.Code)
	}
}

func TestAdminRoutes(t *testing.T) {
	api := newAPI(t, true)
	tech := api.login("technician", "tech123")
	admin := api.login("admin", "admin123")

	body := map[string]string{"code": "G30", "name": "Getaran Berlebih"}
	if rec := api.do(nethttp.MethodPost, "/api/symptoms", tech, body); rec.Code != nethttp.StatusForbidden {
		t.Fatalf("technician create symptom = %d", rec.Code)
	}
	if rec := api.do(nethttp.MethodPost, "/api/symptoms", "", body); rec.Code != nethttp.StatusUnauthorized {
		t.Fatalf("anonymous create symptom = %d", rec.Code)
	}
	rec := api.do(nethttp.MethodPost, "/api/symptoms", admin, body)
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("admin create symptom = %d %s", rec.Code, rec.Body.String())
	}
	var sym struct {
		ID uint `json:"id"`
	}
	decode(t, rec, &sym)

	rec = api.do(nethttp.MethodPost, "/api/rules", admin, map[string]any{"damage_id": 2, "symptom_ids": []uint{sym.ID, 5}})
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("create rule = %d %s", rec.Code, rec.Body.String())
	}
	rec = api.do(nethttp.MethodPost, "/api/rules", admin, map[string]any{"damage_id": 2, "symptom_ids": []uint{}})
	if rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("empty rule = %d", rec.Code)
	}

	rec = api.do(nethttp.MethodPost, "/api/damages/2/causes", admin, map[string]any{"descriptions": []string{"Ramp plate aus"}})
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("add cause = %d %s", rec.Code, rec.Body.String())
	}

	var report struct {
		Message string `json:"message"`
	}
	decode(t, api.do(nethttp.MethodPost, "/api/seed", "", nil), &report)
	if report.Message != "Database already seeded" {
		t.Fatalf("seed = %+v", report)
	}
}

func TestDeleteDamageBreaksItsRules(t *testing.T) {
	api := newAPI(t, false)
	admin := api.login("admin", "admin123")

	rec := api.do(nethttp.MethodPost, "/api/damages/1/solutions", admin, map[string]any{"descriptions": []string{"Ganti kabel busi"}})
	if rec.Code != nethttp.StatusCreated {
		t.Fatalf("add solution = %d %s", rec.Code, rec.Body.String())
	}
	if rec := api.do(nethttp.MethodDelete, "/api/damages/1", api.login("technician", "tech123"), nil); rec.Code != nethttp.StatusForbidden {
		t.Fatalf("technician delete = %d", rec.Code)
	}
	if rec := api.do(nethttp.MethodDelete, "/api/damages/1", admin, nil); rec.Code != nethttp.StatusOK {
		t.Fatalf("delete = %d %s", rec.Code, rec.Body.String())
	}
	if rec := api.do(nethttp.MethodGet, "/api/damages/1", "", nil); rec.Code != nethttp.StatusNotFound {
		t.Fatalf("get deleted = %d", rec.Code)
	}

	// Rule K1 <- {G4} still points at the deleted damage.
	rec = api.do(nethttp.MethodPost, "/api/diagnose", "", map[string]any{"motorcycle_id": 1, "symptom_ids": []uint{4}})
	if rec.Code != nethttp.StatusInternalServerError {
		t.Fatalf("diagnose = %d %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, rec, &out)
	if out.Error.Code != "data_integrity" {
		t.Fatalf("code = %q", out.Error.Code)
	}
}
