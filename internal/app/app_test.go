package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/motodiag-backend/internal/platform/config"
)

func testConfig(seedEndpoint bool) config.Config {
	return config.Config{
		Env:     "test",
		LogMode: "test",
		Port:    "0",
		Version: "test",
		DB: config.DBConfig{
			Driver: "sqlite",
			URL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(uuid.NewString(), "-", "")),
		},
		JWTSecretKey:        "app_test_secret",
		AccessTokenTTL:      time.Hour,
		SeedEndpointEnabled: seedEndpoint,
	}
}

func newTestApp(t *testing.T, seedEndpoint bool) *App {
	t.Helper()
	a, err := New(context.Background(), testConfig(seedEndpoint))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.Close)
	if err := a.Migrate(); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return a
}

func TestAppWiresSeedEndpointOnlyWhenEnabled(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		t.Run(fmt.Sprint(enabled), func(t *testing.T) {
			a := newTestApp(t, enabled)
			rec := httptest.NewRecorder()
			a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/seed", nil))
			want := http.StatusNotFound
			if enabled {
				want = http.StatusOK
			}
			if rec.Code != want {
				t.Fatalf("POST /api/seed = %d, want %d", rec.Code, want)
			}
		})
	}
}

func TestAppDiagnosesAfterSeed(t *testing.T) {
	a := newTestApp(t, false)
	ctx := context.Background()
	if _, err := a.Services.Seed.Seed(ctx); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	ids, err := a.Services.Diagnosis.ResolveSymptomCodes(ctx, []string{"g8", "G10"})
	if err != nil {
		t.Fatalf("ResolveSymptomCodes: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/diagnose",
		strings.NewReader(fmt.Sprintf(`{"motorcycle_id":3,"symptom_ids":[%d,%d]}`, ids[0], ids[1])))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"code":"K5"`) {
		t.Fatalf("diagnose = %d %s", rec.Code, rec.Body.String())
	}
}

func TestAppRunStopsOnCancel(t *testing.T) {
	a := newTestApp(t, false)
	a.Cfg.Port = "0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
