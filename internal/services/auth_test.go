package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/yungbote/motodiag-backend/internal/data/repos/testutil"
	"github.com/yungbote/motodiag-backend/internal/domain"
	"github.com/yungbote/motodiag-backend/internal/platform/apierr"
	"github.com/yungbote/motodiag-backend/internal/platform/ctxutil"
)

func wantAPIErr(t *testing.T, err error, status int, code string) {
	t.Helper()
	ae, ok := apierr.As(err)
	if !ok {
		t.Fatalf("expected api error %d/%s, got %v", status, code, err)
	}
	if ae.Status != status || ae.Code != code {
		t.Fatalf("api error = %d/%s, want %d/%s (%v)", ae.Status, ae.Code, status, code, ae.Err)
	}
}

func TestAuthRegisterLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	u, err := e.auth.Register(ctx, RegisterInput{Username: "  rider ", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Username != "rider" || u.Role != domain.RoleUser {
		t.Fatalf("user = %+v", u)
	}
	if u.Password == "s3cret" {
		t.Fatalf("password stored in clear text")
	}

	token, got, err := e.auth.Login(ctx, "rider", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" || got.ID != u.ID {
		t.Fatalf("login returned token=%q user=%+v", token, got)
	}

	authed, err := e.auth.SetContextFromToken(ctx, token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := ctxutil.GetRequestData(authed)
	if rd == nil || rd.UserID != u.ID || rd.Role != domain.RoleUser || rd.TokenString != token {
		t.Fatalf("request data = %+v", rd)
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	_, err := e.auth.Register(ctx, RegisterInput{Username: "", Password: "x"})
	wantAPIErr(t, err, http.StatusBadRequest, "invalid_request")

	_, err = e.auth.Register(ctx, RegisterInput{Username: "boss", Password: "x", Role: "admin"})
	wantAPIErr(t, err, http.StatusBadRequest, "invalid_role")

	tech, err := e.auth.Register(ctx, RegisterInput{Username: "wrench", Password: "x", Role: "Technician"})
	if err != nil {
		t.Fatalf("Register technician: %v", err)
	}
	if tech.Role != domain.RoleTechnician {
		t.Fatalf("role = %q", tech.Role)
	}

	_, err = e.auth.Register(ctx, RegisterInput{Username: "wrench", Password: "y"})
	wantAPIErr(t, err, http.StatusConflict, "username_taken")
}

func TestAuthLoginFailures(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	if _, err := e.auth.Register(ctx, RegisterInput{Username: "rider", Password: "right"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, err := e.auth.Login(ctx, "rider", "wrong")
	wantAPIErr(t, err, http.StatusUnauthorized, "invalid_credentials")

	_, _, err = e.auth.Login(ctx, "nobody", "right")
	wantAPIErr(t, err, http.StatusUnauthorized, "invalid_credentials")
}

func TestAuthRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)

	same, err := e.auth.SetContextFromToken(ctx, "")
	if err != nil || ctxutil.GetRequestData(same) != nil {
		t.Fatalf("empty token should be a no-op, got %v", err)
	}

	_, err = e.auth.SetContextFromToken(ctx, "not-a-jwt")
	wantAPIErr(t, err, http.StatusUnauthorized, "invalid_token")

	// Token for a user that is later removed.
	u := testutil.SeedUser(t, ctx, e.db, "ghost", domain.RoleUser)
	tok, err := e.auth.(*authService).generateAccessToken(u)
	if err != nil {
		t.Fatalf("generateAccessToken: %v", err)
	}
	if err := e.db.Delete(&domain.User{}, u.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}
	_, err = e.auth.SetContextFromToken(ctx, tok)
	wantAPIErr(t, err, http.StatusUnauthorized, "invalid_token")

	// Signed with another key.
	other := NewAuthService(e.db, testutil.Logger(t), e.users, "other_secret", time.Hour)
	v := testutil.SeedUser(t, ctx, e.db, "victim", domain.RoleUser)
	forged, err := other.(*authService).generateAccessToken(v)
	if err != nil {
		t.Fatalf("generateAccessToken: %v", err)
	}
	_, err = e.auth.SetContextFromToken(ctx, forged)
	wantAPIErr(t, err, http.StatusUnauthorized, "invalid_token")

	// Expired.
	expired := NewAuthService(e.db, testutil.Logger(t), e.users, testSecret, -time.Minute)
	old, err := expired.(*authService).generateAccessToken(v)
	if err != nil {
		t.Fatalf("generateAccessToken: %v", err)
	}
	_, err = e.auth.SetContextFromToken(ctx, old)
	wantAPIErr(t, err, http.StatusUnauthorized, "invalid_token")
}
