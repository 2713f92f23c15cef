package repos

import (
	"context"
	"testing"

	"github.com/yungbote/motodiag-backend/internal/data/db"
	"github.com/yungbote/motodiag-backend/internal/data/repos/testutil"
	"github.com/yungbote/motodiag-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	repo := NewUserRepo(gdb, testutil.Logger(t))

	created, err := repo.Create(ctx, nil, []*domain.User{{Username: "admin", Password: "hash", Role: domain.RoleAdmin}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if exists, err := repo.UsernameExists(ctx, nil, "admin"); err != nil || !exists {
		t.Fatalf("UsernameExists: %v %v", exists, err)
	}
	if exists, _ := repo.UsernameExists(ctx, nil, "nobody"); exists {
		t.Fatalf("nobody should not exist")
	}

	byName, err := repo.GetByUsername(ctx, nil, "admin")
	if err != nil || byName.ID != created[0].ID || !byName.IsAdmin() {
		t.Fatalf("GetByUsername: %+v err=%v", byName, err)
	}
	if _, err := repo.GetByID(ctx, nil, 42); !db.IsNotFound(err) {
		t.Fatalf("GetByID missing: %v", err)
	}

	_, err = repo.Create(ctx, nil, []*domain.User{{Username: "admin", Password: "x", Role: domain.RoleUser}})
	if !db.IsUniqueViolation(err) {
		t.Fatalf("duplicate username err = %v, want unique violation", err)
	}
}
