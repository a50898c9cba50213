package repository

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ayush931/stackskills/internal/auth"
	"github.com/ayush931/stackskills/internal/db"
	"github.com/ayush931/stackskills/internal/model"
)

// openTestStore connects to the database named by TEST_DATABASE_URL and
// applies migrations. Tests that need a live database skip when it is unset.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if err := db.RunMigrations(url); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := db.NewPool(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	return NewStore(pool)
}

func testUser(t *testing.T) model.User {
	t.Helper()
	now := time.Now().UTC()
	return model.User{
		ID:           uuid.NewString(),
		StackID:      fmt.Sprintf("t%06d", rand.Intn(1000000)),
		Name:         "Test Student",
		Phone:        fmt.Sprintf("9%09d", rand.Intn(1000000000)),
		SchoolName:   "Test School",
		ClassName:    "7A",
		PasswordHash: "x",
		Role:         auth.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestSessionLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	user := testUser(t)
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	claimed, err := store.ClaimSession(ctx, user.ID, "token-a", time.Now().UTC())
	if err != nil {
		t.Fatalf("claim session: %v", err)
	}
	if !claimed {
		t.Fatal("first claim should succeed")
	}

	claimed, err = store.ClaimSession(ctx, user.ID, "token-b", time.Now().UTC())
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if claimed {
		t.Fatal("second claim must fail while a session is active")
	}

	got, err := store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Session == nil || *got.Session != "token-a" {
		t.Fatalf("session = %v, want token-a", got.Session)
	}

	cleared, err := store.ClearSessionIfSet(ctx, user.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("clear session: %v", err)
	}
	if !cleared {
		t.Fatal("clear should report an active session")
	}

	cleared, err = store.ClearSessionIfSet(ctx, user.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if cleared {
		t.Fatal("second clear should find no session")
	}

	// Unconditional clear is idempotent.
	if err := store.ClearSession(ctx, user.ID, time.Now().UTC()); err != nil {
		t.Fatalf("unconditional clear: %v", err)
	}
}

func TestPhoneTakenByOther(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := testUser(t)
	second := testUser(t)
	for _, user := range []model.User{first, second} {
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	taken, err := store.PhoneTakenByOther(ctx, first.Phone, second.ID)
	if err != nil {
		t.Fatalf("phone taken: %v", err)
	}
	if !taken {
		t.Fatal("first user's phone should count as taken for second user")
	}

	taken, err = store.PhoneTakenByOther(ctx, first.Phone, first.ID)
	if err != nil {
		t.Fatalf("phone taken: %v", err)
	}
	if taken {
		t.Fatal("own phone must not count as taken")
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	user := testUser(t)
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	newName := "Renamed Student"
	updated, err := store.UpdateProfile(ctx, user.ID, model.ProfileUpdate{Name: &newName}, time.Now().UTC())
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != newName {
		t.Fatalf("name = %q, want %q", updated.Name, newName)
	}
	if updated.SchoolName != user.SchoolName || updated.Phone != user.Phone {
		t.Fatal("untouched fields must keep their values")
	}
}
