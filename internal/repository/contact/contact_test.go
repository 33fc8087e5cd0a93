package contact

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"storefront/internal/db"
	"storefront/internal/domain"
	"storefront/internal/migrate"
)

func TestPostgresRepo_Lifecycle(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, domain.ContactMessage{Name: " Aki ", Email: "Aki@Example.com", Message: "hello"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, created.ID)

	if created.Status != domain.ContactPending || created.Email != "aki@example.com" || created.Name != "Aki" {
		t.Fatalf("unexpected created message %+v", created)
	}

	if err := repo.MarkFailed(ctx, created.ID, "smtp down"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.ContactFailed || got.LastError != "smtp down" {
		t.Fatalf("expected failed status, got %+v", got)
	}

	if err := repo.MarkSent(ctx, created.ID, time.Now()); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	got, err = repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.ContactSent || got.SentAt == nil || got.LastError != "" {
		t.Fatalf("expected sent status, got %+v", got)
	}
}

func TestPostgresRepo_NotFound(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := NewPostgres(pool, nil)
	if _, err := repo.GetByID(ctx, uuid.NewString()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "not-a-uuid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for malformed id, got %v", err)
	}
	if err := repo.MarkSent(ctx, uuid.NewString(), time.Now()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
