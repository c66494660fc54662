package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bankaccess/account-system/internal/core/domain"
)

type stubBlockRepo struct {
	entries map[string]*domain.BlockEntry
}

func newStubBlockRepo() *stubBlockRepo {
	return &stubBlockRepo{entries: make(map[string]*domain.BlockEntry)}
}

func (r *stubBlockRepo) Insert(_ context.Context, entry *domain.BlockEntry) error {
	if _, exists := r.entries[entry.NationalID]; exists {
		return domain.ErrAlreadyBlocked
	}
	clone := *entry
	r.entries[entry.NationalID] = &clone
	return nil
}

func (r *stubBlockRepo) Delete(_ context.Context, nationalID string) error {
	if _, exists := r.entries[nationalID]; !exists {
		return domain.ErrBlockNotFound
	}
	delete(r.entries, nationalID)
	return nil
}

func (r *stubBlockRepo) Exists(_ context.Context, nationalID string) (bool, error) {
	_, exists := r.entries[nationalID]
	return exists, nil
}

func TestBlockService_Block(t *testing.T) {
	repo := newStubBlockRepo()
	svc := NewBlockService(repo, zerolog.Nop())

	if err := svc.Block(context.Background(), "123456789", "alice"); err != nil {
		t.Fatalf("Block failed: %v", err)
	}

	entry := repo.entries["123456789"]
	if entry == nil {
		t.Fatalf("expected a block entry")
	}
	if entry.Username != "alice" {
		t.Fatalf("unexpected username: %s", entry.Username)
	}
	if entry.CreatedAt.IsZero() {
		t.Fatalf("expected a creation timestamp")
	}
}

func TestBlockService_Block_NotIdempotent(t *testing.T) {
	svc := NewBlockService(newStubBlockRepo(), zerolog.Nop())

	if err := svc.Block(context.Background(), "123456789", "alice"); err != nil {
		t.Fatalf("first Block failed: %v", err)
	}
	if err := svc.Block(context.Background(), "123456789", "alice"); !errors.Is(err, domain.ErrAlreadyBlocked) {
		t.Fatalf("expected ErrAlreadyBlocked on second Block, got %v", err)
	}
}

func TestBlockService_Unblock(t *testing.T) {
	svc := NewBlockService(newStubBlockRepo(), zerolog.Nop())

	if err := svc.Unblock(context.Background(), "123456789"); !errors.Is(err, domain.ErrBlockNotFound) {
		t.Fatalf("expected ErrBlockNotFound for a never-blocked id, got %v", err)
	}

	_ = svc.Block(context.Background(), "123456789", "alice")
	if err := svc.Unblock(context.Background(), "123456789"); err != nil {
		t.Fatalf("Unblock failed: %v", err)
	}
	if err := svc.Unblock(context.Background(), "123456789"); !errors.Is(err, domain.ErrBlockNotFound) {
		t.Fatalf("expected ErrBlockNotFound on second Unblock, got %v", err)
	}
}

func TestBlockService_IsBlocked(t *testing.T) {
	svc := NewBlockService(newStubBlockRepo(), zerolog.Nop())

	blocked, err := svc.IsBlocked(context.Background(), "123456789")
	if err != nil {
		t.Fatalf("IsBlocked failed: %v", err)
	}
	if blocked {
		t.Fatalf("expected not blocked for a missing entry")
	}

	_ = svc.Block(context.Background(), "123456789", "alice")
	blocked, err = svc.IsBlocked(context.Background(), "123456789")
	if err != nil {
		t.Fatalf("IsBlocked failed: %v", err)
	}
	if !blocked {
		t.Fatalf("expected blocked after Block")
	}
}
