package service

import (
	"context"
	"testing"
	"time"

	"github.com/stayease/marketplace-system/internal/core/domain"
)

func stateWithEmails(emails ...string) domain.DirectoryState {
	users := make([]domain.User, 0, len(emails))
	for _, e := range emails {
		users = append(users, domain.User{ID: e, Email: e})
	}
	return domain.DirectoryState{Users: users}
}

func TestHistory_AppendOrder(t *testing.T) {
	h := NewHistoryService(newMemStore(), 0)

	states := []domain.DirectoryState{
		stateWithEmails("a@x.com"),
		stateWithEmails("a@x.com", "b@x.com"),
		stateWithEmails("a@x.com", "b@x.com", "c@x.com"),
	}
	for _, s := range states {
		if err := h.Append(context.Background(), s); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}

	entries, err := h.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if len(e.Data.Users) != i+1 {
			t.Fatalf("entries out of order: entry %d has %d users", i, len(e.Data.Users))
		}
		if _, err := time.Parse(time.RFC3339Nano, e.Timestamp); err != nil {
			t.Fatalf("timestamp %q is not RFC3339: %v", e.Timestamp, err)
		}
	}
}

func TestHistory_RingCap(t *testing.T) {
	h := NewHistoryService(newMemStore(), 2)

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		if err := h.Append(context.Background(), stateWithEmails(email)); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}

	entries, err := h.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected cap of 2, got %d entries", len(entries))
	}
	// Oldest entry dropped, order preserved.
	if entries[0].Data.Users[0].Email != "b@x.com" || entries[1].Data.Users[0].Email != "c@x.com" {
		t.Fatalf("wrong entries survived the cap: %s, %s",
			entries[0].Data.Users[0].Email, entries[1].Data.Users[0].Email)
	}
}

func TestHistory_SnapshotIsDeepCopy(t *testing.T) {
	h := NewHistoryService(newMemStore(), 0)

	state := stateWithEmails("a@x.com")
	if err := h.Append(context.Background(), state); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	state.Users[0].Email = "mutated@x.com"

	entries, err := h.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	if entries[0].Data.Users[0].Email != "a@x.com" {
		t.Fatalf("snapshot aliased live state")
	}
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistoryService(newMemStore(), 0)

	_ = h.Append(context.Background(), stateWithEmails("a@x.com"))
	if err := h.Clear(context.Background()); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}

	entries, err := h.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty log after Clear, got %d entries", len(entries))
	}
}
