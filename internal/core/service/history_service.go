package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stayease/marketplace-system/internal/core/domain"
	"github.com/stayease/marketplace-system/internal/core/ports"
)

// historyKey is the record-store key holding the snapshot log.
const historyKey = "stayease_users_history"

// HistoryService implements ports.HistoryLog over a record store. The log is
// a bounded ring: when maxEntries is exceeded the oldest snapshots are
// dropped. maxEntries <= 0 disables the cap.
type HistoryService struct {
	store      ports.RecordStore
	maxEntries int
	now        func() time.Time
}

func NewHistoryService(store ports.RecordStore, maxEntries int) *HistoryService {
	return &HistoryService{store: store, maxEntries: maxEntries, now: time.Now}
}

// Append pushes a snapshot of the given state, stamped with the current time.
func (s *HistoryService) Append(ctx context.Context, state domain.DirectoryState) error {
	entries, err := s.read(ctx)
	if err != nil {
		return err
	}

	entries = append(entries, domain.HistorySnapshot{
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
		Data:      state.Clone(),
	})
	if s.maxEntries > 0 && len(entries) > s.maxEntries {
		entries = entries[len(entries)-s.maxEntries:]
	}

	return s.write(ctx, entries)
}

// ReadAll returns snapshots in append order, oldest first.
func (s *HistoryService) ReadAll(ctx context.Context) ([]domain.HistorySnapshot, error) {
	return s.read(ctx)
}

// Clear resets the log to an empty sequence.
func (s *HistoryService) Clear(ctx context.Context) error {
	return s.write(ctx, []domain.HistorySnapshot{})
}

func (s *HistoryService) read(ctx context.Context) ([]domain.HistorySnapshot, error) {
	raw, found, err := s.store.Get(ctx, historyKey)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if !found {
		return []domain.HistorySnapshot{}, nil
	}

	var entries []domain.HistorySnapshot
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return entries, nil
}

func (s *HistoryService) write(ctx context.Context, entries []domain.HistorySnapshot) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.store.Set(ctx, historyKey, raw); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}
