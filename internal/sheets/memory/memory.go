package memory

import (
	"context"
	"fmt"
	"sync"

	"expensebot/internal/core"
	ports "expensebot/internal/sheets"
)

// AmountHeader is the column B header the store reports, like a real sheet.
const AmountHeader = "Amount"

var _ ports.Ledger = (*Store)(nil)

// Store is an in-process ledger for local runs and tests. Nothing survives a
// restart.
type Store struct {
	mu    sync.Mutex
	items []core.ExpenseRecord
}

func New(seed ...core.ExpenseRecord) *Store {
	return &Store{items: append([]core.ExpenseRecord(nil), seed...)}
}

// AppendRow stores the record and returns a synthetic row reference.
func (s *Store) AppendRow(_ context.Context, r core.ExpenseRecord) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, r)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// ReadAmounts returns the header followed by every stored amount.
func (s *Store) ReadAmounts(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.items)+1)
	out = append(out, AmountHeader)
	for _, r := range s.items {
		out = append(out, r.Amount.String())
	}
	return out, nil
}

// Records returns a copy of the stored rows.
func (s *Store) Records() []core.ExpenseRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.ExpenseRecord(nil), s.items...)
}
