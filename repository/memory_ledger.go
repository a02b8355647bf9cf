package repository

import (
	"context"
	"fmt"
	"sync"
)

// MemoryLedger is the in-memory reference ledger. It backs unit tests and
// LEDGER_BACKEND=memory for local development; balances do not survive a
// restart.
type MemoryLedger struct {
	mu       sync.Mutex
	balances map[int64]int64
}

// NewMemoryLedger creates an empty in-memory ledger
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances: make(map[int64]int64),
	}
}

// GetBalance returns the current balance, creating the account if absent
func (l *MemoryLedger) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.balances[accountID]; !ok {
		l.balances[accountID] = 0
	}
	return l.balances[accountID], nil
}

// TryDebit decrements the balance iff it covers amount; the check and the
// decrement happen under one lock acquisition
func (l *MemoryLedger) TryDebit(ctx context.Context, accountID int64, amount int64) (bool, error) {
	if amount <= 0 {
		return false, fmt.Errorf("amount must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balances[accountID] < amount {
		return false, nil
	}
	l.balances[accountID] -= amount
	return true, nil
}

// Credit increments the balance, creating the account if absent
func (l *MemoryLedger) Credit(ctx context.Context, accountID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[accountID] += amount
	return nil
}
