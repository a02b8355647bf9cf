package service

import (
	"fmt"
)

// MalformedBetError reports bad wager syntax or an unknown bet code. It is
// returned before any ledger access happens.
type MalformedBetError struct {
	Reason string
}

func (e *MalformedBetError) Error() string {
	return fmt.Sprintf("malformed bet: %s", e.Reason)
}

// InsufficientFundsError reports a refused conditional debit. The ledger is
// left untouched.
type InsufficientFundsError struct {
	AccountID int64
	Amount    int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: account %d cannot cover %d tokens", e.AccountID, e.Amount)
}

// PersistenceError reports a ledger backend failure. Reconcile is set when the
// failure happened after a successful debit, meaning tokens left an account
// without the matching credit being applied; such errors require operator
// attention rather than a retry by the user.
type PersistenceError struct {
	Op        string
	Reconcile bool
	Err       error
}

func (e *PersistenceError) Error() string {
	if e.Reconcile {
		return fmt.Sprintf("ledger failure during %s (stake already debited, manual reconciliation required): %v", e.Op, e.Err)
	}
	return fmt.Sprintf("ledger failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
