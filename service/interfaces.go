package service

import (
	"context"

	"casinobot/events"
	"casinobot/models"
)

// Ledger is the authoritative store of account balances and the only
// component permitted to mutate them. Accounts are created implicitly with a
// zero balance on first access.
type Ledger interface {
	// GetBalance returns the current balance, creating the account if absent
	GetBalance(ctx context.Context, accountID int64) (int64, error)

	// TryDebit atomically decrements the balance by amount iff balance >= amount.
	// The check and the decrement are one indivisible operation; concurrent
	// debits can never drive a balance negative. Returns whether it happened.
	TryDebit(ctx context.Context, accountID int64, amount int64) (bool, error)

	// Credit atomically increments the balance, creating the account if absent
	Credit(ctx context.Context, accountID int64, amount int64) error
}

// WagerService coordinates a wager as one logical operation: parse,
// affordability debit, outcome draw, winnings credit, result
type WagerService interface {
	// Dice wagers amount on a guessed roll of a six-sided die
	Dice(ctx context.Context, accountID int64, amount int64, guess int64) (*models.WagerResult, error)

	// Roulette resolves one or more "code@amount" bets against a single spin
	Roulette(ctx context.Context, accountID int64, tokens []string) (*models.WagerResult, error)
}

// TransferService moves tokens between accounts and mints new ones
type TransferService interface {
	// Give moves amount from one account to another. It composes two ledger
	// primitives and is not atomic across accounts; see the note on the
	// implementation.
	Give(ctx context.Context, fromAccountID, toAccountID int64, amount int64) (*models.TransferResult, error)

	// Mint credits freshly created tokens to an account. Authorization is
	// enforced by the command layer before this is called.
	Mint(ctx context.Context, toAccountID int64, amount int64) error
}

// EventPublisher defines the interface for publishing engine events
type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}
