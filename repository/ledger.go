package repository

import (
	"context"
	"fmt"

	"casinobot/database"
	"casinobot/models"
)

// AccountLedger is the postgres-backed ledger. Every mutation is a single
// statement, so atomicity comes from the database rather than in-process
// locks.
type AccountLedger struct {
	db *database.DB
}

// NewAccountLedger creates a new postgres account ledger
func NewAccountLedger(db *database.DB) *AccountLedger {
	return &AccountLedger{db: db}
}

// GetBalance returns the current balance, creating the account with a zero
// balance if it does not exist yet
func (l *AccountLedger) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	account, err := l.getOrCreate(ctx, accountID)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

// getOrCreate fetches the full account row, inserting it on first access
func (l *AccountLedger) getOrCreate(ctx context.Context, accountID int64) (*models.Account, error) {
	query := `
		INSERT INTO accounts (discord_id)
		VALUES ($1)
		ON CONFLICT (discord_id) DO UPDATE SET discord_id = EXCLUDED.discord_id
		RETURNING discord_id, balance, created_at, updated_at
	`

	var account models.Account
	err := l.db.Pool.QueryRow(ctx, query, accountID).Scan(
		&account.DiscordID, &account.Balance, &account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", accountID, err)
	}

	return &account, nil
}

// TryDebit decrements the balance by amount iff the balance covers it. The
// guard and the decrement are one statement; concurrent debits on the same
// account can never drive the balance negative.
func (l *AccountLedger) TryDebit(ctx context.Context, accountID int64, amount int64) (bool, error) {
	if amount <= 0 {
		return false, fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE accounts
		SET balance = balance - $1, updated_at = NOW()
		WHERE discord_id = $2 AND balance >= $1
	`

	result, err := l.db.Pool.Exec(ctx, query, amount, accountID)
	if err != nil {
		return false, fmt.Errorf("failed to debit account %d: %w", accountID, err)
	}

	return result.RowsAffected() == 1, nil
}

// Credit increments the balance by amount, creating the account first if it
// does not exist
func (l *AccountLedger) Credit(ctx context.Context, accountID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		INSERT INTO accounts (discord_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (discord_id) DO UPDATE
		SET balance = accounts.balance + EXCLUDED.balance, updated_at = NOW()
	`

	if _, err := l.db.Pool.Exec(ctx, query, accountID, amount); err != nil {
		return fmt.Errorf("failed to credit account %d: %w", accountID, err)
	}

	return nil
}
