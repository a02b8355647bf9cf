package service

import (
	"context"
	"fmt"

	"casinobot/events"
	"casinobot/models"

	log "github.com/sirupsen/logrus"
)

type transferService struct {
	ledger    Ledger
	publisher EventPublisher
}

// NewTransferService creates a new transfer service
func NewTransferService(ledger Ledger, publisher EventPublisher) TransferService {
	return &transferService{
		ledger:    ledger,
		publisher: publisher,
	}
}

// Give moves amount from sender to recipient as two independent ledger
// primitives: a conditional debit, then a credit. This is deliberately not a
// cross-account transaction; a crash between the two calls leaves the amount
// debited but never credited, which is surfaced as a reconciliation error
// rather than hidden.
func (s *transferService) Give(ctx context.Context, fromAccountID, toAccountID int64, amount int64) (*models.TransferResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("transfer amount must be positive")
	}
	if fromAccountID == toAccountID {
		return nil, fmt.Errorf("cannot transfer to yourself")
	}

	ok, err := s.ledger.TryDebit(ctx, fromAccountID, amount)
	if err != nil {
		return nil, &PersistenceError{Op: "debit sender", Err: err}
	}
	if !ok {
		return nil, &InsufficientFundsError{AccountID: fromAccountID, Amount: amount}
	}

	if err := creditWithRetry(ctx, s.ledger, s.publisher, toAccountID, amount, "credit recipient"); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"from":   fromAccountID,
		"to":     toAccountID,
		"amount": amount,
	}).Debug("Transfer completed")

	s.publisher.Emit(ctx, events.TransferEvent{
		From:   fromAccountID,
		To:     toAccountID,
		Amount: amount,
	})

	return &models.TransferResult{Amount: amount, To: toAccountID}, nil
}

// Mint credits freshly created tokens to an account. The command layer gates
// this behind admin authorization before it is ever called.
func (s *transferService) Mint(ctx context.Context, toAccountID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("mint amount must be positive")
	}

	if err := s.ledger.Credit(ctx, toAccountID, amount); err != nil {
		return &PersistenceError{Op: "mint", Err: err}
	}

	s.publisher.Emit(ctx, events.TransferEvent{
		To:     toAccountID,
		Amount: amount,
	})

	return nil
}
