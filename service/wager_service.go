package service

import (
	"context"
	"math/rand"
	"time"

	"casinobot/events"
	"casinobot/models"

	log "github.com/sirupsen/logrus"
)

const (
	creditAttempts   = 3
	creditRetryDelay = 100 * time.Millisecond
)

type wagerService struct {
	ledger    Ledger
	codes     BetCodeTable
	publisher EventPublisher
	randInt   func(n int) int // uniform draw in [0, n); replaced in tests
}

// NewWagerService creates the wager transaction coordinator. It holds no
// cross-request state; wagers for different accounts always proceed in
// parallel, and correctness for concurrent wagers on one account rests
// entirely on the ledger's conditional debit.
func NewWagerService(ledger Ledger, codes BetCodeTable, publisher EventPublisher) WagerService {
	return &wagerService{
		ledger:    ledger,
		codes:     codes,
		publisher: publisher,
		randInt:   rand.Intn,
	}
}

func (s *wagerService) Dice(ctx context.Context, accountID int64, amount int64, guess int64) (*models.WagerResult, error) {
	bet, err := ParseDiceBet(amount, guess)
	if err != nil {
		return nil, err
	}

	return s.settle(ctx, accountID, bet.Amount, func() *models.WagerResult {
		return resolveDice(bet, int64(s.randInt(diceSides))+1)
	})
}

func (s *wagerService) Roulette(ctx context.Context, accountID int64, tokens []string) (*models.WagerResult, error) {
	bets, err := ParseRouletteBets(s.codes, tokens)
	if err != nil {
		return nil, err
	}

	var totalStake int64
	for _, bet := range bets {
		totalStake += bet.Amount
	}

	return s.settle(ctx, accountID, totalStake, func() *models.WagerResult {
		return resolveRoulette(s.codes, bets, int64(s.randInt(int(pocketDoubleZero)))+1)
	})
}

// settle runs the affordability/draw/credit pipeline shared by both games.
// The stake debit is a single conditional ledger operation and is never
// retried: a refusal is a definitive answer, not a transient fault. Once the
// debit succeeds the wager always runs to completion.
func (s *wagerService) settle(ctx context.Context, accountID int64, stake int64, draw func() *models.WagerResult) (*models.WagerResult, error) {
	ok, err := s.ledger.TryDebit(ctx, accountID, stake)
	if err != nil {
		return nil, &PersistenceError{Op: "debit stake", Err: err}
	}
	if !ok {
		return nil, &InsufficientFundsError{AccountID: accountID, Amount: stake}
	}

	// Pure from here on: the draw cannot fail for ledger reasons.
	result := draw()

	if result.TotalWinnings > 0 {
		if err := creditWithRetry(ctx, s.ledger, s.publisher, accountID, result.TotalWinnings, "credit winnings"); err != nil {
			return nil, err
		}
	}

	log.WithFields(log.Fields{
		"accountID": accountID,
		"game":      result.Game,
		"outcome":   result.OutcomeLabel,
		"stake":     result.TotalStake,
		"winnings":  result.TotalWinnings,
	}).Debug("Wager resolved")

	s.publisher.Emit(ctx, events.WagerResolvedEvent{
		AccountID: accountID,
		Game:      string(result.Game),
		Outcome:   result.OutcomeLabel,
		Stake:     result.TotalStake,
		Winnings:  result.TotalWinnings,
	})

	return result, nil
}

// creditWithRetry applies a credit whose matching debit already succeeded.
// Giving up immediately would silently confiscate tokens, so the credit is
// retried a bounded number of times; on exhaustion the failure is logged for
// operators and published as a reconciliation event before being surfaced.
func creditWithRetry(ctx context.Context, ledger Ledger, publisher EventPublisher, accountID int64, amount int64, op string) error {
	var err error
	for attempt := 1; attempt <= creditAttempts; attempt++ {
		err = ledger.Credit(ctx, accountID, amount)
		if err == nil {
			return nil
		}

		log.WithFields(log.Fields{
			"accountID": accountID,
			"amount":    amount,
			"op":        op,
			"attempt":   attempt,
			"error":     err,
		}).Warn("Credit failed")

		if attempt < creditAttempts {
			time.Sleep(creditRetryDelay)
		}
	}

	log.WithFields(log.Fields{
		"accountID": accountID,
		"amount":    amount,
		"op":        op,
		"error":     err,
	}).Error("Credit exhausted retries after a successful debit; manual reconciliation required")

	publisher.Emit(ctx, events.CreditReconciliationEvent{
		AccountID: accountID,
		Amount:    amount,
		Op:        op,
		Cause:     err.Error(),
	})

	return &PersistenceError{Op: op, Reconcile: true, Err: err}
}
