package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"casinobot/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLedger is an in-memory ledger with injectable credit failures
type stubLedger struct {
	mu          sync.Mutex
	balances    map[int64]int64
	creditErr   error
	creditCalls int
}

func newStubLedger(balances map[int64]int64) *stubLedger {
	if balances == nil {
		balances = make(map[int64]int64)
	}
	return &stubLedger{balances: balances}
}

func (l *stubLedger) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[accountID], nil
}

func (l *stubLedger) TryDebit(ctx context.Context, accountID int64, amount int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[accountID] < amount {
		return false, nil
	}
	l.balances[accountID] -= amount
	return true, nil
}

func (l *stubLedger) Credit(ctx context.Context, accountID int64, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.creditCalls++
	if l.creditErr != nil {
		return l.creditErr
	}
	l.balances[accountID] += amount
	return nil
}

// recordingPublisher captures emitted events for assertions
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Emit(ctx context.Context, event events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) byType(eventType events.EventType) []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.Event
	for _, e := range p.events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

func newTestWagerService(t *testing.T, ledger Ledger, publisher EventPublisher, rolls ...int) *wagerService {
	t.Helper()

	codes, err := NewBetCodeTable()
	require.NoError(t, err)

	i := 0
	return &wagerService{
		ledger:    ledger,
		codes:     codes,
		publisher: publisher,
		randInt: func(n int) int {
			require.Less(t, i, len(rolls), "unexpected extra draw")
			r := rolls[i]
			i++
			return r
		},
	}
}

func TestWagerService_Dice_Win(t *testing.T) {
	ctx := context.Background()
	ledger := newStubLedger(map[int64]int64{1: 100})
	publisher := &recordingPublisher{}

	// randInt returns 2, so the roll is 3
	svc := newTestWagerService(t, ledger, publisher, 2)

	result, err := svc.Dice(ctx, 1, 10, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.Outcome)
	assert.Equal(t, int64(50), result.TotalWinnings)

	balance, _ := ledger.GetBalance(ctx, 1)
	assert.Equal(t, int64(140), balance)

	resolved := publisher.byType(events.EventTypeWagerResolved)
	require.Len(t, resolved, 1)
	event := resolved[0].(events.WagerResolvedEvent)
	assert.Equal(t, int64(1), event.AccountID)
	assert.Equal(t, int64(10), event.Stake)
	assert.Equal(t, int64(50), event.Winnings)
}

func TestWagerService_Dice_Loss(t *testing.T) {
	ctx := context.Background()
	ledger := newStubLedger(map[int64]int64{1: 100})
	publisher := &recordingPublisher{}

	// randInt returns 4, so the roll is 5
	svc := newTestWagerService(t, ledger, publisher, 4)

	result, err := svc.Dice(ctx, 1, 10, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.TotalWinnings)

	// Stake is forfeit; no credit ever happens on a loss
	balance, _ := ledger.GetBalance(ctx, 1)
	assert.Equal(t, int64(90), balance)
	assert.Equal(t, 0, ledger.creditCalls)
}

func TestWagerService_Dice_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	ledger := newStubLedger(map[int64]int64{1: 5})
	publisher := &recordingPublisher{}

	svc := newTestWagerService(t, ledger, publisher)

	_, err := svc.Dice(ctx, 1, 10, 3)

	var insufficient *InsufficientFundsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(1), insufficient.AccountID)
	assert.Equal(t, int64(10), insufficient.Amount)

	// Refused debit leaves the balance untouched
	balance, _ := ledger.GetBalance(ctx, 1)
	assert.Equal(t, int64(5), balance)
	assert.Empty(t, publisher.byType(events.EventTypeWagerResolved))
}

func TestWagerService_Dice_MalformedBeforeDebit(t *testing.T) {
	ctx := context.Background()
	ledger := newStubLedger(map[int64]int64{1: 100})
	publisher := &recordingPublisher{}

	svc := newTestWagerService(t, ledger, publisher)

	_, err := svc.Dice(ctx, 1, 10, 9)

	var malformed *MalformedBetError
	assert.True(t, errors.As(err, &malformed))

	balance, _ := ledger.GetBalance(ctx, 1)
	assert.Equal(t, int64(100), balance)
}

func TestWagerService_Roulette_MultiBet(t *testing.T) {
	ctx := context.Background()
	ledger := newStubLedger(map[int64]int64{1: 50})
	publisher := &recordingPublisher{}

	// randInt returns 8, so the spin is 9: red and odd
	svc := newTestWagerService(t, ledger, publisher, 8)

	result, err := svc.Roulette(ctx, 1, []string{"red@10", "even@5"})
	require.NoError(t, err)

	assert.Equal(t, "9", result.OutcomeLabel)
	assert.Equal(t, int64(15), result.TotalStake)
	assert.Equal(t, int64(10), result.TotalWinnings)

	// 50 - 15 stake + 10 winnings
	balance, _ := ledger.GetBalance(ctx, 1)
	assert.Equal(t, int64(45), balance)
}

func TestWagerService_Roulette_StakeIsSumOfAllBets(t *testing.T) {
	ctx := context.Background()
	ledger := newStubLedger(map[int64]int64{1: 14})
	publisher := &recordingPublisher{}

	svc := newTestWagerService(t, ledger, publisher)

	// Each bet alone is affordable, the sum is not
	_, err := svc.Roulette(ctx, 1, []string{"red@10", "even@5"})

	var insufficient *InsufficientFundsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(15), insufficient.Amount)

	balance, _ := ledger.GetBalance(ctx, 1)
	assert.Equal(t, int64(14), balance)
}

func TestWagerService_Roulette_MalformedBetRejectsAll(t *testing.T) {
	ctx := context.Background()
	ledger := newStubLedger(map[int64]int64{1: 100})
	publisher := &recordingPublisher{}

	svc := newTestWagerService(t, ledger, publisher)

	_, err := svc.Roulette(ctx, 1, []string{"red@10", "bogus@5"})

	var malformed *MalformedBetError
	assert.True(t, errors.As(err, &malformed))

	// Nothing was debited for the valid token either
	balance, _ := ledger.GetBalance(ctx, 1)
	assert.Equal(t, int64(100), balance)
}

func TestWagerService_CreditFailureReconciles(t *testing.T) {
	ctx := context.Background()
	ledger := newStubLedger(map[int64]int64{1: 100})
	ledger.creditErr = errors.New("connection reset")
	publisher := &recordingPublisher{}

	// Winning roll so the credit path runs
	svc := newTestWagerService(t, ledger, publisher, 2)

	_, err := svc.Dice(ctx, 1, 10, 3)

	var persistence *PersistenceError
	require.True(t, errors.As(err, &persistence))
	assert.True(t, persistence.Reconcile)

	// Credit was retried before giving up
	assert.Equal(t, 3, ledger.creditCalls)

	reconciliations := publisher.byType(events.EventTypeCreditReconciliation)
	require.Len(t, reconciliations, 1)
	event := reconciliations[0].(events.CreditReconciliationEvent)
	assert.Equal(t, int64(1), event.AccountID)
	assert.Equal(t, int64(50), event.Amount)
}

func TestWagerService_ConcurrentWagersNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	ledger := newStubLedger(map[int64]int64{1: 100})
	publisher := &recordingPublisher{}

	codes, err := NewBetCodeTable()
	require.NoError(t, err)

	// Every roll is 6, so a guess of 1 always loses and nothing is
	// credited back
	svc := &wagerService{
		ledger:    ledger,
		codes:     codes,
		publisher: publisher,
		randInt:   func(n int) int { return 5 },
	}

	const workers = 20
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Dice(ctx, 1, 10, 1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, refusals int
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		var insufficient *InsufficientFundsError
		require.True(t, errors.As(err, &insufficient))
		refusals++
	}

	// Exactly ten debits fit into the starting balance
	assert.Equal(t, 10, wins)
	assert.Equal(t, 10, refusals)

	balance, _ := ledger.GetBalance(ctx, 1)
	assert.Equal(t, int64(0), balance)
}
