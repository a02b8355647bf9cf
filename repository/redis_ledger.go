package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisLedger stores balances as integer keys in Redis. The conditional debit
// runs as a Lua script so the check and the decrement are a single atomic
// step on the server.
type RedisLedger struct {
	client *redis.Client
}

// NewRedisLedger connects to Redis and verifies the connection
func NewRedisLedger(ctx context.Context, addr string) (*RedisLedger, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisLedger{client: client}, nil
}

func balanceKey(accountID int64) string {
	return fmt.Sprintf("account:%d:balance", accountID)
}

var tryDebitScript = redis.NewScript(`
	local key = KEYS[1]
	local amount = tonumber(ARGV[1])

	local balance = tonumber(redis.call("GET", key) or "0")
	if balance < amount then
		return 0
	end

	redis.call("DECRBY", key, amount)
	return 1
`)

// GetBalance returns the current balance, creating the key if absent
func (l *RedisLedger) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	key := balanceKey(accountID)

	balance, err := l.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		if err := l.client.SetNX(ctx, key, 0, 0).Err(); err != nil {
			return 0, fmt.Errorf("failed to create account %d: %w", accountID, err)
		}
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance for account %d: %w", accountID, err)
	}

	return balance, nil
}

// TryDebit decrements the balance iff it covers amount, atomically via Lua
func (l *RedisLedger) TryDebit(ctx context.Context, accountID int64, amount int64) (bool, error) {
	if amount <= 0 {
		return false, fmt.Errorf("amount must be positive")
	}

	ok, err := tryDebitScript.Run(ctx, l.client, []string{balanceKey(accountID)}, amount).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to debit account %d: %w", accountID, err)
	}

	return ok == 1, nil
}

// Credit increments the balance; INCRBY creates the key at zero first
func (l *RedisLedger) Credit(ctx context.Context, accountID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	if err := l.client.IncrBy(ctx, balanceKey(accountID), amount).Err(); err != nil {
		return fmt.Errorf("failed to credit account %d: %w", accountID, err)
	}

	return nil
}

// Close releases the underlying Redis connection
func (l *RedisLedger) Close() error {
	return l.client.Close()
}
