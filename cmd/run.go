package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"casinobot/bot"
	"casinobot/config"
	"casinobot/database"
	"casinobot/events"
	"casinobot/repository"
	"casinobot/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting casino bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize the ledger backend
	log.Printf("Initializing %s ledger backend...", cfg.LedgerBackend)
	ledger, closeLedger, err := newLedger(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize ledger: %w", err)
	}
	log.Println("Ledger backend initialized successfully")

	// Initialize event bus
	eventBus := events.NewBus()
	eventBus.Subscribe(events.EventTypeCreditReconciliation, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.CreditReconciliationEvent); ok {
			log.Printf("RECONCILE: account %d is owed %d tokens (%s: %s)", e.AccountID, e.Amount, e.Op, e.Cause)
		}
	})

	// Initialize services
	log.Println("Initializing services...")
	codes, err := service.NewBetCodeTable()
	if err != nil {
		return fmt.Errorf("failed to build bet code table: %w", err)
	}
	wagerService := service.NewWagerService(ledger, codes, eventBus)
	transferService := service.NewTransferService(ledger, eventBus)
	log.Println("Services initialized successfully")

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:        cfg.DiscordToken,
		GuildID:      cfg.DiscordGuildID,
		AdminUserIDs: cfg.AdminUserIDs,
	}
	discordBot, err := bot.New(botConfig, ledger, wagerService, transferService, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("Closing ledger backend...")
	if err := closeLedger(); err != nil {
		log.Printf("Error closing ledger backend: %v", err)
	}

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}

// newLedger constructs the ledger selected by LEDGER_BACKEND along with a
// close function for its underlying connection.
func newLedger(ctx context.Context, cfg *config.Config) (service.Ledger, func() error, error) {
	switch cfg.LedgerBackend {
	case config.BackendPostgres:
		db, err := database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		closeFn := func() error {
			db.Close()
			return nil
		}
		return repository.NewAccountLedger(db), closeFn, nil

	case config.BackendRedis:
		ledger, err := repository.NewRedisLedger(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return ledger, ledger.Close, nil

	case config.BackendMemory:
		return repository.NewMemoryLedger(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
	}
}
