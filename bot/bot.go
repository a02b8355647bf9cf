package bot

import (
	"fmt"

	"casinobot/events"
	"casinobot/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token        string
	GuildID      string
	AdminUserIDs []int64
}

type Bot struct {
	config          Config
	session         *discordgo.Session
	ledger          service.Ledger
	wagerService    service.WagerService
	transferService service.TransferService
	eventBus        *events.Bus
}

// New creates the Discord bot, opens the gateway connection and registers the
// slash commands
func New(config Config, ledger service.Ledger, wagerService service.WagerService, transferService service.TransferService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	bot := &Bot{
		config:          config,
		session:         dg,
		ledger:          ledger,
		wagerService:    wagerService,
		transferService: transferService,
		eventBus:        eventBus,
	}

	dg.AddHandler(bot.handleCommands)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// isAdmin reports whether the caller may invoke privileged commands
func (b *Bot) isAdmin(discordID int64) bool {
	for _, id := range b.config.AdminUserIDs {
		if id == discordID {
			return true
		}
	}
	return false
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "ping":
		b.handlePing(s, i)
	case "balance":
		b.handleBalance(s, i)
	case "dice":
		b.handleDice(s, i)
	case "roulette":
		b.handleRoulette(s, i)
	case "give":
		b.handleGive(s, i)
	case "createtokens":
		b.handleCreateTokens(s, i)
	}
}
