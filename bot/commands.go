package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// registerCommands registers all slash commands with Discord. Commands are
// scoped to the configured guild, or registered globally when no guild is
// set.
func (b *Bot) registerCommands() error {
	var adminOnly int64 = discordgo.PermissionAdministrator

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Check that the bot is alive",
		},
		{
			Name:        "balance",
			Description: "Check your current token balance",
		},
		{
			Name:        "dice",
			Description: "Bet tokens on the roll of a die",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount of tokens to bet",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "guess",
					Description: "The number you expect to roll (1-6)",
					Required:    true,
				},
			},
		},
		{
			Name:        "roulette",
			Description: "Bet tokens on a roulette spin",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "bets",
					Description: "Space-separated bets, each code@amount (e.g. \"red@10 16@5\")",
					Required:    true,
				},
			},
		},
		{
			Name:        "give",
			Description: "Give your tokens to someone else",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount of tokens to give",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to give tokens to",
					Required:    true,
				},
			},
		},
		{
			Name:                     "createtokens",
			Description:              "Add tokens to a user's account (admin only)",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount of tokens to create",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to credit",
					Required:    true,
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
