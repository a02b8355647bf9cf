package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"casinobot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (b *Bot) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.respond(s, i, "Pong!")
}

func (b *Bot) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	balance, err := b.ledger.GetBalance(ctx, discordID)
	if err != nil {
		log.Errorf("Error getting balance for %d: %v", discordID, err)
		b.respondWithError(s, i, "Unable to retrieve balance. Please try again.")
		return
	}

	b.respond(s, i, fmt.Sprintf("Your current balance is **%d tokens**", balance))
}

func (b *Bot) handleDice(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var amount, guess int64
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "guess":
			guess = opt.IntValue()
		}
	}

	result, err := b.wagerService.Dice(ctx, discordID, amount, guess)
	if err != nil {
		b.respondWagerError(s, i, discordID, err)
		return
	}

	message := fmt.Sprintf("You rolled a **%s**. ", result.OutcomeLabel)
	if result.TotalWinnings > 0 {
		message += fmt.Sprintf("Congratulations, you won **%d tokens**!", result.TotalWinnings)
	} else {
		message += "Better luck next time."
	}
	b.respond(s, i, message)
}

func (b *Bot) handleRoulette(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	discordID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var tokens []string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "bets" {
			tokens = strings.Fields(opt.StringValue())
		}
	}

	result, err := b.wagerService.Roulette(ctx, discordID, tokens)
	if err != nil {
		b.respondWagerError(s, i, discordID, err)
		return
	}

	message := fmt.Sprintf("The wheel landed on **%s**. ", result.OutcomeLabel)
	if result.TotalWinnings > 0 {
		message += fmt.Sprintf("You bet **%d tokens** and won **%d tokens** (%d/%d bets won).",
			result.TotalStake, result.TotalWinnings, result.WinCount(), len(result.Bets))
	} else {
		message += fmt.Sprintf("You lost your **%d token** stake, better luck next time.", result.TotalStake)
	}
	b.respond(s, i, message)
}

func (b *Bot) handleGive(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var amount int64
	var recipient *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			recipient = opt.UserValue(s)
		}
	}

	if recipient == nil {
		b.respondWithError(s, i, "Invalid recipient user.")
		return
	}

	fromID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing sender Discord ID %s: %v", i.Member.User.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	toID, err := strconv.ParseInt(recipient.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing recipient Discord ID %s: %v", recipient.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if fromID == toID {
		b.respondWithError(s, i, "You cannot give tokens to yourself.")
		return
	}

	result, err := b.transferService.Give(ctx, fromID, toID, amount)
	if err != nil {
		var insufficient *service.InsufficientFundsError
		if errors.As(err, &insufficient) {
			b.respondWithError(s, i, "You don't have enough tokens for that.")
			return
		}
		log.Errorf("Error transferring %d tokens from %d to %d: %v", amount, fromID, toID, err)
		b.respondWithError(s, i, "Unable to process transfer. Please try again.")
		return
	}

	b.respond(s, i, fmt.Sprintf("Successfully gave **%d tokens** to %s", result.Amount, recipient.Mention()))
}

func (b *Bot) handleCreateTokens(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	callerID, err := strconv.ParseInt(i.Member.User.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	// Discord already gates this command behind the administrator permission;
	// the configured allow-list is a second check for servers that loosen the
	// command permissions.
	if len(b.config.AdminUserIDs) > 0 && !b.isAdmin(callerID) {
		b.respondWithError(s, i, "You don't have permission to create tokens.")
		return
	}

	var amount int64
	var recipient *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			recipient = opt.UserValue(s)
		}
	}

	if recipient == nil {
		b.respondWithError(s, i, "Invalid recipient user.")
		return
	}
	if amount <= 0 {
		b.respondWithError(s, i, "Amount must be positive.")
		return
	}

	toID, err := strconv.ParseInt(recipient.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing recipient Discord ID %s: %v", recipient.ID, err)
		b.respondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if err := b.transferService.Mint(ctx, toID, amount); err != nil {
		log.Errorf("Error minting %d tokens for %d: %v", amount, toID, err)
		b.respondWithError(s, i, "Unable to create tokens. Please try again.")
		return
	}

	b.respond(s, i, fmt.Sprintf("Added **%d tokens** to %s's account", amount, recipient.Mention()))
}

// respondWagerError maps engine errors to user-facing replies. Malformed bets
// and refused debits are the user's problem; everything else is ours.
func (b *Bot) respondWagerError(s *discordgo.Session, i *discordgo.InteractionCreate, discordID int64, err error) {
	var malformed *service.MalformedBetError
	if errors.As(err, &malformed) {
		b.respondWithError(s, i, fmt.Sprintf("Invalid bet: %s", malformed.Reason))
		return
	}

	var insufficient *service.InsufficientFundsError
	if errors.As(err, &insufficient) {
		b.respondWithError(s, i, "You can't bet that much.")
		return
	}

	log.Errorf("Error resolving wager for %d: %v", discordID, err)
	b.respondWithError(s, i, "Something went wrong resolving your wager. Please try again later.")
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
		},
	})
	if err != nil {
		log.Errorf("Error sending response: %v", err)
	}
}

func (b *Bot) respondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}
