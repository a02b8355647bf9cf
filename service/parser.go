package service

import (
	"fmt"
	"strconv"
	"strings"

	"casinobot/models"
)

// ParseRouletteBets validates raw "code@amount" tokens against the bet code
// table. Parsing is pure: it never touches the ledger, and a single bad token
// rejects the whole request before any money moves.
func ParseRouletteBets(table BetCodeTable, tokens []string) ([]models.Bet, error) {
	if len(tokens) == 0 {
		return nil, &MalformedBetError{Reason: "no bets supplied"}
	}

	bets := make([]models.Bet, 0, len(tokens))
	for _, token := range tokens {
		code, amountStr, found := strings.Cut(token, "@")
		if !found {
			return nil, &MalformedBetError{Reason: fmt.Sprintf("%q is missing '@'", token)}
		}

		code = strings.ToLower(code)
		if _, ok := table[code]; !ok {
			return nil, &MalformedBetError{Reason: fmt.Sprintf("unknown bet code %q", code)}
		}

		amount, err := strconv.ParseInt(amountStr, 10, 64)
		if err != nil || amount < 1 {
			return nil, &MalformedBetError{Reason: fmt.Sprintf("invalid bet amount %q", amountStr)}
		}

		bets = append(bets, models.Bet{Code: code, Amount: amount})
	}

	return bets, nil
}

// ParseDiceBet validates a single guess/amount pair. The command schema
// guarantees exactly one pair reaches this point.
func ParseDiceBet(amount int64, guess int64) (models.DiceBet, error) {
	if amount < 1 {
		return models.DiceBet{}, &MalformedBetError{Reason: fmt.Sprintf("invalid bet amount %d", amount)}
	}
	if guess < 1 || guess > 6 {
		return models.DiceBet{}, &MalformedBetError{Reason: fmt.Sprintf("guess must be between 1 and 6, got %d", guess)}
	}
	return models.DiceBet{Guess: guess, Amount: amount}, nil
}
