package service

import (
	"strconv"

	"casinobot/models"
)

// diceWinMultiplier is the fixed dice payout. With 1-in-6 odds it is
// deliberately house-favorable and must not change: a win credits 5x the
// stake on top of the already-debited stake, a net gain of 4x.
const diceWinMultiplier = 5

const diceSides = 6

// resolveDice resolves one dice bet against a roll. Pure function of
// (bet, roll).
func resolveDice(bet models.DiceBet, roll int64) *models.WagerResult {
	won := roll == bet.Guess

	var winnings int64
	if won {
		winnings = diceWinMultiplier * bet.Amount
	}

	return &models.WagerResult{
		Game:          models.GameDice,
		Outcome:       roll,
		OutcomeLabel:  strconv.FormatInt(roll, 10),
		TotalStake:    bet.Amount,
		TotalWinnings: winnings,
		NetDelta:      winnings - bet.Amount,
		Bets: []models.BetOutcome{
			{
				Code:     strconv.FormatInt(bet.Guess, 10),
				Amount:   bet.Amount,
				Won:      won,
				Winnings: winnings,
			},
		},
	}
}

// resolveRoulette resolves every bet in the request against a single spin.
// All bets share the one draw; winnings accumulate per matching predicate
// while the full stake is forfeit regardless of outcome. Pure function of
// (bets, spin).
func resolveRoulette(table BetCodeTable, bets []models.Bet, spin int64) *models.WagerResult {
	result := &models.WagerResult{
		Game:         models.GameRoulette,
		Outcome:      spin,
		OutcomeLabel: outcomeLabel(spin),
		Bets:         make([]models.BetOutcome, 0, len(bets)),
	}

	for _, bet := range bets {
		code := table[bet.Code]
		outcome := models.BetOutcome{Code: bet.Code, Amount: bet.Amount}

		if code.Matches(spin) {
			outcome.Won = true
			outcome.Winnings = bet.Amount * code.Multiplier
			result.TotalWinnings += outcome.Winnings
		}

		result.TotalStake += bet.Amount
		result.Bets = append(result.Bets, outcome)
	}

	result.NetDelta = result.TotalWinnings - result.TotalStake
	return result
}
