package models

// GameKind identifies which game a wager was placed on
type GameKind string

const (
	GameDice     GameKind = "dice"
	GameRoulette GameKind = "roulette"
)

// Bet is a single validated roulette bet, scoped to one wager request
type Bet struct {
	Code   string
	Amount int64
}

// DiceBet is a validated dice wager
type DiceBet struct {
	Guess  int64
	Amount int64
}

// BetOutcome is the per-bet breakdown of a resolved wager
type BetOutcome struct {
	Code     string
	Amount   int64
	Won      bool
	Winnings int64
}

// WagerResult represents the outcome of a wager (returned to the chat layer)
type WagerResult struct {
	Game          GameKind
	Outcome       int64
	OutcomeLabel  string
	TotalStake    int64
	TotalWinnings int64
	NetDelta      int64
	Bets          []BetOutcome
}

// WinCount returns how many bets in the wager won
func (r *WagerResult) WinCount() int {
	count := 0
	for _, b := range r.Bets {
		if b.Won {
			count++
		}
	}
	return count
}

// TransferResult represents the outcome of a transfer (returned to the chat layer)
type TransferResult struct {
	Amount int64
	To     int64
}
