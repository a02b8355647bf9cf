package service

import (
	"testing"

	"casinobot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDice_Win(t *testing.T) {
	result := resolveDice(models.DiceBet{Guess: 4, Amount: 10}, 4)

	assert.Equal(t, models.GameDice, result.Game)
	assert.Equal(t, int64(4), result.Outcome)
	assert.Equal(t, "4", result.OutcomeLabel)
	assert.Equal(t, int64(10), result.TotalStake)
	assert.Equal(t, int64(50), result.TotalWinnings)
	assert.Equal(t, int64(40), result.NetDelta)
	require.Len(t, result.Bets, 1)
	assert.True(t, result.Bets[0].Won)
}

func TestResolveDice_Loss(t *testing.T) {
	result := resolveDice(models.DiceBet{Guess: 4, Amount: 10}, 5)

	assert.Equal(t, int64(0), result.TotalWinnings)
	assert.Equal(t, int64(-10), result.NetDelta)
	require.Len(t, result.Bets, 1)
	assert.False(t, result.Bets[0].Won)
}

func TestResolveRoulette_MixedBets(t *testing.T) {
	table, err := NewBetCodeTable()
	require.NoError(t, err)

	bets := []models.Bet{
		{Code: "red", Amount: 10},
		{Code: "odd", Amount: 5},
		{Code: "9", Amount: 2},
	}

	// 9 is red and odd, so all three bets win: 10*1 + 5*1 + 2*35
	result := resolveRoulette(table, bets, 9)

	assert.Equal(t, models.GameRoulette, result.Game)
	assert.Equal(t, "9", result.OutcomeLabel)
	assert.Equal(t, int64(17), result.TotalStake)
	assert.Equal(t, int64(85), result.TotalWinnings)
	assert.Equal(t, int64(68), result.NetDelta)
	assert.Equal(t, 3, result.WinCount())
}

func TestResolveRoulette_PartialWin(t *testing.T) {
	table, err := NewBetCodeTable()
	require.NoError(t, err)

	bets := []models.Bet{
		{Code: "red", Amount: 10},
		{Code: "even", Amount: 5},
	}

	// 9 is red but odd
	result := resolveRoulette(table, bets, 9)

	assert.Equal(t, int64(15), result.TotalStake)
	assert.Equal(t, int64(10), result.TotalWinnings)
	assert.Equal(t, int64(-5), result.NetDelta)
	assert.Equal(t, 1, result.WinCount())
	assert.True(t, result.Bets[0].Won)
	assert.False(t, result.Bets[1].Won)
}

func TestResolveRoulette_ZeroPocketLosesEverything(t *testing.T) {
	table, err := NewBetCodeTable()
	require.NoError(t, err)

	bets := []models.Bet{
		{Code: "red", Amount: 10},
		{Code: "black", Amount: 10},
		{Code: "odd", Amount: 10},
		{Code: "even", Amount: 10},
	}

	result := resolveRoulette(table, bets, pocketDoubleZero)

	assert.Equal(t, "00", result.OutcomeLabel)
	assert.Equal(t, int64(40), result.TotalStake)
	assert.Equal(t, int64(0), result.TotalWinnings)
	assert.Equal(t, int64(-40), result.NetDelta)
	assert.Equal(t, 0, result.WinCount())
}

func TestResolveRoulette_StraightOnZero(t *testing.T) {
	table, err := NewBetCodeTable()
	require.NoError(t, err)

	result := resolveRoulette(table, []models.Bet{{Code: "00", Amount: 2}}, pocketDoubleZero)

	assert.Equal(t, int64(70), result.TotalWinnings)
	assert.Equal(t, int64(68), result.NetDelta)
}
