package service

import (
	"fmt"
	"strconv"
)

// The wheel is modeled as pockets 1-38. Pockets 1-36 are the numbered
// pockets; the two zero pockets get the sentinels below so every outcome is a
// plain integer.
const (
	pocketZero       int64 = 37 // rendered "0"
	pocketDoubleZero int64 = 38 // rendered "00"

	straightMultiplier  = 35
	evenMoneyMultiplier = 1
	dozenMultiplier     = 2
	columnMultiplier    = 2
)

// redPockets is the standard wheel color assignment. 0 and 00 belong to
// neither color.
var redPockets = map[int64]bool{
	1: true, 3: true, 5: true, 7: true, 9: true,
	12: true, 14: true, 16: true, 18: true, 19: true,
	21: true, 23: true, 25: true, 27: true, 30: true,
	32: true, 34: true, 36: true,
}

// BetCode binds a roulette bet code to its payout multiplier and winning
// predicate. A winning bet pays amount * Multiplier on top of the returned
// stake.
type BetCode struct {
	Code       string
	Multiplier int64
	Matches    func(outcome int64) bool
}

// BetCodeTable maps canonical lowercase bet codes to their payout rules. It is
// built once at startup and read-only afterwards; all requests share it.
type BetCodeTable map[string]BetCode

// NewBetCodeTable builds the static roulette payout table and validates every
// entry.
func NewBetCodeTable() (BetCodeTable, error) {
	table := make(BetCodeTable)

	add := func(code string, multiplier int64, matches func(int64) bool) {
		table[code] = BetCode{Code: code, Multiplier: multiplier, Matches: matches}
	}

	// Straight bets on a single pocket. "0" and "00" map to the sentinel
	// pockets.
	for n := int64(1); n <= 36; n++ {
		pocket := n
		add(strconv.FormatInt(n, 10), straightMultiplier, func(outcome int64) bool {
			return outcome == pocket
		})
	}
	add("0", straightMultiplier, func(outcome int64) bool { return outcome == pocketZero })
	add("00", straightMultiplier, func(outcome int64) bool { return outcome == pocketDoubleZero })

	// Even-money outside bets. All exclude the zero pockets.
	add("red", evenMoneyMultiplier, func(outcome int64) bool {
		return isNumbered(outcome) && redPockets[outcome]
	})
	add("black", evenMoneyMultiplier, func(outcome int64) bool {
		return isNumbered(outcome) && !redPockets[outcome]
	})
	add("odd", evenMoneyMultiplier, func(outcome int64) bool {
		return isNumbered(outcome) && outcome%2 == 1
	})
	add("even", evenMoneyMultiplier, func(outcome int64) bool {
		return isNumbered(outcome) && outcome%2 == 0
	})
	add("low", evenMoneyMultiplier, func(outcome int64) bool {
		return outcome >= 1 && outcome <= 18
	})
	add("high", evenMoneyMultiplier, func(outcome int64) bool {
		return outcome >= 19 && outcome <= 36
	})

	// Dozens
	add("112", dozenMultiplier, func(outcome int64) bool { return outcome >= 1 && outcome <= 12 })
	add("212", dozenMultiplier, func(outcome int64) bool { return outcome >= 13 && outcome <= 24 })
	add("312", dozenMultiplier, func(outcome int64) bool { return outcome >= 25 && outcome <= 36 })

	// Columns
	add("121", columnMultiplier, func(outcome int64) bool { return isNumbered(outcome) && outcome%3 == 1 })
	add("221", columnMultiplier, func(outcome int64) bool { return isNumbered(outcome) && outcome%3 == 2 })
	add("321", columnMultiplier, func(outcome int64) bool { return isNumbered(outcome) && outcome%3 == 0 })

	for code, entry := range table {
		if entry.Multiplier <= 0 {
			return nil, fmt.Errorf("bet code %q has non-positive multiplier %d", code, entry.Multiplier)
		}
		if entry.Matches == nil {
			return nil, fmt.Errorf("bet code %q has no predicate", code)
		}
	}

	return table, nil
}

// isNumbered reports whether the outcome is one of the numbered pockets 1-36
func isNumbered(outcome int64) bool {
	return outcome >= 1 && outcome <= 36
}

// outcomeLabel renders a pocket the way players read it on the wheel
func outcomeLabel(outcome int64) string {
	switch outcome {
	case pocketZero:
		return "0"
	case pocketDoubleZero:
		return "00"
	default:
		return strconv.FormatInt(outcome, 10)
	}
}
