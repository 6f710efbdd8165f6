package engine

import "github.com/wager-duel-backend/internal/models"

// Settle computes the fund-transfer instructions for a resolved game.
//
// This is a pure function: it only computes instructions, it never
// moves funds. The host environment executes the returned transfers.
// Callers have already verified that both wagers match, but the
// summation still walks the union of denominations so every coin in
// either wager is carried over.
//
// Behavior:
//   - Tie: each player gets their own wager back, unchanged.
//   - Win: the winner receives the denomination-by-denomination sum
//     of both wagers in a single instruction.
func Settle(result models.Outcome, host, opponent string, hostWager, oppWager models.Wager) []models.TransferInstruction {
	if result == models.OutcomeTie {
		return []models.TransferInstruction{
			{To: host, Amount: hostWager},
			{To: opponent, Amount: oppWager},
		}
	}

	winner := host
	if result == models.OutcomeOppWins {
		winner = opponent
	}

	return []models.TransferInstruction{
		{To: winner, Amount: sumWagers(hostWager, oppWager)},
	}
}

// sumWagers adds two wagers denomination by denomination. Denominations
// follow the first wager's order, with any denominations only present
// in the second wager appended in their order. Amounts are arbitrary
// precision, so the sums cannot overflow.
func sumWagers(first, second models.Wager) models.Wager {
	sum := make(models.Wager, 0, len(first))
	seen := make(map[string]bool, len(first))

	for _, c := range first {
		total := c.Amount
		for _, o := range second {
			if o.Denom == c.Denom {
				total = total.Add(o.Amount)
			}
		}
		sum = append(sum, models.Coin{Denom: c.Denom, Amount: total})
		seen[c.Denom] = true
	}
	for _, o := range second {
		if !seen[o.Denom] {
			sum = append(sum, models.Coin{Denom: o.Denom, Amount: o.Amount})
		}
	}
	return sum
}
