package matches

// Reward policy constants. XP drives ranking; RP is the spendable balance.
const (
	baseXP        = 50
	winBonusXP    = 50
	marginXPRate  = 10
	marginXPCap   = 100
	baseRP        = 20
	marginRPRate  = 2
	rpCap         = 50
	participantXP = 50
)

// ComputeRewards derives the reward triple from the final scores. The
// margin bonus scales with the score difference, capped so blowouts do
// not farm XP.
func ComputeRewards(winnerScore, loserScore int) (winnerXP, winnerRP, loserXP int) {
	diff := winnerScore - loserScore
	if diff < 0 {
		diff = 0
	}

	marginXP := marginXPRate * diff
	if marginXP > marginXPCap {
		marginXP = marginXPCap
	}
	winnerXP = baseXP + winBonusXP + marginXP

	winnerRP = baseRP + marginRPRate*diff
	if winnerRP > rpCap {
		winnerRP = rpCap
	}

	return winnerXP, winnerRP, participantXP
}
