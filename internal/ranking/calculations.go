package ranking

import "math"

// xpPerLevel is the flat XP granularity of a competition level.
const xpPerLevel = 100

// CalculateWinRate returns the win percentage rounded to the nearest
// integer, 0 when no matches have been played.
func CalculateWinRate(won, played int) int {
	if played == 0 {
		return 0
	}
	return int(math.Round(float64(won) / float64(played) * 100))
}

// CalculateAccuracy returns the shot accuracy percentage rounded to the
// nearest integer, 0 when no shots have been attempted.
func CalculateAccuracy(made, attempted int) int {
	if attempted == 0 {
		return 0
	}
	return int(math.Round(float64(made) / float64(attempted) * 100))
}

// CalculateXPProgress splits total XP into progress within the current
// level and the remainder to the next one. A player sitting exactly on a
// level boundary has the full level ahead of them.
func CalculateXPProgress(totalXP int) (progress, toNext int) {
	progress = totalXP % xpPerLevel
	return progress, xpPerLevel - progress
}

// CalculateLevel returns the player's current level for a total XP amount.
func CalculateLevel(totalXP int) int {
	return totalXP / xpPerLevel
}
