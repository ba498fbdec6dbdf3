package ranking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/courtreign/courtreign/internal/ranking"
)

func TestCalculateWinRate(t *testing.T) {
	assert.Equal(t, 0, ranking.CalculateWinRate(0, 0))
	assert.Equal(t, 30, ranking.CalculateWinRate(3, 10))
	assert.Equal(t, 33, ranking.CalculateWinRate(1, 3))
	assert.Equal(t, 100, ranking.CalculateWinRate(5, 5))
	// Exactly .5 rounds up.
	assert.Equal(t, 13, ranking.CalculateWinRate(1, 8))
}

func TestCalculateAccuracy(t *testing.T) {
	assert.Equal(t, 0, ranking.CalculateAccuracy(0, 0))
	assert.Equal(t, 47, ranking.CalculateAccuracy(42, 90))
	assert.Equal(t, 50, ranking.CalculateAccuracy(1, 2))
}

func TestCalculateXPProgress(t *testing.T) {
	progress, toNext := ranking.CalculateXPProgress(550)
	assert.Equal(t, 50, progress)
	assert.Equal(t, 50, toNext)

	progress, toNext = ranking.CalculateXPProgress(100)
	assert.Equal(t, 0, progress)
	assert.Equal(t, 100, toNext)

	progress, toNext = ranking.CalculateXPProgress(0)
	assert.Equal(t, 0, progress)
	assert.Equal(t, 100, toNext)
}

func TestCalculateLevel(t *testing.T) {
	assert.Equal(t, 0, ranking.CalculateLevel(99))
	assert.Equal(t, 1, ranking.CalculateLevel(100))
	assert.Equal(t, 5, ranking.CalculateLevel(550))
}
