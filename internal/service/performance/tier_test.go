package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinetichr/pulse-backend-go/internal/domain/performance"
)

func score(id string, overall float64) performance.EmployeeScore {
	return performance.EmployeeScore{EmployeeID: id, Overall: overall}
}

func TestRank_OrdersDescendingWithDenseRanks(t *testing.T) {
	t.Parallel()
	scores := []performance.EmployeeScore{
		score("emp-1", 68.4),
		score("emp-2", 92.1),
		score("emp-3", 55.0),
		score("emp-4", 77.7),
	}

	entries := Rank(scores, FixedTierPolicy{})

	require.Len(t, entries, 4)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
	assert.Equal(t, "emp-2", entries[0].EmployeeID)
	assert.Equal(t, "emp-4", entries[1].EmployeeID)
	assert.Equal(t, "emp-1", entries[2].EmployeeID)
	assert.Equal(t, "emp-3", entries[3].EmployeeID)

	// Input is left untouched
	assert.Equal(t, "emp-1", scores[0].EmployeeID)
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	t.Parallel()
	scores := []performance.EmployeeScore{
		score("emp-a", 70),
		score("emp-b", 70),
		score("emp-c", 70),
	}

	entries := Rank(scores, FixedTierPolicy{})

	assert.Equal(t, "emp-a", entries[0].EmployeeID)
	assert.Equal(t, "emp-b", entries[1].EmployeeID)
	assert.Equal(t, "emp-c", entries[2].EmployeeID)
}

func TestFixedTierPolicy(t *testing.T) {
	t.Parallel()
	policy := FixedTierPolicy{}

	assert.Equal(t, performance.TierDiamond, policy.Tier(1, 10))
	assert.Equal(t, performance.TierGold, policy.Tier(2, 10))
	assert.Equal(t, performance.TierSilver, policy.Tier(3, 10))
	assert.Equal(t, performance.TierBronze, policy.Tier(4, 10))
	assert.Equal(t, performance.TierBronze, policy.Tier(10, 10))
}

func TestRank_ThreeEmployeesHaveNoBronze(t *testing.T) {
	t.Parallel()
	scores := []performance.EmployeeScore{
		score("emp-1", 90),
		score("emp-2", 80),
		score("emp-3", 70),
	}

	entries := Rank(scores, FixedTierPolicy{})

	assert.Equal(t, performance.TierDiamond, entries[0].Tier)
	assert.Equal(t, performance.TierGold, entries[1].Tier)
	assert.Equal(t, performance.TierSilver, entries[2].Tier)
}

func TestTopPercentPolicy(t *testing.T) {
	t.Parallel()
	policy := TopPercentPolicy{DiamondPct: 0.1, GoldPct: 0.2, SilverPct: 0.3}

	assert.Equal(t, performance.TierDiamond, policy.Tier(1, 10))
	assert.Equal(t, performance.TierGold, policy.Tier(3, 10))
	assert.Equal(t, performance.TierSilver, policy.Tier(6, 10))
	assert.Equal(t, performance.TierBronze, policy.Tier(7, 10))
	assert.Equal(t, performance.TierBronze, policy.Tier(0, 0))
}
