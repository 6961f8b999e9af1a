package performance

import (
	"sort"

	"github.com/kinetichr/pulse-backend-go/internal/domain/performance"
)

// FixedTierPolicy assigns tiers by absolute leaderboard position:
// rank 1 Diamond, 2 Gold, 3 Silver, everyone else Bronze. The mapping
// ignores company size, so a 3-person company has no Bronze tier at
// all. Kept as the product default.
type FixedTierPolicy struct{}

func (FixedTierPolicy) Tier(rank, total int) string {
	switch rank {
	case 1:
		return performance.TierDiamond
	case 2:
		return performance.TierGold
	case 3:
		return performance.TierSilver
	default:
		return performance.TierBronze
	}
}

// TopPercentPolicy assigns tiers proportionally to headcount: the top
// DiamondPct of ranks get Diamond, the next GoldPct Gold, the next
// SilverPct Silver, the rest Bronze. Available as an alternative for
// companies far larger or smaller than a handful of employees.
type TopPercentPolicy struct {
	DiamondPct float64
	GoldPct    float64
	SilverPct  float64
}

func (p TopPercentPolicy) Tier(rank, total int) string {
	if total <= 0 || rank <= 0 {
		return performance.TierBronze
	}
	position := float64(rank) / float64(total)
	switch {
	case position <= p.DiamondPct:
		return performance.TierDiamond
	case position <= p.DiamondPct+p.GoldPct:
		return performance.TierGold
	case position <= p.DiamondPct+p.GoldPct+p.SilverPct:
		return performance.TierSilver
	default:
		return performance.TierBronze
	}
}

// Rank stable-sorts scores descending by unrounded overall score and
// assigns dense 1-based ranks plus tier labels. Input order breaks
// exact ties, so recomputation over unchanged data is reproducible.
func Rank(scores []performance.EmployeeScore, policy performance.TierPolicy) []performance.RankedEntry {
	sorted := make([]performance.EmployeeScore, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Overall > sorted[j].Overall
	})

	entries := make([]performance.RankedEntry, len(sorted))
	for i, s := range sorted {
		rank := i + 1
		entries[i] = performance.RankedEntry{
			EmployeeScore: s,
			Rank:          rank,
			Tier:          policy.Tier(rank, len(sorted)),
		}
	}
	return entries
}
