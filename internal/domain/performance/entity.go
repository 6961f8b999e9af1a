package performance

// EmployeeScore is the per-employee result of one scoring run. It is
// computed per request and never persisted by this service; persisted
// score rows come from the snapshot batch job.
type EmployeeScore struct {
	EmployeeID string
	FullName   string
	Email      string
	AvatarURL  *string
	Role       string
	Attendance float64
	Tasks      float64
	// Overall is kept unrounded so ties at the displayed integer level
	// still order deterministically.
	Overall float64
}

// RankedEntry is an EmployeeScore with its leaderboard position
type RankedEntry struct {
	EmployeeScore
	Rank int
	Tier string
}

// Query scopes a scoring run. StartDate/EndDate are optional
// "YYYY-MM-DD" overrides; when empty the service computes a default
// lookback window in the company's timezone.
type Query struct {
	CompanyID    string
	DepartmentID *string
	StartDate    string
	EndDate      string
}

// Tier labels, assigned by leaderboard position
const (
	TierDiamond = "Diamond"
	TierGold    = "Gold"
	TierSilver  = "Silver"
	TierBronze  = "Bronze"
)

// TierPolicy maps a 1-based rank to a tier label. The mapping is a
// product decision, kept behind an interface so it can change without
// touching the ranking algorithm.
type TierPolicy interface {
	Tier(rank, total int) string
}
