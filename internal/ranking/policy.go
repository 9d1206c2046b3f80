package ranking

import "math"

// Reappearance controls what happens when the same user's chart
// contains a second row that normalizes onto an already-seen key
// (normal edition plus deluxe edition, for example).
type Reappearance int

const (
	// SumPlays adds the duplicate row's raw plays before capping.
	SumPlays Reappearance = iota
	// SumPoints adds the duplicate row's position points and keeps the
	// best (lowest) chart position seen.
	SumPoints
	// KeepBest keeps only the better-position row's points; the worse
	// row is discarded entirely.
	KeepBest
)

// PointsFunc maps one chart row to position points. position is
// 1-indexed within the user's chart, totalPlays is the sum of plays
// over the rows considered for that user.
type PointsFunc func(position, plays, totalPlays int) int

// Policy selects the scoring algorithm and its constants. Hybrid
// capped-plays policies leave Points nil; position-weighted policies
// set Points and PerUserLimit.
type Policy struct {
	// Hybrid capped-plays scoring.
	CapPerUser      int
	PlaysWeight     float64
	ListenersWeight float64
	UserMultiplier  int

	// Position-weighted scoring.
	PerUserLimit  int
	Points        PointsFunc
	ListenerBonus int

	Reappearance Reappearance
}

// Position reports whether the policy scores by chart position rather
// than capped plays.
func (p Policy) Position() bool {
	return p.Points != nil
}

// AlbumPolicy ranks weekly albums: plays capped at 15 per user,
// weighted 0.9 plays / 0.1 listeners.
func AlbumPolicy() Policy {
	return Policy{
		CapPerUser:      15,
		PlaysWeight:     0.9,
		ListenersWeight: 0.1,
		UserMultiplier:  20,
		Reappearance:    SumPlays,
	}
}

// TrackPolicy ranks weekly tracks: cap 7, weighted 0.8/0.2.
func TrackPolicy() Policy {
	return Policy{
		CapPerUser:      7,
		PlaysWeight:     0.8,
		ListenersWeight: 0.2,
		UserMultiplier:  20,
		Reappearance:    SumPlays,
	}
}

// ArtistPolicy ranks weekly artists: cap 20, weighted 0.8/0.2.
func ArtistPolicy() Policy {
	return Policy{
		CapPerUser:      20,
		PlaysWeight:     0.8,
		ListenersWeight: 0.2,
		UserMultiplier:  20,
		Reappearance:    SumPlays,
	}
}

// AnnualPolicy ranks a whole year of albums by each user's chart
// positions: every row in a user's top-limit earns
// ceil(share-of-plays * 100 * 100) points, and each distinct listener
// adds a flat 50-point bonus to the entity.
func AnnualPolicy(limit int) Policy {
	return Policy{
		PerUserLimit:  limit,
		Points:        PercentagePoints,
		ListenerBonus: 50,
		Reappearance:  SumPoints,
	}
}

// DecayPolicy is the linear rank-decay variant of annual scoring:
// position p in a top-k chart earns floor(k*(k-p)/(k-1)) points,
// clamped at zero. Duplicate rows keep only the better position.
func DecayPolicy(k int) Policy {
	return Policy{
		PerUserLimit:  k,
		Points:        LinearDecayPoints(k),
		ListenerBonus: 50,
		Reappearance:  KeepBest,
	}
}

// PercentagePoints scores a row by its share of the user's total
// plays: ceil((plays/totalPlays) * 100 * 100).
func PercentagePoints(_, plays, totalPlays int) int {
	if totalPlays <= 0 {
		return 0
	}
	percentage := float64(plays) / float64(totalPlays) * 100
	return int(math.Ceil(percentage * 100))
}

// LinearDecayPoints scores position p as floor(k*(k-p)/(k-1)), so
// position 1 earns k points and position k earns none.
func LinearDecayPoints(k int) PointsFunc {
	return func(position, _, _ int) int {
		if k < 2 {
			return 0
		}
		points := k * (k - position) / (k - 1)
		if points < 0 {
			return 0
		}
		return points
	}
}
