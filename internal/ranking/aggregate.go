package ranking

// Aggregator folds per-user chart records into merged entries keyed by
// the normalized identity. Records must be folded in the provider's
// order (rank-ordered per user); entries remember first-seen order so
// that later sorting stays stable.
type Aggregator struct {
	policy  Policy
	keyFn   KeyFunc
	entries map[string]*Entry
	order   []*Entry
}

// NewAggregator builds an aggregator for one sweep.
func NewAggregator(policy Policy, keyFn KeyFunc) *Aggregator {
	return &Aggregator{
		policy:  policy,
		keyFn:   keyFn,
		entries: make(map[string]*Entry),
	}
}

func (a *Aggregator) entry(artist, name string) *Entry {
	key, display := a.keyFn(artist, name)
	e, ok := a.entries[key]
	if !ok {
		e = &Entry{
			Key:       key,
			Name:      display,
			UserPlays: make(map[string]int),
		}
		if a.policy.Position() {
			e.UserScores = make(map[string]int)
			e.UserPositions = make(map[string]int)
		}
		a.entries[key] = e
		a.order = append(a.order, e)
	}
	return e
}

// FoldUser merges one user's records. For hybrid policies raw plays
// are summed per user and capped later, at scoring time. For position
// policies the chart is truncated to the policy's per-user limit and
// each row earns points from its position; duplicate keys within the
// same chart follow the policy's reappearance rule.
func (a *Aggregator) FoldUser(user string, records []Record) {
	if a.policy.Position() {
		a.foldPositions(user, records)
		return
	}
	for _, rec := range records {
		e := a.entry(rec.Artist, rec.Name)
		e.UserPlays[user] += rec.Plays
	}
}

func (a *Aggregator) foldPositions(user string, records []Record) {
	if limit := a.policy.PerUserLimit; limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	totalPlays := 0
	for _, rec := range records {
		totalPlays += rec.Plays
	}
	if totalPlays == 0 {
		return
	}

	for i, rec := range records {
		position := i + 1
		points := a.policy.Points(position, rec.Plays, totalPlays)

		e := a.entry(rec.Artist, rec.Name)
		e.UserPlays[user] += rec.Plays

		seen, hasSeen := e.UserPositions[user]
		switch a.policy.Reappearance {
		case KeepBest:
			if hasSeen && seen <= position {
				continue
			}
			e.UserScores[user] = points
			e.UserPositions[user] = position
		default: // SumPoints
			e.UserScores[user] += points
			if !hasSeen || position < seen {
				e.UserPositions[user] = position
			}
		}
	}
}

// Score freezes the aggregate and computes each entry's score under
// the policy. Entries come back in first-seen order; sorting and
// ranking belong to Assemble.
func (a *Aggregator) Score() []Entry {
	scored := make([]Entry, 0, len(a.order))
	for _, e := range a.order {
		if a.policy.Position() {
			scored = append(scored, a.scorePosition(e))
		} else {
			scored = append(scored, a.scoreHybrid(e))
		}
	}
	return scored
}

func (a *Aggregator) scoreHybrid(e *Entry) Entry {
	out := *e
	out.UserScores = make(map[string]int, len(e.UserPlays))

	totalPlays := 0
	for user, plays := range e.UserPlays {
		capped := plays
		if capped > a.policy.CapPerUser {
			capped = a.policy.CapPerUser
		}
		totalPlays += capped
		out.UserScores[user] = round(float64(capped) * a.policy.PlaysWeight * 10)
	}

	listeners := len(e.UserPlays)
	bonus := float64(listeners) * float64(a.policy.UserMultiplier) * a.policy.ListenersWeight
	out.Plays = totalPlays
	out.Score = round((float64(totalPlays)*a.policy.PlaysWeight + bonus) * 10)
	out.ListenersBonus = round(bonus * 10)
	return out
}

func (a *Aggregator) scorePosition(e *Entry) Entry {
	out := *e

	totalPoints := 0
	listeners := 0
	for _, points := range e.UserScores {
		totalPoints += points
		if points > 0 {
			listeners++
		}
	}

	totalPlays := 0
	for _, plays := range e.UserPlays {
		totalPlays += plays
	}

	out.Plays = totalPlays
	out.ListenersBonus = listeners * a.policy.ListenerBonus
	out.Score = totalPoints + out.ListenersBonus
	return out
}

func round(v float64) int {
	if v < 0 {
		return -round(-v)
	}
	return int(v + 0.5)
}
