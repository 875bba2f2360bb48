package main

// ── Tier weights ──

// tierValue approximates what one ingredient of each tier is worth in
// tier-0 units; higher tiers cost one extra conversion each.
var tierValue = Ingredients{1, 2, 3, 4}

// deltaValue is the weighted net ingredient change of a delta.
func deltaValue(d Ingredients) int {
	v := 0
	for t := range d {
		v += tierValue[t] * d[t]
	}
	return v
}

// ── Learn scoring ──

// learnScore ranks a tome entry: net value of one cast, plus the tax
// collected, minus the tome cost. Repeatable spells earn one extra point
// because they can multicast.
func learnScore(l Learn) int {
	s := deltaValue(l.Delta) + l.TaxCount - l.TomeIndex
	if l.Repeatable {
		s++
	}
	return s
}

// bestLearn returns the highest-scoring affordable learn with a score of at
// least minScore. Ties keep tome order.
func bestLearn(w Witch, learns []Learn, minScore int) (Learn, bool) {
	var best Learn
	bestScore, found := 0, false
	for _, l := range learns {
		if !w.CanLearn(l) {
			continue
		}
		if s := learnScore(l); s >= minScore && (!found || s > bestScore) {
			best, bestScore, found = l, s, true
		}
	}
	return best, found
}

// ── Brew selection ──

// bestAffordableBrew returns the most expensive order w can brew right now.
func bestAffordableBrew(w Witch, brews []Brew) (Brew, bool) {
	var best Brew
	found := false
	for _, b := range brews {
		if w.CanBrew(b) && (!found || b.Price > best.Price) {
			best, found = b, true
		}
	}
	return best, found
}

// castableIndexes lists the casts w could play this turn.
func castableIndexes(w Witch) []int {
	var idxs []int
	for i := range w.Casts {
		if w.CanCast(i) {
			idxs = append(idxs, i)
		}
	}
	return idxs
}
