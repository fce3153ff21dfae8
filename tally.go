package trp

// Tally counts, for every ordered pair of candidates (a, b), how many voters ranked a above b.
type Tally struct {
	counts [][]int64
	voters int64
}

// NewTally returns an empty tally for n candidates.
func NewTally(n int) *Tally {
	counts := make([][]int64, n)
	for i := range counts {
		counts[i] = make([]int64, n)
	}
	return &Tally{counts: counts}
}

// Record adds one voter's ranking. ranks[0] is the voter's first choice and must be a
// permutation of the candidate indices; it is not checked here.
//
// Every higher ranked candidate is preferred over every lower ranked one, adjacent or not.
func (t *Tally) Record(ranks []int) {
	for i := range ranks {
		for j := i + 1; j < len(ranks); j++ {
			t.counts[ranks[i]][ranks[j]]++
		}
	}
	t.voters++
}

// Prefer returns the number of voters who ranked a above b.
func (t *Tally) Prefer(a, b int) int64 {
	return t.counts[a][b]
}

// Voters is the number of recorded ballots.
func (t *Tally) Voters() int64 {
	return t.voters
}

// Matrix returns a copy of the counts, indexed [preferred][over].
func (t *Tally) Matrix() [][]int64 {
	matrix := make([][]int64, len(t.counts))
	for i, row := range t.counts {
		matrix[i] = append([]int64(nil), row...)
	}
	return matrix
}

// Pairs visits every combination of candidates once, in (a, b) order with a < b, and returns
// the head-to-head winner of each. Ties produce no pair.
func (t *Tally) Pairs() []Pair {
	n := len(t.counts)
	pairs := make([]Pair, 0, n*(n-1)/2)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			forA, forB := t.counts[a][b], t.counts[b][a]
			if forA > forB {
				pairs = append(pairs, Pair{Winner: a, Loser: b, Strength: forA - forB})
			} else if forB > forA {
				pairs = append(pairs, Pair{Winner: b, Loser: a, Strength: forB - forA})
			}
		}
	}
	return pairs
}
