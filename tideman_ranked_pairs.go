package trp

import (
	"fmt"
	"sort"
)

// Pair records that Winner beat Loser head-to-head by Strength votes.
type Pair struct {
	Winner   int   `json:"winner"`
	Loser    int   `json:"loser"`
	Strength int64 `json:"strength"`
}

func (p Pair) String() string {
	return fmt.Sprintf("%d > %d (%d)", p.Winner, p.Loser, p.Strength)
}

// ElectionResults is everything computed when counting an Election.
type ElectionResults struct {
	ElectionID string   `json:"electionID"`
	Candidates []string `json:"candidates"`
	Voters     int64    `json:"voters"`
	Tally      *Tally   `json:"-"`

	// RankedPairs is every pair sorted by descending strength.
	RankedPairs []Pair `json:"rankedPairs"`

	// CyclicalLockedPairsIdx holds indices into RankedPairs of the pairs that were not locked
	// because they would have created a cycle.
	CyclicalLockedPairsIdx []int `json:"cyclicalLockedPairs"`

	Locked      *LockedGraph `json:"-"`
	WinnerIndex int          `json:"winnerIndex"`
	Winner      string       `json:"winner"`

	// Ranking orders every candidate so that nobody appears after someone locked below them.
	Ranking []string `json:"ranking"`
}

// IsCyclical reports whether the i-th ranked pair was dropped.
func (r *ElectionResults) IsCyclical(i int) bool {
	for _, dropped := range r.CyclicalLockedPairsIdx {
		if dropped == i {
			return true
		}
	}
	return false
}

// DroppedPairs returns the ranked pairs that were skipped while locking.
func (r *ElectionResults) DroppedPairs() []Pair {
	var pairs []Pair
	for _, i := range r.CyclicalLockedPairsIdx {
		pairs = append(pairs, r.RankedPairs[i])
	}
	return pairs
}

// SortPairs returns a copy of pairs ordered by descending strength. Pairs of equal strength
// keep their relative order, which decides which edge of a tied cycle is dropped.
func SortPairs(pairs []Pair) []Pair {
	sorted := append([]Pair(nil), pairs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Strength > sorted[j].Strength
	})
	return sorted
}

// LockPairs locks each ranked pair in turn into a graph of n candidates. A pair that would
// close a cycle is skipped for good; its index is returned in dropped.
func LockPairs(n int, ranked []Pair) (locked *LockedGraph, dropped []int) {
	locked = NewLockedGraph(n)
	for i, pair := range ranked {
		if err := locked.Lock(pair.Winner, pair.Loser); err != nil {
			dropped = append(dropped, i)
		}
	}
	return locked, dropped
}
