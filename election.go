package trp

import (
	"github.com/jicksta/tideman/internal"
	"github.com/pkg/errors"
)

// MaxCandidates bounds the number of choices an Election will accept.
const MaxCandidates = 9

var (
	// ErrNoCandidates is returned when an election is started without any candidates.
	ErrNoCandidates = errors.New("no candidates given")

	// ErrTooManyCandidates is returned when more than MaxCandidates are given.
	ErrTooManyCandidates = errors.Errorf("maximum number of candidates is %d", MaxCandidates)

	// ErrDuplicateCandidate is returned when two candidates share a name.
	ErrDuplicateCandidate = errors.New("duplicate candidate")

	// ErrInvalidBallot is the cause of every rejected ballot.
	ErrInvalidBallot = errors.New("invalid vote")
)

// Ballot is one voter's complete ranking of every candidate, most preferred first.
type Ballot struct {
	VoterID string   `json:"voterID"`
	Choices []string `json:"choices"`
}

// Election owns the candidates and the running tally for a single vote count. Ballots are
// recorded in the order they arrive.
type Election struct {
	ID         string    `json:"id"`
	Candidates []string  `json:"candidates"`
	Ballots    []*Ballot `json:"ballots"`

	tally   *Tally
	indices map[string]int
}

// NewElection registers candidates in the given order. Indices 0..N-1 follow that order.
func NewElection(electionID string, candidates []string) (*Election, error) {
	switch {
	case len(candidates) == 0:
		return nil, ErrNoCandidates
	case len(candidates) > MaxCandidates:
		return nil, errors.Wrapf(ErrTooManyCandidates, "got %d", len(candidates))
	}
	if dupes := internal.Duplicates(candidates); len(dupes) > 0 {
		return nil, errors.Wrapf(ErrDuplicateCandidate, "%v", dupes)
	}

	indices := make(map[string]int, len(candidates))
	for i, name := range candidates {
		indices[name] = i
	}

	return &Election{
		ID:         electionID,
		Candidates: append([]string(nil), candidates...),
		Ballots:    []*Ballot{},
		tally:      NewTally(len(candidates)),
		indices:    indices,
	}, nil
}

// CandidateIndex resolves a candidate name. The bool is false for unknown names.
func (e *Election) CandidateIndex(name string) (int, bool) {
	i, ok := e.indices[name]
	return i, ok
}

// Ranks translates a ranking of names into candidate indices. Every candidate must appear
// exactly once.
func (e *Election) Ranks(choices []string) ([]int, error) {
	if len(choices) != len(e.Candidates) {
		return nil, errors.Wrapf(ErrInvalidBallot, "ranked %d of %d candidates", len(choices), len(e.Candidates))
	}
	if dupes := internal.Duplicates(choices); len(dupes) > 0 {
		return nil, errors.Wrapf(ErrInvalidBallot, "ranked more than once: %v", dupes)
	}

	ranks := make([]int, len(choices))
	for rank, name := range choices {
		i, ok := e.CandidateIndex(name)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidBallot, "unknown candidate %q at rank %d", name, rank+1)
		}
		ranks[rank] = i
	}
	return ranks, nil
}

// Vote validates a voter's ranking and records it in the tally. A rejected ballot leaves the
// tally untouched.
func (e *Election) Vote(voterID string, choices ...string) error {
	ranks, err := e.Ranks(choices)
	if err != nil {
		return errors.Wrapf(err, "voter %s", voterID)
	}
	e.Ballots = append(e.Ballots, &Ballot{VoterID: voterID, Choices: append([]string(nil), choices...)})
	e.tally.Record(ranks)
	return nil
}

// Tally exposes the pairwise preference counts recorded so far.
func (e *Election) Tally() *Tally {
	return e.tally
}

// Results counts the election: pairs are built from the tally, ranked by strength and
// locked in order unless they would create a cycle.
func (e *Election) Results() *ElectionResults {
	sorted := SortPairs(e.tally.Pairs())
	locked, dropped := LockPairs(len(e.Candidates), sorted)
	winner := locked.Winner()

	var ranking []string
	for _, i := range locked.Ranking() {
		ranking = append(ranking, e.Candidates[i])
	}

	return &ElectionResults{
		ElectionID:             e.ID,
		Candidates:             e.Candidates,
		Voters:                 e.tally.Voters(),
		Tally:                  e.tally,
		RankedPairs:            sorted,
		CyclicalLockedPairsIdx: dropped,
		Locked:                 locked,
		WinnerIndex:            winner,
		Winner:                 e.Candidates[winner],
		Ranking:                ranking,
	}
}
