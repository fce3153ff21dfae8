package trp

import (
	"strconv"

	"github.com/pkg/errors"
)

// ElectionBuilder exposes a simple builder-pattern DSL for building up an Election progressively.
// Errors are deferred until Election() is called.
type ElectionBuilder struct {
	ElectionID string
	Choices    []string
	Ballots    []*Ballot
}

func NewElectionBuilder(optionalElectionID ...string) *ElectionBuilder {
	var electionID string
	if len(optionalElectionID) == 1 {
		electionID = optionalElectionID[0]
	} else {
		electionID = "Election"
	}
	return &ElectionBuilder{ElectionID: electionID, Ballots: []*Ballot{}}
}

// Candidates registers the choices of the election, in index order.
func (builder *ElectionBuilder) Candidates(names ...string) *ElectionBuilder {
	builder.Choices = append(builder.Choices, names...)
	return builder
}

// Vote queues a ballot ranking every candidate, most preferred first.
func (builder *ElectionBuilder) Vote(voterID string, choices ...string) *ElectionBuilder {
	builder.Ballots = append(builder.Ballots, &Ballot{VoterID: voterID, Choices: choices})
	return builder
}

// Votes queues count identical ballots, numbering the voter IDs from 1.
func (builder *ElectionBuilder) Votes(count int, voterPrefix string, choices ...string) *ElectionBuilder {
	for i := 1; i <= count; i++ {
		builder.Vote(voterPrefix+"-"+strconv.Itoa(i), choices...)
	}
	return builder
}

// Election returns a new Election with every ballot from this builder recorded. The first
// invalid ballot aborts the whole election.
func (builder *ElectionBuilder) Election() (*Election, error) {
	election, err := NewElection(builder.ElectionID, builder.Choices)
	if err != nil {
		return nil, err
	}
	for i, ballot := range builder.Ballots {
		if err := election.Vote(ballot.VoterID, ballot.Choices...); err != nil {
			return nil, errors.Wrapf(err, "ballot %d", i+1)
		}
	}
	return election, nil
}

// Results is simply a shorthand for Election().Results()
func (builder *ElectionBuilder) Results() (*ElectionResults, error) {
	election, err := builder.Election()
	if err != nil {
		return nil, err
	}
	return election.Results(), nil
}
