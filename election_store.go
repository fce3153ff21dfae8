package trp

import "github.com/pkg/errors"

var (
	// ErrElectionNotFound is returned by an ElectionStore for an unknown election ID.
	ErrElectionNotFound = errors.New("no such election")

	// ErrElectionExists is returned when creating an election under an ID already in use.
	ErrElectionExists = errors.New("election already exists")
)

// ElectionStore keeps elections by ID. Every ballot change re-counts the election from scratch.
type ElectionStore interface {
	GetElections() []string
	GetElection(string) (*Election, error)

	CreateElection(string, []string) (*Election, error)
	RemoveElection(string)

	SaveBallot(string, *Ballot) (*ElectionResults, error)
	RemoveBallot(string, string) (*ElectionResults, error)
}
