package trp

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// MemoryStore is an in-process ElectionStore. Nothing outlives the process.
type MemoryStore struct {
	mu        sync.Mutex
	elections map[string]*Election
	log       logrus.FieldLogger
}

func NewMemoryStore(logger logrus.FieldLogger) *MemoryStore {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &MemoryStore{
		elections: make(map[string]*Election),
		log:       logger.WithField("component", "store"),
	}
}

// GetElections returns the IDs of every stored election, sorted.
func (ms *MemoryStore) GetElections() []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ids := make([]string, 0, len(ms.elections))
	for electionID := range ms.elections {
		ids = append(ids, electionID)
	}
	sort.Strings(ids)
	return ids
}

func (ms *MemoryStore) GetElection(electionID string) (*Election, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.get(electionID)
}

func (ms *MemoryStore) get(electionID string) (*Election, error) {
	election, found := ms.elections[electionID]
	if !found {
		return nil, errors.Wrapf(ErrElectionNotFound, "id %s", electionID)
	}
	return election, nil
}

func (ms *MemoryStore) CreateElection(electionID string, candidates []string) (*Election, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, found := ms.elections[electionID]; found {
		return nil, errors.Wrapf(ErrElectionExists, "id %s", electionID)
	}
	election, err := NewElection(electionID, candidates)
	if err != nil {
		return nil, err
	}
	ms.elections[electionID] = election
	ms.log.WithFields(logrus.Fields{"election": electionID, "candidates": len(candidates)}).Info("election created")
	return election, nil
}

func (ms *MemoryStore) RemoveElection(electionID string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.elections, electionID)
	ms.log.WithField("election", electionID).Info("election removed")
}

// SaveBallot records newBallot, replacing any earlier ballot from the same voter. An invalid
// ballot leaves the stored election as it was.
func (ms *MemoryStore) SaveBallot(electionID string, newBallot *Ballot) (*ElectionResults, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	election, err := ms.get(electionID)
	if err != nil {
		return nil, err
	}

	var ballots []*Ballot
	for _, b := range election.Ballots {
		if b.VoterID != newBallot.VoterID {
			ballots = append(ballots, b)
		}
	}
	ballots = append(ballots, newBallot)

	recounted, err := recount(election, ballots)
	if err != nil {
		ms.log.WithFields(logrus.Fields{"election": electionID, "voter": newBallot.VoterID}).WithError(err).Warn("ballot rejected")
		return nil, err
	}
	ms.elections[electionID] = recounted
	ms.log.WithFields(logrus.Fields{"election": electionID, "voter": newBallot.VoterID}).Debug("ballot saved")
	return recounted.Results(), nil
}

func (ms *MemoryStore) RemoveBallot(electionID string, removedVoterID string) (*ElectionResults, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	election, err := ms.get(electionID)
	if err != nil {
		return nil, err
	}

	var ballots []*Ballot
	for _, b := range election.Ballots {
		if b.VoterID != removedVoterID {
			ballots = append(ballots, b)
		}
	}

	recounted, err := recount(election, ballots)
	if err != nil {
		return nil, err
	}
	ms.elections[electionID] = recounted
	ms.log.WithFields(logrus.Fields{"election": electionID, "voter": removedVoterID}).Debug("ballot removed")
	return recounted.Results(), nil
}

// recount builds a fresh election with the same candidates and the given ballots.
func recount(election *Election, ballots []*Ballot) (*Election, error) {
	builder := NewElectionBuilder(election.ID).Candidates(election.Candidates...)
	builder.Ballots = ballots
	return builder.Election()
}
