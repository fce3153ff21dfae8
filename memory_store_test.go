package trp

import (
	"io/ioutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var _ = Describe("MemoryStore", func() {

	var store *MemoryStore
	var candidates []string

	BeforeEach(func() {
		logger := logrus.New()
		logger.Out = ioutil.Discard
		store = NewMemoryStore(logger)
		candidates = []string{"A", "B", "C"}
	})

	It("implements the ElectionStore interface", func() {
		var _ = ElectionStore(store)
	})

	Describe("#GetElections", func() {
		It("returns sorted election IDs of elections that have been created", func() {
			store.CreateElection("foo", candidates)
			store.CreateElection("bar", candidates)
			Expect(store.GetElections()).To(Equal([]string{"bar", "foo"}))
		})

		It("returns an empty, non-nil list for an empty store", func() {
			Expect(store.GetElections()).To(BeEmpty())
			Expect(store.GetElections()).NotTo(BeNil())
		})
	})

	Describe("#GetElection", func() {
		It("returns an error when an election hasn't been created", func() {
			result, err := store.GetElection("doesn't exist")
			Expect(result).To(BeNil())
			Expect(errors.Cause(err)).To(Equal(ErrElectionNotFound))
		})

		It("returns an election if it has been previously created", func() {
			election, _ := store.CreateElection("created", candidates)
			Expect(election).ToNot(BeNil())
			get, err := store.GetElection("created")
			Expect(err).To(Succeed())
			Expect(get).To(Equal(election))
		})
	})

	Describe("#CreateElection", func() {
		It("refuses to overwrite an election", func() {
			store.CreateElection("dup", candidates)
			_, err := store.CreateElection("dup", candidates)
			Expect(errors.Cause(err)).To(Equal(ErrElectionExists))
		})

		It("validates the candidates", func() {
			_, err := store.CreateElection("empty", nil)
			Expect(errors.Cause(err)).To(Equal(ErrNoCandidates))
			Expect(store.GetElections()).To(BeEmpty())
		})
	})

	Describe("#RemoveElection", func() {
		It("deletes an election in the memory store", func() {
			store.CreateElection("foo", candidates)
			store.CreateElection("bar", candidates)
			store.RemoveElection("bar")
			Expect(store.GetElections()).To(ConsistOf("foo"))
			get, err := store.GetElection("bar")
			Expect(get).To(BeNil())
			Expect(err).NotTo(Succeed())
		})
	})

	Describe("#SaveBallot", func() {
		It("returns an error the election hasn't been created", func() {
			result, err := store.SaveBallot("doesn't exist", ballot("voter", "A", "B", "C"))
			Expect(result).To(BeNil())
			Expect(errors.Cause(err)).To(Equal(ErrElectionNotFound))
		})

		It("returns re-computed results when adding new ballots", func() {
			store.CreateElection("election", candidates)

			results, err := store.SaveBallot("election", ballot("voter1", "B", "A", "C"))
			Expect(err).NotTo(HaveOccurred())
			Expect(results.Winner).To(Equal("B"))

			store.SaveBallot("election", ballot("voter2", "A", "B", "C"))
			results, _ = store.SaveBallot("election", ballot("voter3", "A", "C", "B"))
			Expect(results.Winner).To(Equal("A"))
			Expect(results.Voters).To(Equal(int64(3)))
		})

		It("replaces an earlier ballot from the same voter", func() {
			store.CreateElection("election", candidates)
			store.SaveBallot("election", ballot("voter1", "B", "A", "C"))
			results, _ := store.SaveBallot("election", ballot("voter1", "C", "A", "B"))
			Expect(results.Voters).To(Equal(int64(1)))
			Expect(results.Winner).To(Equal("C"))
		})

		It("keeps the election unchanged when the ballot is invalid", func() {
			store.CreateElection("election", candidates)
			store.SaveBallot("election", ballot("voter1", "B", "A", "C"))

			results, err := store.SaveBallot("election", ballot("voter2", "A", "B", "Z"))
			Expect(results).To(BeNil())
			Expect(errors.Cause(err)).To(Equal(ErrInvalidBallot))

			election, _ := store.GetElection("election")
			Expect(election.Ballots).To(HaveLen(1))
		})
	})

	Describe("#RemoveBallot", func() {
		It("removes the ballot for a voter from the store and returns re-computed results", func() {
			store.CreateElection("remove", candidates)

			removedBallot := ballot("voter_1", "B", "A", "C")
			store.SaveBallot("remove", removedBallot)
			store.SaveBallot("remove", ballot("voter_2", "A", "B", "C"))
			store.SaveBallot("remove", ballot("voter_3", "B", "A", "C"))

			election := func() *Election {
				e, err := store.GetElection("remove")
				Expect(err).To(Succeed())
				return e
			}

			Expect(election().Ballots).To(ContainElement(removedBallot))
			Expect(election().Results().Winner).To(Equal("B"))

			results, err := store.RemoveBallot("remove", removedBallot.VoterID)
			Expect(err).NotTo(HaveOccurred())
			// A and B are now tied, so the lower index wins
			Expect(results.Winner).To(Equal("A"))
			Expect(results.Voters).To(Equal(int64(2)))
			Expect(election().Ballots).NotTo(ContainElement(removedBallot))
		})
	})

})

func ballot(id string, choices ...string) *Ballot {
	return &Ballot{VoterID: id, Choices: choices}
}
