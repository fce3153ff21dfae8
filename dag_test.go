package trp

import (
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/graph/topo"
)

var _ = Describe("LockedGraph", func() {

	var g *LockedGraph

	BeforeEach(func() {
		g = NewLockedGraph(4)
	})

	Describe("#Lock", func() {

		It("reports new cycles and leaves the graph as it was", func() {
			Expect(g.Lock(0, 1)).To(Succeed())
			Expect(g.Lock(1, 2)).To(Succeed())
			Expect(g.Lock(2, 0)).NotTo(Succeed())

			Expect(g.IsLocked(2, 0)).To(BeFalse())
			Expect(g.Edges()).To(Equal([][2]int{{0, 1}, {1, 2}}))
		})

		It("accepts edges between disjoint components", func() {
			Expect(g.Lock(0, 1)).To(Succeed())
			Expect(g.Lock(2, 3)).To(Succeed())
			Expect(g.Lock(3, 0)).To(Succeed())
			Expect(g.Lock(1, 2)).NotTo(Succeed())
		})

	})

	Describe("#HasCycle", func() {

		It("is false for an empty graph", func() {
			Expect(g.HasCycle()).To(BeFalse())
		})

		It("finds a cycle that is not reachable from the first candidate", func() {
			g.locked[0][1] = true
			g.locked[2][3] = true
			g.locked[3][2] = true
			Expect(g.HasCycle()).To(BeTrue())
		})

		It("does not mistake a diamond for a cycle", func() {
			g.locked[0][1] = true
			g.locked[0][2] = true
			g.locked[1][3] = true
			g.locked[2][3] = true
			Expect(g.HasCycle()).To(BeFalse())
		})

	})

	Describe("#Winner", func() {

		It("returns the candidate with no locked edge pointing at it", func() {
			g.Lock(2, 0)
			g.Lock(2, 1)
			g.Lock(1, 3)
			g.Lock(0, 3)
			Expect(g.Winner()).To(Equal(2))
			Expect(g.Sources()).To(Equal([]int{2}))
		})

		It("returns the lowest index when several candidates are unbeaten", func() {
			g.Lock(3, 0)
			Expect(g.Sources()).To(Equal([]int{1, 2, 3}))
			Expect(g.Winner()).To(Equal(1))
		})

		It("panics when every candidate has a locked edge pointing at it", func() {
			g = NewLockedGraph(2)
			g.locked[0][1] = true
			g.locked[1][0] = true
			Expect(func() { g.Winner() }).To(Panic())
		})

	})

	Describe("#Ranking", func() {

		It("places everyone before the candidates they are locked over, winner first", func() {
			g.Lock(3, 1)
			g.Lock(1, 0)
			g.Lock(3, 2)
			Expect(g.Ranking()).To(Equal([]int{3, 1, 0, 2}))
			Expect(g.Ranking()[0]).To(Equal(g.Winner()))
		})

	})

	Describe("#Graph", func() {

		It("exports the locked edges to a gonum graph that sorts topologically", func() {
			g.Lock(0, 1)
			g.Lock(1, 2)
			g.Lock(2, 3)

			directed := g.Graph([]string{"A", "B", "C", "D"})
			Expect(directed.HasEdgeFromTo(0, 1)).To(BeTrue())
			Expect(directed.HasEdgeFromTo(1, 0)).To(BeFalse())
			Expect(directed.Nodes().Len()).To(Equal(4))

			sorted, err := topo.Sort(directed)
			Expect(err).NotTo(HaveOccurred())
			var ids []int64
			for _, n := range sorted {
				ids = append(ids, n.ID())
			}
			Expect(ids).To(Equal([]int64{0, 1, 2, 3}))
		})

	})

	Describe("#DOT", func() {

		It("renders candidate names", func() {
			g.Lock(0, 1)
			b, err := g.DOT([]string{"Alice", "Bob", "Carol", "Dan"})
			Expect(err).NotTo(HaveOccurred())
			Expect(string(b)).To(ContainSubstring("Election"))
			Expect(string(b)).To(ContainSubstring("Alice"))
			Expect(string(b)).To(ContainSubstring("->"))
		})

		It("renders a full election the same way every time", func() {
			names := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
			full := NewLockedGraph(len(names))
			for winner := range names {
				for loser := winner + 1; loser < len(names); loser++ {
					Expect(full.Lock(winner, loser)).To(Succeed())
				}
			}

			first, err := full.DOT(names)
			Expect(err).NotTo(HaveOccurred())
			Expect(strings.Count(string(first), "->")).To(Equal(36))
			for _, name := range names {
				Expect(string(first)).To(ContainSubstring(name))
			}

			for i := 0; i < 10; i++ {
				again, err := full.DOT(names)
				Expect(err).NotTo(HaveOccurred())
				Expect(again).To(Equal(first))
			}
		})

	})

})
