package trp

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// ErrCycle is returned by Lock when the edge would close a cycle.
var ErrCycle = errors.New("lock would create a cycle")

// LockedGraph is the directed graph of locked pairs. An edge from a to b means a is ranked
// above b in the final result. The graph never contains a cycle after Lock returns.
type LockedGraph struct {
	locked [][]bool
}

func NewLockedGraph(n int) *LockedGraph {
	locked := make([][]bool, n)
	for i := range locked {
		locked[i] = make([]bool, n)
	}
	return &LockedGraph{locked: locked}
}

// IsLocked reports whether winner is locked in over loser.
func (g *LockedGraph) IsLocked(winner, loser int) bool {
	return g.locked[winner][loser]
}

// Edges returns every locked (winner, loser) edge in row-major order.
func (g *LockedGraph) Edges() [][2]int {
	var edges [][2]int
	for from, row := range g.locked {
		for to, isLocked := range row {
			if isLocked {
				edges = append(edges, [2]int{from, to})
			}
		}
	}
	return edges
}

// Lock tentatively adds the edge winner -> loser and keeps it only if the graph stays acyclic.
func (g *LockedGraph) Lock(winner, loser int) error {
	if g.locked[winner][loser] {
		return nil
	}
	g.locked[winner][loser] = true
	if g.HasCycle() {
		g.locked[winner][loser] = false
		return errors.Wrapf(ErrCycle, "%d -> %d", winner, loser)
	}
	return nil
}

// HasCycle runs a depth-first search from every candidate not yet visited. A cycle exists
// when the search reaches a candidate that is still on the current path.
func (g *LockedGraph) HasCycle() bool {
	n := len(g.locked)
	visited := make([]bool, n)
	onPath := make([]bool, n)

	var visit func(candidate int) bool
	visit = func(candidate int) bool {
		if onPath[candidate] {
			return true
		}
		if visited[candidate] {
			return false
		}
		visited[candidate] = true
		onPath[candidate] = true
		for next, isLocked := range g.locked[candidate] {
			if isLocked && visit(next) {
				return true
			}
		}
		onPath[candidate] = false
		return false
	}

	for candidate := 0; candidate < n; candidate++ {
		if !visited[candidate] && visit(candidate) {
			return true
		}
	}
	return false
}

// Sources returns every candidate that has no locked edge pointing at it, lowest index first.
func (g *LockedGraph) Sources() []int {
	n := len(g.locked)
	loser := make([]bool, n)
	for _, row := range g.locked {
		for to, isLocked := range row {
			if isLocked {
				loser[to] = true
			}
		}
	}

	var sources []int
	for candidate := 0; candidate < n; candidate++ {
		if !loser[candidate] {
			sources = append(sources, candidate)
		}
	}
	return sources
}

// Winner returns the lowest-index candidate nobody is locked in over.
func (g *LockedGraph) Winner() int {
	sources := g.Sources()
	if len(sources) == 0 {
		panic(fmt.Errorf("no candidate without a locked edge over them among %d", len(g.locked))) // Lock never admits a cycle
	}
	return sources[0]
}

// Ranking orders every candidate so that each one comes before everyone it is locked over.
// Whenever several candidates are free to come next the lowest index wins, so the first
// entry is always Winner().
func (g *LockedGraph) Ranking() []int {
	n := len(g.locked)
	inDegree := make([]int, n)
	for _, row := range g.locked {
		for to, isLocked := range row {
			if isLocked {
				inDegree[to]++
			}
		}
	}

	placed := make([]bool, n)
	ranking := make([]int, 0, n)
	for len(ranking) < n {
		next := -1
		for candidate := 0; candidate < n; candidate++ {
			if !placed[candidate] && inDegree[candidate] == 0 {
				next = candidate
				break
			}
		}
		if next < 0 {
			panic(fmt.Errorf("locked graph has a cycle after placing %d of %d candidates", len(ranking), n))
		}
		placed[next] = true
		ranking = append(ranking, next)
		for to, isLocked := range g.locked[next] {
			if isLocked {
				inDegree[to]--
			}
		}
	}
	return ranking
}

// candidateNode is a gonum graph node labelled with a candidate name.
type candidateNode struct {
	id   int64
	name string
}

func (n candidateNode) ID() int64     { return n.id }
func (n candidateNode) DOTID() string { return n.name }

// Graph copies the locked edges into a gonum directed graph whose node IDs are candidate
// indices. names labels the nodes and must have one entry per candidate.
func (g *LockedGraph) Graph(names []string) *simple.DirectedGraph {
	directed := simple.NewDirectedGraph()
	nodes := make([]graph.Node, len(g.locked))
	for i := range g.locked {
		nodes[i] = candidateNode{id: int64(i), name: names[i]}
		directed.AddNode(nodes[i])
	}
	for _, edge := range g.Edges() {
		directed.SetEdge(directed.NewEdge(nodes[edge[0]], nodes[edge[1]]))
	}
	return directed
}

// DOT renders the locked graph in GraphViz format.
func (g *LockedGraph) DOT(names []string) ([]byte, error) {
	b, err := dot.Marshal(g.Graph(names), "Election", "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal locked graph")
	}
	return b, nil
}
