package nlp

import "sort"

const (
	// SignificanceThreshold is the confidence a span needs to enter the graph or the
	// display entity set.
	SignificanceThreshold = 0.85
	// TopCentralEntities caps the ranking length.
	TopCentralEntities = 3
)

// EntityGraph is an undirected graph over significant entity texts. Nodes keep their
// first-seen order so rankings are reproducible.
type EntityGraph struct {
	order []string
	adj   map[string]map[string]struct{}
	edges int
}

func newEntityGraph() *EntityGraph {
	return &EntityGraph{adj: make(map[string]map[string]struct{})}
}

func (g *EntityGraph) addNode(name string) {
	if _, ok := g.adj[name]; ok {
		return
	}
	g.adj[name] = make(map[string]struct{})
	g.order = append(g.order, name)
}

func (g *EntityGraph) addEdge(a, b string) {
	g.addNode(a)
	g.addNode(b)
	if a == b {
		return
	}
	if _, ok := g.adj[a][b]; ok {
		return
	}
	g.adj[a][b] = struct{}{}
	g.adj[b][a] = struct{}{}
	g.edges++
}

// BuildGraph links spans that are adjacent in extraction order when both clear
// SignificanceThreshold. Spans below the threshold add neither a node nor an edge.
func BuildGraph(spans []EntitySpan) *EntityGraph {
	g := newEntityGraph()
	for _, s := range spans {
		if significant(s) {
			g.addNode(s.Text)
		}
	}
	for i := 0; i+1 < len(spans); i++ {
		a, b := spans[i], spans[i+1]
		if significant(a) && significant(b) {
			g.addEdge(a.Text, b.Text)
		}
	}
	return g
}

func significant(s EntitySpan) bool {
	return s.Confidence > SignificanceThreshold
}

// Nodes returns node names in insertion order.
func (g *EntityGraph) Nodes() []string {
	return append([]string(nil), g.order...)
}

// Len is the node count.
func (g *EntityGraph) Len() int { return len(g.order) }

// EdgeCount is the number of distinct undirected edges.
func (g *EntityGraph) EdgeCount() int { return g.edges }

// Degree is the number of distinct neighbours of node; 0 for unknown nodes.
func (g *EntityGraph) Degree(node string) int {
	return len(g.adj[node])
}

// HasEdge reports whether a and b are directly connected.
func (g *EntityGraph) HasEdge(a, b string) bool {
	_, ok := g.adj[a][b]
	return ok
}

// Centrality returns degree/(n-1) for every node. Graphs with fewer than two nodes
// yield an empty map.
func (g *EntityGraph) Centrality() map[string]float64 {
	out := make(map[string]float64, len(g.order))
	if len(g.order) < 2 {
		return out
	}
	denom := float64(len(g.order) - 1)
	for _, n := range g.order {
		out[n] = float64(len(g.adj[n])) / denom
	}
	return out
}

// RankEntities orders nodes by descending centrality, keeping insertion order among
// ties, and keeps the first TopCentralEntities.
func RankEntities(g *EntityGraph) []CentralEntity {
	scores := g.Centrality()
	if len(scores) == 0 {
		return nil
	}
	ranked := make([]CentralEntity, 0, len(g.order))
	for _, n := range g.order {
		ranked = append(ranked, CentralEntity{Entity: n, Score: scores[n]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > TopCentralEntities {
		ranked = ranked[:TopCentralEntities]
	}
	return ranked
}
