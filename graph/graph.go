// Package graph computes shortest paths over the parent/child category file
// produced by the extractor.
package graph

import (
	"bufio"
	"container/heap"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/annowiki"
)

// Unreachable is the distance reported for nodes with no path from the start.
const Unreachable = -1

// Graph is a directed parent→child graph over category names. Nodes are the
// categories that appear as parents; children that are never parents
// themselves are leaves and carry no outgoing edges, so they are omitted.
type Graph struct {
	names  map[string]int
	labels []string
	adj    [][]int
}

// Read builds a Graph from categories.tsv lines: one child TAB parent pair per
// line, as written by the extractor.
func Read(r io.Reader) (*Graph, error) {
	children := make(map[string][]string)
	var parents []string

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	for s.Scan() {
		line := strings.TrimRight(s.Text(), "\n")
		if line == "" {
			continue
		}
		child, parent, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, annowiki.Errorf(annowiki.EINVALID, "malformed category line %q", line)
		}
		if _, seen := children[parent]; !seen {
			parents = append(parents, parent)
		}
		children[parent] = append(children[parent], child)
	}
	if err := s.Err(); err != nil {
		return nil, annowiki.Errorf(annowiki.EINTERNAL, "read categories: %v", err)
	}

	g := &Graph{
		names:  make(map[string]int, len(parents)),
		labels: parents,
		adj:    make([][]int, len(parents)),
	}
	for i, p := range parents {
		g.names[p] = i
	}
	for i, p := range parents {
		for _, child := range children[p] {
			if j, ok := g.names[child]; ok {
				g.adj[i] = append(g.adj[i], j)
			}
		}
	}
	return g, nil
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int { return len(g.labels) }

// ShortestPaths runs Dijkstra with unit edge weights from the start category
// and returns per-node distances and predecessor indices. Unreachable nodes
// have distance Unreachable and predecessor -1.
func (g *Graph) ShortestPaths(start string) (dist, prev []int, err error) {
	src, ok := g.names[start]
	if !ok {
		return nil, nil, annowiki.Errorf(annowiki.ENOTFOUND, "category %q not in graph", start)
	}

	dist = make([]int, len(g.labels))
	prev = make([]int, len(g.labels))
	for i := range dist {
		dist[i] = Unreachable
		prev[i] = -1
	}
	dist[src] = 0

	pq := &nodeHeap{{index: src, dist: 0}}
	heap.Init(pq)
	for pq.Len() > 0 {
		n := heap.Pop(pq).(node)
		if n.dist > dist[n.index] {
			continue // stale entry
		}
		for _, v := range g.adj[n.index] {
			alt := n.dist + 1
			if dist[v] == Unreachable || alt < dist[v] {
				dist[v] = alt
				prev[v] = n.index
				heap.Push(pq, node{index: v, dist: alt})
			}
		}
	}
	return dist, prev, nil
}

// Path reconstructs the category names from the start node to node i using the
// predecessor indices from ShortestPaths. Returns nil for unreachable nodes.
func (g *Graph) Path(prev, dist []int, i int) []string {
	if dist[i] == Unreachable {
		return nil
	}
	var path []string
	for at := i; at != -1; at = prev[at] {
		path = append(path, g.labels[at])
	}
	// Reverse into start-to-destination order.
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

// WritePaths writes one TSV line per node reachable from start:
// start, destination, distance, then the intermediate categories on the path.
func (g *Graph) WritePaths(w io.Writer, start string, dist, prev []int) error {
	for i, d := range dist {
		if d == Unreachable {
			continue
		}
		path := g.Path(prev, dist, i)
		middle := ""
		if len(path) > 2 {
			middle = strings.Join(path[1:len(path)-1], "\t")
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", start, g.labels[i], d, middle); err != nil {
			return err
		}
	}
	return nil
}
