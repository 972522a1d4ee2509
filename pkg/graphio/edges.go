package graphio

import (
	"fmt"

	"github.com/distributed-mis/pkg/graph"
)

// ReadEdgesFromCSV loads a two-column "u,v" edge list into a *graph.Graph.
// A header row is tolerated: the first row is skipped if it does not have
// exactly two fields or either field is not an integer.
func ReadEdgesFromCSV(filename string) (*graph.Graph, error) {
	records, err := ReadCSVWithHeader(filename, false, "")
	if err != nil {
		return nil, err
	}

	g := graph.NewGraph()
	for i, record := range records {
		lineNum := i + 1
		if err := ValidateRecordLength(record, 2, lineNum); err != nil {
			if i == 0 {
				continue // tolerate a textual header row
			}
			return nil, err
		}

		ints, err := ParseIntRecord(record, lineNum)
		if err != nil {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("reading edge list %s: %w", filename, err)
		}

		g.AddEdge(graph.NewEdge(ints[0], ints[1]))
	}

	return g, nil
}

// WriteEdgesToCSV is the inverse of ReadEdgesFromCSV, for demo topologies
// generated in-process and persisted for reuse.
func WriteEdgesToCSV(filename string, g *graph.Graph) error {
	seen := make(map[[2]int]bool)
	var rows [][]string
	for _, u := range g.NodeIDs() {
		for _, nb := range g.Adj[u] {
			key := [2]int{u, nb.NodeID}
			rev := [2]int{nb.NodeID, u}
			if seen[key] || seen[rev] {
				continue
			}
			seen[key] = true
			rows = append(rows, []string{itoa(u), itoa(nb.NodeID)})
		}
	}
	return WriteCSV(filename, []string{"u", "v"}, rows)
}

func itoa(v int) string {
	return fmt.Sprintf("%d", v)
}
