package corpus

import (
	"sort"

	"github.com/google/uuid"

	"github.com/dhamidi/codemining/java"
)

// Summary aggregates the results of a batch run. Merging is associative
// and independent of order, so per-file summaries may be combined as
// workers finish.
type Summary struct {
	RunID  uuid.UUID `json:"runId"`
	Files  int       `json:"files"`
	Tokens int       `json:"tokens"`
	// Bindings counts the bindings found per file path.
	Bindings map[string]int `json:"bindings"`
	// Edges is the union of the type hierarchies of all files, sorted.
	Edges []java.Edge `json:"edges,omitempty"`
	// Failed lists the files that could not be processed, sorted.
	Failed []string `json:"failed,omitempty"`
}

func newSummary(runID uuid.UUID) *Summary {
	return &Summary{RunID: runID, Bindings: map[string]int{}}
}

// Merge adds the counts, bindings, edges and failures of o to s. The run
// id of s is kept.
func (s *Summary) Merge(o *Summary) {
	s.Files += o.Files
	s.Tokens += o.Tokens
	if s.Bindings == nil {
		s.Bindings = map[string]int{}
	}
	for path, n := range o.Bindings {
		s.Bindings[path] += n
	}
	s.Edges = mergeEdges(s.Edges, o.Edges)
	s.Failed = mergeStrings(s.Failed, o.Failed)
}

// TotalBindings sums the per-file binding counts.
func (s *Summary) TotalBindings() int {
	total := 0
	for _, n := range s.Bindings {
		total += n
	}
	return total
}

func mergeEdges(a, b []java.Edge) []java.Edge {
	seen := make(map[java.Edge]bool, len(a)+len(b))
	var out []java.Edge
	for _, list := range [][]java.Edge{a, b} {
		for _, e := range list {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Child != out[j].Child {
			return out[i].Child < out[j].Child
		}
		return out[i].Parent < out[j].Parent
	})
	return out
}

func mergeStrings(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out
}
