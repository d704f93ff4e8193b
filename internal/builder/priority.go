package builder

import (
	"sort"
	"strings"

	"github.com/tonyc973/ForgeSwarm/internal/types"
)

// priorityRanks maps filename keywords to generation ranks, first match wins.
// Files lower in the dependency stack (data models) must be generated before
// files that reference their defined names, so the oracle is shown real
// signatures rather than imagined ones. This is a keyword heuristic, not a
// topological sort: filenames outside this vocabulary all land in the default
// rank and keep plan order.
var priorityRanks = []struct {
	keyword string
	rank    int
}{
	{"model", 1},
	{"schema", 2},
	{"crud", 3},
	{"service", 3},
	{"route", 4},
	{"main", 5},
}

// defaultRank is assigned to filenames matching no keyword.
const defaultRank = 6

// Rank returns the generation rank for filename.
func Rank(filename string) int {
	for _, p := range priorityRanks {
		if strings.Contains(filename, p.keyword) {
			return p.rank
		}
	}
	return defaultRank
}

// Order returns plan's files sorted ascending by rank. The sort is stable:
// files with equal ranks keep their original plan order.
func Order(plan *types.ProjectPlan) []types.FileSpec {
	ordered := make([]types.FileSpec, len(plan.Files))
	copy(ordered, plan.Files)
	sort.SliceStable(ordered, func(i, j int) bool {
		return Rank(ordered[i].Filename) < Rank(ordered[j].Filename)
	})
	return ordered
}
