package layout

import (
	"sort"

	"github.com/ChicagoDave/citygen/pkg/geo"
)

// BuildConnectivity links roads whose footprints share at least one tile.
// It fills ConnectedTo on every road (sorted, always bidirectional) and
// returns the number of connected components in the network.
func BuildConnectivity(roads []Road, footprint func(Road) []geo.Cell) int {
	// Index every footprint tile to the roads covering it.
	buckets := make(map[geo.Cell][]int)
	for i, r := range roads {
		for _, c := range footprint(r) {
			list := buckets[c]
			if len(list) > 0 && list[len(list)-1] == i {
				continue
			}
			buckets[c] = append(list, i)
		}
	}

	conn := make([]map[int]bool, len(roads))
	for i := range conn {
		conn[i] = make(map[int]bool)
	}
	for _, list := range buckets {
		for _, a := range list {
			for _, b := range list {
				if a != b {
					conn[a][b] = true
				}
			}
		}
	}

	for i := range roads {
		ids := make([]string, 0, len(conn[i]))
		for j := range conn[i] {
			ids = append(ids, roads[j].ID)
		}
		sort.Strings(ids)
		roads[i].ConnectedTo = ids
	}

	// Count components with a breadth-first sweep.
	seen := make([]bool, len(roads))
	components := 0
	for start := range roads {
		if seen[start] {
			continue
		}
		components++
		seen[start] = true
		queue := []int{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for next := range conn[cur] {
				if !seen[next] {
					seen[next] = true
					queue = append(queue, next)
				}
			}
		}
	}
	return components
}
