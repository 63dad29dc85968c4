package routing

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/ChicagoDave/citygen/pkg/geo"
)

// Target is a named position that must be reachable.
type Target struct {
	ID       string
	Position geo.Point2D
}

// Reachability summarises path queries from one central tile.
type Reachability struct {
	Start       geo.Point2D `json:"start"`
	Reachable   int         `json:"reachable"`
	Total       int         `json:"total"`
	Ratio       float64     `json:"ratio"`
	Unreachable []string    `json:"unreachable,omitempty"`
	Validated   bool        `json:"validated"`
}

// ValidateReachability runs one path query from the central walkable tile
// to every target. The layout validates when the reachable fraction is at
// least threshold. Duplicate target IDs count once.
func ValidateReachability(pf *Pathfinder, targets []Target, threshold float64) Reachability {
	start, ok := pf.CentralWalkable()
	seen := mapset.New[string]()
	var res Reachability
	res.Start = start
	for _, t := range targets {
		if seen.Has(t.ID) {
			continue
		}
		seen.Put(t.ID)
		res.Total++
		if ok && pf.FindPath(start, t.Position).Found {
			res.Reachable++
			continue
		}
		res.Unreachable = append(res.Unreachable, t.ID)
	}
	res.Ratio = 1
	if res.Total > 0 {
		res.Ratio = float64(res.Reachable) / float64(res.Total)
	}
	res.Validated = res.Ratio >= threshold
	return res
}
