package generate

import (
	"github.com/ChicagoDave/citygen/pkg/spec"
)

// ApplySnapshot returns copies of pois whose prior positions are replaced
// by the matching snapshot entries. POIs missing from the snapshot keep
// whatever prior they had.
func ApplySnapshot(pois []spec.POI, snapshot []spec.Position) []spec.POI {
	byID := make(map[string]spec.Position, len(snapshot))
	for _, p := range snapshot {
		byID[p.ID] = p
	}
	out := make([]spec.POI, len(pois))
	for i, p := range pois {
		if pos, ok := byID[p.ID]; ok {
			p = p.WithPosition(pos.Point())
		}
		out[i] = p
	}
	return out
}

// Snapshot returns the final positions keyed for an external store.
func (r *Result) Snapshot() []spec.Position {
	return append([]spec.Position(nil), r.Positions...)
}
