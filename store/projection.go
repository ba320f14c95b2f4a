package store

import "github.com/uptrace/bun"

// Projection selects between the bare fighters query and the fighters row
// left-outer-joined to its three extension records.
type Projection int

const (
	Base Projection = iota
	Extended
)

func (p Projection) String() string {
	if p == Extended {
		return "extended"
	}
	return "base"
}

var extendedRelations = []string{"BaseStats", "ExtendedStats", "FightsResults"}

// apply adds the eager-loaded has-one joins for the extended shape. Base
// leaves the root query untouched.
func (p Projection) apply(q *bun.SelectQuery) *bun.SelectQuery {
	if p == Extended {
		for _, rel := range extendedRelations {
			q = q.Relation(rel)
		}
	}
	return q
}
