// Package query builds validated sort/search descriptors for entity list
// queries. Request-supplied sort keys resolve through fixed allow-lists to
// concrete column expressions; free-text search terms are only ever passed
// as bound parameters. Nothing coming off the wire is interpolated into SQL.
package query

import (
	"fmt"
	"strings"
)

// Direction is a validated sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Spec is the compile-time query metadata for one entity: the request keys
// it may be sorted by (mapped to column expressions) and the columns its
// free-text search matches against.
type Spec struct {
	DefaultSort   string
	Sorts         map[string]string
	SearchColumns []string
}

// Descriptor is a validated query description ready for the gateway to
// translate into a parameterized statement.
type Descriptor struct {
	OrderBy   string
	Direction Direction
	Search    string
}

// Build validates untrusted sort/order/search input against the spec.
// Unknown sort keys fall back to the entity default and anything other than
// asc/desc falls back to ascending; both corrections are silent.
func Build(spec Spec, sortBy, order, search string) Descriptor {
	column, ok := spec.Sorts[sortBy]
	if !ok {
		column = spec.Sorts[spec.DefaultSort]
	}

	direction := Asc
	if strings.EqualFold(order, string(Desc)) {
		direction = Desc
	}

	return Descriptor{
		OrderBy:   column,
		Direction: direction,
		Search:    strings.TrimSpace(search),
	}
}

// Filter renders the OR-combined case-insensitive substring condition for
// the spec's search columns, with the term bound at placeholder argPos
// (1-based). An empty search yields no condition and no args.
func (d Descriptor) Filter(spec Spec, argPos int) (string, []interface{}) {
	if d.Search == "" || len(spec.SearchColumns) == 0 {
		return "", nil
	}

	conditions := make([]string, len(spec.SearchColumns))
	for i, column := range spec.SearchColumns {
		conditions[i] = fmt.Sprintf("%s ILIKE $%d", column, argPos)
	}

	return "(" + strings.Join(conditions, " OR ") + ")", []interface{}{"%" + d.Search + "%"}
}

// OrderClause renders the ORDER BY fragment. The identifier comes from the
// spec's allow-list, never from request input.
func (d Descriptor) OrderClause() string {
	return fmt.Sprintf("ORDER BY %s %s", d.OrderBy, d.Direction)
}
