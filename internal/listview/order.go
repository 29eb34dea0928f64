package listview

import (
	"fmt"
	"slices"

	"go.einride.tech/aip/ordering"
)

// ParseOrderBy reads an AIP-132 order_by string such as "created_at desc".
// Only the first field is used and it must be in allowed.
func ParseOrderBy(value string, allowed []string) (Sort, error) {
	var orderBy ordering.OrderBy
	if err := orderBy.UnmarshalString(value); err != nil {
		return Sort{}, fmt.Errorf("parse order_by: %w", err)
	}
	if len(orderBy.Fields) == 0 {
		return Sort{}, fmt.Errorf("order_by names no field")
	}
	first := orderBy.Fields[0]
	if !slices.Contains(allowed, first.Path) {
		return Sort{}, fmt.Errorf("%w: %s", errUnknownSortField, first.Path)
	}
	dir := Asc
	if first.Desc {
		dir = Desc
	}
	return Sort{Field: first.Path, Dir: dir}, nil
}
