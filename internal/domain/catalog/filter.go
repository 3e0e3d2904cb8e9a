package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filter selects products; every set criterion must hold.
type Filter struct {
	NameContains string
	CategoryID   *uuid.UUID
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal

	// RestrictIDs limits the result to IDs (possibly none). Used to apply
	// object-level view grants.
	RestrictIDs bool
	IDs         []uuid.UUID
}

// Matches evaluates the filter in memory with the same semantics the SQL
// repository uses: case-insensitive substring, inclusive price bounds.
func (f Filter) Matches(p *Product) bool {
	if f.NameContains != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.NameContains)) {
		return false
	}
	if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
		return false
	}
	if f.MinPrice != nil && p.Price.Decimal().LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.Decimal().GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.RestrictIDs {
		for _, id := range f.IDs {
			if id == p.ID {
				return true
			}
		}
		return false
	}
	return true
}
