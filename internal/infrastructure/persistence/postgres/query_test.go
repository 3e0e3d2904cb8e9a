package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MamaFati/farmDirect/internal/domain/catalog"
)

func TestBuildProductQuery(t *testing.T) {
	cat := uuid.New()
	minPrice := decimal.RequireFromString("1.5")
	id := uuid.New()

	tests := []struct {
		name      string
		filter    catalog.Filter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no filter",
			filter:    catalog.Filter{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "name escapes wildcards",
			filter:    catalog.Filter{NameContains: "50%_off"},
			wantWhere: " WHERE name ILIKE $1",
			wantArgs:  []any{`%50\%\_off%`},
		},
		{
			name:      "conjunctive",
			filter:    catalog.Filter{CategoryID: &cat, MinPrice: &minPrice, RestrictIDs: true, IDs: []uuid.UUID{id}},
			wantWhere: " WHERE category_id = $1 AND price >= $2::numeric AND id = ANY($3::uuid[])",
			wantArgs:  []any{cat, "1.5", []string{id.String()}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildProductQuery(tt.filter)

			assert.Equal(t, "SELECT "+productColumns+" FROM products"+tt.wantWhere+" ORDER BY created_at DESC, id;", query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
