package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MamaFati/farmDirect/internal/domain/apperror"
	"github.com/MamaFati/farmDirect/internal/domain/money"
)

// DateLayout is the wire and storage format of harvest and expiry dates.
const DateLayout = "2006-01-02"

const maxProductNameLen = 100

const (
	msgRequired = "this field is required"
	msgBadDate  = "must be a date in YYYY-MM-DD format"
)

type Product struct {
	ID                uuid.UUID
	Name              string
	Description       string
	Price             money.Money
	CategoryID        *uuid.UUID
	QuantityAvailable int
	HarvestDate       time.Time
	ExpiryDate        time.Time
	SellerID          uuid.UUID
	CreatedAt         time.Time
}

// ProductInput carries the client-supplied product fields. Nil means "not
// supplied": required on create, left untouched on update. A CategoryID of
// uuid.Nil clears the category.
type ProductInput struct {
	Name              *string
	Description       *string
	Price             *decimal.Decimal
	CategoryID        *uuid.UUID
	QuantityAvailable *int
	HarvestDate       *string
	ExpiryDate        *string
}

// NewProduct builds a product owned by sellerID. Every invalid field is
// recorded on v; the returned product must be discarded if v has errors.
func NewProduct(id, sellerID uuid.UUID, in ProductInput, now time.Time, v *apperror.ValidationError) *Product {
	p := &Product{
		ID:        id,
		SellerID:  sellerID,
		CreatedAt: now,
	}
	p.apply(in, true, v)
	return p
}

// Apply performs a partial update, recording every invalid field on v.
func (p *Product) Apply(in ProductInput, v *apperror.ValidationError) {
	p.apply(in, false, v)
}

// Replace is Apply with the create-time required fields enforced.
func (p *Product) Replace(in ProductInput, v *apperror.ValidationError) {
	p.apply(in, true, v)
}

func (p *Product) OwnedBy(sellerID uuid.UUID) bool {
	return p.SellerID == sellerID
}

func (p *Product) apply(in ProductInput, creating bool, v *apperror.ValidationError) {
	switch {
	case in.Name != nil:
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			v.Add("name", "may not be blank")
		} else if utf8.RuneCountInString(name) > maxProductNameLen {
			v.Add("name", "must be at most 100 characters")
		} else {
			p.Name = name
		}
	case creating:
		v.Add("name", msgRequired)
	}

	if in.Description != nil {
		p.Description = *in.Description
	}

	switch {
	case in.Price != nil:
		price, err := money.NewPrice(*in.Price)
		if err != nil {
			v.Add("price", err.Error())
		} else {
			p.Price = price
		}
	case creating:
		v.Add("price", msgRequired)
	}

	if in.CategoryID != nil {
		if *in.CategoryID == uuid.Nil {
			p.CategoryID = nil
		} else {
			id := *in.CategoryID
			p.CategoryID = &id
		}
	}

	if in.QuantityAvailable != nil {
		if *in.QuantityAvailable < 0 {
			v.Add("quantity_available", "must be 0 or greater")
		} else {
			p.QuantityAvailable = *in.QuantityAvailable
		}
	}

	if d, ok := parseDate("harvest_date", in.HarvestDate, creating, v); ok {
		p.HarvestDate = d
	}
	if d, ok := parseDate("expiry_date", in.ExpiryDate, creating, v); ok {
		p.ExpiryDate = d
	}
}

func parseDate(field string, raw *string, required bool, v *apperror.ValidationError) (time.Time, bool) {
	if raw == nil {
		if required {
			v.Add(field, msgRequired)
		}
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, strings.TrimSpace(*raw))
	if err != nil {
		v.Add(field, msgBadDate)
		return time.Time{}, false
	}
	return d, true
}
