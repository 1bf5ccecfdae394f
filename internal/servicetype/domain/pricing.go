package domain

import (
	"github.com/shopspring/decimal"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
)

// Pricing is the effective price of a service on a room. It is either
// MeteredPricing or FixedPricing, chosen by the service type category.
type Pricing interface {
	Category() Category
	pricing()
}

// MeteredPricing bills consumption (new index minus old index) at PricePerUnit.
type MeteredPricing struct {
	Kind         Category
	PricePerUnit decimal.Decimal
}

func (p MeteredPricing) Category() Category { return p.Kind }
func (MeteredPricing) pricing()             {}

// FixedPricing bills FixedPrice once per period.
type FixedPricing struct {
	FixedPrice decimal.Decimal
}

func (FixedPricing) Category() Category { return CategoryFixed }
func (FixedPricing) pricing()           {}

// ResolvePricing validates an assignment request. Only the field matching the
// category may be set; a missing value falls back to the type's default price.
func ResolvePricing(st ServiceType, pricePerUnit, fixedPrice *decimal.Decimal) (Pricing, error) {
	if st.Category.IsMetered() {
		if fixedPrice != nil {
			return nil, ierr.NewErrorf("fixedPrice set for %s service", st.Category).
				WithHintf("%s is a metered service; set pricePerUnit instead of fixedPrice", st.Name).
				Mark(ierr.ErrInvalidInput)
		}
		price := st.PricePerUnit
		if pricePerUnit != nil {
			price = *pricePerUnit
		}
		if price.IsNegative() {
			return nil, ErrNegativePrice
		}
		return MeteredPricing{Kind: st.Category, PricePerUnit: price}, nil
	}

	if pricePerUnit != nil {
		return nil, ierr.NewError("pricePerUnit set for FIXED service").
			WithHintf("%s is a fixed service; set fixedPrice instead of pricePerUnit", st.Name).
			Mark(ierr.ErrInvalidInput)
	}
	price := st.PricePerUnit
	if fixedPrice != nil {
		price = *fixedPrice
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	return FixedPricing{FixedPrice: price}, nil
}

// EffectivePricing reads stored assignment prices for billing. Fields that do
// not match the category are ignored.
func EffectivePricing(st ServiceType, pricePerUnit, fixedPrice *decimal.Decimal) Pricing {
	if st.Category.IsMetered() {
		price := st.PricePerUnit
		if pricePerUnit != nil {
			price = *pricePerUnit
		}
		return MeteredPricing{Kind: st.Category, PricePerUnit: price}
	}
	price := st.PricePerUnit
	if fixedPrice != nil {
		price = *fixedPrice
	}
	return FixedPricing{FixedPrice: price}
}

// Columns splits a Pricing back into the nullable storage columns.
func Columns(p Pricing) (pricePerUnit, fixedPrice *decimal.Decimal) {
	switch v := p.(type) {
	case MeteredPricing:
		price := v.PricePerUnit
		return &price, nil
	case FixedPricing:
		price := v.FixedPrice
		return nil, &price
	}
	return nil, nil
}
