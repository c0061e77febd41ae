package domain

// DefaultCurrency is used when neither the pricing unit nor the resource
// configures one.
const DefaultCurrency = "USD"

// TotalPriceCents computes the booking total in minor units.
//
// per_person multiplies by guests and nights, per_room by units and nights,
// and anything else falls back to a flat per-booking price.
func TotalPriceCents(model PriceModel, priceFromCents int64, nights, units, totalGuests int) int64 {
	switch model {
	case PricePerPerson:
		return priceFromCents * int64(totalGuests) * int64(nights)
	case PricePerRoom:
		return priceFromCents * int64(units) * int64(nights)
	default:
		return priceFromCents
	}
}

// ResolveCurrency picks the pricing unit's currency, then the resource's,
// then the default.
func ResolveCurrency(unit PricingUnit, resource Resource) string {
	if unit.Currency != "" {
		return unit.Currency
	}
	if resource.Currency != "" {
		return resource.Currency
	}
	return DefaultCurrency
}
