package shop

// Pricing holds the storefront pricing rules. Values come from config and
// default to the shop's launch constants (free shipping at 5000, flat fee
// 150, engraving fee 200).
type Pricing struct {
	FreeShippingThreshold float64
	FlatShippingFee       float64
	EngravingFee          float64
}

// CustomizationFee returns the flat engraving fee when engraving text is
// supplied, 0 otherwise.
func (p Pricing) CustomizationFee(engravedName string) float64 {
	if engravedName == "" {
		return 0
	}
	return p.EngravingFee
}

// ShippingFee waives shipping at or above the free-shipping threshold.
func (p Pricing) ShippingFee(subtotal float64) float64 {
	if subtotal >= p.FreeShippingThreshold {
		return 0
	}
	return p.FlatShippingFee
}

// LineSubtotal computes (unit price + customization fee) x quantity.
func LineSubtotal(unitPrice, customizationFee float64, quantity int) float64 {
	return (unitPrice + customizationFee) * float64(quantity)
}
