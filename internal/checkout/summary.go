package checkout

import (
	"github.com/filizakkol1/pizzeria/internal/domain"
)

const (
	// FreeDeliveryThreshold is the subtotal from which delivery is free.
	FreeDeliveryThreshold = 1500
	// DeliveryFee is the flat fee charged below the threshold.
	DeliveryFee = 200
)

// Summary is the order total breakdown shown on the checkout page and
// captured into the order at submission time.
type Summary struct {
	Items    []domain.LineItem
	Subtotal int
	Delivery int
	Total    int
}

// BuildSummary computes the checkout figures for the given cart lines.
func BuildSummary(items []domain.LineItem) Summary {
	subtotal := 0
	for _, item := range items {
		subtotal += item.Subtotal()
	}

	delivery := DeliveryFee
	if subtotal >= FreeDeliveryThreshold {
		delivery = 0
	}

	return Summary{
		Items:    items,
		Subtotal: subtotal,
		Delivery: delivery,
		Total:    subtotal + delivery,
	}
}

// SubtotalDisplay renders the items figure, e.g. "1499 ₽".
func (s Summary) SubtotalDisplay() string {
	return domain.FormatPrice(s.Subtotal)
}

// DeliveryDisplay renders the delivery figure, with zero shown as free.
func (s Summary) DeliveryDisplay() string {
	if s.Delivery == 0 {
		return "Бесплатно"
	}
	return domain.FormatPrice(s.Delivery)
}

// TotalDisplay renders the grand total exactly as the customer sees it.
func (s Summary) TotalDisplay() string {
	return domain.FormatPrice(s.Total)
}
