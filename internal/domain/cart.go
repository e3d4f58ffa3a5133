package domain

import "strconv"

// LineItem is a single cart row. Two rows never share the same
// (ProductID, Size) pair: the same pizza in two diameters is two lines.
// Name and UnitPrice are captured when the item is first added and are
// never refreshed from the catalog afterwards.
//
// The JSON tags define the persisted schema of the "cart" store key.
type LineItem struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	UnitPrice int    `json:"price"`
	Quantity  int    `json:"quantity"`
}

// ItemKey is the identity of a line item inside a cart.
type ItemKey struct {
	ProductID string
	Size      string
}

func (li LineItem) Key() ItemKey {
	return ItemKey{ProductID: li.ProductID, Size: li.Size}
}

// Subtotal is the line total: unit price times quantity.
func (li LineItem) Subtotal() int {
	return li.UnitPrice * li.Quantity
}

// FormatPrice renders an integer rouble amount the way the storefront
// displays prices. There is no decimal part and no other currency.
func FormatPrice(amount int) string {
	return strconv.Itoa(amount) + " ₽"
}
