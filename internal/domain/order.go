package domain

import "strconv"

// Customer holds the checkout form fields. All three are required and the
// phone is stored in its masked display form, e.g. "+7 (912) 345-67-89".
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Order is an immutable record of one submitted checkout. Items is a
// snapshot of the cart at submission time, not a live reference, and
// TotalDisplay is the exact total string the customer saw (items plus
// delivery). The JSON tags define the persisted schema of the "orders"
// store key.
type Order struct {
	ID           int64      `json:"id"`
	Customer     Customer   `json:"customer"`
	Items        []LineItem `json:"items"`
	TotalDisplay string     `json:"total"`
	CreatedAt    string     `json:"date"`
}

// ShortNumber is the customer-facing order number: the last eight digits
// of the id.
func (o Order) ShortNumber() string {
	s := strconv.FormatInt(o.ID, 10)
	if len(s) <= 8 {
		return s
	}
	return s[len(s)-8:]
}
