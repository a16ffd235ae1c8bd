package models

// LineItemKind distinguishes single services from bundled packages.
type LineItemKind string

const (
	LineItemService LineItemKind = "service"
	LineItemPackage LineItemKind = "package"
)

// CartLineItem is a selected service or package with quantity, prior to booking.
type CartLineItem struct {
	ID         string       `json:"id"`
	CategoryID string       `json:"category_id"`
	Name       string       `json:"name"`
	Price      float64      `json:"price"`
	Quantity   int          `json:"quantity"` // never below 1
	StaffID    string       `json:"staff_id"`
	Kind       LineItemKind `json:"kind"`
}

// CartGroup holds one staff member's cart lines split by kind.
type CartGroup struct {
	Services []CartLineItem `json:"services"`
	Packages []CartLineItem `json:"packages"`
}

// Subtotal returns the aggregated price*quantity over both kinds.
func (g CartGroup) Subtotal() float64 {
	var sum float64
	for _, it := range g.Services {
		sum += it.Price * float64(it.Quantity)
	}
	for _, it := range g.Packages {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}
