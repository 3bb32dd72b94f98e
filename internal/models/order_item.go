package models

// OrderItem freezes the product name and price at purchase time. Catalog
// rows may change or disappear later without touching past orders.
type OrderItem struct {
	ID           int64   `json:"id" db:"id"`
	OrderID      int64   `json:"order_id" db:"order_id"`
	ProductName  string  `json:"product_name" db:"product_name"`
	ProductPrice float64 `json:"product_price" db:"product_price"`
	Quantity     int     `json:"quantity" db:"quantity"`
}
