package models

// CartItem is one entry of the client-held cart as serialized by the
// browser into the cartData form field. Quantity may be absent in the
// payload; zero means "not set" and is defaulted by the order service.
type CartItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}
