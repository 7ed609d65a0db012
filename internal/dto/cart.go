package dto

type SessionRequest struct {
	Table string `json:"table"`
}

type AddItemRequest struct {
	ProductID int `json:"productId"`
}

type QuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type CartLineDTO struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type SessionDTO struct {
	SessionID string        `json:"sessionId"`
	Table     int           `json:"table"`
	MenuPath  string        `json:"menuPath"`
	Items     []CartLineDTO `json:"items"`
	ItemCount int           `json:"itemCount"`
	Total     float64       `json:"total"`
}

type CheckoutResponse struct {
	Message string     `json:"message"`
	Order   OrderDTO   `json:"order"`
	Session SessionDTO `json:"session"`
}
