package models

import "github.com/shopspring/decimal"

// CartItem is one line of the user's cart as returned by the cart API.
type CartItem struct {
	ProductID   int64           `json:"productId"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Cover       string          `json:"cover"`
	Detail      string          `json:"detail"`
	Quantity    int             `json:"quantity"`
}

// AddCartItemRequest is the payload sent to POST {CART_MODULE}
type AddCartItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// UpdateQuantityRequest is the payload sent to PATCH {CART_MODULE}/:id
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}
