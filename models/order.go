package models

import "github.com/shopspring/decimal"

type ShippingAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	ZipCode string `json:"zipCode"`
	Detail  string `json:"detail"`
}

// OrderRequest converts a set of cart items into a pending order.
// The checkout endpoint expects mixed-case field names.
type OrderRequest struct {
	CartItemIDs     []string        `json:"cartItemIds" binding:"required"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method" binding:"required"`
}

// PaymentResult is the payload of POST /api/orders/:id/pay.
// PaymentForm is the provider-rendered form the browser submits.
type PaymentResult struct {
	PaymentForm   string          `json:"paymentForm"`
	OrderID       string          `json:"orderId"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod string          `json:"paymentMethod"`
}
