package clients

import (
	"context"
	"fmt"
	"net/http"

	"storefront-service/models"
)

const checkoutPath = "/api/cart/checkout"

type OrderClient struct {
	api Requester
}

func NewOrderClient(api Requester) *OrderClient {
	return &OrderClient{api: api}
}

// CreateOrder submits the checkout request as is.
func (o *OrderClient) CreateOrder(ctx context.Context, req models.OrderRequest) (*Response, error) {
	return o.api.Do(ctx, http.MethodPost, checkoutPath, req)
}

// PayOrder starts payment for orderID. The payload decodes into
// models.PaymentResult via DecodeData or DecodeEnvelope.
func (o *OrderClient) PayOrder(ctx context.Context, orderID int64) (*Response, error) {
	return o.api.Do(ctx, http.MethodPost, fmt.Sprintf("/api/orders/%d/pay", orderID), nil)
}
