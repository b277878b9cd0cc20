package clients

import (
	"context"
	"net/http"
	"strconv"

	"storefront-service/models"

	"go.uber.org/zap"
)

// CartClient calls the cart collection resource rooted at the configured prefix.
type CartClient struct {
	api    Requester
	prefix string
	log    *zap.Logger
}

func NewCartClient(api Requester, cartModule string, log *zap.Logger) *CartClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartClient{api: api, prefix: cartModule, log: log}
}

// GetCart lists the items in the current user's cart.
func (c *CartClient) GetCart(ctx context.Context) (*Response, error) {
	resp, err := c.api.Do(ctx, http.MethodGet, c.prefix, nil)
	if err != nil {
		return nil, err
	}
	c.log.Debug("get cart", zap.Int("status", resp.StatusCode), zap.Int("code", resp.Code))
	return resp, nil
}

// AddBookToCart puts quantity units of productID into the cart.
// The error, if any, is logged and returned as is.
func (c *CartClient) AddBookToCart(ctx context.Context, productID int64, quantity int) (*Response, error) {
	body := models.AddCartItemRequest{ProductID: productID, Quantity: quantity}

	resp, err := c.api.Do(ctx, http.MethodPost, c.prefix, body)
	if err != nil {
		c.log.Error("add book to cart failed",
			zap.Int64("product_id", productID),
			zap.Int("quantity", quantity),
			zap.Error(err),
		)
		return nil, err
	}

	c.log.Info("book added to cart",
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("status", resp.StatusCode),
	)
	return resp, nil
}

func (c *CartClient) DeleteCart(ctx context.Context, cartItemID int64) (*Response, error) {
	return c.api.Do(ctx, http.MethodDelete, c.itemPath(cartItemID), nil)
}

// UpdateCartItemQuantity sets the quantity of one cart line.
func (c *CartClient) UpdateCartItemQuantity(ctx context.Context, cartItemID int64, quantity int) (*Response, error) {
	body := models.UpdateQuantityRequest{Quantity: quantity}
	return c.api.Do(ctx, http.MethodPatch, c.itemPath(cartItemID), body)
}

func (c *CartClient) itemPath(cartItemID int64) string {
	return c.prefix + "/" + strconv.FormatInt(cartItemID, 10)
}
