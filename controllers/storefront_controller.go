package controllers

import (
	"context"
	"net/http"
	"strconv"

	"storefront-service/clients"
	apperrors "storefront-service/errors"
	"storefront-service/logger"
	"storefront-service/middleware"
	"storefront-service/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartService interface {
	GetCart(ctx context.Context) (*clients.Response, error)
	AddBookToCart(ctx context.Context, productID int64, quantity int) (*clients.Response, error)
	DeleteCart(ctx context.Context, cartItemID int64) (*clients.Response, error)
	UpdateCartItemQuantity(ctx context.Context, cartItemID int64, quantity int) (*clients.Response, error)
}

type OrderService interface {
	CreateOrder(ctx context.Context, req models.OrderRequest) (*clients.Response, error)
	PayOrder(ctx context.Context, orderID int64) (*clients.Response, error)
}

type StorefrontController struct {
	cart   CartService
	orders OrderService
}

func NewStorefrontController(cart CartService, orders OrderService) *StorefrontController {
	return &StorefrontController{cart: cart, orders: orders}
}

func (s *StorefrontController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *StorefrontController) GetCart(c *gin.Context) {
	resp, err := s.cart.GetCart(c.Request.Context())
	s.relay(c, resp, err)
}

func (s *StorefrontController) AddToCart(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := s.cart.AddBookToCart(c.Request.Context(), req.ProductID, req.Quantity)
	s.relay(c, resp, err)
}

func (s *StorefrontController) RemoveCartItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := s.cart.DeleteCart(c.Request.Context(), id)
	s.relay(c, resp, err)
}

func (s *StorefrontController) UpdateCartItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := s.cart.UpdateCartItemQuantity(c.Request.Context(), id, req.Quantity)
	s.relay(c, resp, err)
}

func (s *StorefrontController) Checkout(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := s.orders.CreateOrder(c.Request.Context(), req)
	s.relay(c, resp, err)
}

func (s *StorefrontController) PayOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	userID, _ := middleware.GetUserID(c)
	resp, err := s.orders.PayOrder(ctx, id)
	if err == nil {
		if env, decodeErr := clients.DecodeEnvelope[models.PaymentResult](resp); decodeErr == nil {
			logger.Info(ctx, "payment initiated",
				zap.String("user_id", userID),
				zap.String("order_id", env.Data.OrderID),
				zap.String("total_amount", env.Data.TotalAmount.String()),
				zap.String("payment_method", env.Data.PaymentMethod),
			)
		} else {
			logger.Warn(ctx, "unexpected pay order payload",
				zap.String("user_id", userID),
				zap.Int64("order_id", id),
				zap.Error(decodeErr),
			)
		}
	}
	s.relay(c, resp, err)
}

// relay writes the upstream response back as is. Errors are left to
// apperrors.ErrorMiddleware.
func (s *StorefrontController) relay(c *gin.Context, resp *clients.Response, err error) {
	if err != nil {
		_ = c.Error(err)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json; charset=utf-8"
	}
	c.Data(resp.StatusCode, contentType, resp.Body)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apperrors.New(http.StatusBadRequest, "invalid id", nil))
		return 0, false
	}
	return id, true
}
