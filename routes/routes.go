package routes

import (
	"storefront-service/controllers"
	"storefront-service/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, ctrl *controllers.StorefrontController) {
	r.GET("/health", ctrl.Health)

	protected := r.Group("/bff")
	protected.Use(middleware.AuthMiddleware())
	{
		// Cart page
		protected.GET("/cart", ctrl.GetCart)
		protected.POST("/cart", ctrl.AddToCart)
		protected.DELETE("/cart/:id", ctrl.RemoveCartItem)
		protected.PATCH("/cart/:id", ctrl.UpdateCartItem)

		// Checkout and payment
		protected.POST("/checkout", ctrl.Checkout)
		protected.POST("/orders/:id/pay", ctrl.PayOrder)
	}
}
