package routes

import (
	"github.com/davidkiarie/trendora-api/controllers"
	"github.com/davidkiarie/trendora-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	server.POST("/checkout/", middlewares.RequireAuth(), controllers.Checkout)
	server.GET("/orders/", middlewares.RequireAuth(), controllers.GetOrders)
	server.GET("/track-orders/", middlewares.RequireAuth(), controllers.GetTrackedOrders)
	server.PATCH("/orders/:orderId/status", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.UpdateOrderStatus)
}
