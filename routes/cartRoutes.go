package routes

import (
	"github.com/davidkiarie/trendora-api/controllers"
	"github.com/davidkiarie/trendora-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/cart", middlewares.RequireAuth())
	{
		cart.GET("/", controllers.GetCart)
		cart.GET("/count/", controllers.GetCartCount)
		cart.POST("/add/", controllers.AddCartItem)
		cart.POST("/update/:itemId/", controllers.UpdateCartItem)
		cart.DELETE("/remove/:itemId/", controllers.RemoveCartItem)
	}
}
