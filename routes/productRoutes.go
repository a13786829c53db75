package routes

import (
	"github.com/davidkiarie/trendora-api/controllers"
	"github.com/davidkiarie/trendora-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/products", controllers.GetProducts)
	server.GET("/products/:id", controllers.GetProduct)
	server.GET("/colors", controllers.GetColors)
	server.GET("/sizes", controllers.GetSizes)

	admin := server.Group("/", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("/products", controllers.CreateProduct)
		admin.PUT("/products/:id", controllers.UpdateProduct)
		admin.DELETE("/products/:id", controllers.DeleteProduct)
		admin.POST("/product-images", controllers.UploadProductImages)
		admin.POST("/colors", controllers.CreateColor)
		admin.DELETE("/colors/:id", controllers.DeleteColor)
		admin.POST("/sizes", controllers.CreateSize)
		admin.DELETE("/sizes/:id", controllers.DeleteSize)
	}
}
