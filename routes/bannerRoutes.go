package routes

import (
	"github.com/davidkiarie/trendora-api/controllers"
	"github.com/davidkiarie/trendora-api/middlewares"
	"github.com/gin-gonic/gin"
)

func BannerRoutes(server *gin.Engine) {
	server.GET("/banners", controllers.GetBanners)
	server.GET("/trending", controllers.GetTrendingItems)

	admin := server.Group("/", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("/banners", controllers.UploadBanner)
		admin.DELETE("/banners/:id", controllers.DeleteBanner)
		admin.POST("/trending", controllers.CreateTrendingItem)
		admin.DELETE("/trending/:id", controllers.DeleteTrendingItem)
	}
}
