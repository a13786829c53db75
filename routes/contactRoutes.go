package routes

import (
	"github.com/davidkiarie/trendora-api/controllers"
	"github.com/gin-gonic/gin"
)

func ContactRoutes(server *gin.Engine) {
	server.POST("/contact/", controllers.SubmitContactForm)
}
