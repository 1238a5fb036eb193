package routes

import (
	"safar/controllers"
	"safar/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAlertRoutes регистрирует маршруты ценовых алертов и уведомлений
func SetupAlertRoutes(r *gin.Engine) {
	alertController := controllers.NewPriceAlertController()
	notificationController := controllers.NewNotificationController()

	user := r.Group("/user", middleware.JWTAuthMiddleware())
	{
		user.POST("/alerts", alertController.Create)
		user.GET("/alerts", alertController.List)
		user.GET("/alerts/:id", alertController.Get)
		user.PATCH("/alerts/:id/toggle", alertController.Toggle)
		user.DELETE("/alerts/:id", alertController.Delete)
		user.POST("/alerts/:id/refresh", alertController.Refresh)

		user.POST("/notifications", notificationController.Create)
		user.GET("/notifications", notificationController.List)
		user.PATCH("/notifications/:id/read", notificationController.MarkRead)
		user.POST("/notifications/read-all", notificationController.MarkAllRead)
	}
}
