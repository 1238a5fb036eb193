package routes

import (
	"safar/controllers"
	"safar/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPersonalizationRoutes регистрирует маршруты предпочтений, поездок и рекомендаций
func SetupPersonalizationRoutes(r *gin.Engine) {
	preferenceController := controllers.NewPreferenceController()
	tripController := controllers.NewTripController()
	recommendationController := controllers.NewRecommendationController()

	user := r.Group("/user", middleware.JWTAuthMiddleware())
	{
		user.GET("/preferences", preferenceController.Get)
		user.PUT("/preferences", preferenceController.Upsert)

		user.POST("/trips", tripController.Create)
		user.GET("/trips", tripController.List)
		user.GET("/trips/:id", tripController.Get)
		user.DELETE("/trips/:id", tripController.Delete)
		user.POST("/trips/:id/complete", tripController.Complete)
	}

	personalization := r.Group("/personalization", middleware.JWTAuthMiddleware())
	{
		personalization.GET("/suggest/destinations", recommendationController.SuggestDestinations)
		personalization.GET("/suggest/budget", recommendationController.SuggestBudget)
		personalization.GET("/insights", recommendationController.Insights)
	}
}
