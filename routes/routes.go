package routes

import (
	"safar/controllers"
	"safar/middleware"
	"safar/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter создаёт gin.Engine, регистрирует все маршруты и возвращает роутер
func SetupRouter() *gin.Engine {
	// gin.New вместо gin.Default: паники обрабатывает только наш recovery
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())

	// CORS middleware ДО роутов
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://safar.uz", "https://www.safar.uz"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	userController := controllers.NewUserController(utils.GetRedis())

	r.POST("/auth/register", userController.Register)
	r.POST("/auth/login", userController.Login)

	user := r.Group("/user", middleware.JWTAuthMiddleware())
	{
		user.GET("/me", userController.Me)
	}

	SetupPersonalizationRoutes(r)
	SetupAlertRoutes(r)

	return r
}
