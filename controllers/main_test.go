package controllers_test

import (
	"testing"

	"safar/models"
	"safar/routes"
	"safar/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter поднимает роутер на изолированной in-memory SQLite базе
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Trip{},
		&models.Preference{},
		&models.PriceAlert{},
		&models.Notification{},
	))
	utils.SetDB(db)

	return routes.SetupRouter()
}

func createUser(t *testing.T, email string) (models.User, string) {
	t.Helper()
	user := models.User{Email: email, Password: "-", Confirmed: true, Role: "user"}
	assert.NoError(t, utils.GetDB().Create(&user).Error)

	token, err := utils.GenerateJWT(user.ID, user.Role, "test-secret")
	assert.NoError(t, err)
	return user, "Bearer " + token
}
