package controllers

import (
	"os"
	"strings"

	"safar/models"
	"safar/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type UserController struct {
	RDB *redis.Client
}

func NewUserController(rdb *redis.Client) *UserController {
	return &UserController{RDB: rdb}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

// POST /auth/register
func (uc *UserController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	db := utils.GetDB()
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		c.JSON(500, gin.H{"error": "Ошибка проверки пользователя"})
		return
	}
	if count > 0 {
		c.JSON(409, gin.H{"error": "Пользователь с таким email уже существует"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(500, gin.H{"error": "Ошибка хеширования пароля"})
		return
	}

	user := &models.User{Email: email, Password: hash, Confirmed: true}
	if req.Name != "" {
		user.Name = &req.Name
	}
	if err := db.Create(user).Error; err != nil {
		c.JSON(500, gin.H{"error": "Ошибка сохранения пользователя"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, os.Getenv("JWT_SECRET"))
	if err != nil {
		c.JSON(500, gin.H{"error": "Ошибка генерации токена"})
		return
	}
	c.JSON(200, gin.H{"token": token})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (uc *UserController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	db := utils.GetDB()
	var user models.User
	if err := db.Where("email = ? AND confirmed = ?", strings.ToLower(strings.TrimSpace(req.Email)), true).First(&user).Error; err != nil {
		c.JSON(404, gin.H{"error": "Пользователь не найден"})
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(401, gin.H{"error": "Пароль неверный"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, os.Getenv("JWT_SECRET"))
	if err != nil {
		c.JSON(500, gin.H{"error": "Ошибка генерации токена"})
		return
	}
	c.JSON(200, gin.H{"token": token})
}

// GET /user/me
func (uc *UserController) Me(c *gin.Context) {
	userID := uint(c.GetInt("user_id"))
	if userID == 0 {
		c.JSON(401, gin.H{"result": nil, "success": false, "error": "Пользователь не авторизован"})
		return
	}

	var user models.User
	if err := utils.GetDB().First(&user, userID).Error; err != nil {
		c.JSON(404, gin.H{"result": nil, "success": false, "error": "Пользователь не найден"})
		return
	}
	c.JSON(200, gin.H{"result": user, "success": true})
}
