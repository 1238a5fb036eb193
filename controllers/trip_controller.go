package controllers

import (
	"log"
	"strconv"
	"strings"

	"safar/models"
	"safar/services"
	"safar/utils"

	"github.com/gin-gonic/gin"
)

type TripController struct{}

func NewTripController() *TripController {
	return &TripController{}
}

var allowedGroupSizes = []string{"solo", "couple", "family", "group"}

func normalizeGroupSize(v string) string {
	v = strings.TrimSpace(strings.ToLower(v))
	for _, allowed := range allowedGroupSizes {
		if v == allowed {
			return v
		}
	}
	return ""
}

type tripRequest struct {
	Destination string  `json:"destination" binding:"required"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date"`
	BudgetTotal float64 `json:"budget_total"`
	Travelers   int     `json:"travelers"`
	GroupSize   string  `json:"group_size"`
}

// POST /user/trips
func (tc *TripController) Create(c *gin.Context) {
	userID := uint(c.GetInt("user_id"))
	if userID == 0 {
		c.JSON(401, gin.H{"result": nil, "success": false, "error": "Пользователь не авторизован"})
		return
	}

	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"result": nil, "success": false, "error": "invalid request"})
		return
	}

	if _, ok := utils.ParseTripDate(req.StartDate); !ok {
		c.JSON(400, gin.H{"result": nil, "success": false, "error": "Неверный формат даты начала. Поддерживаются: YYYY-MM-DD, YYYY/MM/DD, DD-MM-YYYY, DD/MM/YYYY"})
		return
	}
	if req.EndDate != "" {
		if _, ok := utils.ParseTripDate(req.EndDate); !ok {
			c.JSON(400, gin.H{"result": nil, "success": false, "error": "Неверный формат даты окончания"})
			return
		}
	}
	if req.BudgetTotal != 0 && !utils.ValidBudget(req.BudgetTotal) {
		c.JSON(400, gin.H{"result": nil, "success": false, "error": "Бюджет должен быть положительным числом"})
		return
	}
	if req.Travelers == 0 {
		req.Travelers = 1
	}
	if !utils.ValidTravelers(req.Travelers) {
		c.JSON(400, gin.H{"result": nil, "success": false, "error": "Количество путешественников должно быть от 1 до 50"})
		return
	}
	groupSize := ""
	if req.GroupSize != "" {
		groupSize = normalizeGroupSize(req.GroupSize)
		if groupSize == "" {
			c.JSON(400, gin.H{"result": nil, "success": false, "error": "group_size должен быть строго: solo, couple, family или group"})
			return
		}
	}

	trip := models.Trip{
		UserID:      userID,
		Destination: strings.TrimSpace(req.Destination),
		StartDate:   strings.TrimSpace(req.StartDate),
		EndDate:     strings.TrimSpace(req.EndDate),
		BudgetTotal: req.BudgetTotal,
		Travelers:   req.Travelers,
		GroupSize:   groupSize,
		Status:      "planned",
	}
	if err := utils.GetDB().Create(&trip).Error; err != nil {
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка создания поездки"})
		return
	}

	services.InvalidatePatternsCache(userID)
	c.JSON(201, gin.H{"result": trip, "success": true})
}

// GET /user/trips?page=1&limit=20
func (tc *TripController) List(c *gin.Context) {
	userID := uint(c.GetInt("user_id"))
	if userID == 0 {
		c.JSON(401, gin.H{"result": nil, "success": false, "error": "Пользователь не авторизован"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := utils.GetDB().Model(&models.Trip{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка подсчета поездок"})
		return
	}

	var trips []models.Trip
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&trips).Error; err != nil {
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка получения поездок"})
		return
	}

	c.JSON(200, gin.H{"result": gin.H{
		"totalElements": total,
		"content":       trips,
		"size":          limit,
		"number":        page - 1,
	}, "success": true})
}

// GET /user/trips/:id
func (tc *TripController) Get(c *gin.Context) {
	userID := uint(c.GetInt("user_id"))
	if userID == 0 {
		c.JSON(401, gin.H{"result": nil, "success": false, "error": "Пользователь не авторизован"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"result": nil, "success": false, "error": "invalid id"})
		return
	}

	var trip models.Trip
	if err := utils.GetDB().Where("id = ? AND user_id = ?", id, userID).First(&trip).Error; err != nil {
		c.JSON(404, gin.H{"result": nil, "success": false, "error": "Поездка не найдена"})
		return
	}
	c.JSON(200, gin.H{"result": trip, "success": true})
}

// DELETE /user/trips/:id
func (tc *TripController) Delete(c *gin.Context) {
	userID := uint(c.GetInt("user_id"))
	if userID == 0 {
		c.JSON(401, gin.H{"result": nil, "success": false, "error": "Пользователь не авторизован"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"result": nil, "success": false, "error": "invalid id"})
		return
	}

	db := utils.GetDB()
	var trip models.Trip
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&trip).Error; err != nil {
		c.JSON(404, gin.H{"result": nil, "success": false, "error": "Поездка не найдена"})
		return
	}
	if err := db.Delete(&trip).Error; err != nil {
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка удаления"})
		return
	}

	services.InvalidatePatternsCache(userID)
	c.JSON(200, gin.H{"result": gin.H{"id": trip.ID}, "success": true})
}

// POST /user/trips/:id/complete
// Завершение поездки запускает обучение предпочтений
func (tc *TripController) Complete(c *gin.Context) {
	userID := uint(c.GetInt("user_id"))
	if userID == 0 {
		c.JSON(401, gin.H{"result": nil, "success": false, "error": "Пользователь не авторизован"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"result": nil, "success": false, "error": "invalid id"})
		return
	}

	db := utils.GetDB()
	var trip models.Trip
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&trip).Error; err != nil {
		c.JSON(404, gin.H{"result": nil, "success": false, "error": "Поездка не найдена"})
		return
	}
	if trip.Status == "completed" {
		c.JSON(409, gin.H{"result": nil, "success": false, "error": "Поездка уже завершена"})
		return
	}

	trip.Status = "completed"
	if err := db.Save(&trip).Error; err != nil {
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка сохранения поездки"})
		return
	}

	if _, err := services.LearnFromTrip(db, userID, &trip); err != nil {
		// Обучение не должно валить завершение поездки
		log.Printf("[TRIPS] LearnFromTrip failed for user_id=%d trip_id=%d: %v", userID, trip.ID, err)
	}
	services.InvalidatePatternsCache(userID)

	c.JSON(200, gin.H{"result": trip, "success": true})
}
