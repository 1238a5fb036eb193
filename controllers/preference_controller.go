package controllers

import (
	"errors"
	"log"
	"strings"

	"safar/models"
	"safar/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PreferenceController struct{}

func NewPreferenceController() *PreferenceController {
	return &PreferenceController{}
}

// GET /user/preferences
// Отсутствие записи - не ошибка: отдаем null, фронт показывает пустое состояние
func (pc *PreferenceController) Get(c *gin.Context) {
	userID := uint(c.GetInt("user_id"))
	if userID == 0 {
		c.JSON(401, gin.H{"result": nil, "success": false, "error": "Пользователь не авторизован"})
		return
	}

	var pref models.Preference
	if err := utils.GetDB().Where("user_id = ?", userID).First(&pref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(200, gin.H{"result": nil, "success": true})
			return
		}
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка получения предпочтений"})
		return
	}
	c.JSON(200, gin.H{"result": pref, "success": true})
}

type upsertPreferenceRequest struct {
	BudgetFlight    *float64  `json:"budget_flight"`
	BudgetHotel     *float64  `json:"budget_hotel"`
	BudgetTotal     *float64  `json:"budget_total"`
	Destinations    *[]string `json:"destinations"`
	Airlines        *[]string `json:"airlines"`
	HotelCategories *[]string `json:"hotel_categories"`
	TravelStyle     *string   `json:"travel_style"`
}

// PUT /user/preferences
// Upsert: создаем запись с дефолтами если ее нет, иначе патчим только
// присланные поля, не трогая остальные
func (pc *PreferenceController) Upsert(c *gin.Context) {
	userID := uint(c.GetInt("user_id"))
	if userID == 0 {
		c.JSON(401, gin.H{"result": nil, "success": false, "error": "Пользователь не авторизован"})
		return
	}

	var req upsertPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"result": nil, "success": false, "error": "invalid request"})
		return
	}

	for _, budget := range []*float64{req.BudgetFlight, req.BudgetHotel, req.BudgetTotal} {
		if budget != nil && !utils.ValidBudget(*budget) {
			c.JSON(400, gin.H{"result": nil, "success": false, "error": "Бюджет должен быть положительным числом"})
			return
		}
	}

	db := utils.GetDB()
	var pref models.Preference
	err := db.Where("user_id = ?", userID).First(&pref).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка получения предпочтений"})
			return
		}
		pref = models.Preference{
			UserID:          userID,
			TravelStyle:     "balanced",
			Destinations:    models.EncodeStringList(nil),
			Airlines:        models.EncodeStringList(nil),
			HotelCategories: models.EncodeStringList(nil),
		}
	}

	if req.BudgetFlight != nil {
		pref.BudgetFlight = *req.BudgetFlight
	}
	if req.BudgetHotel != nil {
		pref.BudgetHotel = *req.BudgetHotel
	}
	if req.BudgetTotal != nil {
		pref.BudgetTotal = *req.BudgetTotal
	}
	if req.Destinations != nil {
		pref.Destinations = models.EncodeStringList(*req.Destinations)
	}
	if req.Airlines != nil {
		pref.Airlines = models.EncodeStringList(*req.Airlines)
	}
	if req.HotelCategories != nil {
		pref.HotelCategories = models.EncodeStringList(*req.HotelCategories)
	}
	if req.TravelStyle != nil {
		style := strings.TrimSpace(strings.ToLower(*req.TravelStyle))
		if style == "" {
			c.JSON(400, gin.H{"result": nil, "success": false, "error": "travel_style не может быть пустым"})
			return
		}
		pref.TravelStyle = style
	}

	if err := db.Save(&pref).Error; err != nil {
		log.Printf("[PREFERENCES] Upsert failed for user_id=%d: %v", userID, err)
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка сохранения предпочтений"})
		return
	}

	c.JSON(200, gin.H{"result": pref, "success": true})
}
