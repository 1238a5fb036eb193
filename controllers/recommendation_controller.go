package controllers

import (
	"errors"
	"strconv"

	"safar/models"
	"safar/services"
	"safar/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RecommendationController struct{}

func NewRecommendationController() *RecommendationController {
	return &RecommendationController{}
}

func loadPreference(userID uint) (*models.Preference, error) {
	var pref models.Preference
	if err := utils.GetDB().Where("user_id = ?", userID).First(&pref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pref, nil
}

// GET /personalization/suggest/destinations?q=par
// Чтение без побочных эффектов: чистая функция от предпочтений и запроса
func (rc *RecommendationController) SuggestDestinations(c *gin.Context) {
	userID := uint(c.GetInt("user_id"))
	if userID == 0 {
		c.JSON(401, gin.H{"result": nil, "success": false, "error": "Пользователь не авторизован"})
		return
	}

	pref, err := loadPreference(userID)
	if err != nil {
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка получения предпочтений"})
		return
	}

	var preferred []string
	style := ""
	if pref != nil {
		preferred = pref.DestinationList()
		style = pref.TravelStyle
	}

	suggestions := services.SuggestDestinations(preferred, style, c.Query("q"))
	c.JSON(200, gin.H{"result": suggestions, "success": true})
}

// GET /personalization/suggest/budget?destination=Dubai&days=7
func (rc *RecommendationController) SuggestBudget(c *gin.Context) {
	userID := uint(c.GetInt("user_id"))
	if userID == 0 {
		c.JSON(401, gin.H{"result": nil, "success": false, "error": "Пользователь не авторизован"})
		return
	}

	destination := c.Query("destination")
	if destination == "" {
		c.JSON(400, gin.H{"result": nil, "success": false, "error": "destination обязателен"})
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	if days < 1 || days > 365 {
		c.JSON(400, gin.H{"result": nil, "success": false, "error": "days должен быть от 1 до 365"})
		return
	}

	pref, err := loadPreference(userID)
	if err != nil {
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка получения предпочтений"})
		return
	}
	patterns, err := services.GetTravelPatterns(utils.GetDB(), userID)
	if err != nil {
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка анализа истории поездок"})
		return
	}

	style := ""
	if pref != nil {
		style = pref.TravelStyle
	}
	estimate := services.SuggestBudget(destination, days, patterns.BudgetRange.Average, style)

	c.JSON(200, gin.H{"result": gin.H{
		"destination": destination,
		"days":        days,
		"estimate":    estimate,
	}, "success": true})
}

// GET /personalization/insights
// Снимок паттернов + уверенность + рекомендация размера группы
func (rc *RecommendationController) Insights(c *gin.Context) {
	userID := uint(c.GetInt("user_id"))
	if userID == 0 {
		c.JSON(401, gin.H{"result": nil, "success": false, "error": "Пользователь не авторизован"})
		return
	}

	pref, err := loadPreference(userID)
	if err != nil {
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка получения предпочтений"})
		return
	}
	patterns, err := services.GetTravelPatterns(utils.GetDB(), userID)
	if err != nil {
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка анализа истории поездок"})
		return
	}

	c.JSON(200, gin.H{"result": gin.H{
		"patterns":             patterns,
		"confidence":           services.ConfidenceScore(pref, patterns),
		"suggested_group_size": services.SuggestGroupSize(patterns),
	}, "success": true})
}
