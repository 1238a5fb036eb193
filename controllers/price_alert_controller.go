package controllers

import (
	"encoding/json"
	"errors"
	"strconv"

	"safar/models"
	"safar/services"
	"safar/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PriceAlertController struct{}

func NewPriceAlertController() *PriceAlertController {
	return &PriceAlertController{}
}

type createAlertRequest struct {
	AlertType    string          `json:"alert_type" binding:"required"`
	SearchParams json.RawMessage `json:"search_params" binding:"required"`
	TargetPrice  *float64        `json:"target_price"`
	InitialPrice float64         `json:"initial_price" binding:"required"`
}

// POST /user/alerts
func (ac *PriceAlertController) Create(c *gin.Context) {
	userID := uint(c.GetInt("user_id"))
	if userID == 0 {
		c.JSON(401, gin.H{"result": nil, "success": false, "error": "Пользователь не авторизован"})
		return
	}

	var req createAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"result": nil, "success": false, "error": "invalid request"})
		return
	}

	alertType := utils.NormalizeAlertType(req.AlertType)
	if alertType == "" {
		c.JSON(400, gin.H{"result": nil, "success": false, "error": "alert_type должен быть строго: avia или hotel"})
		return
	}
	if !utils.ValidBudget(req.InitialPrice) {
		c.JSON(400, gin.H{"result": nil, "success": false, "error": "initial_price должен быть положительным числом"})
		return
	}
	if req.TargetPrice != nil && !utils.ValidBudget(*req.TargetPrice) {
		c.JSON(400, gin.H{"result": nil, "success": false, "error": "target_price должен быть положительным числом"})
		return
	}

	// Параметры поиска проверяем по схеме своего типа алерта
	switch alertType {
	case "avia":
		var params models.AviaSearchParams
		if err := json.Unmarshal(req.SearchParams, &params); err != nil || params.DepartureAirport == "" || params.ArrivalAirport == "" || params.Date == "" {
			c.JSON(400, gin.H{"result": nil, "success": false, "error": "Неверные параметры поиска авиабилетов"})
			return
		}
	case "hotel":
		var params models.HotelSearchParams
		if err := json.Unmarshal(req.SearchParams, &params); err != nil || params.CityID == 0 || params.CheckIn == "" || params.CheckOut == "" {
			c.JSON(400, gin.H{"result": nil, "success": false, "error": "Неверные параметры поиска отелей"})
			return
		}
	}

	alert := services.NewPriceAlert(userID, alertType, datatypes.JSON(req.SearchParams),
		req.TargetPrice, req.InitialPrice, uuid.NewString(), utils.UzbekTime())

	if err := utils.GetDB().Create(alert).Error; err != nil {
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка создания алерта"})
		return
	}
	c.JSON(201, gin.H{"result": alert, "success": true})
}

// GET /user/alerts?active=true
func (ac *PriceAlertController) List(c *gin.Context) {
	userID := uint(c.GetInt("user_id"))
	if userID == 0 {
		c.JSON(401, gin.H{"result": nil, "success": false, "error": "Пользователь не авторизован"})
		return
	}

	query := utils.GetDB().Model(&models.PriceAlert{}).Where("user_id = ?", userID)
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var alerts []models.PriceAlert
	if err := query.Order("created_at DESC").Find(&alerts).Error; err != nil {
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка получения алертов"})
		return
	}
	c.JSON(200, gin.H{"result": alerts, "success": true})
}

// GET /user/alerts/:id
func (ac *PriceAlertController) Get(c *gin.Context) {
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

	alert, code, msg := ac.loadOwned(uint(id), userID)
	if alert == nil {
		c.JSON(code, gin.H{"result": nil, "success": false, "error": msg})
		return
	}
	c.JSON(200, gin.H{"result": alert, "success": true})
}

// loadOwned грузит алерт с проверкой владельца: чужая запись - это 403,
// а не 404, запись не трогаем
func (ac *PriceAlertController) loadOwned(id, userID uint) (*models.PriceAlert, int, string) {
	var alert models.PriceAlert
	if err := utils.GetDB().First(&alert, id).Error; err != nil {
		return nil, 404, "Алерт не найден"
	}
	if alert.UserID != userID {
		return nil, 403, "Нет доступа к этому алерту"
	}
	return &alert, 0, ""
}

// PATCH /user/alerts/:id/toggle
func (ac *PriceAlertController) Toggle(c *gin.Context) {
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

	alert, code, msg := ac.loadOwned(uint(id), userID)
	if alert == nil {
		c.JSON(code, gin.H{"result": nil, "success": false, "error": msg})
		return
	}

	alert.IsActive = !alert.IsActive
	if err := utils.GetDB().Save(alert).Error; err != nil {
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка обновления алерта"})
		return
	}
	c.JSON(200, gin.H{"result": alert, "success": true})
}

// DELETE /user/alerts/:id
func (ac *PriceAlertController) Delete(c *gin.Context) {
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

	alert, code, msg := ac.loadOwned(uint(id), userID)
	if alert == nil {
		c.JSON(code, gin.H{"result": nil, "success": false, "error": msg})
		return
	}

	if err := utils.GetDB().Delete(alert).Error; err != nil {
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка удаления"})
		return
	}
	c.JSON(200, gin.H{"result": gin.H{"id": alert.ID}, "success": true})
}

type refreshAlertRequest struct {
	Price float64 `json:"price" binding:"required"`
}

// POST /user/alerts/:id/refresh
// Ручная подача ценовой точки (тот же путь, что и у планировщика)
func (ac *PriceAlertController) Refresh(c *gin.Context) {
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

	var req refreshAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil || !utils.ValidBudget(req.Price) {
		c.JSON(400, gin.H{"result": nil, "success": false, "error": "price должен быть положительным числом"})
		return
	}

	if alert, code, msg := ac.loadOwned(uint(id), userID); alert == nil {
		c.JSON(code, gin.H{"result": nil, "success": false, "error": msg})
		return
	}

	alert, err := services.RefreshAlertPrice(utils.GetDB(), uint(id), req.Price)
	if err != nil {
		if errors.Is(err, services.ErrAlertNotFound) {
			c.JSON(404, gin.H{"result": nil, "success": false, "error": "Алерт не найден"})
			return
		}
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка обновления цены"})
		return
	}
	c.JSON(200, gin.H{"result": alert, "success": true})
}
