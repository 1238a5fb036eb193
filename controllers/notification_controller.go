package controllers

import (
	"strconv"
	"strings"
	"time"

	"safar/models"
	"safar/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type NotificationController struct{}

func NewNotificationController() *NotificationController {
	return &NotificationController{}
}

var allowedPriorities = []string{"high", "normal", "low"}

type createNotificationRequest struct {
	Type         string         `json:"type" binding:"required"`
	Category     string         `json:"category"`
	Priority     string         `json:"priority"`
	Title        string         `json:"title" binding:"required"`
	Message      string         `json:"message"`
	Data         datatypes.JSON `json:"data"`
	ScheduledFor *time.Time     `json:"scheduled_for"`
}

// POST /user/notifications
func (nc *NotificationController) Create(c *gin.Context) {
	userID := uint(c.GetInt("user_id"))
	if userID == 0 {
		c.JSON(401, gin.H{"result": nil, "success": false, "error": "Пользователь не авторизован"})
		return
	}

	var req createNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"result": nil, "success": false, "error": "invalid request"})
		return
	}

	priority := strings.TrimSpace(strings.ToLower(req.Priority))
	if priority == "" {
		priority = "normal"
	}
	validPriority := false
	for _, allowed := range allowedPriorities {
		if priority == allowed {
			validPriority = true
			break
		}
	}
	if !validPriority {
		c.JSON(400, gin.H{"result": nil, "success": false, "error": "priority должен быть строго: high, normal или low"})
		return
	}

	category := strings.TrimSpace(strings.ToLower(req.Category))
	if category == "" {
		category = "general"
	}

	notification := models.Notification{
		UserID:       userID,
		Type:         strings.TrimSpace(req.Type),
		Category:     category,
		Priority:     priority,
		Title:        strings.TrimSpace(req.Title),
		Message:      req.Message,
		Data:         req.Data,
		ScheduledFor: req.ScheduledFor,
	}
	if err := utils.GetDB().Create(&notification).Error; err != nil {
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка создания уведомления"})
		return
	}
	c.JSON(201, gin.H{"result": notification, "success": true})
}

// GET /user/notifications?limit=20&unread_only=true
func (nc *NotificationController) List(c *gin.Context) {
	userID := uint(c.GetInt("user_id"))
	if userID == 0 {
		c.JSON(401, gin.H{"result": nil, "success": false, "error": "Пользователь не авторизован"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := utils.GetDB().Model(&models.Notification{}).Where("user_id = ?", userID)
	if c.Query("unread_only") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка получения уведомлений"})
		return
	}
	c.JSON(200, gin.H{"result": notifications, "success": true})
}

// PATCH /user/notifications/:id/read
// Переход is_read только в одну сторону: false -> true
func (nc *NotificationController) MarkRead(c *gin.Context) {
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
	var notification models.Notification
	if err := db.First(&notification, id).Error; err != nil {
		c.JSON(404, gin.H{"result": nil, "success": false, "error": "Уведомление не найдено"})
		return
	}
	// Чужая запись - это 403, а не 404, как и у алертов
	if notification.UserID != userID {
		c.JSON(403, gin.H{"result": nil, "success": false, "error": "Нет доступа к этому уведомлению"})
		return
	}

	if !notification.IsRead {
		notification.IsRead = true
		if err := db.Save(&notification).Error; err != nil {
			c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка обновления уведомления"})
			return
		}
	}
	c.JSON(200, gin.H{"result": notification, "success": true})
}

// POST /user/notifications/read-all
// Идемпотентно: возвращает количество реально переключенных записей,
// повторный вызов дает 0
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	userID := uint(c.GetInt("user_id"))
	if userID == 0 {
		c.JSON(401, gin.H{"result": nil, "success": false, "error": "Пользователь не авторизован"})
		return
	}

	result := utils.GetDB().Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(500, gin.H{"result": nil, "success": false, "error": "Ошибка обновления уведомлений"})
		return
	}
	c.JSON(200, gin.H{"result": gin.H{"updated": result.RowsAffected}, "success": true})
}
