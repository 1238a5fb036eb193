package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification - уведомление пользователя. Запись неизменяемая,
// кроме одностороннего перехода is_read false -> true.
type Notification struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"not null;index"`

	Type     string `json:"type" gorm:"type:varchar(30);not null"`        // price_drop | trip | system
	Category string `json:"category" gorm:"type:varchar(20);default:general"` // alert | general
	Priority string `json:"priority" gorm:"type:varchar(10);default:normal"`  // high | normal | low

	Title   string         `json:"title" gorm:"type:varchar(255);not null"`
	Message string         `json:"message" gorm:"type:text"`
	Data    datatypes.JSON `json:"data" gorm:"type:jsonb"` // полезная нагрузка по типу уведомления

	IsRead       bool       `json:"is_read" gorm:"default:false"`
	ScheduledFor *time.Time `json:"scheduled_for"`

	// Связь с пользователем
	User User `json:"-" gorm:"foreignKey:UserID;references:ID"`
}

// PriceDropData - полезная нагрузка уведомления type = "price_drop"
type PriceDropData struct {
	AlertID   uint    `json:"alert_id"`
	Reference string  `json:"reference"`
	OldPrice  float64 `json:"old_price"`
	NewPrice  float64 `json:"new_price"`
	Delta     float64 `json:"delta"`
}
