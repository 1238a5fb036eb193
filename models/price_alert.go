package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PriceAlert - отслеживание цены по сохраненному поиску (avia/hotel)
type PriceAlert struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"not null;index"`
	Reference string `json:"reference" gorm:"type:varchar(36);uniqueIndex"` // uuid для писем и уведомлений

	AlertType    string         `json:"alert_type" gorm:"type:varchar(10);not null"` // строго: "avia" | "hotel"
	SearchParams datatypes.JSON `json:"search_params" gorm:"type:jsonb;not null"`
	TargetPrice  *float64       `json:"target_price"`

	CurrentPrice float64        `json:"current_price" gorm:"not null"`
	LowestPrice  float64        `json:"lowest_price" gorm:"not null"`
	HighestPrice float64        `json:"highest_price" gorm:"not null"`
	PriceHistory datatypes.JSON `json:"price_history" gorm:"type:jsonb;not null"` // массив PricePoint, окно 30 дней

	IsActive         bool      `json:"is_active" gorm:"default:true;index"`
	NotificationSent bool      `json:"notification_sent" gorm:"default:false"` // одноразовая защелка
	LastChecked      time.Time `json:"last_checked"`

	// Связь с пользователем
	User User `json:"-" gorm:"foreignKey:UserID;references:ID"`
}

// PricePoint - одна точка истории цены
type PricePoint struct {
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// AviaSearchParams - параметры отслеживаемого поиска авиабилетов
type AviaSearchParams struct {
	DepartureAirport string `json:"departure_airport" binding:"required"`
	ArrivalAirport   string `json:"arrival_airport" binding:"required"`
	Date             string `json:"date" binding:"required"`
	Adults           int    `json:"adults"`
	ServiceClass     string `json:"service_class"`
}

// HotelSearchParams - параметры отслеживаемого поиска отелей
type HotelSearchParams struct {
	CityID   int    `json:"city_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	Guests   int    `json:"guests"`
	Currency string `json:"currency"`
}

// History декодирует JSON-колонку price_history
func (a *PriceAlert) History() []PricePoint {
	if len(a.PriceHistory) == 0 {
		return nil
	}
	var points []PricePoint
	if err := json.Unmarshal(a.PriceHistory, &points); err != nil {
		return nil
	}
	return points
}

// SetHistory кодирует историю обратно в JSON-колонку
func (a *PriceAlert) SetHistory(points []PricePoint) {
	if points == nil {
		points = []PricePoint{}
	}
	raw, _ := json.Marshal(points)
	a.PriceHistory = datatypes.JSON(raw)
}

// AviaParams декодирует search_params для alert_type = "avia"
func (a *PriceAlert) AviaParams() (*AviaSearchParams, error) {
	var p AviaSearchParams
	if err := json.Unmarshal(a.SearchParams, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// HotelParams декодирует search_params для alert_type = "hotel"
func (a *PriceAlert) HotelParams() (*HotelSearchParams, error) {
	var p HotelSearchParams
	if err := json.Unmarshal(a.SearchParams, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
