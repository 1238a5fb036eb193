package models

import "gorm.io/gorm"

// Trip - поездка пользователя, источник данных для персонализации
type Trip struct {
	gorm.Model
	UserID      uint    `json:"user_id" gorm:"not null;index"`
	Destination string  `json:"destination" gorm:"type:varchar(255);not null"` // "Город, Страна"
	StartDate   string  `json:"start_date" gorm:"type:varchar(20);not null"`   // "YYYY-MM-DD"
	EndDate     string  `json:"end_date" gorm:"type:varchar(20)"`
	BudgetTotal float64 `json:"budget_total" gorm:"default:0"`
	Travelers   int     `json:"travelers" gorm:"default:1"`
	GroupSize   string  `json:"group_size" gorm:"type:varchar(20)"`             // solo | couple | family | group
	Status      string  `json:"status" gorm:"type:varchar(20);default:planned"` // planned | completed | cancelled

	// Связь с пользователем
	User User `json:"-" gorm:"foreignKey:UserID;references:ID"`
}
