package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Email     string  `json:"email" gorm:"uniqueIndex;not null"`
	Password  string  `json:"-"`
	Name      *string `json:"name"`
	Role      string  `json:"role" gorm:"default:user"`
	Confirmed bool    `json:"confirmed" gorm:"default:true"`
}
