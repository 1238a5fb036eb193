package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Preference - предпочтения путешествий пользователя (строго одна запись на пользователя)
type Preference struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"not null;uniqueIndex"`

	// Целевые бюджеты по категориям
	BudgetFlight float64 `json:"budget_flight" gorm:"default:0"`
	BudgetHotel  float64 `json:"budget_hotel" gorm:"default:0"`
	BudgetTotal  float64 `json:"budget_total" gorm:"default:0"`

	// Списки (JSON): направления упорядочены по свежести, новые в начале
	Destinations    datatypes.JSON `json:"destinations" gorm:"type:jsonb"`
	Airlines        datatypes.JSON `json:"airlines" gorm:"type:jsonb"`
	HotelCategories datatypes.JSON `json:"hotel_categories" gorm:"type:jsonb"`

	TravelStyle string `json:"travel_style" gorm:"type:varchar(30);default:balanced"` // luxury | budget | balanced | произвольный

	// Связь с пользователем
	User User `json:"-" gorm:"foreignKey:UserID;references:ID"`
}

// DestinationList декодирует JSON-колонку destinations в срез строк
func (p *Preference) DestinationList() []string {
	return decodeStringList(p.Destinations)
}

// AirlineList декодирует JSON-колонку airlines в срез строк
func (p *Preference) AirlineList() []string {
	return decodeStringList(p.Airlines)
}

// HotelCategoryList декодирует JSON-колонку hotel_categories в срез строк
func (p *Preference) HotelCategoryList() []string {
	return decodeStringList(p.HotelCategories)
}

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return list
}

// EncodeStringList кодирует срез строк в JSON-колонку
func EncodeStringList(list []string) datatypes.JSON {
	if list == nil {
		list = []string{}
	}
	raw, _ := json.Marshal(list)
	return datatypes.JSON(raw)
}
