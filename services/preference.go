package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"safar/models"
	"safar/utils"

	"gorm.io/gorm"
)

// LearnFromTrip инкрементально обновляет предпочтения по завершенной
// поездке: направление поездки попадает в начало списка предпочитаемых.
// Точка расширения - эвристику слияния (в т.ч. подстройку стиля) можно
// заменить, не трогая вызывающий код.
func LearnFromTrip(db *gorm.DB, userID uint, trip *models.Trip) (*models.Preference, error) {
	var pref models.Preference
	err := db.Where("user_id = ?", userID).First(&pref).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		pref = models.Preference{
			UserID:          userID,
			TravelStyle:     "balanced",
			Destinations:    models.EncodeStringList(nil),
			Airlines:        models.EncodeStringList(nil),
			HotelCategories: models.EncodeStringList(nil),
		}
		if err := db.Create(&pref).Error; err != nil {
			return nil, err
		}
	}

	destinations := pref.DestinationList()
	dest := strings.TrimSpace(trip.Destination)
	if dest != "" {
		for i, existing := range destinations {
			if strings.EqualFold(existing, dest) {
				// Уже знакомое направление поднимаем в начало списка
				destinations = append(destinations[:i], destinations[i+1:]...)
				break
			}
		}
		destinations = append([]string{dest}, destinations...)
	}
	pref.Destinations = models.EncodeStringList(destinations)

	if err := db.Save(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

const patternsCacheTTL = 5 * time.Minute

func patternsCacheKey(userID uint) string {
	return fmt.Sprintf("personalization:patterns:%d", userID)
}

// GetTravelPatterns возвращает TravelPatterns пользователя. Снимок
// считается из полного набора поездок за один проход и кешируется в Redis
// на 5 минут; кеш сбрасывается при любой записи поездки.
func GetTravelPatterns(db *gorm.DB, userID uint) (TravelPatterns, error) {
	rdb := utils.GetRedis()
	if rdb != nil {
		if raw, err := rdb.Get(context.Background(), patternsCacheKey(userID)).Result(); err == nil {
			var cached TravelPatterns
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	var trips []models.Trip
	if err := db.Where("user_id = ?", userID).Find(&trips).Error; err != nil {
		return TravelPatterns{}, err
	}
	patterns := AnalyzeTravelPatterns(trips, utils.UzbekTime())

	if rdb != nil {
		if raw, err := json.Marshal(patterns); err == nil {
			rdb.Set(context.Background(), patternsCacheKey(userID), raw, patternsCacheTTL)
		}
	}
	return patterns, nil
}

// InvalidatePatternsCache сбрасывает кешированный снимок пользователя
func InvalidatePatternsCache(userID uint) {
	if rdb := utils.GetRedis(); rdb != nil {
		rdb.Del(context.Background(), patternsCacheKey(userID))
	}
}
