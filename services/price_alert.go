package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"safar/models"
	"safar/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Скользящее окно хранения истории цен
const priceHistoryWindow = 30 * 24 * time.Hour

// PriceUpdateResult - итог применения новой цены к алерту
type PriceUpdateResult struct {
	Notify         bool
	PreviousLowest float64
	OldPrice       float64
	NewPrice       float64
}

// ApplyPriceUpdate применяет новую цену к алерту: добавляет точку в историю,
// отбрасывает точки старше 30 дней от now, пересчитывает минимум/максимум,
// обновляет текущую цену и время проверки. Решение об уведомлении:
// при заданной целевой цене - newPrice <= target, иначе - новый минимум.
// Защелка notification_sent одноразовая: после срабатывания повторных
// уведомлений нет, пути сброса не предусмотрено.
func ApplyPriceUpdate(alert *models.PriceAlert, newPrice float64, now time.Time) PriceUpdateResult {
	result := PriceUpdateResult{
		PreviousLowest: alert.LowestPrice,
		OldPrice:       alert.CurrentPrice,
		NewPrice:       newPrice,
	}

	history := alert.History()
	history = append(history, models.PricePoint{Price: newPrice, Timestamp: now})

	cutoff := now.Add(-priceHistoryWindow)
	trimmed := history[:0]
	for _, point := range history {
		if !point.Timestamp.Before(cutoff) {
			trimmed = append(trimmed, point)
		}
	}
	alert.SetHistory(trimmed)

	// Минимум/максимум за все время жизни алерта, не по окну
	if newPrice < alert.LowestPrice {
		alert.LowestPrice = newPrice
	}
	if newPrice > alert.HighestPrice {
		alert.HighestPrice = newPrice
	}
	alert.CurrentPrice = newPrice
	alert.LastChecked = now

	if !alert.NotificationSent {
		if alert.TargetPrice != nil {
			result.Notify = newPrice <= *alert.TargetPrice
		} else {
			result.Notify = newPrice < result.PreviousLowest
		}
	}
	if result.Notify {
		alert.NotificationSent = true
	}

	return result
}

// NewPriceAlert собирает новый алерт с первой ценовой точкой
func NewPriceAlert(userID uint, alertType string, searchParams datatypes.JSON, targetPrice *float64, initialPrice float64, reference string, now time.Time) *models.PriceAlert {
	alert := &models.PriceAlert{
		UserID:           userID,
		Reference:        reference,
		AlertType:        alertType,
		SearchParams:     searchParams,
		TargetPrice:      targetPrice,
		CurrentPrice:     initialPrice,
		LowestPrice:      initialPrice,
		HighestPrice:     initialPrice,
		IsActive:         true,
		NotificationSent: false,
		LastChecked:      now,
	}
	alert.SetHistory([]models.PricePoint{{Price: initialPrice, Timestamp: now}})
	return alert
}

// ErrAlertNotFound - алерт не существует
var ErrAlertNotFound = errors.New("alert not found")

// RefreshAlertPrice применяет новую цену к алерту под блокировкой строки
// (один писатель на запись) и при срабатывании создает уведомление.
func RefreshAlertPrice(db *gorm.DB, alertID uint, newPrice float64) (*models.PriceAlert, error) {
	var alert models.PriceAlert
	var result PriceUpdateResult
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&alert, alertID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAlertNotFound
			}
			return err
		}

		result = ApplyPriceUpdate(&alert, newPrice, utils.UzbekTime())
		if err := tx.Save(&alert).Error; err != nil {
			return err
		}

		if result.Notify {
			if err := createPriceDropNotification(tx, &alert, result); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Notify {
		// Письмо лучшее из возможного: лимиты и ошибки SMTP не валят обновление цены
		go sendAlertEmail(db, &alert, result)
	}
	return &alert, nil
}

func createPriceDropNotification(tx *gorm.DB, alert *models.PriceAlert, result PriceUpdateResult) error {
	payload, _ := json.Marshal(models.PriceDropData{
		AlertID:   alert.ID,
		Reference: alert.Reference,
		OldPrice:  result.OldPrice,
		NewPrice:  result.NewPrice,
		Delta:     result.OldPrice - result.NewPrice,
	})

	notification := &models.Notification{
		UserID:   alert.UserID,
		Type:     "price_drop",
		Category: "alert",
		Priority: "high",
		Title:    "Цена снизилась",
		Message:  fmt.Sprintf("Цена по вашему поиску (%s) снизилась до %.2f", alert.AlertType, result.NewPrice),
		Data:     datatypes.JSON(payload),
	}
	return tx.Create(notification).Error
}

func sendAlertEmail(db *gorm.DB, alert *models.PriceAlert, result PriceUpdateResult) {
	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		return
	}

	rdb := utils.GetRedis()
	if rdb != nil {
		key := fmt.Sprintf("user_%d", alert.UserID)
		if ok, msg := utils.CanSendAlertEmail(rdb, key); !ok {
			utils.LogError(errors.New(msg), "alert email rate limit")
			return
		}
		utils.MarkAlertEmailSent(rdb, key)
	}

	var user models.User
	if err := db.First(&user, alert.UserID).Error; err != nil || user.Email == "" {
		return
	}

	subject := "Safar: цена по вашему алерту снизилась"
	body := fmt.Sprintf("Цена по отслеживаемому поиску %s снизилась: %.2f -> %.2f (алерт %s)",
		alert.AlertType, result.OldPrice, result.NewPrice, alert.Reference)
	if err := utils.SendEmail(user.Email, subject, body,
		smtpHost, os.Getenv("SMTP_PORT"), os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS")); err != nil {
		utils.LogError(err, "alert email send")
	}
}
