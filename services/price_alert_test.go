package services

import (
	"encoding/json"
	"testing"
	"time"

	"safar/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var alertNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newAlert(initialPrice float64, targetPrice *float64) *models.PriceAlert {
	return NewPriceAlert(7, "avia", []byte(`{"departure_airport":"TAS","arrival_airport":"DXB","date":"2026-09-01"}`),
		targetPrice, initialPrice, "ref-test", alertNow.Add(-time.Hour))
}

func TestNewPriceAlertInitialState(t *testing.T) {
	alert := newAlert(1000, nil)

	assert.Equal(t, 1000.0, alert.CurrentPrice)
	assert.Equal(t, 1000.0, alert.LowestPrice)
	assert.Equal(t, 1000.0, alert.HighestPrice)
	assert.True(t, alert.IsActive)
	assert.False(t, alert.NotificationSent)
	assert.Len(t, alert.History(), 1)
}

func TestApplyPriceUpdateNewLowFiresOnce(t *testing.T) {
	alert := newAlert(1000, nil)

	result := ApplyPriceUpdate(alert, 900, alertNow)
	assert.True(t, result.Notify)
	assert.Equal(t, 900.0, alert.CurrentPrice)
	assert.Equal(t, 900.0, alert.LowestPrice)
	assert.Equal(t, 1000.0, alert.HighestPrice)
	assert.True(t, alert.NotificationSent)

	// Защелка уже взведена: новый минимум больше не уведомляет
	result = ApplyPriceUpdate(alert, 850, alertNow.Add(time.Hour))
	assert.False(t, result.Notify)
	assert.Equal(t, 850.0, alert.LowestPrice)
	assert.True(t, alert.NotificationSent)
}

func TestApplyPriceUpdateNoNotifyOnRise(t *testing.T) {
	alert := newAlert(1000, nil)

	result := ApplyPriceUpdate(alert, 1200, alertNow)
	assert.False(t, result.Notify)
	assert.Equal(t, 1200.0, alert.CurrentPrice)
	assert.Equal(t, 1000.0, alert.LowestPrice)
	assert.Equal(t, 1200.0, alert.HighestPrice)
	assert.False(t, alert.NotificationSent)
}

func TestApplyPriceUpdateTargetPrice(t *testing.T) {
	target := 500.0
	alert := newAlert(1000, &target)

	// Выше цели: тишина, даже если это новый минимум
	result := ApplyPriceUpdate(alert, 600, alertNow)
	assert.False(t, result.Notify)

	result = ApplyPriceUpdate(alert, 480, alertNow.Add(time.Hour))
	assert.True(t, result.Notify)
	assert.True(t, alert.NotificationSent)
}

func TestApplyPriceUpdateTrimsOldHistory(t *testing.T) {
	alert := newAlert(1000, nil)
	alert.SetHistory([]models.PricePoint{
		{Price: 1100, Timestamp: alertNow.Add(-40 * 24 * time.Hour)},
		{Price: 1050, Timestamp: alertNow.Add(-10 * 24 * time.Hour)},
	})

	ApplyPriceUpdate(alert, 1000, alertNow)

	history := alert.History()
	assert.Len(t, history, 2)
	assert.Equal(t, 1050.0, history[0].Price)
	assert.Equal(t, 1000.0, history[1].Price)
}

func TestApplyPriceUpdateResultCarriesDelta(t *testing.T) {
	alert := newAlert(1000, nil)

	result := ApplyPriceUpdate(alert, 900, alertNow)
	assert.Equal(t, 1000.0, result.OldPrice)
	assert.Equal(t, 900.0, result.NewPrice)
	assert.Equal(t, 1000.0, result.PreviousLowest)
}

func newAlertDB(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("SMTP_HOST", "")

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}, &models.PriceAlert{}, &models.Notification{}))
	return db
}

func TestRefreshAlertPriceCreatesNotification(t *testing.T) {
	db := newAlertDB(t)
	alert := newAlert(1000, nil)
	assert.NoError(t, db.Create(alert).Error)

	updated, err := RefreshAlertPrice(db, alert.ID, 900)
	assert.NoError(t, err)
	assert.Equal(t, 900.0, updated.CurrentPrice)
	assert.True(t, updated.NotificationSent)

	// Защелка и минимум записаны в базу
	var saved models.PriceAlert
	assert.NoError(t, db.First(&saved, alert.ID).Error)
	assert.True(t, saved.NotificationSent)
	assert.Equal(t, 900.0, saved.LowestPrice)

	var notifications []models.Notification
	assert.NoError(t, db.Where("user_id = ?", alert.UserID).Find(&notifications).Error)
	assert.Len(t, notifications, 1)
	assert.Equal(t, "price_drop", notifications[0].Type)
	assert.Equal(t, "alert", notifications[0].Category)
	assert.Equal(t, "high", notifications[0].Priority)

	var data models.PriceDropData
	assert.NoError(t, json.Unmarshal(notifications[0].Data, &data))
	assert.Equal(t, alert.ID, data.AlertID)
	assert.Equal(t, alert.Reference, data.Reference)
	assert.Equal(t, 1000.0, data.OldPrice)
	assert.Equal(t, 900.0, data.NewPrice)
	assert.Equal(t, 100.0, data.Delta)

	// Следующий минимум после срабатывания защелки уведомлений не добавляет
	_, err = RefreshAlertPrice(db, alert.ID, 850)
	assert.NoError(t, err)
	assert.NoError(t, db.Where("user_id = ?", alert.UserID).Find(&notifications).Error)
	assert.Len(t, notifications, 1)
}

func TestRefreshAlertPriceMissingAlert(t *testing.T) {
	db := newAlertDB(t)

	_, err := RefreshAlertPrice(db, 9999, 900)
	assert.ErrorIs(t, err, ErrAlertNotFound)
}
