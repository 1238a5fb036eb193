package services

import (
	"log"
	"os"

	"safar/config"
	"safar/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartPriceAlertCron запускает периодическое обновление цен по активным
// алертам: один раз при старте и далее каждые 30 минут.
func StartPriceAlertCron(db *gorm.DB, cfg *config.Config) {
	go refreshActiveAlerts(db, cfg)

	c := cron.New()
	_, _ = c.AddFunc("*/30 * * * *", func() { refreshActiveAlerts(db, cfg) })
	c.Start()
	log.Printf("[ALERT CRON] Scheduler started. Active alerts refresh every 30 minutes")
}

func refreshActiveAlerts(db *gorm.DB, cfg *config.Config) {
	logFile, _ := os.OpenFile("logs/parser_errors.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	logger := log.New(logFile, "", log.LstdFlags)
	defer logFile.Close()

	quotes, err := FetchFareBoard(cfg.FareBoardURL)
	if err != nil {
		logger.Printf("[ALERT CRON] Fare board fetch failed: %v", err)
		return
	}
	if len(quotes) == 0 {
		logger.Printf("[ALERT CRON] Fare board returned no quotes, skipping")
		return
	}

	var alerts []models.PriceAlert
	if err := db.Where("is_active = ?", true).Find(&alerts).Error; err != nil {
		logger.Printf("[ALERT CRON] Failed to load active alerts: %v", err)
		return
	}

	refreshed := 0
	notified := 0
	for _, alert := range alerts {
		price, ok := LookupQuote(quotes, &alert)
		if !ok {
			continue
		}
		updated, err := RefreshAlertPrice(db, alert.ID, price)
		if err != nil {
			logger.Printf("[ALERT CRON] Alert %d refresh failed: %v", alert.ID, err)
			continue
		}
		refreshed++
		if updated.NotificationSent && !alert.NotificationSent {
			notified++
		}
	}

	logger.Printf("[ALERT CRON] Refresh complete: %d/%d alerts updated, %d notifications fired", refreshed, len(alerts), notified)
}
