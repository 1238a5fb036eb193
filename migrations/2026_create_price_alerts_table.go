package migrations

import "gorm.io/gorm"

// CreatePriceAlertsTable создает таблицу price_alerts
func CreatePriceAlertsTable(db *gorm.DB) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS price_alerts (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			reference VARCHAR(36) NOT NULL,
			alert_type VARCHAR(10) NOT NULL,
			search_params JSONB NOT NULL,
			target_price DECIMAL(15,2),
			current_price DECIMAL(15,2) NOT NULL,
			lowest_price DECIMAL(15,2) NOT NULL,
			highest_price DECIMAL(15,2) NOT NULL,
			price_history JSONB NOT NULL,
			is_active BOOLEAN DEFAULT TRUE,
			notification_sent BOOLEAN DEFAULT FALSE,
			last_checked TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		);

		CREATE INDEX IF NOT EXISTS idx_price_alerts_user_id ON price_alerts(user_id);
		CREATE INDEX IF NOT EXISTS idx_price_alerts_is_active ON price_alerts(is_active);
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_price_alerts_reference ON price_alerts(reference);
	`).Error
}
