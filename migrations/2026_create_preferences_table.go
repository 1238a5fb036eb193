package migrations

import "gorm.io/gorm"

// CreatePreferencesTable создает таблицу preferences (одна запись на пользователя)
func CreatePreferencesTable(db *gorm.DB) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS preferences (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			budget_flight DECIMAL(15,2) DEFAULT 0,
			budget_hotel DECIMAL(15,2) DEFAULT 0,
			budget_total DECIMAL(15,2) DEFAULT 0,
			destinations JSONB,
			airlines JSONB,
			hotel_categories JSONB,
			travel_style VARCHAR(30) DEFAULT 'balanced',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		);

		-- Строго одна запись предпочтений на пользователя
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_preferences_user_id
		ON preferences(user_id)
		WHERE deleted_at IS NULL;
	`).Error
}
