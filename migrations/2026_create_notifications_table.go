package migrations

import "gorm.io/gorm"

// CreateNotificationsTable создает таблицу notifications
func CreateNotificationsTable(db *gorm.DB) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS notifications (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			type VARCHAR(30) NOT NULL,
			category VARCHAR(20) DEFAULT 'general',
			priority VARCHAR(10) DEFAULT 'normal',
			title VARCHAR(255) NOT NULL,
			message TEXT,
			data JSONB,
			is_read BOOLEAN DEFAULT FALSE,
			scheduled_for TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		);

		CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id);
		CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at DESC);

		-- Выборка непрочитанных по пользователю (частичный составной индекс)
		CREATE INDEX IF NOT EXISTS idx_notifications_user_unread
		ON notifications(user_id, created_at DESC)
		WHERE is_read = FALSE AND deleted_at IS NULL;
	`).Error
}
