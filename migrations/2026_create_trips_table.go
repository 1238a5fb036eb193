package migrations

import "gorm.io/gorm"

// CreateTripsTable создает таблицу trips
func CreateTripsTable(db *gorm.DB) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS trips (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			destination VARCHAR(255) NOT NULL,
			start_date VARCHAR(20) NOT NULL,
			end_date VARCHAR(20),
			budget_total DECIMAL(15,2) DEFAULT 0,
			travelers INTEGER DEFAULT 1,
			group_size VARCHAR(20),
			status VARCHAR(20) DEFAULT 'planned',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		);

		CREATE INDEX IF NOT EXISTS idx_trips_user_id ON trips(user_id);
		CREATE INDEX IF NOT EXISTS idx_trips_status ON trips(status);
		CREATE INDEX IF NOT EXISTS idx_trips_created_at ON trips(created_at DESC);
	`).Error
}
