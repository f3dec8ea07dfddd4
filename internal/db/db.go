package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lunanails/salon-scheduler/internal/config"
	"github.com/lunanails/salon-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.NailTech{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Store-level no-double-booking constraint: one non-cancelled
	// appointment per (tech, instant). Start times are minute-truncated
	// before insert, so the raw column gives minute granularity here.
	// Backstops the in-transaction recheck under concurrent bookings;
	// unassigned bookings (nail_tech_id IS NULL) stack freely.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_tech_minute
        ON appointments (nail_tech_id, start_time)
        WHERE nail_tech_id IS NOT NULL AND status <> 'cancelled'
    `)

	return db
}
