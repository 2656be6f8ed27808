package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dmehra2102/prod-golang-projects/carebook/internal/config"
	"github.com/dmehra2102/prod-golang-projects/carebook/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/carebook/internal/domain/patient"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:      gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt: true,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: false,
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	if err := db.Exec("CREATE SCHEMA IF NOT EXISTS booking").Error; err != nil {
		return fmt.Errorf("creating schema booking: %w", err)
	}

	models := []any{
		&patient.Patient{},
		&appointment.Appointment{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		// Recent-appointments view always orders by creation time descending.
		{
			name:  "idx_appointments_created_desc",
			query: `CREATE INDEX IF NOT EXISTS idx_appointments_created_desc ON booking.appointments (created_at DESC)`,
		},
		{
			name:  "idx_appointments_status",
			query: `CREATE INDEX IF NOT EXISTS idx_appointments_status ON booking.appointments (status)`,
		},
		{
			name:  "idx_appointments_patient",
			query: `CREATE INDEX IF NOT EXISTS idx_appointments_patient ON booking.appointments (patient_id)`,
		},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	return nil
}
