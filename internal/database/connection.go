package database

import (
	"fmt"
	"time"

	"github.com/mroshb/filmorate/internal/config"
	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Error
	if cfg.IsDevelopment() {
		logLevel = gormlogger.Info
	}

	db, err := Open(cfg.GetDSN(), logLevel)
	if err != nil {
		return nil, err
	}

	logger.Info("Database connected", "host", cfg.DBHost, "name", cfg.DBName)
	return db, nil
}

// Open connects to the DSN with the catalog's pool settings.
func Open(dsn string, logLevel gormlogger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		// Multi-statement writes open their own transactions
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.Rating{},
		&models.Genre{},
		&models.User{},
		&models.Film{},
		&models.FilmGenre{},
		&models.FilmLike{},
		&models.Friendship{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// SeedReferenceData inserts the default genres and ratings, leaving existing rows alone.
func SeedReferenceData(db *gorm.DB) error {
	logger.Info("Seeding reference data...")

	ratings := append([]models.Rating(nil), models.DefaultRatings...)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ratings).Error; err != nil {
		return fmt.Errorf("failed to seed ratings: %w", err)
	}
	genres := append([]models.Genre(nil), models.DefaultGenres...)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&genres).Error; err != nil {
		return fmt.Errorf("failed to seed genres: %w", err)
	}
	return nil
}
