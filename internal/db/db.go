package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"matelog-backend/internal/config"
	"matelog-backend/internal/model"
)

var gormDB *gorm.DB

// InitDBFromConfig opens the Postgres connection described by the DB section
// of the configuration and applies the pool settings.
func InitDBFromConfig(cfg *config.APIConfig) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.Username, cfg.DB.Password.Resolve(),
		cfg.DB.Names.MATELOG, cfg.DB.SSLMode, cfg.Context.TimeZone)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		log.Fatalf("failed to access underlying sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DB.Pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.Pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DB.Pool.ConnMaxLifetime) * time.Second)

	gormDB = conn
}

// GetDB returns the shared connection.
func GetDB() *gorm.DB {
	return gormDB
}

// SetDB swaps the shared connection; used by tests to point the repositories
// at an in-memory database.
func SetDB(conn *gorm.DB) {
	gormDB = conn
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate() error {
	return gormDB.AutoMigrate(
		&model.User{},
		&model.Lesson{},
		&model.Topic{},
		&model.TopicContent{},
		&model.Exercise{},
		&model.ExerciseOption{},
		&model.LessonProgress{},
		&model.TopicProgress{},
		&model.ExerciseResponse{},
		&model.TopicAttempt{},
		&model.StudySession{},
		&model.ScreenActivity{},
	)
}
