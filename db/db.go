package db

import (
	"github.com/cet3001/CreatorShelf/config"
	"github.com/cet3001/CreatorShelf/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// New opens the Postgres connection and runs migrations for the Spark link
// and scan-event tables. The short_code unique index is what turns a
// generate-and-check race into an insert error instead of a silent
// overwrite.
func New(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}

	log.Info().
		Str("host", cfg.Host).
		Str("database", cfg.Name).
		Msg("Connected to Postgres")

	return gdb, nil
}

// Migrate applies auto-migrations for the models this service owns.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.Link{},
		&model.ScanEvent{},
	)
}
