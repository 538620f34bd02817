package database

import (
	"fmt"
	"log/slog"
	"time"

	"pocketledger/config"
	"pocketledger/logger"
	"pocketledger/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Supported drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// DSN builds the connection string. cfg.DSN wins when set.
func DSN(cfg config.DatabaseConfig) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	switch cfg.Driver {
	case DriverMySQL, "":
		charset := cfg.Charset
		if charset == "" {
			charset = "utf8mb4"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=UTC",
			cfg.Username,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			charset,
		), nil
	case DriverPostgres:
		sslmode := cfg.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.Host,
			cfg.Port,
			cfg.Username,
			cfg.Password,
			cfg.DBName,
			sslmode,
		), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Dialector picks the GORM dialector for the configured driver.
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	switch cfg.Driver {
	case DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return mysql.Open(dsn), nil
	}
}

// Open connects to the database and configures the pool. It does not migrate.
func Open(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if cfg.Server.Mode == "debug" {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(log.WithComponent("gorm").StdLogger(slog.LevelInfo), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Database.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	if cfg.Database.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}

	return db, nil
}

// Init opens the database and brings the schema up to date.
func Init(cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	db, err := Open(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db, log); err != nil {
		_ = Close(db)
		return nil, err
	}
	log.Info("database initialized", "driver", cfg.Database.Driver)
	return db, nil
}

// Migrate runs AutoMigrate and moves legacy ledger-less transactions into a default ledger.
func Migrate(db *gorm.DB, log *logger.Logger) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Ledger{},
		&models.Transaction{},
		&models.AnalysisHistory{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	moved, err := BackfillLedgers(db)
	if err != nil {
		return err
	}
	if moved > 0 {
		log.Info("moved legacy transactions into default ledgers", "count", moved, "ledger", models.DefaultLedgerName)
	}
	return nil
}

// BackfillLedgers assigns transactions written by the ledger-optional schema (ledger_id = 0)
// to a per-user "General" ledger, creating it when missing. Returns the rows moved.
func BackfillLedgers(db *gorm.DB) (int64, error) {
	var userIDs []uint
	if err := db.Model(&models.Transaction{}).
		Where("ledger_id = ?", 0).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error; err != nil {
		return 0, fmt.Errorf("find legacy transactions: %w", err)
	}

	var moved int64
	for _, userID := range userIDs {
		ledger := models.Ledger{Name: models.DefaultLedgerName, UserID: userID}
		if err := db.Where("user_id = ? AND name = ?", userID, models.DefaultLedgerName).
			FirstOrCreate(&ledger).Error; err != nil {
			return moved, fmt.Errorf("default ledger for user %d: %w", userID, err)
		}

		res := db.Model(&models.Transaction{}).
			Where("user_id = ? AND ledger_id = ?", userID, 0).
			Update("ledger_id", ledger.ID)
		if res.Error != nil {
			return moved, fmt.Errorf("move legacy transactions for user %d: %w", userID, res.Error)
		}
		moved += res.RowsAffected
	}
	return moved, nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
