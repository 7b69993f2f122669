package db

import (
	"fmt"
	"os"
	"strings"

	"storefront/confs"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the store selected by cfg.DBDriver and brings the schema to
// SchemaVersion, seeding the catalog when it is empty.
func Connect(cfg *confs.Config, log *logrus.Logger) (Database, error) {
	gormCfg := &gorm.Config{Logger: gormLogger(log)}

	var (
		database *gorm.DB
		err      error
	)
	switch cfg.DBDriver {
	case "", "sqlite":
		log.WithField("path", cfg.DBPath).Info("Opening local database file")
		database, err = openSQLite(sqliteDSN(cfg.DBPath), gormCfg)
	case "memory":
		log.Info("Opening in-memory database")
		database, err = openSQLite(sqliteDSN(":memory:"), gormCfg)
	case "postgres":
		var dsn string
		dsn, err = postgresDSN(cfg.DBURL)
		if err != nil {
			return nil, err
		}
		log.Info("Connecting to PostgreSQL...")
		database, err = openPostgres(dsn, gormCfg)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("Database connection established successfully!")

	if err := Migrate(database, log); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := Seed(database, log); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}
	return &GormDatabase{DB: database}, nil
}

// NewMemory opens a private, migrated and seeded in-memory store.
func NewMemory() (Database, error) {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	return Connect(&confs.Config{DBDriver: "memory"}, log)
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	// foreign keys are off by default in SQLite; cascades depend on them
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func openSQLite(dsn string, gormCfg *gorm.Config) (*gorm.DB, error) {
	database, err := gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	// a single connection keeps :memory: databases alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)
	return database, nil
}

func openPostgres(dsn string, gormCfg *gorm.Config) (*gorm.DB, error) {
	gormCfg.PrepareStmt = true
	database, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(0)
	return database, nil
}

func postgresDSN(dbURL string) (string, error) {
	if dbURL != "" {
		dsn := dbURL
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		return dsn, nil
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	if dbHost == "" || dbPort == "" || dbUser == "" || dbPassword == "" || dbName == "" {
		return "", fmt.Errorf("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	sslMode := "require"
	if dbHost == "localhost" || dbHost == "127.0.0.1" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbHost, dbUser, dbPassword, dbName, dbPort, sslMode), nil
}

func gormLogger(log *logrus.Logger) logger.Interface {
	if log.IsLevelEnabled(logrus.DebugLevel) {
		return logger.Default.LogMode(logger.Info)
	}
	return logger.Default.LogMode(logger.Silent)
}
