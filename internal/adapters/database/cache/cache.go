package cache

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
)

// Migrations is a list of all gorm migrations for the local cache.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Team{},
	&entity.Player{},
	&entity.Event{},
	&entity.EventRegistration{},
	&entity.EventNotification{},
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver   string
	Path     string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Debug    bool
}

// Open connects to the cache database and migrates its schema.
// The embedded SQLite file is used unless the postgres driver is configured.
// Path ":memory:" gives a private in-memory database.
func Open(opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	driver := strings.ToLower(opts.Driver)
	switch driver {
	case "", DriverSQLite:
		path := opts.Path
		if path == "" {
			path = "nhu-cache.db"
		}
		dialector = sqlite.Open(path)
	case DriverPostgres:
		dsn := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=disable TimeZone=UTC",
			opts.User,
			opts.Password,
			opts.Name,
			opts.Host,
			opts.Port,
		)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown cache driver %q", opts.Driver)
	}

	var gormConfig *gorm.Config
	if opts.Debug {
		newLogger := gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
		gormConfig = &gorm.Config{
			Logger: newLogger,
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		}
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if driver != DriverPostgres {
		// SQLite has a single writer; one connection also keeps ":memory:" databases shared.
		sqlDB, errDB := db.DB()
		if errDB != nil {
			return nil, errDB
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err = db.AutoMigrate(Migrations...); err != nil {
		return nil, fmt.Errorf("failed to migrate cache database: %w", err)
	}
	return db, nil
}

// notFound converts gorm's missing-record error into errorz.ErrNotFound.
func notFound(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", what, id, errorz.ErrNotFound)
	}
	return err
}

func likePattern(query string) string {
	return "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
}
