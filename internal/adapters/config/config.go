package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"

	"github.com/nhu-hockey/nhu-app/internal/adapters/database/cache"
	"github.com/nhu-hockey/nhu-app/internal/adapters/database/redis"
	"github.com/nhu-hockey/nhu-app/internal/adapters/push"
	"github.com/nhu-hockey/nhu-app/internal/domain/utils/location"
	"github.com/nhu-hockey/nhu-app/pkg/logger"
	"github.com/nhu-hockey/nhu-app/pkg/smtp"
)

const envPrefix = "NHU"

type Settings struct {
	Settings AppSettings     `mapstructure:"settings"`
	Service  ServiceSettings `mapstructure:"service"`
}

type AppSettings struct {
	Debug     bool   `mapstructure:"debug"`
	Timezone  string `mapstructure:"timezone"`
	LogToFile bool   `mapstructure:"log-to-file"`
	LogsDir   string `mapstructure:"logs-dir"`
	// Host is the domain shared links point to.
	Host     string `mapstructure:"host"`
	PageSize int    `mapstructure:"page-size"`
	// QRLogo is an optional image drawn in the middle of share codes.
	QRLogo  string          `mapstructure:"qr-logo"`
	Logging LoggingSettings `mapstructure:"logging"`
}

// LoggingSettings controls forwarding of error logs to the alerts topic.
type LoggingSettings struct {
	LogToAlerts    bool `mapstructure:"log-to-alerts"`
	AlertsLogLevel int  `mapstructure:"alerts-log-level"`
}

func (l LoggingSettings) Level() zapcore.Level {
	return zapcore.Level(l.AlertsLogLevel)
}

type ServiceSettings struct {
	Cache CacheSettings `mapstructure:"cache"`
	Redis RedisSettings `mapstructure:"redis"`
	NATS  NATSSettings  `mapstructure:"nats"`
	SMTP  SMTPSettings  `mapstructure:"smtp"`
}

type CacheSettings struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type RedisSettings struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	Namespace string `mapstructure:"namespace"`
}

type NATSSettings struct {
	URL           string        `mapstructure:"url"`
	SubjectPrefix string        `mapstructure:"subject-prefix"`
	MaxReconnects int           `mapstructure:"max-reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect-wait"`
}

type SMTPSettings struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	Domain   string `mapstructure:"domain"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("settings.debug", false)
	v.SetDefault("settings.timezone", location.DefaultZone)
	v.SetDefault("settings.log-to-file", false)
	v.SetDefault("settings.logs-dir", "logs")
	v.SetDefault("settings.host", "nhu.com.na")
	v.SetDefault("settings.page-size", 20)
	v.SetDefault("settings.qr-logo", "")
	v.SetDefault("settings.logging.log-to-alerts", false)
	v.SetDefault("settings.logging.alerts-log-level", int(zapcore.ErrorLevel))

	v.SetDefault("service.cache.driver", cache.DriverSQLite)
	v.SetDefault("service.cache.path", "nhu-cache.db")
	v.SetDefault("service.cache.host", "localhost")
	v.SetDefault("service.cache.port", 5432)
	v.SetDefault("service.cache.user", "")
	v.SetDefault("service.cache.password", "")
	v.SetDefault("service.cache.name", "nhu")

	v.SetDefault("service.redis.host", "localhost")
	v.SetDefault("service.redis.port", 6379)
	v.SetDefault("service.redis.password", "")
	v.SetDefault("service.redis.db", 0)
	v.SetDefault("service.redis.namespace", "nhu")

	v.SetDefault("service.nats.url", "nats://127.0.0.1:4222")
	v.SetDefault("service.nats.subject-prefix", "nhu.push")
	v.SetDefault("service.nats.max-reconnects", 60)
	v.SetDefault("service.nats.reconnect-wait", 2*time.Second)

	v.SetDefault("service.smtp.host", "")
	v.SetDefault("service.smtp.port", 587)
	v.SetDefault("service.smtp.username", "")
	v.SetDefault("service.smtp.password", "")
	v.SetDefault("service.smtp.from", "noreply@nhu.com.na")
	v.SetDefault("service.smtp.domain", "nhu.com.na")
}

// Load reads config.yaml (from path, or the working directory when path is empty),
// a .env file if present and NHU_* environment overrides such as NHU_SERVICE_REDIS_HOST.
// It also sets the application time zone and initializes the global logger.
func Load(path string) (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := location.Set(settings.Settings.Timezone); err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", settings.Settings.Timezone, err)
	}
	err := logger.Init(logger.Config{
		Debug:        settings.Settings.Debug,
		TimeLocation: location.Location(),
		LogToFile:    settings.Settings.LogToFile,
		LogsDir:      settings.Settings.LogsDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return &settings, nil
}

// Connections holds the opened backends.
type Connections struct {
	Cache  *gorm.DB
	Remote *redis.Client
	Push   *push.Publisher
	Mailer *smtp.Client
}

// Connect opens the local cache, the remote document store, the push broker and the mail dialer.
// A failure closes whatever was opened before it.
func Connect(ctx context.Context, settings *Settings) (conns *Connections, err error) {
	conns = &Connections{}
	defer func() {
		if err != nil {
			conns.Close()
			conns = nil
		}
	}()

	c := settings.Service
	conns.Cache, err = cache.Open(cache.Options{
		Driver:   c.Cache.Driver,
		Path:     c.Cache.Path,
		Host:     c.Cache.Host,
		Port:     c.Cache.Port,
		User:     c.Cache.User,
		Password: c.Cache.Password,
		Name:     c.Cache.Name,
		Debug:    settings.Settings.Debug,
	})
	if err != nil {
		return conns, err
	}
	logger.Log.Infof("Successfully opened the cache database (driver=%s)", c.Cache.Driver)

	conns.Remote, err = redis.New(ctx, redis.Options{
		Host:      c.Redis.Host,
		Port:      c.Redis.Port,
		Password:  c.Redis.Password,
		DB:        c.Redis.DB,
		Namespace: c.Redis.Namespace,
	})
	if err != nil {
		return conns, err
	}
	logger.Log.Info("Successfully connected to the document storage")

	pushLogger, err := logger.Named("push")
	if err != nil {
		return conns, err
	}
	conns.Push, err = push.New(push.Options{
		URL:           c.NATS.URL,
		SubjectPrefix: c.NATS.SubjectPrefix,
		MaxReconnects: c.NATS.MaxReconnects,
		ReconnectWait: c.NATS.ReconnectWait,
	}, pushLogger)
	if err != nil {
		return conns, err
	}
	logger.Log.Info("Successfully connected to NATS")

	smtpLogger, err := logger.Named("smtp")
	if err != nil {
		return conns, err
	}
	dialer := gomail.NewDialer(c.SMTP.Host, c.SMTP.Port, c.SMTP.Username, c.SMTP.Password)
	conns.Mailer = smtp.NewClient(dialer, c.SMTP.From, c.SMTP.Domain, smtpLogger)

	return conns, nil
}

func (c *Connections) Close() {
	if c.Push != nil {
		if err := c.Push.Close(); err != nil {
			logger.Log.Warnf("failed to close NATS connection: %v", err)
		}
	}
	if c.Remote != nil {
		if err := c.Remote.Close(); err != nil {
			logger.Log.Warnf("failed to close document storage: %v", err)
		}
	}
	if c.Cache != nil {
		if sqlDB, err := c.Cache.DB(); err == nil {
			if err = sqlDB.Close(); err != nil {
				logger.Log.Warnf("failed to close cache database: %v", err)
			}
		}
	}
}
