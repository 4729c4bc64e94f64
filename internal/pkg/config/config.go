package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	CORS       CORSConfig
	Log        LogConfig
	Storage    StorageConfig
	Cloudinary CloudinaryConfig
	Cache      CacheConfig
	Document   DocumentConfig
	Mail       MailConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
	// PublicBaseURL overrides the scheme+host used in document links.
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Europe/Moscow"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Content-Disposition"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Europe/Moscow"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"10800"` // 3*60*60
}

const (
	StorageDriverLocal      = "local"
	StorageDriverCloudinary = "cloudinary"
)

type StorageConfig struct {
	Driver    string `envconfig:"STORAGE_DRIVER" default:"local"`
	MediaRoot string `envconfig:"MEDIA_ROOT" default:"media"`
}

type CloudinaryConfig struct {
	CloudName string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `envconfig:"CLOUDINARY_API_KEY"`
	APISecret string `envconfig:"CLOUDINARY_API_SECRET"`
}

// Caching is disabled while RedisAddr is empty.
type CacheConfig struct {
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	DocumentTTL   time.Duration `envconfig:"DOCUMENT_CACHE_TTL" default:"10m"`
}

type DocumentConfig struct {
	FontPath            string `envconfig:"TICKET_FONT_PATH" default:"static/fonts/DejaVuSans.ttf"`
	QRSizePx            int    `envconfig:"QR_SIZE_PX" default:"256"`
	BarcodeModuleHeight int    `envconfig:"BARCODE_MODULE_HEIGHT" default:"80"`
	BarcodeQuietZone    int    `envconfig:"BARCODE_QUIET_ZONE" default:"10"`
}

type MailConfig struct {
	Host     string `envconfig:"SMTP_HOST" default:"localhost"`
	Port     int    `envconfig:"SMTP_PORT" default:"25"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM" default:"tickets@cinema.local"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Storage.validate(cfg.Cloudinary); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (s StorageConfig) validate(cld CloudinaryConfig) error {
	switch s.Driver {
	case StorageDriverLocal:
		return nil
	case StorageDriverCloudinary:
		if cld.CloudName == "" || cld.APIKey == "" || cld.APISecret == "" {
			return fmt.Errorf("STORAGE_DRIVER=cloudinary requires CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET")
		}
		return nil
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", s.Driver)
	}
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:          "8889", // Test port
			PublicBaseURL: "http://localhost:8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Europe/Moscow",
			MaxConns: 10,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
			MaxAge:       time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Europe/Moscow",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 10800,
		},
		Storage: StorageConfig{
			Driver:    StorageDriverLocal,
			MediaRoot: "media",
		},
		Cache: CacheConfig{
			DocumentTTL: time.Minute,
		},
		Document: DocumentConfig{
			FontPath:            "static/fonts/DejaVuSans.ttf",
			QRSizePx:            256,
			BarcodeModuleHeight: 80,
			BarcodeQuietZone:    10,
		},
		Mail: MailConfig{
			Host: "localhost",
			Port: 2525,
			From: "tickets@cinema.local",
		},
	}
}
