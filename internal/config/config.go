package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Auth   AuthConfig
	S3     S3Config
	OCR    OCRConfig
	Engine EngineConfig
	Email  EmailConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AuthConfig holds API-key and JWT signing settings. APIKeyHash is a bcrypt
// hash of the service API key; clients exchange the key for a short-lived
// JWT at /auth/token.
type AuthConfig struct {
	APIKeyHash        string        `mapstructure:"api_key_hash"`
	JWTSecret         string        `mapstructure:"jwt_secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// OCRConfig holds text-recognition backend settings.
type OCRConfig struct {
	Backend   string `mapstructure:"backend"`
	Pdftoppm  string `mapstructure:"pdftoppm"`
	Tesseract string `mapstructure:"tesseract"`
	Lang      string `mapstructure:"lang"`
	DPI       int    `mapstructure:"dpi"`
	MaxPages  int    `mapstructure:"max_pages"`
	Enhance   bool   `mapstructure:"enhance"`
}

// EngineConfig holds the extraction engine's keyword sets. Empty slices fall
// back to the engine's built-in Australian defaults, so deployments only
// override what differs for their vendors.
type EngineConfig struct {
	DateWindow    int      `mapstructure:"date_window"`
	AddressStart  []string `mapstructure:"address_start"`
	AddressStop   []string `mapstructure:"address_stop"`
	StreetWords   []string `mapstructure:"street_words"`
	CityWords     []string `mapstructure:"city_words"`
	CountryMarker string   `mapstructure:"country_marker"`
	NoisePrefixes []string `mapstructure:"noise_prefixes"`
	NoisePhrases  []string `mapstructure:"noise_phrases"`
	Watermarks    []string `mapstructure:"watermarks"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the INVOSCAN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVOSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "invoscan")
	v.SetDefault("db.password", "invoscan_secret")
	v.SetDefault("db.name", "invoscan_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Auth defaults
	v.SetDefault("auth.api_key_hash", "")
	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.access_expiry", "1h")
	v.SetDefault("auth.issuer", "invoscan")

	// S3 defaults
	v.SetDefault("s3.region", "ap-southeast-2")
	v.SetDefault("s3.bucket", "invoscan-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// OCR defaults
	v.SetDefault("ocr.backend", "tesseract")
	v.SetDefault("ocr.pdftoppm", "pdftoppm")
	v.SetDefault("ocr.tesseract", "tesseract")
	v.SetDefault("ocr.lang", "eng")
	v.SetDefault("ocr.dpi", 300)
	v.SetDefault("ocr.max_pages", 10)
	v.SetDefault("ocr.enhance", true)

	// Engine defaults: empty lists defer to the engine's built-ins.
	v.SetDefault("engine.date_window", 6)
	v.SetDefault("engine.address_start", "")
	v.SetDefault("engine.address_stop", "")
	v.SetDefault("engine.street_words", "")
	v.SetDefault("engine.city_words", "")
	v.SetDefault("engine.country_marker", "")
	v.SetDefault("engine.noise_prefixes", "")
	v.SetDefault("engine.noise_phrases", "")
	v.SetDefault("engine.watermarks", "")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-southeast-2")
	v.SetDefault("email.from_address", "noreply@invoscan.local")
	v.SetDefault("email.from_name", "Invoscan")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "INVOSCAN_SERVER_PORT",
		"server.read_timeout":   "INVOSCAN_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "INVOSCAN_SERVER_WRITE_TIMEOUT",
		"server.environment":    "INVOSCAN_SERVER_ENVIRONMENT",
		"db.host":               "INVOSCAN_DB_HOST",
		"db.port":               "INVOSCAN_DB_PORT",
		"db.user":               "INVOSCAN_DB_USER",
		"db.password":           "INVOSCAN_DB_PASSWORD",
		"db.name":               "INVOSCAN_DB_NAME",
		"db.sslmode":            "INVOSCAN_DB_SSLMODE",
		"db.max_open":           "INVOSCAN_DB_MAX_OPEN",
		"db.max_idle":           "INVOSCAN_DB_MAX_IDLE",
		"auth.api_key_hash":     "INVOSCAN_AUTH_API_KEY_HASH",
		"auth.jwt_secret":       "INVOSCAN_AUTH_JWT_SECRET",
		"auth.access_expiry":    "INVOSCAN_AUTH_ACCESS_EXPIRY",
		"auth.issuer":           "INVOSCAN_AUTH_ISSUER",
		"s3.region":             "INVOSCAN_S3_REGION",
		"s3.bucket":             "INVOSCAN_S3_BUCKET",
		"s3.endpoint":           "INVOSCAN_S3_ENDPOINT",
		"s3.access_key":         "INVOSCAN_S3_ACCESS_KEY",
		"s3.secret_key":         "INVOSCAN_S3_SECRET_KEY",
		"s3.max_file_size_mb":   "INVOSCAN_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":     "INVOSCAN_S3_PRESIGN_EXPIRY",
		"ocr.backend":           "INVOSCAN_OCR_BACKEND",
		"ocr.pdftoppm":          "INVOSCAN_OCR_PDFTOPPM",
		"ocr.tesseract":         "INVOSCAN_OCR_TESSERACT",
		"ocr.lang":              "INVOSCAN_OCR_LANG",
		"ocr.dpi":               "INVOSCAN_OCR_DPI",
		"ocr.max_pages":         "INVOSCAN_OCR_MAX_PAGES",
		"ocr.enhance":           "INVOSCAN_OCR_ENHANCE",
		"engine.date_window":    "INVOSCAN_ENGINE_DATE_WINDOW",
		"engine.address_start":  "INVOSCAN_ENGINE_ADDRESS_START",
		"engine.address_stop":   "INVOSCAN_ENGINE_ADDRESS_STOP",
		"engine.street_words":   "INVOSCAN_ENGINE_STREET_WORDS",
		"engine.city_words":     "INVOSCAN_ENGINE_CITY_WORDS",
		"engine.country_marker": "INVOSCAN_ENGINE_COUNTRY_MARKER",
		"engine.noise_prefixes": "INVOSCAN_ENGINE_NOISE_PREFIXES",
		"engine.noise_phrases":  "INVOSCAN_ENGINE_NOISE_PHRASES",
		"engine.watermarks":     "INVOSCAN_ENGINE_WATERMARKS",
		"email.provider":        "INVOSCAN_EMAIL_PROVIDER",
		"email.region":          "INVOSCAN_EMAIL_REGION",
		"email.from_address":    "INVOSCAN_EMAIL_FROM_ADDRESS",
		"email.from_name":       "INVOSCAN_EMAIL_FROM_NAME",
		"cors.allowed_origins":  "INVOSCAN_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVOSCAN_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVOSCAN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Auth = AuthConfig{
		APIKeyHash:        v.GetString("auth.api_key_hash"),
		JWTSecret:         v.GetString("auth.jwt_secret"),
		AccessTokenExpiry: v.GetDuration("auth.access_expiry"),
		Issuer:            v.GetString("auth.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.OCR = OCRConfig{
		Backend:   v.GetString("ocr.backend"),
		Pdftoppm:  v.GetString("ocr.pdftoppm"),
		Tesseract: v.GetString("ocr.tesseract"),
		Lang:      v.GetString("ocr.lang"),
		DPI:       v.GetInt("ocr.dpi"),
		MaxPages:  v.GetInt("ocr.max_pages"),
		Enhance:   v.GetBool("ocr.enhance"),
	}
	cfg.Engine = EngineConfig{
		DateWindow:    v.GetInt("engine.date_window"),
		AddressStart:  splitList(v.GetString("engine.address_start")),
		AddressStop:   splitList(v.GetString("engine.address_stop")),
		StreetWords:   splitList(v.GetString("engine.street_words")),
		CityWords:     splitList(v.GetString("engine.city_words")),
		CountryMarker: v.GetString("engine.country_marker"),
		NoisePrefixes: splitList(v.GetString("engine.noise_prefixes")),
		NoisePhrases:  splitList(v.GetString("engine.noise_phrases")),
		Watermarks:    splitList(v.GetString("engine.watermarks")),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	return cfg, nil
}

// splitList parses a comma-separated string into a slice, dropping empties.
// A fully empty input returns nil so callers can distinguish "unset".
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
