package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Reset    ResetTokenConfig
	CORS     CORSConfig
	Log      LogConfig
	Mail     MailConfig
	Uploads  UploadsConfig
	Exports  ExportsConfig
	Cache    CacheConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
	App      AppInfoConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig governs the opaque bearer-token protocol. A single lifetime
// applies to both login issuance and silent rotation.
type SessionConfig struct {
	TokenLifetime time.Duration
	OTPLifetime   time.Duration
	SuperRole     string
}

// ResetTokenConfig configures signed password-reset tokens.
type ResetTokenConfig struct {
	Secret   string
	Lifetime time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// MailConfig holds SMTP dispatch settings.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Enabled  bool
}

// UploadsConfig controls file upload storage and the optional FTP mirror.
type UploadsConfig struct {
	BaseDir         string
	MaxFileSize     int64
	SignedURLSecret string
	SignedURLTTL    time.Duration
	FTPEnabled      bool
	FTPHost         string
	FTPPort         int
	FTPUser         string
	FTPPassword     string
	FTPBaseDir      string
}

// ExportsConfig controls invoice/expense export rendering.
type ExportsConfig struct {
	StorageDir string
}

// CacheConfig tunes the directory list cache.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// AuditConfig tunes the fire-and-forget activity log pipeline.
type AuditConfig struct {
	Workers    int
	BufferSize int
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// AppInfoConfig carries environment-specific host/branding settings used in
// links embedded in outbound mail.
type AppInfoConfig struct {
	Name      string
	PortalURL string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		TokenLifetime: parseDuration(v.GetString("SESSION_TOKEN_LIFETIME"), 120*time.Minute),
		OTPLifetime:   parseDuration(v.GetString("SESSION_OTP_LIFETIME"), 10*time.Minute),
		SuperRole:     v.GetString("SESSION_SUPER_ROLE"),
	}

	cfg.Reset = ResetTokenConfig{
		Secret:   v.GetString("RESET_TOKEN_SECRET"),
		Lifetime: parseDuration(v.GetString("RESET_TOKEN_LIFETIME"), 15*time.Minute),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Mail = MailConfig{
		Host:     v.GetString("SMTP_HOST"),
		Port:     v.GetInt("SMTP_PORT"),
		Username: v.GetString("SMTP_USERNAME"),
		Password: v.GetString("SMTP_PASSWORD"),
		From:     v.GetString("SMTP_FROM"),
		Enabled:  v.GetBool("SMTP_ENABLED"),
	}

	maxUpload := v.GetInt64("UPLOADS_MAX_FILE_SIZE")
	if maxUpload <= 0 {
		maxUpload = 10 * 1024 * 1024
	}
	cfg.Uploads = UploadsConfig{
		BaseDir:         v.GetString("UPLOADS_BASE_DIR"),
		MaxFileSize:     maxUpload,
		SignedURLSecret: v.GetString("UPLOADS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("UPLOADS_SIGNED_URL_TTL"), 30*time.Minute),
		FTPEnabled:      v.GetBool("UPLOADS_FTP_ENABLED"),
		FTPHost:         v.GetString("UPLOADS_FTP_HOST"),
		FTPPort:         v.GetInt("UPLOADS_FTP_PORT"),
		FTPUser:         v.GetString("UPLOADS_FTP_USER"),
		FTPPassword:     v.GetString("UPLOADS_FTP_PASSWORD"),
		FTPBaseDir:      v.GetString("UPLOADS_FTP_BASE_DIR"),
	}

	cfg.Exports = ExportsConfig{
		StorageDir: v.GetString("EXPORTS_STORAGE_DIR"),
	}

	cfg.Cache = CacheConfig{
		Enabled:    v.GetBool("ENABLE_CACHE"),
		DefaultTTL: parseDuration(v.GetString("CACHE_DEFAULT_TTL"), 10*time.Minute),
	}

	cfg.Audit = AuditConfig{
		Workers:    v.GetInt("AUDIT_WORKERS"),
		BufferSize: v.GetInt("AUDIT_BUFFER_SIZE"),
	}

	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("ENABLE_METRICS"),
	}

	cfg.App = AppInfoConfig{
		Name:      v.GetString("APP_NAME"),
		PortalURL: v.GetString("APP_PORTAL_URL"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "screeningstar_admin")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_TOKEN_LIFETIME", "120m")
	v.SetDefault("SESSION_OTP_LIFETIME", "10m")
	v.SetDefault("SESSION_SUPER_ROLE", "admin_user")

	v.SetDefault("RESET_TOKEN_SECRET", "dev_reset_secret")
	v.SetDefault("RESET_TOKEN_LIFETIME", "15m")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SMTP_HOST", "localhost")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "noreply@screeningstar.in")
	v.SetDefault("SMTP_ENABLED", false)

	v.SetDefault("UPLOADS_BASE_DIR", "./uploads")
	v.SetDefault("UPLOADS_MAX_FILE_SIZE", 10*1024*1024)
	v.SetDefault("UPLOADS_SIGNED_URL_SECRET", "dev_uploads_secret")
	v.SetDefault("UPLOADS_SIGNED_URL_TTL", "30m")
	v.SetDefault("UPLOADS_FTP_ENABLED", false)
	v.SetDefault("UPLOADS_FTP_HOST", "")
	v.SetDefault("UPLOADS_FTP_PORT", 21)
	v.SetDefault("UPLOADS_FTP_USER", "")
	v.SetDefault("UPLOADS_FTP_PASSWORD", "")
	v.SetDefault("UPLOADS_FTP_BASE_DIR", "/")

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("CACHE_DEFAULT_TTL", "10m")

	v.SetDefault("AUDIT_WORKERS", 1)
	v.SetDefault("AUDIT_BUFFER_SIZE", 64)

	v.SetDefault("ENABLE_METRICS", true)

	v.SetDefault("APP_NAME", "Screening Star")
	v.SetDefault("APP_PORTAL_URL", "http://localhost:3000")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
