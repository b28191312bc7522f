package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"medverify/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	OCR       OCRConfig
	Upload    UploadConfig
	Artifacts ArtifactConfig
	S3        S3Config
	Notify    NotifyConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
// URL, when set, takes precedence over the individual fields.
type DBConfig struct {
	URL            string        `mapstructure:"url"`
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	Name           string        `mapstructure:"name"`
	SSLMode        string        `mapstructure:"sslmode"`
	MaxOpen        int           `mapstructure:"max_open"`
	MaxIdle        int           `mapstructure:"max_idle"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// OCRConfig holds recognition and decision settings.
type OCRConfig struct {
	ConfThreshold   float64       `mapstructure:"conf_threshold"`
	TamperThreshold float64       `mapstructure:"tamper_threshold"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Language        string        `mapstructure:"language"`
	TessdataPrefix  string        `mapstructure:"tessdata_prefix"`
	ThresholdWindow int           `mapstructure:"threshold_window"`
	ThresholdOffset int           `mapstructure:"threshold_offset"`
}

// UploadConfig bounds the accepted uploads.
type UploadConfig struct {
	MaxBytes       int64 `mapstructure:"max_bytes"`
	MaxImagePixels int64 `mapstructure:"max_image_pixels"`
}

// ArtifactConfig controls where review text artifacts are written.
type ArtifactConfig struct {
	Backend    domain.ArtifactBackend `mapstructure:"backend"`
	UploadsDir string                 `mapstructure:"uploads_dir"`
	Prefix     string                 `mapstructure:"prefix"`
}

// S3Config holds AWS S3 settings for the s3 artifact backend.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// NotifyConfig holds reviewer notification settings.
type NotifyConfig struct {
	Provider    string   `mapstructure:"provider"`
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	ToAddresses []string `mapstructure:"to_addresses"`
	ReviewURL   string   `mapstructure:"review_url"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the MEDVERIFY_ prefix.
// The unprefixed variable names used by the earlier OCR service are honoured as fallbacks.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MEDVERIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.url", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "medverify")
	v.SetDefault("db.password", "medverify_secret")
	v.SetDefault("db.name", "medverify_ocr")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)
	v.SetDefault("db.connect_timeout", "5s")

	// OCR defaults
	v.SetDefault("ocr.conf_threshold", 0.70)
	v.SetDefault("ocr.tamper_threshold", 0.5)
	v.SetDefault("ocr.timeout_secs", 10.0)
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.tessdata_prefix", "")
	v.SetDefault("ocr.threshold_window", 35)
	v.SetDefault("ocr.threshold_offset", 11)

	// Upload defaults
	v.SetDefault("upload.max_bytes", 8*1024*1024)
	v.SetDefault("upload.max_image_pixels", 8000*8000)

	// Artifact defaults
	v.SetDefault("artifacts.backend", string(domain.ArtifactBackendLocal))
	v.SetDefault("artifacts.uploads_dir", "uploads")
	v.SetDefault("artifacts.prefix", "review/")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "medverify-review")
	v.SetDefault("s3.endpoint", "")

	// Notify defaults
	v.SetDefault("notify.provider", "noop")
	v.SetDefault("notify.region", "us-east-1")
	v.SetDefault("notify.from_address", "noreply@medverify.local")
	v.SetDefault("notify.from_name", "MedVerify")
	v.SetDefault("notify.to_addresses", "")
	v.SetDefault("notify.review_url", "http://localhost:3000/reviewer/verify")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys. Extra names
	// after the first are legacy fallbacks, checked in order.
	envBindings := map[string][]string{
		"server.port":             {"MEDVERIFY_SERVER_PORT"},
		"server.read_timeout":     {"MEDVERIFY_SERVER_READ_TIMEOUT"},
		"server.write_timeout":    {"MEDVERIFY_SERVER_WRITE_TIMEOUT"},
		"server.shutdown_timeout": {"MEDVERIFY_SERVER_SHUTDOWN_TIMEOUT"},
		"server.environment":      {"MEDVERIFY_SERVER_ENVIRONMENT"},
		"db.url":                  {"MEDVERIFY_DB_URL", "DATABASE_URL"},
		"db.host":                 {"MEDVERIFY_DB_HOST"},
		"db.port":                 {"MEDVERIFY_DB_PORT"},
		"db.user":                 {"MEDVERIFY_DB_USER"},
		"db.password":             {"MEDVERIFY_DB_PASSWORD"},
		"db.name":                 {"MEDVERIFY_DB_NAME", "DB_NAME"},
		"db.sslmode":              {"MEDVERIFY_DB_SSLMODE"},
		"db.max_open":             {"MEDVERIFY_DB_MAX_OPEN"},
		"db.max_idle":             {"MEDVERIFY_DB_MAX_IDLE"},
		"db.connect_timeout":      {"MEDVERIFY_DB_CONNECT_TIMEOUT"},
		"ocr.conf_threshold":      {"MEDVERIFY_OCR_CONF_THRESHOLD", "OCR_CONF_THRESHOLD"},
		"ocr.tamper_threshold":    {"MEDVERIFY_OCR_TAMPER_THRESHOLD"},
		"ocr.timeout_secs":        {"MEDVERIFY_OCR_TIMEOUT_SECS", "OCR_TIMEOUT_SECONDS"},
		"ocr.language":            {"MEDVERIFY_OCR_LANGUAGE"},
		"ocr.tessdata_prefix":     {"MEDVERIFY_OCR_TESSDATA_PREFIX", "TESSDATA_PREFIX"},
		"ocr.threshold_window":    {"MEDVERIFY_OCR_THRESHOLD_WINDOW"},
		"ocr.threshold_offset":    {"MEDVERIFY_OCR_THRESHOLD_OFFSET"},
		"upload.max_bytes":        {"MEDVERIFY_UPLOAD_MAX_BYTES", "MAX_UPLOAD_BYTES"},
		"upload.max_image_pixels": {"MEDVERIFY_UPLOAD_MAX_IMAGE_PIXELS", "MAX_IMAGE_PIXELS"},
		"artifacts.backend":       {"MEDVERIFY_ARTIFACTS_BACKEND"},
		"artifacts.uploads_dir":   {"MEDVERIFY_ARTIFACTS_UPLOADS_DIR", "UPLOADS_DIR"},
		"artifacts.prefix":        {"MEDVERIFY_ARTIFACTS_PREFIX"},
		"s3.region":               {"MEDVERIFY_S3_REGION"},
		"s3.bucket":               {"MEDVERIFY_S3_BUCKET"},
		"s3.endpoint":             {"MEDVERIFY_S3_ENDPOINT"},
		"s3.access_key":           {"MEDVERIFY_S3_ACCESS_KEY"},
		"s3.secret_key":           {"MEDVERIFY_S3_SECRET_KEY"},
		"notify.provider":         {"MEDVERIFY_NOTIFY_PROVIDER"},
		"notify.region":           {"MEDVERIFY_NOTIFY_REGION"},
		"notify.from_address":     {"MEDVERIFY_NOTIFY_FROM_ADDRESS"},
		"notify.from_name":        {"MEDVERIFY_NOTIFY_FROM_NAME"},
		"notify.to_addresses":     {"MEDVERIFY_NOTIFY_TO_ADDRESSES"},
		"notify.review_url":       {"MEDVERIFY_NOTIFY_REVIEW_URL"},
		"cors.allowed_origins":    {"MEDVERIFY_CORS_ALLOWED_ORIGINS"},
	}
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	cfg := &Config{}

	// Container platforms set a PORT env var. Use it if MEDVERIFY_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("MEDVERIFY_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		URL:            v.GetString("db.url"),
		Host:           v.GetString("db.host"),
		Port:           v.GetInt("db.port"),
		User:           v.GetString("db.user"),
		Password:       v.GetString("db.password"),
		Name:           v.GetString("db.name"),
		SSLMode:        v.GetString("db.sslmode"),
		MaxOpen:        v.GetInt("db.max_open"),
		MaxIdle:        v.GetInt("db.max_idle"),
		ConnectTimeout: v.GetDuration("db.connect_timeout"),
	}
	cfg.OCR = OCRConfig{
		ConfThreshold:   v.GetFloat64("ocr.conf_threshold"),
		TamperThreshold: v.GetFloat64("ocr.tamper_threshold"),
		Timeout:         time.Duration(v.GetFloat64("ocr.timeout_secs") * float64(time.Second)),
		Language:        v.GetString("ocr.language"),
		TessdataPrefix:  v.GetString("ocr.tessdata_prefix"),
		ThresholdWindow: v.GetInt("ocr.threshold_window"),
		ThresholdOffset: v.GetInt("ocr.threshold_offset"),
	}
	cfg.Upload = UploadConfig{
		MaxBytes:       v.GetInt64("upload.max_bytes"),
		MaxImagePixels: v.GetInt64("upload.max_image_pixels"),
	}
	cfg.Artifacts = ArtifactConfig{
		Backend:    domain.ArtifactBackend(strings.ToLower(v.GetString("artifacts.backend"))),
		UploadsDir: v.GetString("artifacts.uploads_dir"),
		Prefix:     v.GetString("artifacts.prefix"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Notify = NotifyConfig{
		Provider:    v.GetString("notify.provider"),
		Region:      v.GetString("notify.region"),
		FromAddress: v.GetString("notify.from_address"),
		FromName:    v.GetString("notify.from_name"),
		ToAddresses: splitList(v.GetString("notify.to_addresses")),
		ReviewURL:   v.GetString("notify.review_url"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.OCR.ConfThreshold < 0 || c.OCR.ConfThreshold > 1 {
		return fmt.Errorf("ocr.conf_threshold must be within [0,1], got %v", c.OCR.ConfThreshold)
	}
	if c.OCR.Timeout <= 0 {
		return fmt.Errorf("ocr.timeout_secs must be positive")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be positive")
	}
	if c.Upload.MaxImagePixels <= 0 {
		return fmt.Errorf("upload.max_image_pixels must be positive")
	}
	switch c.Artifacts.Backend {
	case domain.ArtifactBackendLocal, domain.ArtifactBackendS3:
	default:
		return fmt.Errorf("unknown artifacts.backend %q", c.Artifacts.Backend)
	}
	return nil
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
