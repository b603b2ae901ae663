package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// Config - конфигурация приложения. Строится один раз при старте
// и передается явно в конструкторы (без глобального состояния).
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres, mysql
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`

	JWT struct {
		AccessSecret  string        `yaml:"access_secret"`
		AccessTTL     time.Duration `yaml:"access_ttl"`
		RefreshSecret string        `yaml:"refresh_secret"`
		RefreshTTL    time.Duration `yaml:"refresh_ttl"`
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		AdminEmail   string `yaml:"admin_email"`
		TemplatesDir string `yaml:"templates_dir"`
		FrontendURL  string `yaml:"frontend_url"`
	} `yaml:"email"`

	Storage struct {
		Type      string `yaml:"type"`       // local, s3
		BasePath  string `yaml:"base_path"`  // для local
		BaseURL   string `yaml:"base_url"`   // публичный базовый URL
		Bucket    string `yaml:"bucket"`     // для s3
		Region    string `yaml:"region"`     // для s3
		AccessKey string `yaml:"access_key"` // для s3
		SecretKey string `yaml:"secret_key"` // для s3
		Endpoint  string `yaml:"endpoint"`   // для кастомного S3-endpoint
	} `yaml:"storage"`

	Upload struct {
		MaxImageSize    int64 `yaml:"max_image_size"`    // байт
		MaxVideoSize    int64 `yaml:"max_video_size"`    // байт
		MaxDocumentSize int64 `yaml:"max_document_size"` // байт
	} `yaml:"upload"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

// Load загружает конфигурацию: если задан DATABASE_URL, конфиг собирается
// из переменных окружения (режим теста/деплоя), иначе из yaml файла
// по пути CONFIG_PATH (по умолчанию config/config.yaml).
func Load() (*Config, error) {
	var cfg Config

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Database.Driver = envOr("DATABASE_DRIVER", "postgres")
		cfg.Database.DSN = dsn
		cfg.Server.Env = envOr("SERVER_ENV", "development")
		cfg.Server.Port, _ = strconv.Atoi(envOr("SERVER_PORT", "4000"))
		cfg.JWT.AccessSecret = os.Getenv("JWT_ACCESS_SECRET")
		cfg.JWT.RefreshSecret = os.Getenv("JWT_REFRESH_SECRET")
		cfg.Email.SMTPHost = envOr("SMTP_HOST", "localhost")
		cfg.Email.SMTPPort, _ = strconv.Atoi(envOr("SMTP_PORT", "587"))
		cfg.Email.FromEmail = envOr("EMAIL_FROM", "noreply@example.com")
		cfg.Email.AdminEmail = envOr("ADMIN_EMAIL", "admin@example.com")
		cfg.Email.FrontendURL = envOr("FRONTEND_URL", "http://localhost:3030")
		cfg.Storage.Type = envOr("STORAGE_TYPE", "local")
		cfg.Storage.BasePath = envOr("STORAGE_BASE_PATH", "./uploads")
		cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
		cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")
		applyDefaults(&cfg)
		return &cfg, nil
	}

	configPath := envOr("CONFIG_PATH", "config/config.yaml")

	f, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults проставляет значения по умолчанию для незаполненных полей
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.JWT.AccessTTL == 0 {
		cfg.JWT.AccessTTL = 15 * time.Minute
	}
	if cfg.JWT.RefreshTTL == 0 {
		cfg.JWT.RefreshTTL = 7 * 24 * time.Hour
	}
	if cfg.Upload.MaxImageSize == 0 {
		cfg.Upload.MaxImageSize = 10 * 1024 * 1024 // 10MB
	}
	if cfg.Upload.MaxVideoSize == 0 {
		cfg.Upload.MaxVideoSize = 100 * 1024 * 1024 // 100MB
	}
	if cfg.Upload.MaxDocumentSize == 0 {
		cfg.Upload.MaxDocumentSize = 25 * 1024 * 1024 // 25MB
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
