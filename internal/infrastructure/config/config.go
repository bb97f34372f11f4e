package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"

	"github.com/foodbao/admin-api/internal/core/domain"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Supabase   SupabaseConfig
	Cloudinary CloudinaryConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	Notify     NotifyConfig
}

type SupabaseConfig struct {
	URL        string `env:"SUPABASE_URL"`
	ServiceKey string `env:"SUPABASE_SERVICE_KEY"`
	UserTable  string `env:"SUPABASE_USER_TABLE, default=userfile"`
	VerifyRPC  string `env:"SUPABASE_VERIFY_RPC, default=verify_user_password"`
}

type CloudinaryConfig struct {
	CloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `env:"CLOUDINARY_API_KEY"`
	APISecret string `env:"CLOUDINARY_API_SECRET"`
	Folder    string `env:"CLOUDINARY_FOLDER, default=foodbao"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=foodbao_admin"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type NotifyConfig struct {
	SMTPHost    string `env:"SMTP_HOST"`
	SMTPPort    string `env:"SMTP_PORT, default=587"`
	SMTPUser    string `env:"SMTP_USER"`
	SMTPPass    string `env:"SMTP_PASS"`
	FromAddress string `env:"SMTP_FROM"`
	WhatsAppURL string `env:"WHATSAPP_API_URL"`
	WhatsAppKey string `env:"WHATSAPP_API_KEY"`
	AMQPURL     string `env:"RABBITMQ_URL"`
	Workers     int    `env:"NOTIFY_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Validate fails fast when required secrets are absent. It never degrades to
// a default that could leak behaviour.
func (c *Config) Validate() error {
	var missing []string
	if c.Supabase.URL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if c.Supabase.ServiceKey == "" {
		missing = append(missing, "SUPABASE_SERVICE_KEY")
	}
	if len(missing) > 0 {
		return &domain.ConfigurationError{Missing: missing}
	}
	return nil
}

// Presence reports, per secret, whether a value is configured. Values
// themselves are never included; this backs the ?debug=true report.
func (c *Config) Presence() map[string]bool {
	return map[string]bool{
		"SUPABASE_URL":          c.Supabase.URL != "",
		"SUPABASE_SERVICE_KEY":  c.Supabase.ServiceKey != "",
		"CLOUDINARY_CLOUD_NAME": c.Cloudinary.CloudName != "",
		"CLOUDINARY_API_KEY":    c.Cloudinary.APIKey != "",
		"CLOUDINARY_API_SECRET": c.Cloudinary.APISecret != "",
		"SMTP_HOST":             c.Notify.SMTPHost != "",
		"SMTP_USER":             c.Notify.SMTPUser != "",
		"WHATSAPP_API_URL":      c.Notify.WhatsAppURL != "",
		"WHATSAPP_API_KEY":      c.Notify.WhatsAppKey != "",
	}
}
