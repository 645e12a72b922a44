package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port                          string        `mapstructure:"PORT" validate:"required"`
	DatabasePath                  string        `mapstructure:"DATABASE_PATH"`
	SheetsEndpointURL             string        `mapstructure:"SHEETS_ENDPOINT_URL" validate:"required,url"`
	SubmitMode                    string        `mapstructure:"SUBMIT_MODE" validate:"oneof=checked opaque"`
	SubmitTimeout                 time.Duration `mapstructure:"SUBMIT_TIMEOUT" validate:"min=1s,max=2m"`
	SessionSecret                 string        `mapstructure:"SESSION_SECRET"`
	SessionIdleTTL                time.Duration `mapstructure:"SESSION_IDLE_TTL" validate:"min=1m"`
	MaxSessions                   int           `mapstructure:"MAX_SESSIONS" validate:"min=1"`
	PublicFormURL                 string        `mapstructure:"PUBLIC_FORM_URL" validate:"omitempty,url"`
	DiscordBotToken               string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string        `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	LogDir                        string        `mapstructure:"LOG_DIR" validate:"required"`
	LogTee                        bool          `mapstructure:"LOG_TEE"`
	OTLPEndpoint                  string        `mapstructure:"OTLP_ENDPOINT"`
	ServiceName                   string        `mapstructure:"SERVICE_NAME" validate:"required"`
}

var validate = validator.New()

// LoadConfig reads an optional .env file, then the environment.
func LoadConfig() (*Config, error) {
	// Missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_PATH", "registrations.db")
	v.SetDefault("SUBMIT_MODE", "checked")
	v.SetDefault("SUBMIT_TIMEOUT", 20*time.Second)
	v.SetDefault("SESSION_IDLE_TTL", 30*time.Minute)
	v.SetDefault("MAX_SESSIONS", 10000)
	v.SetDefault("LOG_DIR", "logs")
	v.SetDefault("LOG_TEE", true)
	v.SetDefault("SERVICE_NAME", "photo-shoot-registration")

	v.BindEnv("SHEETS_ENDPOINT_URL")
	v.BindEnv("SESSION_SECRET")
	v.BindEnv("PUBLIC_FORM_URL")
	v.BindEnv("DISCORD_BOT_TOKEN")
	v.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")
	v.BindEnv("OTLP_ENDPOINT")

	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func (c *Config) DiscordEnabled() bool {
	return c.DiscordBotToken != "" && c.DiscordNotificationsChannelID != ""
}
