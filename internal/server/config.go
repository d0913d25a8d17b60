package server

import (
	"fmt"
	"os"
	"time"

	"github.com/simskyeconomy/simsky-core/internal/config"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

func LoadConfig() (*config.AppConfig, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = EnvDevelopment
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath("./config/server")

	v.SetDefault("auth.session_duration", 24*time.Hour)
	v.SetDefault("auth.max_login_attempts", 5)
	v.SetDefault("token.ttl", 30*time.Minute)
	v.SetDefault("notify.timeout", 5*time.Second)
	v.SetDefault("geo.base_url", "http://ip-api.com")
	v.SetDefault("geo.timeout", 3*time.Second)
	v.SetDefault("rate_limit.requests_per_minute", 5)
	v.SetDefault("rate_limit.burst", 5)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config config.AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Load environment-specific configurations
	if envSettings := v.GetStringMap(fmt.Sprintf("server.%s", env)); len(envSettings) > 0 {
		if err := v.UnmarshalKey(fmt.Sprintf("server.%s", env), &config.Server); err != nil {
			return nil, fmt.Errorf("error unmarshaling env config: %w", err)
		}
	}

	return &config, nil
}
