package config

import (
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"botswatter/models"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from, in order of increasing precedence:
// built-in defaults, config.yaml found in the given directories (default "."),
// and the environment (including a .env file). Keys map to environment
// variables by upper-casing and replacing '.' with '_', e.g. POLICY_BACKEND.
func LoadConfig(paths ...string) (*models.Config, error) {
	// A missing .env file is normal outside development.
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, skipping")
	}

	viper.Reset()
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		viper.AddConfigPath(p)
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := viper.BindEnv("bot_token", "BOT_TOKEN"); err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		log.Info("config.yaml not found, using environment variables and defaults")
	}

	var cfg models.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("bot_token", "")
	viper.SetDefault("bot.prefix", "!")
	viper.SetDefault("bot.adminchannelid", "")
	viper.SetDefault("bot.guildid", "")
	viper.SetDefault("log.level", "INFO")
	viper.SetDefault("policy.backend", "sqlite")
	viper.SetDefault("policy.sqlite_path", "data/botswatter.db")
	viper.SetDefault("policy.redis.address", "localhost:6379")
	viper.SetDefault("policy.redis.password", "")
	viper.SetDefault("policy.redis.db", 0)
	viper.SetDefault("policy.redis.key_prefix", "botswatter")
	viper.SetDefault("platform.page_size", 100)
	viper.SetDefault("platform.retry.max_retries", 3)
	viper.SetDefault("platform.retry.base_delay", 500*time.Millisecond)
	viper.SetDefault("grpc.health_address", "")
}

func validate(cfg *models.Config) error {
	switch cfg.Policy.Backend {
	case "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("policy.backend must be sqlite, redis or memory, got %q", cfg.Policy.Backend)
	}
	if cfg.Platform.PageSize < 1 || cfg.Platform.PageSize > 100 {
		return fmt.Errorf("platform.page_size must be between 1 and 100, got %d", cfg.Platform.PageSize)
	}
	for i, s := range cfg.Sweep.Schedules {
		if s.ChannelID == "" || s.Cron == "" {
			return fmt.Errorf("sweep.schedules[%d] needs both channel_id and cron", i)
		}
	}
	return nil
}
