package models

import "time"

// Config is the full application configuration, decoded from config.yaml and the environment.
type Config struct {
	BotToken string         `mapstructure:"bot_token"`
	Bot      BotConfig      `mapstructure:"bot"`
	Log      LogConfig      `mapstructure:"log"`
	Policy   PolicyConfig   `mapstructure:"policy"`
	Platform PlatformConfig `mapstructure:"platform"`
	Sweep    SweepConfig    `mapstructure:"sweep"`
	GRPC     GRPCConfig     `mapstructure:"grpc"`
	Commands CommandsConfig `mapstructure:"commands"`
}

// BotConfig holds gateway-level settings.
type BotConfig struct {
	Prefix         string `mapstructure:"prefix"`
	AdminChannelID string `mapstructure:"adminchannelid"`
	// GuildID scopes slash command registration; empty registers them globally.
	GuildID string `mapstructure:"guildid"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// PolicyConfig selects and configures the policy store backend.
type PolicyConfig struct {
	Backend    string      `mapstructure:"backend"` // sqlite, redis or memory
	SQLitePath string      `mapstructure:"sqlite_path"`
	Redis      RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address   string `mapstructure:"address"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// PlatformConfig tunes the Discord REST client.
type PlatformConfig struct {
	PageSize int         `mapstructure:"page_size"`
	Retry    RetryConfig `mapstructure:"retry"`
}

type RetryConfig struct {
	MaxRetries uint64        `mapstructure:"max_retries"`
	BaseDelay  time.Duration `mapstructure:"base_delay"`
}

// SweepConfig lists the channels that are swept on a schedule.
type SweepConfig struct {
	Schedules []SweepSchedule `mapstructure:"schedules"`
}

// SweepSchedule binds one channel to a cron spec (e.g. "@daily", "0 4 * * *").
type SweepSchedule struct {
	ChannelID string `mapstructure:"channel_id"`
	Cron      string `mapstructure:"cron"`
}

type GRPCConfig struct {
	HealthAddress string `mapstructure:"health_address"`
}

// CommandsConfig represents the commands section of the configuration.
type CommandsConfig struct {
	Auth AuthConfig `mapstructure:"auth"`
}

// AuthConfig lists the identities that may run admin commands without the Discord permission bits.
type AuthConfig struct {
	Developers  []string `mapstructure:"developers"`
	AdminsRoles []string `mapstructure:"admins_roles"`
}
