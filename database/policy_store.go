package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"botswatter/models"
)

// ErrEmptyPhrase is returned when an autoban phrase is blank after trimming.
var ErrEmptyPhrase = errors.New("autoban phrase is empty")

// PolicyStore persists per-guild autoban configuration.
//
// The Get/Set pairs replace whole values. Callers that modify policy should use the
// atomic AddKeyword, RemoveKeyword and ToggleChannel primitives instead of a
// read-modify-write, which loses updates under concurrent admin edits.
type PolicyStore interface {
	GetKeywords(ctx context.Context, guildID string) ([]string, error)
	SetKeywords(ctx context.Context, guildID string, keywords []string) error
	GetMonitoredChannels(ctx context.Context, guildID string) (map[string]struct{}, error)
	SetMonitoredChannels(ctx context.Context, guildID string, channels map[string]struct{}) error

	// AddKeyword appends the lower-cased phrase and returns the stored form.
	AddKeyword(ctx context.Context, guildID, phrase string) (string, error)
	// RemoveKeyword removes every entry equal to the lower-cased phrase and returns how many were removed.
	RemoveKeyword(ctx context.Context, guildID, phrase string) (int, error)
	// ToggleChannel flips the monitored state of a channel and returns the new state.
	ToggleChannel(ctx context.Context, guildID, channelID string) (bool, error)
	// Policy reads a consistent snapshot of the guild's policy.
	Policy(ctx context.Context, guildID string) (models.GuildPolicy, error)

	Close() error
}

// NormalizePhrase lower-cases and trims a phrase the way it is stored.
func NormalizePhrase(phrase string) (string, error) {
	p := strings.ToLower(strings.TrimSpace(phrase))
	if p == "" {
		return "", ErrEmptyPhrase
	}
	return p, nil
}

func normalizeAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if p, err := NormalizePhrase(k); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// Open builds the store selected by the policy configuration.
func Open(ctx context.Context, cfg models.PolicyConfig) (PolicyStore, error) {
	switch cfg.Backend {
	case "", "sqlite":
		path := cfg.SQLitePath
		if path == "" {
			path = "data/botswatter.db"
		}
		return NewSQLiteStore(path)
	case "redis":
		return NewRedisStore(ctx, cfg.Redis)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown policy backend %q", cfg.Backend)
	}
}
