// Package platform is the only code that talks to the Discord REST API on behalf of the
// moderation engines.
package platform

import (
	"context"
	"iter"
	"time"

	"botswatter/models"

	"github.com/bwmarrin/discordgo"
)

const (
	// MaxPageSize is the largest page Discord returns for channel history.
	MaxPageSize = 100

	defaultMaxRetries = 3
	defaultBaseDelay  = 500 * time.Millisecond
)

// REST is the subset of *discordgo.Session used here.
type REST interface {
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	GuildBanCreateWithReason(guildID, userID, reason string, days int, options ...discordgo.RequestOption) error
}

// Options tunes pagination and retry of history reads.
type Options struct {
	PageSize   int
	MaxRetries uint64
	BaseDelay  time.Duration
}

// Client implements the moderation operations over a Discord session.
type Client struct {
	rest REST
	opts Options
}

// NewClient wraps a session. Zero-valued options fall back to defaults.
func NewClient(rest REST, opts Options) *Client {
	if opts.PageSize <= 0 || opts.PageSize > MaxPageSize {
		opts.PageSize = MaxPageSize
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = defaultBaseDelay
	}
	return &Client{rest: rest, opts: opts}
}

// FromConfig builds Options from the platform section of the configuration.
func FromConfig(cfg models.PlatformConfig) Options {
	return Options{
		PageSize:   cfg.PageSize,
		MaxRetries: cfg.Retry.MaxRetries,
		BaseDelay:  cfg.Retry.BaseDelay,
	}
}

// DeleteMessage deletes a single message.
func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	err := c.rest.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx))
	return wrap("delete message "+messageID, err)
}

// BanMember bans a user from a guild. purgeDays controls how much of the user's
// history Discord removes along with the ban.
func (c *Client) BanMember(ctx context.Context, guildID, userID, reason string, purgeDays int) error {
	err := c.rest.GuildBanCreateWithReason(guildID, userID, reason, purgeDays, discordgo.WithContext(ctx))
	return wrap("ban member "+userID, err)
}

// History lazily walks a channel from newest to oldest. See history.go.
func (c *Client) History(ctx context.Context, channelID string) iter.Seq2[models.InboundMessage, error] {
	return c.history(ctx, channelID)
}
