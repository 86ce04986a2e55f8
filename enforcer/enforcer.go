// Package enforcer bans the author of a message that contains an autoban phrase in a
// monitored channel. Each message is evaluated once; nothing is queued or retried.
package enforcer

import (
	"context"
	"fmt"
	log "log/slog"

	"botswatter/classifier"
	"botswatter/models"
)

// BanReasonPrefix precedes the matched phrase in the audit-log reason of every autoban.
const BanReasonPrefix = "Botswatter autoban trigger: "

// PolicyReader is the part of the policy store the engine reads.
type PolicyReader interface {
	Policy(ctx context.Context, guildID string) (models.GuildPolicy, error)
}

// Moderator issues the two remote actions an enforcement needs.
type Moderator interface {
	BanMember(ctx context.Context, guildID, userID, reason string, purgeDays int) error
	DeleteMessage(ctx context.Context, channelID, messageID string) error
}

// Notifier receives the outcome of every enforcement that reached the remote calls.
type Notifier func(msg models.InboundMessage, outcome models.EnforcementOutcome)

// Enforcer holds no per-message state and is safe for concurrent use.
type Enforcer struct {
	policies  PolicyReader
	moderator Moderator
	notify    Notifier
}

// New builds an Enforcer. notify may be nil.
func New(policies PolicyReader, moderator Moderator, notify Notifier) *Enforcer {
	return &Enforcer{policies: policies, moderator: moderator, notify: notify}
}

// Enforce evaluates one message.
func (e *Enforcer) Enforce(ctx context.Context, msg models.InboundMessage) models.EnforcementOutcome {
	if msg.AuthorIsBot {
		return skipped(models.SkipBotAuthor)
	}
	if msg.GuildID == "" {
		return skipped(models.SkipNoGuild)
	}

	policy, err := e.policies.Policy(ctx, msg.GuildID)
	if err != nil {
		log.Error("failed to read autoban policy", "guild", msg.GuildID, "error", err)
		return models.EnforcementOutcome{
			Status: models.EnforcementFailed,
			Err:    fmt.Errorf("read policy for guild %s: %w", msg.GuildID, err),
		}
	}
	if !policy.IsMonitored(msg.ChannelID) {
		return skipped(models.SkipNotMonitored)
	}

	phrase, ok := classifier.MatchKeyword(msg.Content, policy.Keywords)
	if !ok {
		return skipped(models.SkipNoMatch)
	}

	outcome := e.act(ctx, msg, phrase)
	if e.notify != nil {
		e.notify(msg, outcome)
	}
	return outcome
}

// act bans first; the message is only deleted once the ban went through, because
// the ban is what the enforcement guarantees.
func (e *Enforcer) act(ctx context.Context, msg models.InboundMessage, phrase string) models.EnforcementOutcome {
	if err := e.moderator.BanMember(ctx, msg.GuildID, msg.AuthorID, BanReasonPrefix+phrase, 0); err != nil {
		log.Warn("autoban failed",
			"guild", msg.GuildID, "channel", msg.ChannelID, "user", msg.AuthorID, "phrase", phrase, "error", err)
		return models.EnforcementOutcome{Status: models.EnforcementFailed, Phrase: phrase, Err: err}
	}

	outcome := models.EnforcementOutcome{Status: models.EnforcementEnforced, Phrase: phrase}
	if err := e.moderator.DeleteMessage(ctx, msg.ChannelID, msg.ID); err != nil {
		log.Warn("banned author but could not delete message",
			"guild", msg.GuildID, "channel", msg.ChannelID, "message", msg.ID, "error", err)
		outcome.Err = err
	}
	log.Info("autoban enforced",
		"guild", msg.GuildID, "channel", msg.ChannelID, "user", msg.AuthorID, "phrase", phrase)
	return outcome
}

func skipped(reason models.SkipReason) models.EnforcementOutcome {
	return models.EnforcementOutcome{Status: models.EnforcementSkipped, Reason: reason}
}
