package handlers

import (
	log "log/slog"

	"botswatter/bot"
	"botswatter/models"

	"github.com/bwmarrin/discordgo"
)

// MessageCreate runs prefix commands and feeds guild messages to the autoban enforcer.
// Only moderator commands run by a member holding their permission bypass enforcement.
func MessageCreate(b *bot.Bot) func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil {
			return
		}
		// Ignore all messages created by the bot itself
		if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
			return
		}

		if cmd, ok := parsePrefixCommand(b.Config.Bot.Prefix, m.Content); ok && m.GuildID != "" && !m.Author.Bot {
			if handlePrefixCommand(b, s, m, cmd) {
				return
			}
		}

		outcome := b.Enforcer.Enforce(b.Context(), models.FromDiscord(m.Message, m.GuildID))
		if outcome.Status != models.EnforcementSkipped {
			log.Debug("enforcement finished", "message", m.ID, "status", outcome.Status.String())
		}
	}
}

// handlePrefixCommand runs cmd and reports whether it was a moderator command the author
// is allowed to run. Anything else is still enforced.
func handlePrefixCommand(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, cmd prefixCommand) bool {
	switch cmd.Name {
	case "ping":
		send(s, m.ChannelID, "Pong!")
		return false
	case "autoban":
		if !allowed(b, cmd.Name, prefixMember(s, m)) {
			return false
		}
		reply, err := RunAutoban(b.Context(), b.Store, m.GuildID, cmd.Sub, cmd.Rest)
		if err != nil {
			log.Error("autoban command failed", "guild", m.GuildID, "subcommand", cmd.Sub, "error", err)
		}
		send(s, m.ChannelID, reply)
		return true
	case "purgeimages":
		member := prefixMember(s, m)
		if !allowed(b, cmd.Name, member) {
			return false
		}
		prefixPurge(b, s, m, member, cmd.Rest)
		return true
	}
	return false
}

func prefixPurge(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, member *discordgo.Member, arg string) {
	channelID := m.ChannelID
	if arg != "" {
		channelID = parseChannelRef(arg)
		if channelID == "" {
			send(s, m.ChannelID, purgeUsage)
			return
		}
		if err := checkPurgeTarget(b, s, m.GuildID, channelID, member); err != nil {
			log.Warn("purge target rejected", "guild", m.GuildID, "channel", channelID, "user", m.Author.ID, "error", err)
			send(s, m.ChannelID, renderPurgeRejected(channelID, err))
			return
		}
	}

	reply := func(content string) { send(s, m.ChannelID, content) }
	startPurge(b, channelID, m.Author.ID, reply, reply)
}

func send(s *discordgo.Session, channelID, content string) {
	_, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:         content,
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	})
	if err != nil {
		log.Error("could not send reply", "channel", channelID, "error", err)
	}
}

// prefixMember fills in the permissions that MESSAGE_CREATE omits from the partial member.
func prefixMember(s *discordgo.Session, m *discordgo.MessageCreate) *discordgo.Member {
	var roles []string
	if m.Member != nil {
		roles = m.Member.Roles
	}
	return memberIn(s, m.Author, roles, m.ChannelID)
}
