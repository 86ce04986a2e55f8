package handlers

import (
	log "log/slog"

	"botswatter/bot"

	"github.com/bwmarrin/discordgo"
)

// HandlePurgeImages handles the logic for the /purgeimages command.
func HandlePurgeImages(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	channelID := i.ChannelID
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "channel" {
			channelID = opt.ChannelValue(nil).ID
		}
	}

	if channelID != i.ChannelID {
		if err := checkPurgeTarget(b, s, i.GuildID, channelID, i.Member); err != nil {
			log.Warn("purge target rejected", "guild", i.GuildID, "channel", channelID, "user", interactionUserID(i), "error", err)
			respond(s, i, renderPurgeRejected(channelID, err), true)
			return
		}
	}

	// Respond to the interaction immediately; the sweep can take hours.
	announce := func(content string) { respond(s, i, content, false) }
	done := func(content string) {
		_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{Content: content})
		if err != nil {
			log.Error("could not send purge follow-up", "channel", channelID, "error", err)
		}
	}
	startPurge(b, channelID, interactionUserID(i), announce, done)
}

// HandleAutoban handles the /autoban subcommands.
func HandleAutoban(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		respond(s, i, "Autoban can only be configured inside a server.", true)
		return
	}

	var sub, arg string
	if options := i.ApplicationCommandData().Options; len(options) > 0 {
		sub = options[0].Name
		for _, opt := range options[0].Options {
			switch opt.Type {
			case discordgo.ApplicationCommandOptionChannel:
				arg = opt.ChannelValue(nil).ID
			case discordgo.ApplicationCommandOptionString:
				arg = opt.StringValue()
			}
		}
	}

	reply, err := RunAutoban(b.Context(), b.Store, i.GuildID, sub, arg)
	if err != nil {
		log.Error("autoban command failed", "guild", i.GuildID, "subcommand", sub, "error", err)
	}
	respond(s, i, reply, false)
}

// HandlePing handles the logic for the /ping command.
func HandlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respond(s, i, "Pong!", false)
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
