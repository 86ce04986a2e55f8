package handlers

import (
	"botswatter/bot"

	"github.com/bwmarrin/discordgo"
)

// commandPermissions lists the Discord permission bits a member needs per command.
// Zero means anyone may run it.
var commandPermissions = map[string]int64{
	"purgeimages": discordgo.PermissionManageMessages,
	"autoban":     discordgo.PermissionBanMembers,
	"ping":        0,
}

func allowed(b *bot.Bot, name string, member *discordgo.Member) bool {
	required, ok := commandPermissions[name]
	if !ok || required == 0 {
		return true
	}
	return b.Auth.CheckPermission(member, required)
}

// CommandDispatcher is the central handler for all application command interactions.
// It performs permission checks and then dispatches the interaction to the appropriate handler.
func CommandDispatcher(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	commandName := i.ApplicationCommandData().Name

	if !allowed(b, commandName, i.Member) {
		respond(s, i, "🚫 You do not have permission to run this command.", true)
		return
	}

	switch commandName {
	case "purgeimages":
		HandlePurgeImages(b, s, i)
	case "autoban":
		HandleAutoban(b, s, i)
	case "ping":
		HandlePing(s, i)
	default:
		respond(s, i, "🚫 Internal error: unknown command.", true)
	}
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{
		Content:         content,
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}
