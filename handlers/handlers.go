package handlers

import (
	log "log/slog"

	"botswatter/bot"

	"github.com/bwmarrin/discordgo"
)

// Register all handlers to the bot.
func Register(b *bot.Bot) {
	b.Session.AddHandler(InteractionCreate(b))
	b.Session.AddHandler(MessageCreate(b))

	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info("logged in", "user", s.State.User.Username, "guilds", len(r.Guilds))
	})

	if b.Health != nil {
		b.Session.AddHandler(func(s *discordgo.Session, _ *discordgo.Connect) {
			b.Health.SetServing(true)
		})
		b.Session.AddHandler(func(s *discordgo.Session, _ *discordgo.Disconnect) {
			b.Health.SetServing(false)
		})
	}
}
