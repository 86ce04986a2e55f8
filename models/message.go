package models

import "github.com/bwmarrin/discordgo"

// InboundMessage is the platform-neutral view of a chat message that the engines work on.
type InboundMessage struct {
	ID          string
	GuildID     string
	ChannelID   string
	AuthorID    string
	AuthorIsBot bool
	Content     string
	Attachments []Attachment
	Embeds      []Embed
}

// Attachment carries only what classification needs.
type Attachment struct {
	ContentType string
}

// Embed reports whether an embed carries an image or a thumbnail.
type Embed struct {
	HasImage     bool
	HasThumbnail bool
}

// FromDiscord converts a discordgo message. Messages returned by channel history
// have no guild ID, so the caller may supply one.
func FromDiscord(m *discordgo.Message, guildID string) InboundMessage {
	msg := InboundMessage{
		ID:        m.ID,
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
	}
	if msg.GuildID == "" {
		msg.GuildID = guildID
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
		msg.AuthorIsBot = m.Author.Bot
	}
	for _, a := range m.Attachments {
		if a == nil {
			continue
		}
		msg.Attachments = append(msg.Attachments, Attachment{ContentType: a.ContentType})
	}
	for _, e := range m.Embeds {
		if e == nil {
			continue
		}
		msg.Embeds = append(msg.Embeds, Embed{
			HasImage:     e.Image != nil,
			HasThumbnail: e.Thumbnail != nil,
		})
	}
	return msg
}

// MatchResult is the output of the classifier.
type MatchResult struct {
	IsImage        bool
	Matched        bool
	MatchedKeyword string
}
