package command

import "github.com/bwmarrin/discordgo"

var (
	manageMessages int64 = discordgo.PermissionManageMessages
	banMembers     int64 = discordgo.PermissionBanMembers
	dmPermission         = false
)

// PurgeImagesCommand defines the /purgeimages command.
type PurgeImagesCommand struct{}

// Definition returns the application command definition.
func (c *PurgeImagesCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "purgeimages",
		Description:              "Delete every message with an image in a channel, including old ones",
		DefaultMemberPermissions: &manageMessages,
		DMPermission:             &dmPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:         "channel",
				Description:  "Channel to purge (defaults to this channel)",
				Type:         discordgo.ApplicationCommandOptionChannel,
				Required:     false,
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
			},
		},
	}
}

// AutobanCommand defines the /autoban command group.
type AutobanCommand struct{}

// Definition returns the application command definition.
func (c *AutobanCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "autoban",
		Description:              "Manage autoban phrases and monitored channels",
		DefaultMemberPermissions: &banMembers,
		DMPermission:             &dmPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "add",
				Description: "Ban anyone who posts this phrase in a monitored channel",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:        "phrase",
						Description: "Phrase to match (case-insensitive)",
						Type:        discordgo.ApplicationCommandOptionString,
						Required:    true,
					},
				},
			},
			{
				Name:        "remove",
				Description: "Remove an autoban phrase",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:         "phrase",
						Description:  "Phrase to remove",
						Type:         discordgo.ApplicationCommandOptionString,
						Required:     true,
						Autocomplete: true,
					},
				},
			},
			{
				Name:        "list",
				Description: "List autoban phrases",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "channel",
				Description: "Toggle autoban monitoring for a channel",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					{
						Name:         "channel",
						Description:  "Channel to toggle",
						Type:         discordgo.ApplicationCommandOptionChannel,
						Required:     true,
						ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
					},
				},
			},
		},
	}
}

// PingCommand defines the structure for the /ping command.
type PingCommand struct{}

// Definition returns the application command definition.
func (c *PingCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Responds with Pong!",
	}
}
