package utils

import (
	log "log/slog"
	"testing"

	"botswatter/models"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	channel string
	embeds  []*discordgo.MessageEmbed
}

func (c *captureSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	c.channel = channelID
	c.embeds = append(c.embeds, embed)
	return &discordgo.Message{}, nil
}

func TestLog_SendsEmbedToAdminChannel(t *testing.T) {
	sender := &captureSender{}
	InitLogger(sender, "admin")
	t.Cleanup(func() { InitLogger(nil, "") })

	Warn("Sweep", "PurgeImages", "missing permissions")

	require.Len(t, sender.embeds, 1)
	assert.Equal(t, "admin", sender.channel)
	assert.Equal(t, ColorWarn, sender.embeds[0].Color)
	assert.Equal(t, "Sweep", sender.embeds[0].Fields[0].Value)
	assert.Equal(t, "missing permissions", sender.embeds[0].Fields[2].Value)
}

func TestLog_WithoutChannelOnlyLogsLocally(t *testing.T) {
	sender := &captureSender{}
	InitLogger(sender, "")
	t.Cleanup(func() { InitLogger(nil, "") })

	Info("Autoban", "Enforce", "details")

	assert.Empty(t, sender.embeds)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, log.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, log.LevelError, ParseLevel("error"))
	assert.Equal(t, log.LevelInfo, ParseLevel(""))
}

func TestCheckPermission(t *testing.T) {
	auth := NewAuth(models.AuthConfig{Developers: []string{"dev"}, AdminsRoles: []string{"mods"}})

	dev := &discordgo.Member{User: &discordgo.User{ID: "dev"}}
	mod := &discordgo.Member{User: &discordgo.User{ID: "m"}, Roles: []string{"x", "mods"}}
	manager := &discordgo.Member{User: &discordgo.User{ID: "u"}, Permissions: discordgo.PermissionManageMessages}
	admin := &discordgo.Member{User: &discordgo.User{ID: "a"}, Permissions: discordgo.PermissionAdministrator}
	nobody := &discordgo.Member{User: &discordgo.User{ID: "n"}}

	assert.True(t, auth.CheckPermission(dev, discordgo.PermissionBanMembers))
	assert.True(t, auth.CheckPermission(mod, discordgo.PermissionBanMembers))
	assert.True(t, auth.CheckPermission(manager, discordgo.PermissionManageMessages))
	assert.False(t, auth.CheckPermission(manager, discordgo.PermissionBanMembers))
	assert.True(t, auth.CheckPermission(admin, discordgo.PermissionBanMembers))
	assert.False(t, auth.CheckPermission(nobody, discordgo.PermissionManageMessages))
	assert.False(t, auth.CheckPermission(nil, discordgo.PermissionManageMessages))
}
