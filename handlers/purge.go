package handlers

import (
	"errors"
	"fmt"
	log "log/slog"

	"botswatter/bot"
	"botswatter/models"
	"botswatter/scanner"
	"botswatter/utils"

	"github.com/bwmarrin/discordgo"
)

var (
	errChannelOutsideGuild = errors.New("channel is not in this server")
	errPurgeNotAllowed     = errors.New("member may not manage messages in the target channel")
)

// guildChannel looks a channel up in the state cache, then over REST, and rejects
// channels that belong to another guild.
func guildChannel(s *discordgo.Session, guildID, channelID string) (*discordgo.Channel, error) {
	ch, err := s.State.Channel(channelID)
	if err != nil || ch == nil {
		ch, err = s.Channel(channelID)
		if err != nil {
			return nil, fmt.Errorf("lookup channel %s: %w", channelID, err)
		}
	}
	if ch.GuildID != guildID {
		return nil, errChannelOutsideGuild
	}
	return ch, nil
}

// checkPurgeTarget verifies that channelID is in guildID and that the member may purge it.
// Permissions are recomputed for the target channel since overwrites differ per channel.
func checkPurgeTarget(b *bot.Bot, s *discordgo.Session, guildID, channelID string, member *discordgo.Member) error {
	if _, err := guildChannel(s, guildID, channelID); err != nil {
		return err
	}
	if member == nil || member.User == nil {
		return errPurgeNotAllowed
	}
	target := memberIn(s, member.User, member.Roles, channelID)
	if !allowed(b, "purgeimages", target) {
		return errPurgeNotAllowed
	}
	return nil
}

// startPurge announces a sweep of channelID and runs it in the background. announce is called
// once before returning; done receives the final result.
func startPurge(b *bot.Bot, channelID, userID string, announce, done func(content string)) {
	if b.Sweeper.Running(channelID) {
		announce(renderPurgeResult(models.SweepReport{ChannelID: channelID}, scanner.ErrSweepInProgress))
		return
	}
	announce(renderPurgeStarted(channelID))

	go func() {
		report, err := b.Sweeper.Sweep(b.Context(), channelID)
		if report.ChannelID == "" {
			report.ChannelID = channelID
		}
		if err != nil {
			log.Warn("image purge ended with error", "channel", channelID, "run_id", report.RunID, "error", err)
		}
		if !errors.Is(err, scanner.ErrSweepInProgress) {
			utils.Info("Sweep", "PurgeImages", fmt.Sprintf("<@%s> purged <#%s>: scanned %d, deleted %d, skipped %d",
				userID, channelID, report.Scanned, report.Deleted, report.Skipped))
		}
		done(renderPurgeResult(report, err))
	}()
}

// memberIn builds a member whose Permissions are those of user in channelID.
func memberIn(s *discordgo.Session, user *discordgo.User, roles []string, channelID string) *discordgo.Member {
	member := &discordgo.Member{User: user, Roles: roles}
	perms, err := s.UserChannelPermissions(user.ID, channelID)
	if err != nil {
		log.Debug("could not compute channel permissions", "user", user.ID, "channel", channelID, "error", err)
		return member
	}
	member.Permissions = perms
	return member
}
