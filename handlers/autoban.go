package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"botswatter/database"
)

// RunAutoban applies one autoban subcommand to a guild's policy and returns the reply to show.
// An empty subcommand prints the list of subcommands. The returned error is for logging only;
// the reply is always suitable to send.
func RunAutoban(ctx context.Context, store database.PolicyStore, guildID, sub, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	switch sub {
	case "add":
		if _, err := store.AddKeyword(ctx, guildID, arg); err != nil {
			return autobanFailure(err), fmt.Errorf("add autoban phrase: %w", err)
		}
		return renderKeywordAdded(arg), nil
	case "remove":
		if _, err := store.RemoveKeyword(ctx, guildID, arg); err != nil {
			return autobanFailure(err), fmt.Errorf("remove autoban phrase: %w", err)
		}
		return renderKeywordRemoved(arg), nil
	case "list":
		keywords, err := store.GetKeywords(ctx, guildID)
		if err != nil {
			return autobanFailure(err), fmt.Errorf("list autoban phrases: %w", err)
		}
		return renderKeywordList(keywords), nil
	case "channel":
		channelID := parseChannelRef(arg)
		if channelID == "" {
			return "Usage: autoban channel <#channel>", nil
		}
		monitored, err := store.ToggleChannel(ctx, guildID, channelID)
		if err != nil {
			return autobanFailure(err), fmt.Errorf("toggle monitored channel: %w", err)
		}
		return renderChannelToggled(channelID, monitored), nil
	default:
		return autobanUsage, nil
	}
}

func autobanFailure(err error) string {
	if errors.Is(err, database.ErrEmptyPhrase) {
		return "Please give a phrase."
	}
	return "❌ Could not update autoban settings, check the bot logs."
}

// parseChannelRef accepts a channel mention (<#123>) or a bare ID.
func parseChannelRef(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "<#")
	s = strings.TrimSuffix(s, ">")
	for _, r := range s {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return s
}
