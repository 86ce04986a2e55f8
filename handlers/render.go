package handlers

import (
	"errors"
	"fmt"
	"strings"

	"botswatter/models"
	"botswatter/platform"
	"botswatter/scanner"
)

// maxMessageLength is Discord's content limit for a single message.
const maxMessageLength = 2000

const (
	autobanUsage = "Subcommands: add | remove | list | channel"
	purgeUsage   = "Usage: purgeimages [#channel]"
)

func renderPurgeStarted(channelID string) string {
	return fmt.Sprintf("🧹 Beginning image purge in <#%s>…", channelID)
}

func renderPurgeResult(report models.SweepReport, err error) string {
	switch {
	case err == nil:
		return fmt.Sprintf("✅ Image purge complete. Deleted **%d** messages.", report.Deleted)
	case errors.Is(err, scanner.ErrSweepInProgress):
		return fmt.Sprintf("⏳ An image purge is already running in <#%s>.", report.ChannelID)
	case errors.Is(err, platform.ErrPermissionDenied):
		return fmt.Sprintf("❌ Missing permissions to delete messages. Scanned %d, deleted **%d** before stopping.",
			report.Scanned, report.Deleted)
	default:
		return fmt.Sprintf("⚠️ Image purge stopped early: %v. Scanned %d, deleted **%d**.",
			err, report.Scanned, report.Deleted)
	}
}

func renderPurgeRejected(channelID string, err error) string {
	if errors.Is(err, errPurgeNotAllowed) {
		return fmt.Sprintf("🚫 You do not have permission to manage messages in <#%s>.", channelID)
	}
	return "❌ That channel is not in this server."
}

func renderKeywordAdded(phrase string) string {
	return fmt.Sprintf("☠️ Autoban phrase added: `%s`", phrase)
}

func renderKeywordRemoved(phrase string) string {
	return fmt.Sprintf("🗑️ Autoban phrase removed: `%s`", phrase)
}

func renderKeywordList(keywords []string) string {
	if len(keywords) == 0 {
		return "No autoban phrases configured."
	}
	var sb strings.Builder
	sb.WriteString("**Autoban phrases:**")
	for _, k := range keywords {
		line := fmt.Sprintf("\n- `%s`", k)
		if sb.Len()+len(line) > maxMessageLength-len("\n…") {
			sb.WriteString("\n…")
			break
		}
		sb.WriteString(line)
	}
	return sb.String()
}

func renderChannelToggled(channelID string, monitored bool) string {
	if monitored {
		return fmt.Sprintf("🔔 Added <#%s> to monitoring.", channelID)
	}
	return fmt.Sprintf("🔕 Removed <#%s> from monitoring.", channelID)
}
