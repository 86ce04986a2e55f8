package utils

import (
	"fmt"
	log "log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	ColorInfo  = 0x00ff00 // Green
	ColorWarn  = 0xffff00 // Yellow
	ColorError = 0xff0000 // Red
)

var logLevel = new(log.LevelVar)

// ConfigureLogging installs a text slog handler on stdout at the given level (DEBUG, INFO, WARN, ERROR).
func ConfigureLogging(level string) {
	logLevel.Set(ParseLevel(level))
	handler := log.NewTextHandler(os.Stdout, &log.HandlerOptions{Level: logLevel})
	log.SetDefault(log.New(handler))
}

// ParseLevel maps a config string onto a slog level, defaulting to Info.
func ParseLevel(level string) log.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return log.LevelDebug
	case "WARN", "WARNING":
		return log.LevelWarn
	case "ERROR":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

// EmbedSender is the part of *discordgo.Session the admin log needs.
type EmbedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var (
	mu        sync.RWMutex
	session   EmbedSender
	channelID string
)

// InitLogger routes Info/Warn/Error to an admin channel as embeds.
func InitLogger(s EmbedSender, adminChannelID string) {
	mu.Lock()
	defer mu.Unlock()
	session = s
	channelID = adminChannelID
	if channelID == "" {
		log.Warn("bot.adminChannelId is not set; admin channel logging is disabled")
	}
}

// Log sends a log message to the admin channel, or to slog when no channel is configured.
func Log(level, module, operation, details string) {
	mu.RLock()
	s, ch := session, channelID
	mu.RUnlock()

	attrs := []any{"module", module, "operation", operation, "details", details}
	switch level {
	case "WARN":
		log.Warn("admin log", attrs...)
	case "ERROR":
		log.Error("admin log", attrs...)
	default:
		log.Info("admin log", attrs...)
	}

	if s == nil || ch == "" {
		return
	}

	var color int
	switch level {
	case "INFO":
		color = ColorInfo
	case "WARN":
		color = ColorWarn
	case "ERROR":
		color = ColorError
	default:
		color = ColorInfo
	}

	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("Log Level: %s", level),
		Color:     color,
		Timestamp: time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Module",
				Value:  module,
				Inline: true,
			},
			{
				Name:   "Operation",
				Value:  operation,
				Inline: true,
			},
			{
				Name:  "Details",
				Value: details,
			},
		},
	}

	if _, err := s.ChannelMessageSendEmbed(ch, embed); err != nil {
		log.Error("error sending log message to Discord", "error", err)
	}
}

// Info logs an informational message.
func Info(module, operation, details string) {
	Log("INFO", module, operation, details)
}

// Warn logs a warning message.
func Warn(module, operation, details string) {
	Log("WARN", module, operation, details)
}

// Error logs an error message.
func Error(module, operation, details string) {
	Log("ERROR", module, operation, details)
}
