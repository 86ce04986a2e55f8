package models

// GuildPolicy is a point-in-time snapshot of one guild's autoban configuration.
type GuildPolicy struct {
	GuildID string
	// Keywords are lower-cased and kept in insertion order.
	Keywords          []string
	MonitoredChannels map[string]struct{}
}

// IsMonitored reports whether keyword enforcement is enabled for the channel.
func (p GuildPolicy) IsMonitored(channelID string) bool {
	_, ok := p.MonitoredChannels[channelID]
	return ok
}
