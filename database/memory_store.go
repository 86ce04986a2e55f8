package database

import (
	"context"
	"maps"
	"slices"
	"sync"

	"botswatter/models"
)

// MemoryStore keeps policy in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	keywords map[string][]string
	channels map[string]map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		keywords: make(map[string][]string),
		channels: make(map[string]map[string]struct{}),
	}
}

func (m *MemoryStore) GetKeywords(ctx context.Context, guildID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.keywords[guildID]), nil
}

func (m *MemoryStore) SetKeywords(ctx context.Context, guildID string, keywords []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keywords[guildID] = normalizeAll(keywords)
	return nil
}

func (m *MemoryStore) GetMonitoredChannels(ctx context.Context, guildID string) (map[string]struct{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]struct{}, len(m.channels[guildID]))
	maps.Copy(out, m.channels[guildID])
	return out, nil
}

func (m *MemoryStore) SetMonitoredChannels(ctx context.Context, guildID string, channels map[string]struct{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := make(map[string]struct{}, len(channels))
	maps.Copy(set, channels)
	m.channels[guildID] = set
	return nil
}

func (m *MemoryStore) AddKeyword(ctx context.Context, guildID, phrase string) (string, error) {
	p, err := NormalizePhrase(phrase)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keywords[guildID] = append(m.keywords[guildID], p)
	return p, nil
}

func (m *MemoryStore) RemoveKeyword(ctx context.Context, guildID, phrase string) (int, error) {
	p, err := NormalizePhrase(phrase)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.keywords[guildID])
	m.keywords[guildID] = slices.DeleteFunc(m.keywords[guildID], func(k string) bool { return k == p })
	return before - len(m.keywords[guildID]), nil
}

func (m *MemoryStore) ToggleChannel(ctx context.Context, guildID, channelID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.channels[guildID]
	if !ok {
		set = make(map[string]struct{})
		m.channels[guildID] = set
	}
	if _, on := set[channelID]; on {
		delete(set, channelID)
		return false, nil
	}
	set[channelID] = struct{}{}
	return true, nil
}

func (m *MemoryStore) Policy(ctx context.Context, guildID string) (models.GuildPolicy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	channels := make(map[string]struct{}, len(m.channels[guildID]))
	maps.Copy(channels, m.channels[guildID])
	return models.GuildPolicy{
		GuildID:           guildID,
		Keywords:          slices.Clone(m.keywords[guildID]),
		MonitoredChannels: channels,
	}, nil
}

func (m *MemoryStore) Close() error { return nil }
