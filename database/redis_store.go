package database

import (
	"context"
	"fmt"

	"botswatter/models"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "botswatter"

// toggleScript flips set membership in one round trip so concurrent toggles never race.
var toggleScript = redis.NewScript(`
if redis.call("SISMEMBER", KEYS[1], ARGV[1]) == 1 then
	redis.call("SREM", KEYS[1], ARGV[1])
	return 0
end
redis.call("SADD", KEYS[1], ARGV[1])
return 1
`)

// RedisStore keeps keywords in a list and monitored channels in a set, per guild.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects using the redis section of the policy configuration.
func NewRedisStore(ctx context.Context, cfg models.RedisConfig) (*RedisStore, error) {
	addr := cfg.Address
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return NewRedisStoreFromClient(client, cfg.KeyPrefix), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) keywordsKey(guildID string) string {
	return fmt.Sprintf("%s:guild:%s:keywords", r.prefix, guildID)
}

func (r *RedisStore) channelsKey(guildID string) string {
	return fmt.Sprintf("%s:guild:%s:channels", r.prefix, guildID)
}

func (r *RedisStore) GetKeywords(ctx context.Context, guildID string) ([]string, error) {
	keywords, err := r.client.LRange(ctx, r.keywordsKey(guildID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read keywords for guild %s: %w", guildID, err)
	}
	return keywords, nil
}

func (r *RedisStore) SetKeywords(ctx context.Context, guildID string, keywords []string) error {
	key := r.keywordsKey(guildID)
	normalized := normalizeAll(keywords)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(normalized) > 0 {
			args := make([]any, len(normalized))
			for i, k := range normalized {
				args[i] = k
			}
			pipe.RPush(ctx, key, args...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write keywords for guild %s: %w", guildID, err)
	}
	return nil
}

func (r *RedisStore) GetMonitoredChannels(ctx context.Context, guildID string) (map[string]struct{}, error) {
	ids, err := r.client.SMembers(ctx, r.channelsKey(guildID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read monitored channels for guild %s: %w", guildID, err)
	}
	return toSet(ids), nil
}

func (r *RedisStore) SetMonitoredChannels(ctx context.Context, guildID string, channels map[string]struct{}) error {
	key := r.channelsKey(guildID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(channels) > 0 {
			args := make([]any, 0, len(channels))
			for id := range channels {
				args = append(args, id)
			}
			pipe.SAdd(ctx, key, args...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write monitored channels for guild %s: %w", guildID, err)
	}
	return nil
}

func (r *RedisStore) AddKeyword(ctx context.Context, guildID, phrase string) (string, error) {
	p, err := NormalizePhrase(phrase)
	if err != nil {
		return "", err
	}
	if err := r.client.RPush(ctx, r.keywordsKey(guildID), p).Err(); err != nil {
		return "", fmt.Errorf("failed to add keyword for guild %s: %w", guildID, err)
	}
	return p, nil
}

func (r *RedisStore) RemoveKeyword(ctx context.Context, guildID, phrase string) (int, error) {
	p, err := NormalizePhrase(phrase)
	if err != nil {
		return 0, err
	}
	n, err := r.client.LRem(ctx, r.keywordsKey(guildID), 0, p).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to remove keyword for guild %s: %w", guildID, err)
	}
	return int(n), nil
}

func (r *RedisStore) ToggleChannel(ctx context.Context, guildID, channelID string) (bool, error) {
	on, err := toggleScript.Run(ctx, r.client, []string{r.channelsKey(guildID)}, channelID).Int()
	if err != nil {
		return false, fmt.Errorf("failed to toggle channel %s: %w", channelID, err)
	}
	return on == 1, nil
}

func (r *RedisStore) Policy(ctx context.Context, guildID string) (models.GuildPolicy, error) {
	var (
		keywords *redis.StringSliceCmd
		channels *redis.StringSliceCmd
	)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		keywords = pipe.LRange(ctx, r.keywordsKey(guildID), 0, -1)
		channels = pipe.SMembers(ctx, r.channelsKey(guildID))
		return nil
	})
	if err != nil {
		return models.GuildPolicy{}, fmt.Errorf("failed to read policy for guild %s: %w", guildID, err)
	}
	return models.GuildPolicy{
		GuildID:           guildID,
		Keywords:          keywords.Val(),
		MonitoredChannels: toSet(channels.Val()),
	}, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
