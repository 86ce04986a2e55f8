package enforcer_test

import (
	"context"
	"errors"
	"testing"

	"botswatter/database"
	"botswatter/enforcer"
	"botswatter/models"
	"botswatter/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type banCall struct {
	guildID, userID, reason string
	purgeDays               int
}

type deleteCall struct {
	channelID, messageID string
}

// mockModerator records every call and answers with the configured errors.
type mockModerator struct {
	banErr    error
	deleteErr error
	bans      []banCall
	deletes   []deleteCall
}

func (m *mockModerator) BanMember(ctx context.Context, guildID, userID, reason string, purgeDays int) error {
	m.bans = append(m.bans, banCall{guildID, userID, reason, purgeDays})
	return m.banErr
}

func (m *mockModerator) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	m.deletes = append(m.deletes, deleteCall{channelID, messageID})
	return m.deleteErr
}

type failingPolicies struct{}

func (failingPolicies) Policy(ctx context.Context, guildID string) (models.GuildPolicy, error) {
	return models.GuildPolicy{}, errors.New("store unavailable")
}

func newStore(t *testing.T) *database.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := database.NewMemoryStore()
	require.NoError(t, store.SetKeywords(ctx, "g1", []string{"raid", "spam link"}))
	require.NoError(t, store.SetMonitoredChannels(ctx, "g1", map[string]struct{}{"42": {}}))
	return store
}

func message(channelID, content string) models.InboundMessage {
	return models.InboundMessage{ID: "m1", GuildID: "g1", ChannelID: channelID, AuthorID: "u1", Content: content}
}

func TestEnforce_BansAndDeletesInMonitoredChannel(t *testing.T) {
	mod := &mockModerator{}
	e := enforcer.New(newStore(t), mod, nil)

	out := e.Enforce(context.Background(), message("42", "check out this spam link now"))

	assert.Equal(t, models.EnforcementEnforced, out.Status)
	assert.Equal(t, "spam link", out.Phrase)
	assert.NoError(t, out.Err)
	require.Len(t, mod.bans, 1)
	assert.Equal(t, banCall{"g1", "u1", "Botswatter autoban trigger: spam link", 0}, mod.bans[0])
	assert.Equal(t, []deleteCall{{"42", "m1"}}, mod.deletes)
}

func TestEnforce_IgnoresUnmonitoredChannel(t *testing.T) {
	mod := &mockModerator{}
	e := enforcer.New(newStore(t), mod, nil)

	out := e.Enforce(context.Background(), message("7", "check out this spam link now"))

	assert.Equal(t, models.EnforcementSkipped, out.Status)
	assert.Equal(t, models.SkipNotMonitored, out.Reason)
	assert.Empty(t, mod.bans)
	assert.Empty(t, mod.deletes)
}

func TestEnforce_IgnoresBotsAndDirectMessages(t *testing.T) {
	mod := &mockModerator{}
	e := enforcer.New(failingPolicies{}, mod, nil)

	bot := message("42", "raid")
	bot.AuthorIsBot = true
	out := e.Enforce(context.Background(), bot)
	assert.Equal(t, models.SkipBotAuthor, out.Reason)

	dm := message("42", "raid")
	dm.GuildID = ""
	out = e.Enforce(context.Background(), dm)
	assert.Equal(t, models.SkipNoGuild, out.Reason)

	assert.Empty(t, mod.bans)
}

func TestEnforce_OneBanWhenSeveralPhrasesMatch(t *testing.T) {
	mod := &mockModerator{}
	e := enforcer.New(newStore(t), mod, nil)

	out := e.Enforce(context.Background(), message("42", "RAID with a spam link"))

	assert.Equal(t, "raid", out.Phrase)
	assert.Len(t, mod.bans, 1)
	assert.Len(t, mod.deletes, 1)
}

func TestEnforce_NoMatch(t *testing.T) {
	mod := &mockModerator{}
	e := enforcer.New(newStore(t), mod, nil)

	out := e.Enforce(context.Background(), message("42", "good morning"))

	assert.Equal(t, models.SkipNoMatch, out.Reason)
	assert.Empty(t, mod.bans)
}

func TestEnforce_BanFailureIsTerminal(t *testing.T) {
	for _, banErr := range []error{platform.ErrPermissionDenied, platform.ErrTransient} {
		mod := &mockModerator{banErr: banErr}
		e := enforcer.New(newStore(t), mod, nil)

		out := e.Enforce(context.Background(), message("42", "raid incoming"))

		assert.Equal(t, models.EnforcementFailed, out.Status)
		assert.ErrorIs(t, out.Err, banErr)
		assert.Len(t, mod.bans, 1)
		assert.Empty(t, mod.deletes)
	}
}

func TestEnforce_DeleteFailureStillEnforced(t *testing.T) {
	mod := &mockModerator{deleteErr: platform.ErrNotFound}
	e := enforcer.New(newStore(t), mod, nil)

	out := e.Enforce(context.Background(), message("42", "raid"))

	assert.Equal(t, models.EnforcementEnforced, out.Status)
	assert.ErrorIs(t, out.Err, platform.ErrNotFound)
}

func TestEnforce_PolicyReadFailure(t *testing.T) {
	mod := &mockModerator{}
	e := enforcer.New(failingPolicies{}, mod, nil)

	out := e.Enforce(context.Background(), message("42", "raid"))

	assert.Equal(t, models.EnforcementFailed, out.Status)
	assert.Error(t, out.Err)
	assert.Empty(t, mod.bans)
}

func TestEnforce_NotifiesOnlyWhenActing(t *testing.T) {
	var notified []models.EnforcementOutcome
	notify := func(msg models.InboundMessage, out models.EnforcementOutcome) {
		notified = append(notified, out)
	}
	e := enforcer.New(newStore(t), &mockModerator{}, notify)

	e.Enforce(context.Background(), message("42", "hello"))
	e.Enforce(context.Background(), message("7", "raid"))
	e.Enforce(context.Background(), message("42", "raid"))

	require.Len(t, notified, 1)
	assert.Equal(t, models.EnforcementEnforced, notified[0].Status)
}
