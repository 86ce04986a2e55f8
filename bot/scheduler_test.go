package bot

import (
	"context"
	"errors"
	"testing"

	"botswatter/models"
	"botswatter/scanner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduler_RegistersEveryChannel(t *testing.T) {
	sweep := func(ctx context.Context, channelID string) (models.SweepReport, error) {
		return models.SweepReport{}, nil
	}
	s, err := NewScheduler(context.Background(), sweep, []models.SweepSchedule{
		{ChannelID: "42", Cron: "@daily"},
		{ChannelID: "43", Cron: "0 4 * * *"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, s.jobs())

	s.Start()
	s.Stop()
}

func TestNewScheduler_RejectsInvalidSpec(t *testing.T) {
	_, err := NewScheduler(context.Background(), nil, []models.SweepSchedule{{ChannelID: "42", Cron: "every tuesday"}})
	assert.Error(t, err)
}

func TestRunSweep_PassesChannelAndToleratesFailures(t *testing.T) {
	var swept []string
	results := []error{nil, scanner.ErrSweepInProgress, errors.New("permission denied")}
	sweep := func(ctx context.Context, channelID string) (models.SweepReport, error) {
		swept = append(swept, channelID)
		err := results[0]
		results = results[1:]
		return models.SweepReport{ChannelID: channelID, Scanned: 3}, err
	}
	s, err := NewScheduler(context.Background(), sweep, nil)
	require.NoError(t, err)

	s.runSweep("42")
	s.runSweep("42")
	s.runSweep("43")

	assert.Equal(t, []string{"42", "42", "43"}, swept)
}
