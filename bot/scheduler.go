package bot

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"

	"botswatter/models"
	"botswatter/scanner"
	"botswatter/utils"

	"github.com/robfig/cron/v3"
)

// SweepFunc runs one sweep of a channel.
type SweepFunc func(ctx context.Context, channelID string) (models.SweepReport, error)

// Scheduler runs configured sweeps on their cron schedules.
type Scheduler struct {
	c     *cron.Cron
	ctx   context.Context
	sweep SweepFunc
}

// NewScheduler registers one job per schedule. An invalid cron spec is an error.
func NewScheduler(ctx context.Context, sweep SweepFunc, schedules []models.SweepSchedule) (*Scheduler, error) {
	s := &Scheduler{c: cron.New(), ctx: ctx, sweep: sweep}
	for _, sc := range schedules {
		channelID := sc.ChannelID
		if _, err := s.c.AddFunc(sc.Cron, func() { s.runSweep(channelID) }); err != nil {
			return nil, fmt.Errorf("could not schedule sweep of channel %s (%q): %w", channelID, sc.Cron, err)
		}
		log.Info("scheduled image sweep", "channel", channelID, "cron", sc.Cron)
	}
	return s, nil
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.c.Start()
	log.Info("scheduler started", "jobs", s.jobs())
}

// Stop prevents new jobs from starting and waits for running ones.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
	log.Info("scheduler stopped")
}

func (s *Scheduler) jobs() int {
	return len(s.c.Entries())
}

func (s *Scheduler) runSweep(channelID string) {
	report, err := s.sweep(s.ctx, channelID)
	switch {
	case errors.Is(err, scanner.ErrSweepInProgress):
		log.Warn("scheduled sweep skipped, channel is already being swept", "channel", channelID)
	case err != nil:
		utils.Error("Sweep", "ScheduledPurge", fmt.Sprintf("Sweep of <#%s> stopped: %v (scanned %d, deleted %d)",
			channelID, err, report.Scanned, report.Deleted))
	default:
		utils.Info("Sweep", "ScheduledPurge", fmt.Sprintf("Sweep of <#%s> complete: scanned %d, deleted %d, skipped %d",
			channelID, report.Scanned, report.Deleted, report.Skipped))
	}
}
