package models

import (
	"time"

	"github.com/google/uuid"
)

// SweepState is the mutable state of a single sweep run. It is never shared between runs.
type SweepState struct {
	RunID     uuid.UUID
	ChannelID string
	Scanned   int
	Deleted   int
	Skipped   int
	// Cursor is the ID of the last message read from history.
	Cursor  string
	Aborted bool
	Started time.Time
}

// NewSweepState starts a fresh run for a channel.
func NewSweepState(channelID string) *SweepState {
	return &SweepState{
		RunID:     uuid.New(),
		ChannelID: channelID,
		Started:   time.Now(),
	}
}

// Report freezes the state into the report emitted at termination.
func (s *SweepState) Report() SweepReport {
	return SweepReport{
		RunID:     s.RunID,
		ChannelID: s.ChannelID,
		Scanned:   s.Scanned,
		Deleted:   s.Deleted,
		Skipped:   s.Skipped,
		Aborted:   s.Aborted,
		Duration:  time.Since(s.Started),
	}
}

// SweepReport summarizes a finished or aborted sweep.
type SweepReport struct {
	RunID     uuid.UUID
	ChannelID string
	Scanned   int
	Deleted   int
	// Skipped counts image messages whose delete failed transiently or were already gone.
	Skipped  int
	Aborted  bool
	Duration time.Duration
}
