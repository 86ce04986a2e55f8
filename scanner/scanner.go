// Package scanner sweeps a channel's full history and deletes every message that carries
// an image, one message at a time, so that content older than the platform's bulk-delete
// window is reachable too.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"iter"
	log "log/slog"
	"sync"

	"botswatter/classifier"
	"botswatter/models"
	"botswatter/platform"
)

// ErrSweepInProgress is returned when the channel is already being swept.
var ErrSweepInProgress = errors.New("a sweep of this channel is already running")

// Client is the remote side of a sweep.
type Client interface {
	History(ctx context.Context, channelID string) iter.Seq2[models.InboundMessage, error]
	DeleteMessage(ctx context.Context, channelID, messageID string) error
}

// Sweeper runs sweeps. Different channels may be swept concurrently; a channel is
// never swept twice at the same time.
type Sweeper struct {
	client Client

	mu      sync.Mutex
	running map[string]struct{}
}

func New(client Client) *Sweeper {
	return &Sweeper{client: client, running: make(map[string]struct{})}
}

// Sweep walks the whole history of channelID. The returned report is always valid,
// holding partial counts when the sweep was aborted; err is non-nil only on abort.
//
// Deletes that fail transiently or find the message already gone are skipped and not
// retried. A permission failure aborts immediately: every further delete would fail too.
func (s *Sweeper) Sweep(ctx context.Context, channelID string) (models.SweepReport, error) {
	state := models.NewSweepState(channelID)
	if !s.acquire(channelID) {
		state.Aborted = true
		return state.Report(), ErrSweepInProgress
	}
	defer s.release(channelID)

	logger := log.With("run", state.RunID.String(), "channel", channelID)
	logger.Info("image sweep started")

	err := s.run(ctx, state, logger)
	report := state.Report()
	if err != nil {
		logger.Warn("image sweep aborted",
			"scanned", report.Scanned, "deleted", report.Deleted, "skipped", report.Skipped, "error", err)
		return report, err
	}
	logger.Info("image sweep finished",
		"scanned", report.Scanned, "deleted", report.Deleted, "skipped", report.Skipped, "duration", report.Duration)
	return report, nil
}

func (s *Sweeper) run(ctx context.Context, state *models.SweepState, logger *log.Logger) error {
	for msg, err := range s.client.History(ctx, state.ChannelID) {
		if err != nil {
			state.Aborted = true
			return fmt.Errorf("read history: %w", err)
		}
		if err := ctx.Err(); err != nil {
			state.Aborted = true
			return err
		}

		state.Scanned++
		state.Cursor = msg.ID

		if !classifier.IsImage(msg) {
			continue
		}

		err := s.client.DeleteMessage(ctx, state.ChannelID, msg.ID)
		switch platform.Kind(err) {
		case platform.KindNone:
			state.Deleted++
		case platform.KindPermissionDenied:
			state.Aborted = true
			return fmt.Errorf("delete message %s: %w", msg.ID, err)
		default:
			state.Skipped++
			logger.Debug("skipped image message", "message", msg.ID, "error", err)
		}
	}
	return nil
}

func (s *Sweeper) acquire(channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.running[channelID]; busy {
		return false
	}
	s.running[channelID] = struct{}{}
	return true
}

func (s *Sweeper) release(channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.running, channelID)
}

// Running reports whether channelID is being swept right now.
func (s *Sweeper) Running(channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.running[channelID]
	return busy
}
