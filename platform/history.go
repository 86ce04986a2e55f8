package platform

import (
	"context"
	"errors"
	"iter"
	log "log/slog"

	"botswatter/models"

	"github.com/bwmarrin/discordgo"
	"github.com/sethvargo/go-retry"
)

// history pages backwards with a "before" cursor set to the oldest message seen so far.
// Because the cursor is a snowflake rather than an offset, deleting messages while
// iterating does not shift the pages. The sequence is not restartable; a new call
// starts again from the newest message.
func (c *Client) history(ctx context.Context, channelID string) iter.Seq2[models.InboundMessage, error] {
	return func(yield func(models.InboundMessage, error) bool) {
		before := ""
		for {
			page, err := c.fetchPage(ctx, channelID, before)
			if err != nil {
				yield(models.InboundMessage{}, err)
				return
			}
			for _, m := range page {
				if m == nil {
					continue
				}
				msg := models.FromDiscord(m, "")
				if msg.ChannelID == "" {
					msg.ChannelID = channelID
				}
				if !yield(msg, nil) {
					return
				}
				before = m.ID
			}
			if len(page) < c.opts.PageSize {
				return
			}
		}
	}
}

// fetchPage reads one page, retrying transient failures with Fibonacci backoff.
func (c *Client) fetchPage(ctx context.Context, channelID, before string) ([]*discordgo.Message, error) {
	var page []*discordgo.Message
	b := retry.WithMaxRetries(c.opts.MaxRetries, retry.NewFibonacci(c.opts.BaseDelay))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		msgs, err := c.rest.ChannelMessages(channelID, c.opts.PageSize, before, "", "", discordgo.WithContext(ctx))
		if err != nil {
			err = wrap("read history of "+channelID, err)
			if errors.Is(err, ErrTransient) {
				log.Debug("history page failed, retrying", "channel", channelID, "before", before, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		page = msgs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}
