package logs

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jayesh820/AWS-TASK/internal/cache"
)

type streamKey struct {
	client *Client
	group  string
}

// Browser runs the three browsing operations against an explicitly passed
// Client and remembers listing results for the rest of the session.
//
// Listing failures are returned to the caller. Fetch failures are turned into a
// single printable line instead.
type Browser struct {
	groups  *cache.Memo[*Client, []string]
	streams *cache.Memo[streamKey, []string]

	loc    *time.Location
	logger zerolog.Logger
}

type Option func(*Browser)

// WithLocation sets the zone timestamps are rendered in. The default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(b *Browser) {
		b.loc = loc
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(b *Browser) {
		b.logger = logger
	}
}

func NewBrowser(opts ...Option) *Browser {
	b := &Browser{
		groups: cache.New[*Client, []string](func(c *Client) string {
			return fmt.Sprintf("%p", c)
		}),
		streams: cache.New[streamKey, []string](func(k streamKey) string {
			return fmt.Sprintf("%p/%s", k.client, k.group)
		}),
		loc:    time.Local,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// LogGroups lists all group names visible to c.
func (b *Browser) LogGroups(ctx context.Context, c *Client) ([]string, error) {
	return b.groups.Get(c, func() ([]string, error) {
		groups, err := c.ListLogGroups(ctx)
		if err != nil {
			return nil, err
		}
		b.logger.Debug().Str("region", c.Region()).Int("count", len(groups)).Msg("listed log groups")
		return groups, nil
	})
}

// LogStreams lists the streams of group, most recently active first.
func (b *Browser) LogStreams(ctx context.Context, c *Client, group string) ([]string, error) {
	return b.streams.Get(streamKey{client: c, group: group}, func() ([]string, error) {
		streams, err := c.ListLogStreams(ctx, group)
		if err != nil {
			return nil, err
		}
		b.logger.Debug().Str("group", group).Int("count", len(streams)).Msg("listed log streams")
		return streams, nil
	})
}

// Events fetches the first page of stream and renders one line per event. It
// never fails: an error becomes the only line of the result.
func (b *Browser) Events(ctx context.Context, c *Client, group, stream string) []string {
	events, err := c.GetLogEvents(ctx, group, stream)
	if err != nil {
		b.logger.Error().Err(err).Str("group", group).Str("stream", stream).Msg("fetch log events")
		return []string{FormatFetchError(err)}
	}
	b.logger.Debug().Str("group", group).Str("stream", stream).Int("count", len(events)).Msg("fetched log events")
	return FormatEvents(events, b.loc)
}
