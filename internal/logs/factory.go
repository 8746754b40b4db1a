package logs

import (
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/rs/zerolog"

	awsx "github.com/jayesh820/AWS-TASK/internal/aws"
)

// Factory hands out one Client per distinct credential triple for the life of
// the session.
type Factory struct {
	mu        sync.Mutex
	clients   map[awsx.Credentials]*Client
	newClient func(aws.Config) *Client
	logger    zerolog.Logger
}

func NewFactory(logger zerolog.Logger) *Factory {
	return &Factory{
		clients:   map[awsx.Credentials]*Client{},
		newClient: NewClient,
		logger:    logger,
	}
}

// Client returns the cached client for creds, building it on first use. Nothing
// is sent to AWS here; bad keys or a bad region fail on the first request.
func (f *Factory) Client(creds awsx.Credentials) *Client {
	f.mu.Lock()
	defer f.mu.Unlock()

	if c, ok := f.clients[creds]; ok {
		return c
	}
	c := f.newClient(creds.Config())
	f.clients[creds] = c
	f.logger.Debug().Object("creds", creds).Msg("created log service client")
	return c
}

// FromConfig wraps a config resolved elsewhere (shared profile). It is not
// cached since there is no credential triple to key it on.
func (f *Factory) FromConfig(cfg aws.Config) *Client {
	f.logger.Debug().Str("region", cfg.Region).Msg("created log service client from shared config")
	return f.newClient(cfg)
}
