package awsx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/rs/zerolog"
)

// DefaultRegion is offered in the credential form when nothing else is configured.
const DefaultRegion = "us-east-1"

var (
	ErrMissingCredentials = errors.New("access key and secret key are required")
	ErrMissingRegion      = errors.New("region is required")
)

// Credentials is the triple a session is scoped to. It is comparable, so it can
// key a map directly. The secret never leaves this value except through Config.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

// Validate only checks for empty fields; bad keys surface on the first real call.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.AccessKeyID) == "" || strings.TrimSpace(c.SecretAccessKey) == "" {
		return ErrMissingCredentials
	}
	if strings.TrimSpace(c.Region) == "" {
		return ErrMissingRegion
	}
	return nil
}

// Config builds an aws.Config backed by a static provider. It reads no shared
// files and makes no network calls.
func (c Credentials) Config() aws.Config {
	provider := credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, "")
	return aws.Config{
		Region:      c.Region,
		Credentials: aws.NewCredentialsCache(provider),
	}
}

func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{AccessKeyID: %s, Region: %s}", c.MaskedAccessKey(), c.Region)
}

func (c Credentials) GoString() string {
	return c.String()
}

// MarshalZerologObject keeps the secret out of structured logs.
func (c Credentials) MarshalZerologObject(e *zerolog.Event) {
	e.Str("access_key_id", c.MaskedAccessKey()).Str("region", c.Region)
}

// MaskedAccessKey shows only the last four characters of the access key.
func (c Credentials) MaskedAccessKey() string {
	key := c.AccessKeyID
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
