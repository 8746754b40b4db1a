package logs

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

const pageLimit = 50

// CloudWatchLogsAPI captures the AWS SDK methods we use.
type CloudWatchLogsAPI interface {
	DescribeLogGroups(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error)
	DescribeLogStreams(ctx context.Context, params *cloudwatchlogs.DescribeLogStreamsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error)
	GetLogEvents(ctx context.Context, params *cloudwatchlogs.GetLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.GetLogEventsOutput, error)
}

// Client is a handle to CloudWatch Logs bound to one set of credentials and one
// region. Its pointer identity is what session caches are keyed on.
type Client struct {
	api CloudWatchLogsAPI
	cfg aws.Config
}

func NewClient(cfg aws.Config) *Client {
	return NewClientFromAPI(cloudwatchlogs.NewFromConfig(cfg), cfg)
}

// NewClientFromAPI wraps an existing API implementation, such as a stub.
func NewClientFromAPI(api CloudWatchLogsAPI, cfg aws.Config) *Client {
	return &Client{api: api, cfg: cfg}
}

// Config returns the aws.Config the client was built from.
func (c *Client) Config() aws.Config {
	return c.cfg
}

func (c *Client) Region() string {
	return c.cfg.Region
}

// ListLogGroups returns every log group name, following all pages. Order is the
// order the service returns them in.
func (c *Client) ListLogGroups(ctx context.Context) ([]string, error) {
	p := cloudwatchlogs.NewDescribeLogGroupsPaginator(c.api, &cloudwatchlogs.DescribeLogGroupsInput{
		Limit: aws.Int32(pageLimit),
	}, stopOnDuplicateGroupToken)

	var names []string
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe log groups: %w", err)
		}
		for _, g := range out.LogGroups {
			names = append(names, aws.ToString(g.LogGroupName))
		}
	}
	return names, nil
}

// ListLogStreams returns every stream name in group, most recently written
// first. The service does the ordering; the result is not re-sorted.
func (c *Client) ListLogStreams(ctx context.Context, group string) ([]string, error) {
	p := cloudwatchlogs.NewDescribeLogStreamsPaginator(c.api, &cloudwatchlogs.DescribeLogStreamsInput{
		LogGroupName: aws.String(group),
		OrderBy:      types.OrderByLastEventTime,
		Descending:   aws.Bool(true),
		Limit:        aws.Int32(pageLimit),
	}, stopOnDuplicateStreamToken)

	var names []string
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe log streams for %s: %w", group, err)
		}
		for _, s := range out.LogStreams {
			names = append(names, aws.ToString(s.LogStreamName))
		}
	}
	return names, nil
}

// GetLogEvents reads the first page of a stream, oldest event first. Later pages
// are not requested. The SDK error is returned as is.
func (c *Client) GetLogEvents(ctx context.Context, group, stream string) ([]Event, error) {
	out, err := c.api.GetLogEvents(ctx, &cloudwatchlogs.GetLogEventsInput{
		LogGroupName:  aws.String(group),
		LogStreamName: aws.String(stream),
		StartFromHead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(out.Events))
	for _, e := range out.Events {
		events = append(events, Event{
			Timestamp: time.UnixMilli(aws.ToInt64(e.Timestamp)),
			Message:   aws.ToString(e.Message),
		})
	}
	return events, nil
}

func stopOnDuplicateGroupToken(o *cloudwatchlogs.DescribeLogGroupsPaginatorOptions) {
	o.StopOnDuplicateToken = true
}

func stopOnDuplicateStreamToken(o *cloudwatchlogs.DescribeLogStreamsPaginatorOptions) {
	o.StopOnDuplicateToken = true
}
