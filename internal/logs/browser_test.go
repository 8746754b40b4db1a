package logs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/google/go-cmp/cmp"
)

func TestBrowserLogGroupsCachedPerClient(t *testing.T) {
	api := &fakeLogsAPI{groupPages: [][]string{{"a", "b"}, {"c"}}}
	c := newTestClient(api)
	b := NewBrowser()

	first, err := b.LogGroups(context.Background(), c)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := b.LogGroups(context.Background(), c)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeat call changed result (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, first); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
	if len(api.groupInputs) != 2 {
		t.Fatalf("expected one listing (2 pages), got %d requests", len(api.groupInputs))
	}

	other := newTestClient(&fakeLogsAPI{groupPages: [][]string{{"x"}}})
	got, err := b.LogGroups(context.Background(), other)
	if err != nil {
		t.Fatalf("other: %v", err)
	}
	if diff := cmp.Diff([]string{"x"}, got); diff != "" {
		t.Fatalf("other client got cached groups (-want +got):\n%s", diff)
	}
}

func TestBrowserLogGroupsErrorPropagatesAndIsNotCached(t *testing.T) {
	boom := errors.New("UnrecognizedClientException")
	api := &fakeLogsAPI{groupPages: [][]string{{"a"}}, groupErr: boom}
	c := newTestClient(api)
	b := NewBrowser()

	if _, err := b.LogGroups(context.Background(), c); !errors.Is(err, boom) {
		t.Fatalf("expected error, got %v", err)
	}
	api.groupErr = nil
	got, err := b.LogGroups(context.Background(), c)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if diff := cmp.Diff([]string{"a"}, got); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestBrowserLogStreamsCachedPerClientAndGroup(t *testing.T) {
	api := &fakeLogsAPI{streamPages: [][]string{{"s2", "s1"}}}
	c := newTestClient(api)
	b := NewBrowser()

	for i := 0; i < 3; i++ {
		got, err := b.LogStreams(context.Background(), c, "g1")
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if diff := cmp.Diff([]string{"s2", "s1"}, got); diff != "" {
			t.Fatalf("call %d mismatch (-want +got):\n%s", i, diff)
		}
	}
	if len(api.streamInputs) != 1 {
		t.Fatalf("expected one request, got %d", len(api.streamInputs))
	}

	if _, err := b.LogStreams(context.Background(), c, "g2"); err != nil {
		t.Fatalf("g2: %v", err)
	}
	if len(api.streamInputs) != 2 {
		t.Fatalf("a different group must not hit the cache")
	}
}

func TestBrowserLogStreamsPropagatesError(t *testing.T) {
	boom := errors.New("ResourceNotFoundException")
	b := NewBrowser()
	if _, err := b.LogStreams(context.Background(), newTestClient(&fakeLogsAPI{streamErr: boom}), "gone"); !errors.Is(err, boom) {
		t.Fatalf("expected error, got %v", err)
	}
}

func TestBrowserEventsHappyPath(t *testing.T) {
	api := &fakeLogsAPI{events: []types.OutputLogEvent{
		{Timestamp: aws.Int64(1700000000000), Message: aws.String("  hello  ")},
	}}
	b := NewBrowser()

	got := b.Events(context.Background(), newTestClient(api), "g", "s")
	want := []string{"[" + time.UnixMilli(1700000000000).In(time.Local).Format("2006-01-02 15:04:05") + "] hello"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBrowserEventsKeepsServiceOrder(t *testing.T) {
	api := &fakeLogsAPI{events: []types.OutputLogEvent{
		{Timestamp: aws.Int64(1700000001000), Message: aws.String("b")},
		{Timestamp: aws.Int64(1700000000000), Message: aws.String("a")},
	}}
	b := NewBrowser(WithLocation(time.UTC))

	got := b.Events(context.Background(), newTestClient(api), "g", "s")
	want := []string{"[2023-11-14 22:13:21] b", "[2023-11-14 22:13:20] a"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBrowserEventsErrorBecomesLine(t *testing.T) {
	api := &fakeLogsAPI{eventsErr: errors.New("The specified log stream does not exist.")}
	b := NewBrowser()

	got := b.Events(context.Background(), newTestClient(api), "g", "missing")
	want := []string{"Error fetching logs: The specified log stream does not exist."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBrowserEventsAreNotCached(t *testing.T) {
	api := &fakeLogsAPI{}
	c := newTestClient(api)
	b := NewBrowser()

	b.Events(context.Background(), c, "g", "s")
	b.Events(context.Background(), c, "g", "s")
	if len(api.eventInputs) != 2 {
		t.Fatalf("expected a request per fetch, got %d", len(api.eventInputs))
	}
}

func TestBrowserEventsEmptyStream(t *testing.T) {
	got := NewBrowser().Events(context.Background(), newTestClient(&fakeLogsAPI{}), "g", "s")
	if len(got) != 0 {
		t.Fatalf("expected no lines, got %v", got)
	}
}
