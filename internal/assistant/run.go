package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

const StatusCompleted = "completed"

// ErrRunTimedOut is returned when a run does not reach a terminal status
// within the poll policy's overall timeout.
var ErrRunTimedOut = errors.New("assistant run timed out")

// RunFailedError is returned when the service reports a terminal status
// other than completed.
type RunFailedError struct {
	ThreadID string
	RunID    string
	Status   string
}

func (e *RunFailedError) Error() string {
	return fmt.Sprintf("assistant run failed: thread=%s run=%s status=%s", e.ThreadID, e.RunID, e.Status)
}

// PollPolicy bounds the status-polling wait. The zero value polls every
// 500ms for up to two minutes.
type PollPolicy struct {
	Interval time.Duration
	Timeout  time.Duration
}

func (p PollPolicy) withDefaults() PollPolicy {
	out := p
	if out.Interval <= 0 {
		out.Interval = 500 * time.Millisecond
	}
	if out.Timeout <= 0 {
		out.Timeout = 2 * time.Minute
	}
	return out
}

// Run submits content as a new turn in the thread, starts a generation run
// for the assistant, polls until it completes, and returns the text of the
// newest message in the thread. It blocks the calling goroutine only.
func (c *Client) Run(ctx context.Context, assistantID, threadID, content string, policy PollPolicy) (string, error) {
	policy = policy.withDefaults()

	if err := c.AddMessage(ctx, threadID, content); err != nil {
		return "", err
	}

	runID, err := c.CreateRun(ctx, threadID, assistantID)
	if err != nil {
		return "", err
	}

	if err := c.waitForRun(ctx, threadID, runID, policy); err != nil {
		return "", err
	}

	return c.LatestMessageText(ctx, threadID)
}

func (c *Client) waitForRun(ctx context.Context, threadID, runID string, policy PollPolicy) error {
	deadline := time.Now().Add(policy.Timeout)

	for {
		status, err := c.GetRun(ctx, threadID, runID)
		if err != nil {
			// Transient poll errors are absorbed by the next poll;
			// only the deadline ends the wait.
			log.Printf("[assistant] poll error: thread=%s run=%s err=%v", threadID, runID, err)
		} else {
			switch status {
			case StatusCompleted:
				return nil
			case "failed", "cancelled", "expired", "incomplete":
				return &RunFailedError{ThreadID: threadID, RunID: runID, Status: status}
			}
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("thread=%s run=%s after %s: %w", threadID, runID, policy.Timeout, ErrRunTimedOut)
		}
		if !sleepWithContext(ctx, policy.Interval) {
			return ctx.Err()
		}
	}
}
