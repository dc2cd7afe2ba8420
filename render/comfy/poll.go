package comfy

import (
	"context"
	"time"

	"github.com/storyforge/renderkit/logger"
)

// ExecStatus is the terminal state of a polled job.
type ExecStatus string

const (
	// ExecCompleted means the job produced outputs.
	ExecCompleted ExecStatus = "completed"
	// ExecFailed means the engine reported an execution error.
	ExecFailed ExecStatus = "failed"
	// ExecTimedOut means the polling bound elapsed without a terminal entry.
	ExecTimedOut ExecStatus = "timed_out"
)

// ExecutionResult is the outcome of one submitted job.
type ExecutionResult struct {
	Status  ExecStatus
	Outputs map[string]NodeOutput
	Err     string
}

// WaitForCompletion polls the history endpoint until the job completes,
// the engine reports an error, or the timeout elapses. Transient poll
// errors are swallowed and counted; only the overall bound terminates
// the loop on persistent failure.
func (c *Client) WaitForCompletion(ctx context.Context, promptID string, interval, timeout time.Duration) *ExecutionResult {
	log := logger.Get("comfy")
	deadline := time.Now().Add(timeout)
	transientErrs := 0
	polls := 0

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return &ExecutionResult{Status: ExecTimedOut, Err: ctx.Err().Error()}
		case <-ticker.C:
		}

		if time.Now().After(deadline) {
			log.Warn("polling timed out", logger.Fields(
				logger.FieldPromptID, promptID,
				"polls", polls,
				"transient_errors", transientErrs,
			))
			return &ExecutionResult{Status: ExecTimedOut, Err: "timed out waiting for completion"}
		}

		polls++
		entry, err := c.History(ctx, promptID)
		if err != nil {
			transientErrs++
			log.Debug("history poll failed", logger.Fields(
				logger.FieldPromptID, promptID,
				logger.FieldError, err.Error(),
			))
			continue
		}
		if entry == nil {
			// Job not yet in history.
			continue
		}

		if jobErr := entry.JobError(); jobErr != "" {
			return &ExecutionResult{Status: ExecFailed, Outputs: entry.Outputs, Err: jobErr}
		}
		if len(entry.Outputs) > 0 {
			log.Info("job completed", logger.Fields(
				logger.FieldPromptID, promptID,
				"polls", polls,
			))
			return &ExecutionResult{Status: ExecCompleted, Outputs: entry.Outputs}
		}
	}
}
