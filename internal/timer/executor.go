// Package timer turns routed voice text into OS-level notification timers.
package timer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"murmur/internal/domain"
	"murmur/internal/durations"
	"murmur/internal/ports"
)

// Executor parses spoken timer requests and arms them via a scheduler.
type Executor struct {
	scheduler ports.TimerScheduler
	timeout   time.Duration
}

func NewExecutor(scheduler ports.TimerScheduler, timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Executor{scheduler: scheduler, timeout: timeout}
}

// Execute parses text such as "5 minutes check the oven" and schedules a
// notification. Scheduling is attempted once and never retried.
func (e *Executor) Execute(ctx context.Context, text string) domain.ExecutionResult {
	parsed := durations.Parse(text)
	if !parsed.Found || parsed.Seconds <= 0 {
		return domain.ExecutionResult{
			Success: false,
			Error:   fmt.Sprintf("could not parse timer duration from: %s", text),
		}
	}

	label := strings.Trim(parsed.Label, " .,!?")
	display := label
	if display == "" {
		display = "Timer complete"
	}

	human := FormatHuman(parsed.Seconds)
	delay := FormatDelay(parsed.Seconds)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if err := e.scheduler.Schedule(ctx, delay, "Timer: "+display, human+" elapsed"); err != nil {
		return domain.ExecutionResult{
			Success: false,
			Error:   fmt.Sprintf("failed to set timer: %v", err),
		}
	}

	response := "Timer set for " + human
	if label != "" {
		response += ": " + label
	}
	return domain.ExecutionResult{Success: true, Response: response}
}
