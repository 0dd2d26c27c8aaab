package watcher

import (
	"context"
	"time"

	"github.com/xlgames-inc/XLE-sub005/pkg/logging"
)

// Debouncer batches rapid file system events so a burst of saves triggers a
// single rebuild.
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer creates a new event debouncer. A batch is flushed once no
// event arrived for quietPeriod, or maxWait after its first event.
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 10),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins processing events with debouncing
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

// run processes events and applies debouncing logic
func (d *Debouncer) run(ctx context.Context) {
	var (
		quiet       *time.Timer
		deadline    *time.Timer
		quietC      <-chan time.Time
		deadlineC   <-chan time.Time
		accumulated = make(map[ChangeType][]string)
		seen        = make(map[string]bool)
		eventCount  int
	)

	flush := func() {
		if quiet != nil {
			quiet.Stop()
		}
		if deadline != nil {
			deadline.Stop()
		}
		quiet, deadline, quietC, deadlineC = nil, nil, nil, nil

		if eventCount == 0 {
			return
		}
		logging.Debug("flushing accumulated events", "count", eventCount)

		// Config changes go out before description changes
		for _, t := range []ChangeType{ChangeTypeConfig, ChangeTypeDescription} {
			if paths := accumulated[t]; len(paths) > 0 {
				d.output <- ChangeEvent{Type: t, Paths: paths, Timestamp: time.Now()}
			}
		}

		accumulated = make(map[ChangeType][]string)
		seen = make(map[string]bool)
		eventCount = 0
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			close(d.output)
			return

		case event, ok := <-d.input:
			if !ok {
				flush()
				close(d.output)
				return
			}

			for _, p := range event.Paths {
				if !seen[p] {
					seen[p] = true
					accumulated[event.Type] = append(accumulated[event.Type], p)
				}
			}
			eventCount++

			if quiet == nil {
				quiet = time.NewTimer(d.quietPeriod)
				quietC = quiet.C
			} else {
				quiet.Reset(d.quietPeriod)
			}
			if deadline == nil {
				deadline = time.NewTimer(d.maxWait)
				deadlineC = deadline.C
			}

		case <-quietC:
			flush()

		case <-deadlineC:
			flush()
		}
	}
}

// Output returns the channel of debounced events
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}
