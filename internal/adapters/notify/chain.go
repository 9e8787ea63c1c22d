package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/telecom-usage-monitor/internal/ports"
)

var errNoSinks = errors.New("no notification channel configured")

// Chain fans every batch out to all sinks. A failing sink does not stop the
// remaining ones; failures are joined.
type Chain struct {
	sinks []namedSink
}

type namedSink struct {
	name string
	sink ports.Notifier
}

var _ ports.Notifier = (*Chain)(nil)

func (c *Chain) Add(name string, sink ports.Notifier) {
	c.sinks = append(c.sinks, namedSink{name: name, sink: sink})
}

func (c *Chain) Len() int {
	return len(c.sinks)
}

func (c *Chain) Names() []string {
	names := make([]string, 0, len(c.sinks))
	for _, s := range c.sinks {
		names = append(names, s.name)
	}
	return names
}

func (c *Chain) Send(ctx context.Context, title, body string) error {
	if len(c.sinks) == 0 {
		return errNoSinks
	}

	var errs []error
	for _, s := range c.sinks {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := s.sink.Send(ctx, title, body); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
			if shouldStop(err) {
				break
			}
		}
	}

	return errors.Join(errs...)
}

func shouldStop(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
