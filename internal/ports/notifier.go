package ports

import (
	"context"

	"github.com/bnema/telecom-usage-monitor/internal/domain"
)

type Notifier interface {
	Send(ctx context.Context, title, body string) error
}

// NotifierFactory builds the notifier for a run from the persisted push
// configuration, which may be nil.
type NotifierFactory func(cfg domain.PushConfig) (Notifier, error)
