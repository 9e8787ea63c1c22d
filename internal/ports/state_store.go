package ports

import (
	"context"

	"github.com/bnema/telecom-usage-monitor/internal/domain"
)

type StateStore interface {
	Load(ctx context.Context) (domain.State, error)
	Save(ctx context.Context, state domain.State) error
}
