package ports

import (
	"context"

	"github.com/bnema/telecom-usage-monitor/internal/domain"
)

// CarrierClient is the carrier's customer API. FetchUsage returns an error
// wrapping domain.ErrSessionExpired when the session must be re-established.
type CarrierClient interface {
	Login(ctx context.Context, credential domain.Credential) (domain.Session, error)
	FetchUsage(ctx context.Context, session domain.Session) (domain.UsageData, error)
	FetchAddOnPackages(ctx context.Context, session domain.Session) ([]domain.AddOnPackage, error)
}
