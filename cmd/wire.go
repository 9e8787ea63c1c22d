package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	statusadapter "github.com/bnema/telecom-usage-monitor/internal/adapters/render/status"
	staterepo "github.com/bnema/telecom-usage-monitor/internal/adapters/repo/state"
	"github.com/bnema/telecom-usage-monitor/internal/application"
	"github.com/bnema/telecom-usage-monitor/internal/config"
	"github.com/bnema/telecom-usage-monitor/internal/logger"
	"github.com/bnema/telecom-usage-monitor/internal/ports"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	viper          *viper.Viper
	statusRenderer func([]application.AccountStatus, statusadapter.RenderOptions) (string, error)
	lookupEnv      func(string) (string, bool)
	httpClient     *http.Client
	clock          ports.Clock
	now            func() time.Time
}

func wireApp() (*app, error) {
	v := viper.New()
	if err := config.Bind(v); err != nil {
		return nil, fmt.Errorf("wire configuration: %w", err)
	}

	return &app{
		viper:          v,
		statusRenderer: statusadapter.Render,
		lookupEnv:      os.LookupEnv,
		httpClient:     &http.Client{Timeout: 15 * time.Second},
		clock:          ports.SystemClock{},
		now:            time.Now,
	}, nil
}

// session is what every command needs after flags are parsed: validated
// config and a context carrying the logger.
type session struct {
	cfg config.Config
	ctx context.Context
	log *zap.Logger
}

func (a *app) begin(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(a.viper)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cmd.ErrOrStderr(), cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	for _, warning := range cfg.Warnings {
		log.Warn("config fallback", zap.String("detail", warning))
	}

	return &session{cfg: cfg, ctx: logger.WithLogger(cmd.Context(), log), log: log}, nil
}

func (s *session) close() {
	_ = s.log.Sync()
}

func openStateStore(args []string) (*staterepo.Repository, error) {
	store, err := staterepo.NewRepository(resolveStatePath(args))
	if err != nil {
		return nil, fmt.Errorf("wire state store: %w", err)
	}
	return store, nil
}

// resolveStatePath prefers an explicit argument. Without one it uses the
// default TOML document, falling back to the legacy JSON document when only
// that one exists so older deployments keep their counters and snapshots.
func resolveStatePath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if _, err := os.Stat(config.DefaultStatePath); err == nil {
		return config.DefaultStatePath
	}
	if _, err := os.Stat(config.LegacyStatePath); err == nil {
		return config.LegacyStatePath
	}
	return config.DefaultStatePath
}
