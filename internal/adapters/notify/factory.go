package notify

import (
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/bnema/telecom-usage-monitor/internal/domain"
	"github.com/bnema/telecom-usage-monitor/internal/ports"
)

const (
	KeyConsole       = "CONSOLE"
	KeyBarkPush      = "BARK_PUSH"
	KeyBarkSound     = "BARK_SOUND"
	KeyPushPlusToken = "PUSH_PLUS_TOKEN"
	KeyPushPlusUser  = "PUSH_PLUS_USER"
	KeyWebhookURL    = "WEBHOOK_URL"
)

var channelKeys = []string{KeyConsole, KeyBarkPush, KeyBarkSound, KeyPushPlusToken, KeyPushPlusUser, KeyWebhookURL}

type FactoryOptions struct {
	// LookupEnv is consulted when the state has no push_config block.
	LookupEnv  func(key string) (string, bool)
	Console    io.Writer
	HTTPClient *http.Client
}

// NewFactory returns a NotifierFactory that builds a Chain from the persisted
// push configuration, falling back to the environment when it is nil.
func NewFactory(opts FactoryOptions) ports.NotifierFactory {
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}

	return func(cfg domain.PushConfig) (ports.Notifier, error) {
		if cfg == nil {
			cfg = configFromEnv(opts.LookupEnv)
		}
		chain, err := Build(cfg, opts.Console, opts.HTTPClient)
		if err != nil {
			return nil, err
		}
		return chain, nil
	}
}

// Build assembles every channel enabled in cfg. CONSOLE is on unless set to
// "false".
func Build(cfg domain.PushConfig, console io.Writer, client *http.Client) (*Chain, error) {
	chain := &Chain{}

	if !strings.EqualFold(strings.TrimSpace(cfg[KeyConsole]), "false") {
		chain.Add("console", Console{Out: console})
	}
	if key := strings.TrimSpace(cfg[KeyBarkPush]); key != "" {
		chain.Add("bark", NewBark(key, cfg[KeyBarkSound], client))
	}
	if token := strings.TrimSpace(cfg[KeyPushPlusToken]); token != "" {
		chain.Add("pushplus", NewPushPlus(token, cfg[KeyPushPlusUser], client))
	}
	if url := strings.TrimSpace(cfg[KeyWebhookURL]); url != "" {
		chain.Add("webhook", NewWebhook(url, client))
	}

	if chain.Len() == 0 {
		return nil, errNoSinks
	}
	return chain, nil
}

func configFromEnv(lookup func(string) (string, bool)) domain.PushConfig {
	cfg := domain.PushConfig{}
	for _, key := range channelKeys {
		if value, ok := lookup(key); ok {
			cfg[key] = value
		}
	}
	return cfg
}
