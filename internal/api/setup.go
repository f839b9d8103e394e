package api

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/eventsphere-api/internal/client"
	"github.com/fakhrymubarak/eventsphere-api/internal/config"
	"github.com/fakhrymubarak/eventsphere-api/internal/offline"
	"github.com/fakhrymubarak/eventsphere-api/internal/redis"
	"github.com/fakhrymubarak/eventsphere-api/internal/transport"
)

// NewFromConfig wires transport, retrying client, offline provider and the
// optional Redis snapshot from cfg. httpClient may be nil.
func NewFromConfig(cfg *config.Config, logger *zap.SugaredLogger, httpClient *http.Client) (*EventSphere, error) {
	tc, err := transport.New(cfg.BaseURL,
		transport.WithHTTPClient(httpClient),
		transport.WithUserAgent(cfg.UserAgent),
		transport.WithLogger(logger),
		transport.WithAPICallLogging(cfg.LogAPICalls),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transport: %w", err)
	}
	rc := client.New(tc, client.PolicyFromConfig(cfg), client.WithLogger(logger))

	opts := []Option{WithLogger(logger)}
	if !cfg.FallbackEnabled {
		return New(NewRemote(rc), opts...), nil
	}

	bundled, err := offline.Bundled()
	if err != nil {
		return nil, err
	}
	var source offline.EventSource = bundled
	if cfg.RedisEnabled {
		snapshot := redis.NewEventSnapshot(redis.GetClient(), cfg.SnapshotKey, cfg.SnapshotTTL)
		source = offline.Chain{snapshot, bundled}
		opts = append(opts, WithSnapshot(snapshot))
	}
	opts = append(opts, WithOffline(offline.NewProvider(source)))

	return New(NewRemote(rc), opts...), nil
}
