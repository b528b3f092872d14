package collector

import (
	"fmt"
	"log/slog"

	"github.com/qepting91/job-feed/internal/config"
	"github.com/qepting91/job-feed/internal/domain"
)

// NewCollector selects the correct implementation based on the mode
func NewCollector(cfg *config.Config, logger *slog.Logger) (domain.Collector, error) {
	switch cfg.CollectorMode {
	case config.ModeHTTP:
		if cfg.UserAgent == "" {
			return nil, fmt.Errorf("JOBFEED_USER_AGENT is required for http mode")
		}
		return NewHTTPClient(cfg.APIURL, cfg.UserAgent, cfg.RateInterval, cfg.HTTPTimeout, logger)
	case config.ModeMock:
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'http' or 'mock')", cfg.CollectorMode)
	}
}
