package memcache_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"tripcraft/internal/config"
	mem "tripcraft/pkg/memcache"
)

var Module = fx.Provide(provideVisitorLimiters)

// provideVisitorLimiters returns a nil store when RATE_LIMIT_RPS is 0, which
// turns the rate limit middleware into a pass-through.
func provideVisitorLimiters(cfg *config.Config, logger *zap.Logger) mem.VisitorLimiterStore {
	if !cfg.RateLimit.Enabled() {
		return nil
	}
	logger.Info("rate limiting enabled",
		zap.Float64("rps", cfg.RateLimit.RPS),
		zap.Int("burst", cfg.RateLimit.Burst),
	)
	return mem.NewVisitorLimiters(cfg.RateLimit.RPS, cfg.RateLimit.Burst, mem.DefaultVisitorIdle)
}
