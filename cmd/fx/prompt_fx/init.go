package prompt_fx

import (
	"context"
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"tripcraft/internal/config"
	"tripcraft/internal/services"
	"tripcraft/pkg/utils"
)

var Module = fx.Provide(
	ProvideCompletionClient,
	ProvideResponseValidator)

// ProvideCompletionClient builds the client for the configured provider.
// Credentials were already checked by config.Load.
func ProvideCompletionClient(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.CompletionClientInterface, error) {
	cc := cfg.Completion
	client, err := utils.NewCompletionClient(context.Background(), cc.Provider, cc.APIKey, cc.Model, cc.BaseURL)
	if err != nil {
		return nil, err
	}

	logger.Info("completion client ready",
		zap.String("provider", client.Provider()),
		zap.String("model", client.Model()),
		zap.Duration("timeout", cc.Timeout),
	)

	if closer, ok := client.(io.Closer); ok {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return closer.Close() },
		})
	}
	return client, nil
}

func ProvideResponseValidator(cfg *config.Config) services.ResponseValidatorInterface {
	return services.NewResponseValidator(cfg.StrictSchema)
}
