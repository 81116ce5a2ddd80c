package itinerary_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tripcraft/internal/config"
	"tripcraft/internal/repositories"
	"tripcraft/internal/services"
	"tripcraft/pkg/utils"
)

var Module = fx.Provide(
	provideGenerationRepo, provideItineraryService)

func provideGenerationRepo(db *gorm.DB) repositories.IGenerationRepository {
	return repositories.NewGenerationRepository(db)
}

func provideItineraryService(
	completion utils.CompletionClientInterface,
	validator services.ResponseValidatorInterface,
	generations repositories.IGenerationRepository,
	cfg *config.Config,
	logger *zap.Logger,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(
		completion,
		validator,
		generations,
		services.ItineraryServiceOptions{
			MaxDays: cfg.MaxDays,
			Timeout: cfg.Completion.Timeout,
		},
		logger,
	)
}
