package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"tripcraft/internal/models/db_models"
	"tripcraft/internal/models/request_models"
	"tripcraft/internal/models/response_models"
	"tripcraft/internal/repositories"
	"tripcraft/pkg/utils"
)

type ItineraryServiceInterface interface {
	GenerateItinerary(ctx context.Context, req request_models.ItineraryRequest) (response_models.Itinerary, error)
	GenerateSuggestions(ctx context.Context, req request_models.SuggestionRequest) (response_models.SuggestionsResponse, error)
	GenerationStats(ctx context.Context) (GenerationStats, error)
}

// ItineraryServiceOptions are the request limits the pipeline enforces.
type ItineraryServiceOptions struct {
	MaxDays int
	// Timeout bounds the outbound completion call; zero leaves only the
	// request context.
	Timeout time.Duration
}

// GenerationStats counts logged completion calls per kind and status.
type GenerationStats map[db_models.GenerationKind]map[db_models.GenerationStatus]int64

type ItineraryService struct {
	completion  utils.CompletionClientInterface
	validator   ResponseValidatorInterface
	generations repositories.IGenerationRepository
	opts        ItineraryServiceOptions
	logger      *zap.Logger
}

func NewItineraryService(
	completion utils.CompletionClientInterface,
	validator ResponseValidatorInterface,
	generations repositories.IGenerationRepository,
	opts ItineraryServiceOptions,
	logger *zap.Logger,
) ItineraryServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItineraryService{
		completion:  completion,
		validator:   validator,
		generations: generations,
		opts:        opts,
		logger:      logger.Named("itinerary"),
	}
}

func (s *ItineraryService) GenerateItinerary(ctx context.Context, req request_models.ItineraryRequest) (response_models.Itinerary, error) {
	if strings.TrimSpace(req.Destination) == "" || strings.TrimSpace(req.Interests) == "" || req.Days < 1 {
		return response_models.Itinerary{}, utils.ErrInvalidInput
	}
	if s.opts.MaxDays > 0 && int(req.Days) > s.opts.MaxDays {
		return response_models.Itinerary{}, fmt.Errorf("%w: %d > %d", utils.ErrTooManyDays, req.Days, s.opts.MaxDays)
	}

	prompt := BuildItineraryPrompt(req.Destination, int(req.Days), req.Interests)
	record := s.newRecord(ctx, db_models.GenerationKindItinerary, req, req.Interests, prompt)

	raw, err := s.complete(ctx, prompt, record)
	if err != nil {
		return response_models.Itinerary{}, fmt.Errorf("generate itinerary: %w", err)
	}

	itinerary, err := s.validator.ValidateItinerary(raw)
	if err != nil {
		s.fail(ctx, record, db_models.GenerationStatusMalformed, err)
		return response_models.Itinerary{}, fmt.Errorf("generate itinerary: %w", err)
	}

	s.finish(ctx, record, db_models.GenerationStatusOK, "")
	s.logger.Info("itinerary generated",
		zap.String("trace_id", record.TraceID),
		zap.Int("days_requested", int(req.Days)),
		zap.Strings("days_returned", itinerary.Labels()),
		zap.Int64("latency_ms", record.LatencyMs),
	)
	return itinerary, nil
}

func (s *ItineraryService) GenerateSuggestions(ctx context.Context, req request_models.SuggestionRequest) (response_models.SuggestionsResponse, error) {
	if strings.TrimSpace(req.Destination) == "" || strings.TrimSpace(req.Interests) == "" {
		return response_models.SuggestionsResponse{}, utils.ErrInvalidInput
	}

	prompt := BuildSuggestionsPrompt(req.Destination, req.Interests)
	record := s.newRecord(ctx, db_models.GenerationKindSuggestions, req, req.Interests, prompt)

	raw, err := s.complete(ctx, prompt, record)
	if err != nil {
		return response_models.SuggestionsResponse{}, fmt.Errorf("generate suggestions: %w", err)
	}

	suggestions, err := s.validator.ValidateSuggestions(raw)
	if err != nil {
		s.fail(ctx, record, db_models.GenerationStatusMalformed, err)
		return response_models.SuggestionsResponse{}, fmt.Errorf("generate suggestions: %w", err)
	}

	s.finish(ctx, record, db_models.GenerationStatusOK, "")
	s.logger.Info("suggestions generated",
		zap.String("trace_id", record.TraceID),
		zap.Int("count", len(suggestions)),
		zap.Int64("latency_ms", record.LatencyMs),
	)
	return response_models.SuggestionsResponse{Suggestions: suggestions}, nil
}

func (s *ItineraryService) GenerationStats(ctx context.Context) (GenerationStats, error) {
	stats := GenerationStats{}
	for _, kind := range []db_models.GenerationKind{db_models.GenerationKindItinerary, db_models.GenerationKindSuggestions} {
		counts := map[db_models.GenerationStatus]int64{}
		for _, status := range []db_models.GenerationStatus{
			db_models.GenerationStatusOK,
			db_models.GenerationStatusUpstreamError,
			db_models.GenerationStatusMalformed,
		} {
			n, err := s.generations.CountByStatus(ctx, kind, status)
			if err != nil {
				return nil, fmt.Errorf("count %s/%s generations: %w", kind, status, err)
			}
			counts[status] = n
		}
		stats[kind] = counts
	}
	return stats, nil
}

// complete makes the single outbound call. Errors that did not come from a
// completion client are still reported as generation failures.
func (s *ItineraryService) complete(ctx context.Context, prompt string, record *db_models.GenerationRecord) (string, error) {
	callCtx := ctx
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	started := time.Now()
	raw, err := s.completion.Complete(callCtx, prompt)
	record.LatencyMs = time.Since(started).Milliseconds()
	record.RawOutput = raw

	if err != nil {
		if !utils.IsUpstreamError(err) {
			err = fmt.Errorf("%w: %w", utils.ErrGenerationFailed, err)
		}
		s.fail(ctx, record, db_models.GenerationStatusUpstreamError, err)
		return "", err
	}
	return raw, nil
}

func (s *ItineraryService) newRecord(ctx context.Context, kind db_models.GenerationKind, req any, interests, prompt string) *db_models.GenerationRecord {
	payload, err := json.Marshal(req)
	if err != nil {
		payload = []byte("null")
	}
	return &db_models.GenerationRecord{
		TraceID:      utils.TraceIDFromContext(ctx),
		Kind:         kind,
		Provider:     s.completion.Provider(),
		Model:        s.completion.Model(),
		Request:      datatypes.JSON(payload),
		InterestTags: SplitInterestTags(interests),
		Prompt:       prompt,
	}
}

func (s *ItineraryService) fail(ctx context.Context, record *db_models.GenerationRecord, status db_models.GenerationStatus, err error) {
	s.logger.Error("generation failed",
		zap.String("trace_id", record.TraceID),
		zap.String("kind", string(record.Kind)),
		zap.String("status", string(status)),
		zap.String("raw_output", record.RawOutput),
		zap.Error(err),
	)
	s.finish(ctx, record, status, err.Error())
}

// finish writes the generation log row. It ignores request cancellation and a
// failed write is only logged.
func (s *ItineraryService) finish(ctx context.Context, record *db_models.GenerationRecord, status db_models.GenerationStatus, errText string) {
	record.Status = status
	record.ErrorText = errText
	if err := s.generations.Create(context.WithoutCancel(ctx), record); err != nil {
		s.logger.Warn("could not store generation record",
			zap.String("trace_id", record.TraceID),
			zap.Error(err),
		)
	}
}
