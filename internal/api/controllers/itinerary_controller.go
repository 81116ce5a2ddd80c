package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tripcraft/internal/models/request_models"
	"tripcraft/internal/services"
	"tripcraft/pkg/utils"
)

var (
	itineraryMessages = utils.ErrorMessages{
		BadRequest: "Please provide destination, days, and interests",
		Failure:    "Failed to generate itinerary",
	}
	suggestionMessages = utils.ErrorMessages{
		BadRequest: "Please provide destination and interests",
		Failure:    "Failed to generate suggestions",
	}
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

// GenerateItineraryHandler godoc
// @Summary Generate a day-by-day itinerary
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.ItineraryRequest true "destination, days, interests"
// @Success 200 {object} map[string][]response_models.ScheduledActivity
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/generate-itinerary [post]
func (i *ItineraryController) GenerateItineraryHandler(c *gin.Context) {
	var req request_models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, itineraryMessages.BadRequest)
		return
	}

	itinerary, err := i.itineraryService.GenerateItinerary(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err, itineraryMessages)
		return
	}

	utils.RespondSuccess(c, itinerary)
}

// GenerateSuggestionsHandler godoc
// @Summary Suggest extra activities not tied to a day
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.SuggestionRequest true "destination, interests"
// @Success 200 {object} response_models.SuggestionsResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/generate-suggestions [post]
func (i *ItineraryController) GenerateSuggestionsHandler(c *gin.Context) {
	var req request_models.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, suggestionMessages.BadRequest)
		return
	}

	resp, err := i.itineraryService.GenerateSuggestions(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err, suggestionMessages)
		return
	}

	utils.RespondSuccess(c, resp)
}
