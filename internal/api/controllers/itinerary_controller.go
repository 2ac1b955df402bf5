package controllers

import (
	"github.com/gin-gonic/gin"
	"tripnect/internal/models/request_models"
	"tripnect/internal/services"
	"tripnect/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{itineraryService: itineraryService}
}

// Generate godoc
// @Summary Generate a road-trip itinerary
// @Description Resolve both places, ask the configured AI provider for a day-by-day plan, normalize it and save it as a trip
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.GenerateItineraryRequest true "Trip parameters"
// @Success 201 {object} utils.APIResponse{data=response_models.GenerateItineraryResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Security BearerAuth
// @Router /itinerary/generate [post]
func (i *ItineraryController) Generate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req request_models.GenerateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	out, err := i.itineraryService.Generate(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, out, "Itinerary generated successfully")
}
