package controllers

import (
	"github.com/gin-gonic/gin"
	"tripnect/internal/models/request_models"
	"tripnect/internal/services"
	"tripnect/pkg/utils"
)

type GroupTripController struct {
	groupTripService services.GroupTripServiceInterface
}

func NewGroupTripController(groupTripService services.GroupTripServiceInterface) *GroupTripController {
	return &GroupTripController{groupTripService: groupTripService}
}

// Create godoc
// @Summary Host a group trip
// @Tags GroupTrips
// @Accept json
// @Produce json
// @Param request body request_models.CreateGroupTripRequest true "Group trip"
// @Success 201 {object} utils.APIResponse{data=response_models.GroupTripResponse}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /group-trips [post]
func (g *GroupTripController) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.CreateGroupTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	trip, err := g.groupTripService.Create(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, trip, "Trip created successfully")
}

// Feed godoc
// @Summary Browse active group trips
// @Tags GroupTrips
// @Produce json
// @Param page query int false "Page" default(1)
// @Param per_page query int false "Page size" default(10) maximum(50)
// @Param destination query string false "Destination contains"
// @Param start_date_from query string false "Earliest start date"
// @Param start_date_to query string false "Latest start date"
// @Param budget_min query number false "Minimum budget"
// @Param budget_max query number false "Maximum budget"
// @Param available_slots_only query bool false "Only trips with free seats"
// @Success 200 {object} utils.APIResponse{data=response_models.GroupTripFeedResponse}
// @Router /group-trips/feed [get]
func (g *GroupTripController) Feed(c *gin.Context) {
	var q request_models.GroupTripFeedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	feed, err := g.groupTripService.Feed(c.Request.Context(), q)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, feed, "Trips fetched successfully")
}

// Get godoc
// @Summary Group trip detail with participants
// @Tags GroupTrips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} utils.APIResponse{data=response_models.GroupTripResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /group-trips/{id} [get]
func (g *GroupTripController) Get(c *gin.Context) {
	trip, err := g.groupTripService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, trip, "Trip fetched successfully")
}

// Mine godoc
// @Summary Group trips I host or joined
// @Tags GroupTrips
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.GroupTripResponse}
// @Security BearerAuth
// @Router /group-trips/mine [get]
func (g *GroupTripController) Mine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	trips, err := g.groupTripService.Mine(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}

// Update godoc
// @Summary Update a hosted group trip
// @Tags GroupTrips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body request_models.UpdateGroupTripRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=response_models.GroupTripResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /group-trips/{id} [put]
func (g *GroupTripController) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.UpdateGroupTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	trip, err := g.groupTripService.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, trip, "Trip updated successfully")
}

// Cancel godoc
// @Summary Cancel a hosted group trip
// @Tags GroupTrips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /group-trips/{id} [delete]
func (g *GroupTripController) Cancel(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := g.groupTripService.Cancel(c.Request.Context(), userID, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Trip cancelled successfully")
}

// SearchDestinations godoc
// @Summary Autocomplete destinations of active trips
// @Tags GroupTrips
// @Produce json
// @Param q query string true "At least two characters"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /group-trips/destinations [get]
func (g *GroupTripController) SearchDestinations(c *gin.Context) {
	out, err := g.groupTripService.SearchDestinations(c.Request.Context(), c.Query("q"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"destinations": out}, "Destinations fetched successfully")
}

// ListParticipants godoc
// @Summary Participants of a group trip
// @Tags GroupTrips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} utils.APIResponse{data=[]response_models.ParticipantResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /group-trips/{id}/participants [get]
func (g *GroupTripController) ListParticipants(c *gin.Context) {
	out, err := g.groupTripService.ListParticipants(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "Participants fetched successfully")
}

// RemoveParticipant godoc
// @Summary Remove a participant
// @Description The host may remove anyone but themselves; members may leave
// @Tags GroupTrips
// @Produce json
// @Param id path string true "Trip ID"
// @Param participantId path string true "Participant ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /group-trips/{id}/participants/{participantId} [delete]
func (g *GroupTripController) RemoveParticipant(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	err := g.groupTripService.RemoveParticipant(c.Request.Context(), userID, c.Param("id"), c.Param("participantId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Participant removed successfully")
}
