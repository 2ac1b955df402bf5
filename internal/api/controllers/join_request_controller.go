package controllers

import (
	"github.com/gin-gonic/gin"
	"tripnect/internal/models/request_models"
	"tripnect/internal/services"
	"tripnect/pkg/utils"
)

type JoinRequestController struct {
	joinRequestService services.JoinRequestServiceInterface
}

func NewJoinRequestController(joinRequestService services.JoinRequestServiceInterface) *JoinRequestController {
	return &JoinRequestController{joinRequestService: joinRequestService}
}

// Create godoc
// @Summary Ask to join a group trip
// @Tags JoinRequests
// @Accept json
// @Produce json
// @Param request body request_models.CreateJoinRequest true "Join request"
// @Success 201 {object} utils.APIResponse{data=response_models.JoinRequestResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /join-requests [post]
func (j *JoinRequestController) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.CreateJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	out, err := j.joinRequestService.Create(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, out, "Request sent successfully")
}

// ListForTrip godoc
// @Summary Join requests of a hosted trip
// @Tags JoinRequests
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} utils.APIResponse{data=[]response_models.JoinRequestResponse}
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /join-requests/trip/{tripId} [get]
func (j *JoinRequestController) ListForTrip(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	out, err := j.joinRequestService.ListForTrip(c.Request.Context(), userID, c.Param("tripId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "Requests fetched successfully")
}

// ListMine godoc
// @Summary My join requests
// @Tags JoinRequests
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.JoinRequestResponse}
// @Security BearerAuth
// @Router /join-requests/mine [get]
func (j *JoinRequestController) ListMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	out, err := j.joinRequestService.ListMine(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "Requests fetched successfully")
}

// Respond godoc
// @Summary Accept or reject a join request
// @Tags JoinRequests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body request_models.RespondJoinRequest true "Decision"
// @Success 200 {object} utils.APIResponse{data=response_models.JoinRequestResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /join-requests/{id} [put]
func (j *JoinRequestController) Respond(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.RespondJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	out, err := j.joinRequestService.Respond(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "Request "+req.Status+" successfully")
}

// Withdraw godoc
// @Summary Withdraw my join request
// @Tags JoinRequests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /join-requests/{id} [delete]
func (j *JoinRequestController) Withdraw(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := j.joinRequestService.Withdraw(c.Request.Context(), userID, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Request withdrawn successfully")
}
