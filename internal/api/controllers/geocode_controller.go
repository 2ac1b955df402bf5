package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"tripnect/internal/services"
	"tripnect/pkg/utils"
)

type GeocodeController struct {
	geocodeService services.GeocodeServiceInterface
}

func NewGeocodeController(geocodeService services.GeocodeServiceInterface) *GeocodeController {
	return &GeocodeController{geocodeService: geocodeService}
}

// Geocode godoc
// @Summary Search a place
// @Description Forward geocoding restricted to the home country, up to five results
// @Tags Geocode
// @Produce json
// @Param location query string true "Free-text place"
// @Success 200 {object} utils.APIResponse{data=response_models.GeocodeResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /geocode [get]
func (g *GeocodeController) Geocode(c *gin.Context) {
	out, err := g.geocodeService.Search(c.Request.Context(), c.Query("location"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "Location geocoded successfully")
}

// Reverse godoc
// @Summary Reverse geocode a coordinate
// @Tags Geocode
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Success 200 {object} utils.APIResponse{data=response_models.ReverseGeocodeResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /geocode/reverse [get]
func (g *GeocodeController) Reverse(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		utils.RespondError(c, http.StatusBadRequest, "Valid latitude and longitude are required")
		return
	}

	out, err := g.geocodeService.Reverse(c.Request.Context(), lat, lng)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "Location reverse geocoded successfully")
}
