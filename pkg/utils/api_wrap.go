package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"tripnect/pkg/llm"
)

type APIResponse struct {
	Status  string       `json:"status"`
	Code    int          `json:"code"`
	Message string       `json:"message,omitempty"`
	TraceID string       `json:"trace_id,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusCreated, data, message)
}

func respond(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func respondFieldErrors(c *gin.Context, fields []FieldError) {
	c.JSON(http.StatusBadRequest, APIResponse{
		Status:  "error",
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		TraceID: traceID(c),
		Errors:  fields,
	})
}

// RespondBindingError renders a ShouldBind* failure with per-field detail.
func RespondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: lowerFirst(fe.Field()), Message: bindingMessage(fe)})
	}
	respondFieldErrors(c, fields)
}

func bindingMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Valid email is required"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func HandleServiceError(c *gin.Context, err error) {
	var verr *ValidationError
	var perr *llm.ProviderError

	switch {
	case errors.As(err, &verr):
		respondFieldErrors(c, verr.Fields)
	case errors.As(err, &perr):
		handleProviderError(c, perr)

	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusBadRequest, "User already exists with this email")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, "You are not allowed to perform this action")

	case errors.Is(err, ErrTripNotFound):
		RespondError(c, http.StatusNotFound, "Trip not found")
	case errors.Is(err, ErrInvalidTripID):
		RespondError(c, http.StatusBadRequest, "Invalid trip ID")
	case errors.Is(err, ErrNoFieldsToUpdate):
		RespondError(c, http.StatusBadRequest, "No valid fields to update")

	case errors.Is(err, ErrGeocodingNotConfigured):
		RespondError(c, http.StatusInternalServerError, "Geocoding service not configured")
	case errors.Is(err, ErrLocationNotFound):
		RespondError(c, http.StatusNotFound, "Location not found")
	case errors.Is(err, ErrGeocodingUnavailable):
		zap.L().Error("geocoding failed", zap.String("trace_id", traceID(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Failed to geocode location")

	case errors.Is(err, ErrGroupTripNotFound):
		RespondError(c, http.StatusNotFound, "Trip not found")
	case errors.Is(err, ErrJoinRequestNotFound):
		RespondError(c, http.StatusNotFound, "Request not found")
	case errors.Is(err, ErrParticipantNotFound):
		RespondError(c, http.StatusNotFound, "Participant not found")
	case errors.Is(err, ErrGroupTripNotActive):
		RespondError(c, http.StatusBadRequest, "Trip is not accepting requests")
	case errors.Is(err, ErrTripFull):
		RespondError(c, http.StatusBadRequest, "No available slots")
	case errors.Is(err, ErrOwnTripRequest):
		RespondError(c, http.StatusBadRequest, "Cannot request to join your own trip")
	case errors.Is(err, ErrDuplicateJoinRequest):
		RespondError(c, http.StatusBadRequest, "Request already exists")
	case errors.Is(err, ErrAlreadyParticipant):
		RespondError(c, http.StatusBadRequest, "Already a participant")
	case errors.Is(err, ErrJoinRequestNotPending):
		RespondError(c, http.StatusBadRequest, "Request already processed")
	case errors.Is(err, ErrCannotRemoveHost):
		RespondError(c, http.StatusBadRequest, "Cannot remove trip host")

	case errors.Is(err, ErrDatabaseError):
		zap.L().Error("database error", zap.String("trace_id", traceID(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		zap.L().Error("unhandled service error", zap.String("trace_id", traceID(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func handleProviderError(c *gin.Context, err *llm.ProviderError) {
	zap.L().Warn("generation provider error",
		zap.String("trace_id", traceID(c)),
		zap.String("provider", err.Provider),
		zap.String("kind", err.Kind.String()),
		zap.Error(err))

	switch err.Kind {
	case llm.KindRateLimited:
		RespondError(c, http.StatusTooManyRequests, "AI service rate limit exceeded. Please try again in a few minutes.")
	case llm.KindUnauthorized:
		RespondError(c, http.StatusInternalServerError, "AI service configuration error. Please contact support.")
	case llm.KindQuotaExceeded:
		RespondError(c, http.StatusServiceUnavailable, "AI service quota exceeded. Please try again later.")
	case llm.KindServiceUnavailable:
		RespondError(c, http.StatusServiceUnavailable, "AI service is temporarily unavailable. Please try again later.")
	case llm.KindContentFiltered:
		RespondError(c, http.StatusInternalServerError, "Content was blocked by the AI safety filters. Please rephrase your request.")
	default:
		RespondError(c, http.StatusInternalServerError, "Failed to generate itinerary. Please try again.")
	}
}
