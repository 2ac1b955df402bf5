package utils

import (
	"errors"
	"strings"
)

var (
	ErrDatabaseError      = errors.New("database error")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("user already exists with this email")
	ErrAccountNotFound    = errors.New("account not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	ErrTripNotFound     = errors.New("trip not found")
	ErrInvalidTripID    = errors.New("invalid trip id")
	ErrNoFieldsToUpdate = errors.New("no valid fields to update")

	ErrGeocodingNotConfigured = errors.New("geocoding service not configured")
	ErrGeocodingUnavailable   = errors.New("geocoding service unavailable")
	ErrLocationNotFound       = errors.New("location not found")

	ErrGroupTripNotFound     = errors.New("group trip not found")
	ErrGroupTripNotActive    = errors.New("group trip is not accepting requests")
	ErrTripFull              = errors.New("no available slots")
	ErrOwnTripRequest        = errors.New("cannot request to join your own trip")
	ErrDuplicateJoinRequest  = errors.New("join request already exists")
	ErrAlreadyParticipant    = errors.New("already a participant")
	ErrJoinRequestNotFound   = errors.New("join request not found")
	ErrJoinRequestNotPending = errors.New("join request already processed")
	ErrParticipantNotFound   = errors.New("participant not found")
	ErrCannotRemoveHost      = errors.New("cannot remove the trip host")
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level detail and is rendered as a 400.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Add appends a field error and returns the receiver.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// OrNil returns nil when no field errors were recorded.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}
