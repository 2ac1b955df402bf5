package services

import (
	"strings"
	"time"

	"tripnect/internal/models/request_models"
	"tripnect/pkg/utils"
)

const MaxTripDays = 30

// TripWindow is a validated date range.
type TripWindow struct {
	Start    time.Time
	End      time.Time
	Duration int
}

// ValidateTripDates checks the ISO dates of a new trip against now. The start
// may not lie before now, so a date-only start equal to today is rejected.
func ValidateTripDates(startDate, endDate string, now time.Time) (TripWindow, error) {
	verr := &utils.ValidationError{}

	start, err := utils.ParseTripDate(startDate)
	if err != nil {
		verr.Add("startDate", "Valid start date is required")
	}
	end, err2 := utils.ParseTripDate(endDate)
	if err2 != nil {
		verr.Add("endDate", "Valid end date is required")
	}
	if err != nil || err2 != nil {
		return TripWindow{}, verr
	}

	if start.Before(now) {
		verr.Add("startDate", "Start date cannot be in the past")
	}
	if !end.After(start) {
		verr.Add("endDate", "End date must be after start date")
		return TripWindow{}, verr
	}

	duration := utils.DaySpan(start, end)
	if duration > MaxTripDays {
		verr.Add("endDate", "Trip duration cannot exceed 30 days")
	}

	if err := verr.OrNil(); err != nil {
		return TripWindow{}, err
	}
	return TripWindow{Start: start, End: end, Duration: duration}, nil
}

// ValidateGenerateRequest runs every check that does not need the network.
func ValidateGenerateRequest(req request_models.GenerateItineraryRequest, now time.Time) (TripWindow, error) {
	verr := &utils.ValidationError{}
	if strings.TrimSpace(req.StartLocation) == "" {
		verr.Add("startLocation", "Start location is required")
	}
	if strings.TrimSpace(req.Destination) == "" {
		verr.Add("destination", "Destination is required")
	}
	if req.Travelers < 1 || req.Travelers > 20 {
		verr.Add("travelers", "Travelers must be between 1 and 20")
	}
	switch req.BudgetLevel {
	case BudgetLow, BudgetMedium, BudgetHigh:
	default:
		verr.Add("budgetLevel", "Budget level must be low, medium, or high")
	}

	window, err := ValidateTripDates(req.StartDate, req.EndDate, now)
	if dateErr, ok := err.(*utils.ValidationError); ok {
		verr.Fields = append(verr.Fields, dateErr.Fields...)
	}

	if err := verr.OrNil(); err != nil {
		return TripWindow{}, err
	}
	return window, nil
}

func cleanInterests(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
