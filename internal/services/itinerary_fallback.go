package services

import (
	"fmt"
	"strings"

	resp "tripnect/internal/models/response_models"
)

const (
	BudgetLow    = "low"
	BudgetMedium = "medium"
	BudgetHigh   = "high"

	kmPerDayEstimate = 200
)

var costRanges = map[string]string{
	BudgetLow:    "₹15,000-25,000 per person",
	BudgetMedium: "₹25,000-50,000 per person",
	BudgetHigh:   "₹50,000-100,000 per person",
}

var dailyBudgetRanges = map[string]string{
	BudgetLow:    "₹1,000-3,000 per day",
	BudgetMedium: "₹3,000-7,000 per day",
	BudgetHigh:   "₹7,000+ per day",
}

// CostRange is the per-person trip estimate for a budget tier. Unknown tiers
// are priced as medium.
func CostRange(level string) string {
	if r, ok := costRanges[strings.ToLower(level)]; ok {
		return r
	}
	return costRanges[BudgetMedium]
}

func dailyBudget(level string) string {
	if r, ok := dailyBudgetRanges[strings.ToLower(level)]; ok {
		return r
	}
	return dailyBudgetRanges[BudgetMedium]
}

func distanceLabel(ic ItineraryContext) string {
	if ic.DistanceKm > 0 {
		return fmt.Sprintf("%.0f km approximately", ic.DistanceKm)
	}
	return fmt.Sprintf("%d km approximately", ic.days()*kmPerDayEstimate)
}

// FallbackItinerary builds a complete itinerary from the request alone. It is
// used when the generated text cannot be turned into one.
func FallbackItinerary(ic ItineraryContext) resp.Itinerary {
	n := ic.days()

	focus := "scenic stops and local culture"
	if len(ic.Interests) > 0 {
		focus = strings.Join(ic.Interests, ", ")
	}

	it := resp.Itinerary{
		Summary: fmt.Sprintf("A %d-day road trip from %s to %s for %s, focusing on %s.",
			n, ic.StartLocation, ic.Destination, travelerLabel(ic.Travelers), focus),
		TotalDistance: distanceLabel(ic),
		EstimatedCost: CostRange(ic.BudgetLevel),
		Days:          make([]resp.DayPlan, 0, n),
	}

	for i := 1; i <= n; i++ {
		var morning resp.Activity
		switch {
		case i == 1:
			morning = resp.Activity{
				Time:        "09:00 AM",
				Activity:    "Departure from " + ic.StartLocation,
				Location:    ic.StartLocation,
				Description: fmt.Sprintf("Start your road trip from %s towards %s.", ic.StartLocation, ic.Destination),
			}
		case i == n:
			morning = resp.Activity{
				Time:        "09:00 AM",
				Activity:    "Arrival and exploration in " + ic.Destination,
				Location:    ic.Destination,
				Description: fmt.Sprintf("Arrive in %s and explore its highlights.", ic.Destination),
			}
		default:
			morning = resp.Activity{
				Time:        "09:00 AM",
				Activity:    fmt.Sprintf("Day %d - Journey and sightseeing", i),
				Location:    "En route destinations",
				Description: "Continue the drive with stops at scenic viewpoints and towns along the way.",
			}
		}

		it.Days = append(it.Days, resp.DayPlan{
			Day: i,
			Activities: []resp.Activity{
				morning,
				lunchActivity(),
				{
					Time:        "07:00 PM",
					Activity:    "Evening relaxation and dinner",
					Location:    "Hotel/accommodation area",
					Description: "Check into accommodation and enjoy dinner at a local restaurant.",
				},
			},
		})
	}

	return it
}

func travelerLabel(n int) string {
	if n == 1 {
		return "1 traveler"
	}
	return fmt.Sprintf("%d travelers", n)
}
