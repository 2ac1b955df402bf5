package services

import (
	"fmt"
	"strings"

	"tripnect/pkg/geo"
	"tripnect/pkg/utils"
)

const itinerarySystemPrompt = "You are an expert Indian travel planner. Always respond with valid JSON only, no markdown formatting or additional text."

// PromptInput is everything the itinerary prompt embeds.
type PromptInput struct {
	Context            ItineraryContext
	AdditionalRequests string
	Start              ResolvedLocation
	Destination        ResolvedLocation
	TravelTime         string
}

// BuildItineraryPrompt renders the generation request. The output depends
// only on in.
func BuildItineraryPrompt(in PromptInput) string {
	ic := in.Context
	n := ic.days()
	end := ic.StartDate.AddDate(0, 0, n)

	interests := "General sightseeing"
	if len(ic.Interests) > 0 {
		interests = strings.Join(ic.Interests, ", ")
	}
	extra := strings.TrimSpace(in.AdditionalRequests)
	if extra == "" {
		extra = "None"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Create a detailed %d-day road trip itinerary from %s to %s in India for %s.\n\n",
		n, ic.StartLocation, ic.Destination, travelerLabel(ic.Travelers))

	b.WriteString("TRIP DETAILS:\n")
	fmt.Fprintf(&b, "- Start: %s\n", ic.StartLocation)
	fmt.Fprintf(&b, "- Destination: %s\n", ic.Destination)
	fmt.Fprintf(&b, "- Dates: %s to %s (%d days)\n", utils.FormatDate(ic.StartDate), utils.FormatDate(end), n)
	fmt.Fprintf(&b, "- Travelers: %d\n", ic.Travelers)
	fmt.Fprintf(&b, "- Budget: %s (%s)\n", ic.BudgetLevel, dailyBudget(ic.BudgetLevel))
	fmt.Fprintf(&b, "- Interests: %s\n", interests)
	fmt.Fprintf(&b, "- Additional requests: %s\n\n", extra)

	b.WriteString("GEOGRAPHY:\n")
	fmt.Fprintf(&b, "- Start resolved to: %s (%.4f, %.4f)\n", in.Start.Formatted, in.Start.Point.Lat(), in.Start.Point.Lng())
	fmt.Fprintf(&b, "- Destination resolved to: %s (%.4f, %.4f)\n", in.Destination.Formatted, in.Destination.Point.Lat(), in.Destination.Point.Lng())
	if ic.DistanceKm > 0 {
		fmt.Fprintf(&b, "- Straight-line distance: %.0f km\n", ic.DistanceKm)
		fmt.Fprintf(&b, "- Estimated driving time: %s at an average of %.0f km/h\n", in.TravelTime, geo.AverageRoadSpeedKmh)
	}
	b.WriteString("\n")

	b.WriteString("REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- The \"days\" array must contain exactly %d entries, numbered 1 to %d.\n", n, n)
	fmt.Fprintf(&b, "- Day 1 is %s; each following day advances the date by one.\n", utils.FormatDate(ic.StartDate))
	b.WriteString("- Each day needs 3-5 activities, each with time, activity, location and description.\n")
	b.WriteString("- Include realistic driving stretches, meals, sightseeing and overnight stays.\n")
	b.WriteString("- Suggest specific places in India that match the interests and budget.\n")
	b.WriteString("- Give total_distance in km and estimated_cost in INR (₹).\n\n")

	b.WriteString("Return the response in this STRICT JSON FORMAT:\n")
	fmt.Fprintf(&b, `{
  "summary": "Brief overview of the trip",
  "total_distance": "XXX km",
  "estimated_cost": "₹XX,XXX per person",
  "days": [
    {
      "day": 1,
      "date": "%s",
      "start_location": "%s",
      "end_location": "Overnight stop",
      "distance": "XXX km",
      "activities": [
        {
          "time": "09:00 AM",
          "activity": "Activity name",
          "location": "Specific location",
          "description": "What to do and why"
        }
      ]
    }
  ]
}`, utils.FormatDate(ic.StartDate), ic.StartLocation)
	b.WriteString("\n\n")

	b.WriteString("CRITICAL: Output exactly one JSON object and nothing else. No prose, no explanations, no markdown code fences.")

	return b.String()
}
