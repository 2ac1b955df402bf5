package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	resp "tripnect/internal/models/response_models"
	"tripnect/pkg/utils"
)

// NormalizeStage records which parse layer produced an itinerary.
type NormalizeStage string

const (
	StageDirect    NormalizeStage = "direct"
	StageExtracted NormalizeStage = "extracted"
	StageRepaired  NormalizeStage = "repaired"
	StageFallback  NormalizeStage = "fallback"
)

const (
	placeholderTime        = "09:00 AM"
	placeholderLocation    = "Location TBD"
	placeholderDescription = "Explore local attractions and enjoy authentic experiences."
)

var (
	errParseRecoveryExhausted = errors.New("parse recovery exhausted")
	errNotAnObject            = errors.New("response is not a JSON object")
	errNoObjectBounds         = errors.New("no JSON object found in response")
	errNothingToRepair        = errors.New("no repairable defects found")

	fencePattern = regexp.MustCompile("```(?i:json)?")
)

// ItineraryContext is the request-derived data the normalizer anchors on.
type ItineraryContext struct {
	StartLocation string
	Destination   string
	StartDate     time.Time
	Duration      int
	Travelers     int
	BudgetLevel   string
	Interests     []string
	// DistanceKm is the straight-line distance, zero when unknown.
	DistanceKm float64
}

func (ic ItineraryContext) days() int {
	if ic.Duration < 1 {
		return 1
	}
	return ic.Duration
}

type NormalizeResult struct {
	Itinerary resp.Itinerary
	Stage     NormalizeStage
}

type parseLayer struct {
	stage NormalizeStage
	parse func(string) (map[string]any, error)
}

var parseLayers = []parseLayer{
	{StageDirect, parseDirect},
	{StageExtracted, parseExtracted},
	{StageRepaired, parseRepaired},
}

// NormalizeItinerary turns raw generated text into an itinerary with exactly
// ic.Duration days and fully populated activities. It never fails: when no
// layer yields a usable object the itinerary is synthesized from ic.
func NormalizeItinerary(raw string, ic ItineraryContext) NormalizeResult {
	if obj, stage, err := parseGenerated(raw); err == nil {
		if it, ok := itineraryFromObject(obj); ok {
			return NormalizeResult{Itinerary: normalizeItinerary(it, ic), Stage: stage}
		}
	}
	return NormalizeResult{Itinerary: normalizeItinerary(FallbackItinerary(ic), ic), Stage: StageFallback}
}

func parseGenerated(raw string) (map[string]any, NormalizeStage, error) {
	for _, layer := range parseLayers {
		if obj, err := layer.parse(raw); err == nil {
			return obj, layer.stage, nil
		}
	}
	return nil, StageFallback, errParseRecoveryExhausted
}

func parseDirect(raw string) (map[string]any, error) {
	return decodeObject(strings.TrimSpace(raw))
}

func parseExtracted(raw string) (map[string]any, error) {
	text, err := extractObjectText(raw)
	if err != nil {
		return nil, err
	}
	return decodeObject(text)
}

func parseRepaired(raw string) (map[string]any, error) {
	text, err := extractObjectText(raw)
	if err != nil {
		return nil, err
	}
	repaired, changed := repairJSON(text)
	if !changed {
		return nil, errNothingToRepair
	}
	return decodeObject(repaired)
}

func extractObjectText(raw string) (string, error) {
	cleaned := fencePattern.ReplaceAllString(raw, "")
	first := strings.Index(cleaned, "{")
	last := strings.LastIndex(cleaned, "}")
	if first < 0 || last <= first {
		return "", errNoObjectBounds
	}
	return cleaned[first : last+1], nil
}

func decodeObject(text string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errNotAnObject
	}
	return obj, nil
}

// itineraryFromObject reads whatever itinerary fields are present. A response
// without a days array is not considered an itinerary.
func itineraryFromObject(obj map[string]any) (resp.Itinerary, bool) {
	rawDays, ok := obj["days"].([]any)
	if !ok {
		return resp.Itinerary{}, false
	}

	it := resp.Itinerary{
		Summary:       scalarString(obj["summary"]),
		TotalDistance: scalarString(obj["total_distance"]),
		EstimatedCost: scalarString(obj["estimated_cost"]),
		Days:          make([]resp.DayPlan, 0, len(rawDays)),
	}

	for _, rd := range rawDays {
		dm, _ := rd.(map[string]any)
		day := resp.DayPlan{
			StartLocation: scalarString(dm["start_location"]),
			EndLocation:   scalarString(dm["end_location"]),
			Distance:      scalarString(dm["distance"]),
		}

		acts, _ := dm["activities"].([]any)
		for _, ra := range acts {
			switch a := ra.(type) {
			case map[string]any:
				day.Activities = append(day.Activities, resp.Activity{
					Time:        scalarString(a["time"]),
					Activity:    scalarString(a["activity"]),
					Location:    scalarString(a["location"]),
					Description: scalarString(a["description"]),
				})
			case string:
				if strings.TrimSpace(a) != "" {
					day.Activities = append(day.Activities, resp.Activity{Activity: a})
				}
			}
		}

		it.Days = append(it.Days, day)
	}

	return it, true
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// normalizeItinerary renumbers and re-dates days, pads or truncates to the
// trip duration and fills every missing field. Applying it twice is a no-op.
func normalizeItinerary(it resp.Itinerary, ic ItineraryContext) resp.Itinerary {
	n := ic.days()

	out := resp.Itinerary{
		Summary:       strings.TrimSpace(it.Summary),
		TotalDistance: strings.TrimSpace(it.TotalDistance),
		EstimatedCost: strings.TrimSpace(it.EstimatedCost),
		Days:          make([]resp.DayPlan, 0, n),
	}

	if out.Summary == "" {
		out.Summary = fmt.Sprintf("A %d-day road trip from %s to %s", n, ic.StartLocation, ic.Destination)
	}
	if out.TotalDistance == "" {
		out.TotalDistance = distanceLabel(ic)
	}
	if out.EstimatedCost == "" {
		out.EstimatedCost = CostRange(ic.BudgetLevel)
	}

	for i := 0; i < n; i++ {
		dayNum := i + 1
		date := utils.FormatDate(ic.StartDate.AddDate(0, 0, i))

		if i >= len(it.Days) {
			out.Days = append(out.Days, templatedDay(dayNum, n, date, ic))
			continue
		}

		src := it.Days[i]
		day := resp.DayPlan{
			Day:           dayNum,
			Date:          date,
			StartLocation: strings.TrimSpace(src.StartLocation),
			EndLocation:   strings.TrimSpace(src.EndLocation),
			Distance:      strings.TrimSpace(src.Distance),
			Activities:    make([]resp.Activity, 0, len(src.Activities)),
		}

		for _, a := range src.Activities {
			day.Activities = append(day.Activities, fillActivity(a, dayNum))
		}
		if len(day.Activities) == 0 {
			day.Activities = append(day.Activities, placeholderActivity(dayNum, n, ic))
		}

		out.Days = append(out.Days, day)
	}

	return out
}

func fillActivity(a resp.Activity, dayNum int) resp.Activity {
	return resp.Activity{
		Time:        orDefault(a.Time, placeholderTime),
		Activity:    orDefault(a.Activity, fmt.Sprintf("Day %d activity", dayNum)),
		Location:    orDefault(a.Location, placeholderLocation),
		Description: orDefault(a.Description, placeholderDescription),
	}
}

func placeholderActivity(dayNum, total int, ic ItineraryContext) resp.Activity {
	location := "En route"
	switch dayNum {
	case 1:
		location = ic.StartLocation
	case total:
		location = ic.Destination
	}
	return resp.Activity{
		Time:        placeholderTime,
		Activity:    fmt.Sprintf("Day %d activities", dayNum),
		Location:    orDefault(location, placeholderLocation),
		Description: placeholderDescription,
	}
}

func templatedDay(dayNum, total int, date string, ic ItineraryContext) resp.DayPlan {
	morningLocation := "En route destinations"
	if dayNum == total {
		morningLocation = orDefault(ic.Destination, morningLocation)
	}

	return resp.DayPlan{
		Day:  dayNum,
		Date: date,
		Activities: []resp.Activity{
			{
				Time:        "09:00 AM",
				Activity:    fmt.Sprintf("Day %d exploration", dayNum),
				Location:    morningLocation,
				Description: "Continue your journey and explore local attractions.",
			},
			lunchActivity(),
			{
				Time:        "07:00 PM",
				Activity:    "Evening relaxation",
				Location:    "Hotel/accommodation area",
				Description: "Check into accommodation and enjoy dinner at a local restaurant.",
			},
		},
	}
}

func lunchActivity() resp.Activity {
	return resp.Activity{
		Time:        "02:00 PM",
		Activity:    "Lunch and local exploration",
		Location:    "Local restaurant and attractions",
		Description: "Try the regional cuisine and explore nearby sights.",
	}
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
