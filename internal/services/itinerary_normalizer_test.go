package services

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripnect/internal/models/request_models"
	"tripnect/pkg/geo"
	"tripnect/pkg/utils"
)

func goaContext(days int) ItineraryContext {
	return ItineraryContext{
		StartLocation: "Mumbai",
		Destination:   "Goa",
		StartDate:     time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		Duration:      days,
		Travelers:     2,
		BudgetLevel:   BudgetMedium,
		Interests:     []string{"beaches", "food"},
		DistanceKm:    440,
	}
}

func TestRepairJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trailing comma in object", `{"a": 1,}`, `{"a": 1}`},
		{"trailing comma in array", `{"a": [1, 2, ]}`, `{"a": [1, 2 ]}`},
		{"bare keys", `{summary: "x"}`, `{"summary": "x"}`},
		{"single quotes", `{'summary': 'Goa trip'}`, `{"summary": "Goa trip"}`},
		{"bare time value", `{"time": 9:00 AM}`, `{"time": "9:00 AM"}`},
		{"bare word value", `{"location": Calangute Beach}`, `{"location": "Calangute Beach"}`},
		{"number with unit", `{"total_distance": 590 km}`, `{"total_distance": "590 km"}`},
		{"number with unit before comma", `{"cost": 4500 INR, "days": []}`, `{"cost": "4500 INR", "days": []}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := repairJSON(tc.in)
			assert.True(t, changed)
			assert.Equal(t, tc.want, got)
			assert.True(t, json.Valid([]byte(got)))
		})
	}
}

func TestRepairJSON_LeavesValidInputAlone(t *testing.T) {
	in := `{"a": [1, 2.5, -3], "b": true, "c": null, "d": "x, y}"}`
	got, changed := repairJSON(in)
	assert.False(t, changed)
	assert.Equal(t, in, got)
}

func TestNormalizeItinerary_Direct(t *testing.T) {
	raw := `{"summary":"Coastal drive","total_distance":"590 km","estimated_cost":"₹30,000 per person",
		"days":[{"day":7,"date":"1999-01-01","activities":[{"time":"08:00 AM","activity":"Leave Mumbai","location":"Mumbai","description":"Early start"}]}]}`

	res := NormalizeItinerary(raw, goaContext(3))

	assert.Equal(t, StageDirect, res.Stage)
	it := res.Itinerary
	assert.Equal(t, "Coastal drive", it.Summary)
	assert.Equal(t, "590 km", it.TotalDistance)
	require.Len(t, it.Days, 3)
	for i, d := range it.Days {
		assert.Equal(t, i+1, d.Day)
		assert.NotEmpty(t, d.Activities)
	}
	assert.Equal(t, "2026-11-01", it.Days[0].Date)
	assert.Equal(t, "2026-11-03", it.Days[2].Date)
	assert.Equal(t, "Leave Mumbai", it.Days[0].Activities[0].Activity)
	// padded day
	assert.Equal(t, "Goa", it.Days[2].Activities[0].Location)
}

func TestNormalizeItinerary_ExtractedFromProse(t *testing.T) {
	raw := "Sure! Here is your plan:\n```json\n{\"summary\":\"Trip\",\"days\":[{\"activities\":[\"Visit the fort\"]}]}\n```\nEnjoy!"

	res := NormalizeItinerary(raw, goaContext(1))

	assert.Equal(t, StageExtracted, res.Stage)
	require.Len(t, res.Itinerary.Days, 1)
	act := res.Itinerary.Days[0].Activities[0]
	assert.Equal(t, "Visit the fort", act.Activity)
	assert.Equal(t, placeholderTime, act.Time)
	assert.Equal(t, placeholderLocation, act.Location)
	assert.Equal(t, placeholderDescription, act.Description)
}

func TestNormalizeItinerary_Repaired(t *testing.T) {
	raw := `{summary: 'Trip', days: [{activities: [{time: 10:00 AM, activity: 'Beach',},],},],}`

	res := NormalizeItinerary(raw, goaContext(2))

	assert.Equal(t, StageRepaired, res.Stage)
	require.Len(t, res.Itinerary.Days, 2)
	assert.Equal(t, "10:00 AM", res.Itinerary.Days[0].Activities[0].Time)
	assert.Equal(t, "Beach", res.Itinerary.Days[0].Activities[0].Activity)
}

func TestNormalizeItinerary_RepairedKeepsDaysBesideUnitValues(t *testing.T) {
	raw := `{summary: 'Coast', total_distance: 590 km, days: [{activities: [{time: 09:00 AM, activity: 'Drive'}]}]}`

	res := NormalizeItinerary(raw, goaContext(1))

	assert.Equal(t, StageRepaired, res.Stage)
	assert.Equal(t, "590 km", res.Itinerary.TotalDistance)
	act := res.Itinerary.Days[0].Activities[0]
	assert.Equal(t, "Drive", act.Activity)
	assert.Equal(t, "09:00 AM", act.Time)
}

func TestNormalizeItinerary_FallbackOnGarbage(t *testing.T) {
	for _, raw := range []string{"", "I cannot help with that.", `{"summary": "no days here"}`, `[1,2,3]`} {
		res := NormalizeItinerary(raw, goaContext(5))

		assert.Equal(t, StageFallback, res.Stage, raw)
		require.Len(t, res.Itinerary.Days, 5)
		assert.Equal(t, "₹25,000-50,000 per person", res.Itinerary.EstimatedCost)
		assert.Equal(t, "440 km approximately", res.Itinerary.TotalDistance)
		assert.Equal(t, "Mumbai", res.Itinerary.Days[0].Activities[0].Location)
		assert.Equal(t, "Goa", res.Itinerary.Days[4].Activities[0].Location)
		assert.Contains(t, res.Itinerary.Summary, "beaches, food")
	}
}

func TestNormalizeItinerary_TruncatesExtraDays(t *testing.T) {
	raw := `{"days":[{"activities":["a"]},{"activities":["b"]},{"activities":["c"]}]}`

	res := NormalizeItinerary(raw, goaContext(2))

	require.Len(t, res.Itinerary.Days, 2)
	assert.Equal(t, "b", res.Itinerary.Days[1].Activities[0].Activity)
	assert.Equal(t, CostRange(BudgetMedium), res.Itinerary.EstimatedCost)
}

func TestNormalizeItinerary_Idempotent(t *testing.T) {
	ic := goaContext(4)
	once := NormalizeItinerary(`{"days":[{"activities":[{"activity":"Drive"}]},{}]}`, ic).Itinerary
	twice := normalizeItinerary(once, ic)
	assert.Equal(t, once, twice)

	stored, err := json.Marshal(once)
	require.NoError(t, err)
	reloaded := NormalizeItinerary(string(stored), ic)
	assert.Equal(t, StageDirect, reloaded.Stage)
	assert.Equal(t, once, reloaded.Itinerary)
}

func TestCostRange(t *testing.T) {
	assert.Equal(t, "₹15,000-25,000 per person", CostRange("low"))
	assert.Equal(t, "₹50,000-100,000 per person", CostRange("HIGH"))
	assert.Equal(t, "₹25,000-50,000 per person", CostRange("luxury"))
}

func TestBuildItineraryPrompt(t *testing.T) {
	in := PromptInput{
		Context:     goaContext(5),
		Start:       ResolvedLocation{Formatted: "Mumbai, Maharashtra, India", Point: geo.NewPoint(19.076, 72.8777)},
		Destination: ResolvedLocation{Formatted: "Goa, India", Point: geo.NewPoint(15.2993, 74.124)},
		TravelTime:  "8h 48m",
	}

	p := BuildItineraryPrompt(in)

	assert.Contains(t, p, "5-day road trip itinerary from Mumbai to Goa")
	assert.Contains(t, p, "2026-11-01 to 2026-11-06 (5 days)")
	assert.Contains(t, p, "exactly 5 entries")
	assert.Contains(t, p, "₹3,000-7,000 per day")
	assert.Contains(t, p, "beaches, food")
	assert.Contains(t, p, "Additional requests: None")
	assert.Contains(t, p, "(19.0760, 72.8777)")
	assert.Equal(t, p, BuildItineraryPrompt(in))
}

func TestValidateTripDates(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	w, err := ValidateTripDates("2026-01-02", "2026-01-05", now)
	require.NoError(t, err)
	assert.Equal(t, 3, w.Duration)

	w, err = ValidateTripDates("2026-01-02", "2026-02-01", now)
	require.NoError(t, err)
	assert.Equal(t, MaxTripDays, w.Duration)

	cases := map[string][2]string{
		"start today after midnight": {"2026-01-01", "2026-01-03"},
		"start in the past":          {"2025-12-30", "2026-01-03"},
		"end equals start":           {"2026-01-05", "2026-01-05"},
		"end before start":           {"2026-01-05", "2026-01-04"},
		"longer than thirty days":    {"2026-01-02", "2026-02-02"},
		"unparseable":                {"tomorrow", "2026-01-04"},
	}
	for name, dates := range cases {
		_, err := ValidateTripDates(dates[0], dates[1], now)
		var verr *utils.ValidationError
		assert.ErrorAs(t, err, &verr, name)
	}
}

func TestValidateGenerateRequest_CollectsAllFields(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := ValidateGenerateRequest(request_models.GenerateItineraryRequest{
		StartLocation: "  ",
		Travelers:     21,
		BudgetLevel:   "luxury",
		StartDate:     "2026-02-01",
		EndDate:       "2026-01-01",
	}, now)

	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	joined := strings.Join(fields, ",")
	for _, f := range []string{"startLocation", "destination", "travelers", "budgetLevel", "endDate"} {
		assert.Contains(t, joined, f)
	}
}

func TestCleanInterests(t *testing.T) {
	assert.Equal(t, []string{"Beaches", "food"}, cleanInterests([]string{" Beaches ", "", "food", "beaches"}))
}

// The two generation routes of the system this replaces disagreed on the day
// count for the same window: one planned end-start days, the other one more.
// Day plans here follow the end-start span; the inclusive count is recorded so
// the discrepancy stays visible if the convention is ever revisited.
func TestDayCountConvention_KnownAmbiguity(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	w, err := ValidateTripDates("2026-10-16", "2026-10-20", now)
	require.NoError(t, err)

	assert.Equal(t, 4, w.Duration, "span convention")
	inclusive := w.Duration + 1
	assert.Equal(t, 5, inclusive, "inclusive convention of the other route")

	ic := goaContext(w.Duration)
	ic.StartDate = w.Start
	res := NormalizeItinerary("", ic)
	assert.Len(t, res.Itinerary.Days, w.Duration)
}
