package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findEntry(t *testing.T, entries []SummaryEntry, title string) SummaryEntry {
	t.Helper()
	for _, e := range entries {
		if e.Title == title {
			return e
		}
	}
	t.Fatalf("statistic %q not produced", title)
	return SummaryEntry{}
}

func hasEntry(entries []SummaryEntry, title string) bool {
	for _, e := range entries {
		if e.Title == title {
			return true
		}
	}
	return false
}

func TestMonthlyFrequency_AscendingBuckets(t *testing.T) {
	observations := []Observation{
		{"observedAt": "2025-03-01T10:00:00Z"},
		{"observedAt": "2025-01-15T10:00:00Z"},
		{"observedAt": "2025-01-20T10:00:00Z"},
	}

	entries := AggregateSightings(observations)
	monthly := findEntry(t, entries, "Monthly Frequency Summary")

	expected := []CategoryCount{
		{Category: "2025-01", Count: 2},
		{Category: "2025-03", Count: 1},
	}
	assert.Equal(t, expected, monthly.Data)
	assert.Equal(t, []string{"January 2025", "March 2025"}, monthly.DisplayLabels)
}

func TestMonthlyFrequency_SkipsUnparsableTimestamps(t *testing.T) {
	observations := []Observation{
		{"observedAt": "2025-02-01T10:00:00Z", "block": "A"},
		{"observedAt": "not-a-date", "block": "A"},
		{"block": "A"},
		{"observedAt": "2025-02-10T08:30:00", "block": "A"},
	}

	entries := AggregateSightings(observations)
	monthly := findEntry(t, entries, "Monthly Frequency Summary")

	require.Len(t, monthly.Data, 1)
	assert.Equal(t, CategoryCount{Category: "2025-02", Count: 2}, monthly.Data[0],
		"offset-less legacy timestamps still count; junk is skipped")

	// The skipped records still contribute to other statistics.
	block := findEntry(t, entries, "Block Summary")
	assert.Equal(t, []CategoryCount{{Category: "A", Count: 4}}, block.Data)
}

func TestCategoryStat_DescendingWithStableTies(t *testing.T) {
	var observations []Observation
	for _, b := range []string{"A", "B", "A", "C", "B", "B"} {
		observations = append(observations, Observation{"block": b})
	}

	entries := AggregateSightings(observations)
	block := findEntry(t, entries, "Block Summary")

	expected := []CategoryCount{
		{Category: "B", Count: 3},
		{Category: "A", Count: 2},
		{Category: "C", Count: 1},
	}
	assert.Equal(t, expected, block.Data)
}

func TestCategoryStat_TiesKeepFirstEncounteredOrder(t *testing.T) {
	var observations []Observation
	for _, d := range []string{"Delta", "Coastal", "Delta", "Coastal"} {
		observations = append(observations, Observation{"district": d})
	}

	entries := AggregateSightings(observations)
	district := findEntry(t, entries, "District Summary")

	expected := []CategoryCount{
		{Category: "Delta", Count: 2},
		{Category: "Coastal", Count: 2},
	}
	assert.Equal(t, expected, district.Data)
}

func TestMultiCategoryStat_MergesScalarAndListForms(t *testing.T) {
	observations := []Observation{
		{"waterBody": "River"},
		{"waterBody": []any{"River", "Estuary"}},
	}

	entries := AggregateSightings(observations)
	water := findEntry(t, entries, "Water Body Type Summary")

	expected := []CategoryCount{
		{Category: "River", Count: 2},
		{Category: "Estuary", Count: 1},
	}
	assert.Equal(t, expected, water.Data)
}

func TestSightingAgeGroups_CollapsesAdultColumns(t *testing.T) {
	observations := []Observation{
		{"species": []any{map[string]any{
			"type":         "Irrawaddy Dolphin",
			"adult":        float64(2),
			"adultMale":    float64(1),
			"adultFemale":  float64(1),
			"subAdult":     float64(1),
			"unidentified": float64(3),
		}}},
	}

	entries := AggregateSightings(observations)
	ages := findEntry(t, entries, "Age Group Summary")

	expected := []CategoryCount{
		{Category: "Adult", Count: 4},
		{Category: "Unidentified", Count: 3},
		{Category: "Sub-Adult", Count: 1},
	}
	assert.Equal(t, expected, ages.Data)
}

func TestReportings_StatusAndAgeGroupArithmetic(t *testing.T) {
	observations := []Observation{
		{"species": []any{map[string]any{
			"type": "Gangetic Dolphin",
			"adult": map[string]any{
				"stranded": float64(1), "injured": float64(2), "dead": float64(0),
			},
		}}},
	}

	entries := AggregateReportings(observations)

	status := findEntry(t, entries, "Status Summary")
	expected := []CategoryCount{
		{Category: "Injured", Count: 2},
		{Category: "Stranded", Count: 1},
		{Category: "Dead", Count: 0},
	}
	assert.Equal(t, expected, status.Data)

	ages := findEntry(t, entries, "Age Group Summary")
	require.NotEmpty(t, ages.Data)
	assert.Equal(t, CategoryCount{Category: "Adult", Count: 3}, ages.Data[0])
}

func TestStatusDistribution_IncludesUnidentifiedGroup(t *testing.T) {
	observations := []Observation{
		{"species": []any{map[string]any{
			"type": "Smooth-coated Otter",
			"unidentified": map[string]any{
				"stranded": float64(0), "injured": float64(0), "dead": float64(2),
			},
		}}},
	}

	entries := AggregateReportings(observations)
	status := findEntry(t, entries, "Status Summary")

	assert.Equal(t, CategoryCount{Category: "Dead", Count: 2}, status.Data[0])

	// The unidentified group has no row of its own in the age-group view.
	for _, e := range entries {
		if e.Title != "Age Group Summary" {
			continue
		}
		for _, pair := range e.Data {
			assert.NotEqual(t, "Unidentified", pair.Category)
		}
	}
}

func TestStatusDistribution_ToleratesScalarAgeGroups(t *testing.T) {
	// A sightings-shaped record slipping into a reportings batch must not
	// break aggregation: integer age groups just contribute nothing here.
	observations := []Observation{
		{"species": []any{map[string]any{
			"type":  "Saltwater Crocodile",
			"adult": float64(3),
		}}},
		{"species": []any{map[string]any{
			"type":     "Saltwater Crocodile",
			"subAdult": map[string]any{"dead": float64(1)},
		}}},
	}

	entries := AggregateReportings(observations)
	status := findEntry(t, entries, "Status Summary")
	assert.Equal(t, CategoryCount{Category: "Dead", Count: 1}, status.Data[0])
}

func TestCauseDistribution(t *testing.T) {
	observations := []Observation{
		{"causes": []any{map[string]any{
			"cause": []any{"Net entanglement", "Propeller strike"},
		}}},
		{"causes": []any{map[string]any{
			"cause":      "Net entanglement",
			"otherCause": "Unverified report",
		}}},
	}

	entries := AggregateReportings(observations)
	causes := findEntry(t, entries, "Causes Summary")

	expected := []CategoryCount{
		{Category: "Net entanglement", Count: 2},
		{Category: "Propeller strike", Count: 1},
		{Category: "Other: Unverified report", Count: 1},
	}
	assert.Equal(t, expected, causes.Data)
}

func TestSpeciesTypes_CountsEntriesNotAnimals(t *testing.T) {
	observations := []Observation{
		{"species": []any{
			map[string]any{"type": "Irrawaddy Dolphin", "adult": map[string]any{"stranded": float64(3)}},
			map[string]any{"adult": map[string]any{"dead": float64(1)}},
		}},
	}

	entries := AggregateReportings(observations)
	species := findEntry(t, entries, "Species Summary")

	expected := []CategoryCount{
		{Category: "Irrawaddy Dolphin", Count: 1},
		{Category: "Unknown", Count: 1},
	}
	assert.Equal(t, expected, species.Data)
}

func TestAggregate_OmitsEmptyStatistics(t *testing.T) {
	observations := []Observation{
		{"block": "North"},
	}

	entries := AggregateSightings(observations)

	require.Len(t, entries, 1)
	assert.Equal(t, "Block Summary", entries[0].Title)
	assert.False(t, hasEntry(entries, "Monthly Frequency Summary"))
	assert.False(t, hasEntry(entries, "Age Group Summary"))
}

func TestAggregate_EmptyBatteryForUnrecognizedFields(t *testing.T) {
	observations := []Observation{
		{"somethingElse": "value"},
	}

	assert.Empty(t, Aggregate(VariantSightings, observations))
	assert.Empty(t, Aggregate(VariantReportings, observations))
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	makeBatch := func() []Observation {
		return []Observation{{
			"observedAt": "2025-04-01T10:00:00Z",
			"block":      "North",
			"waterBody":  []any{"River"},
			"species": []any{map[string]any{
				"type":  "Irrawaddy Dolphin",
				"adult": float64(2),
			}},
		}}
	}
	observations := makeBatch()

	Aggregate(VariantSightings, observations)
	Aggregate(VariantReportings, observations)

	if diff := cmp.Diff(makeBatch(), observations); diff != "" {
		t.Errorf("input batch mutated (-want +got):\n%s", diff)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	observations := []Observation{
		{"observedAt": "2025-04-01T10:00:00Z", "block": "B"},
		{"observedAt": "2025-05-01T10:00:00Z", "block": "A"},
		{"observedAt": "2025-05-02T10:00:00Z", "block": "A"},
	}

	first := Aggregate(VariantSightings, observations)
	second := Aggregate(VariantSightings, observations)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("aggregation not deterministic (-first +second):\n%s", diff)
	}
}

func TestAggregate_BatteryOrder(t *testing.T) {
	sighting := Observation{
		"observedAt":       "2025-04-01T10:00:00Z",
		"block":            "North",
		"district":         "Coastal",
		"waterBody":        []any{"River"},
		"weatherCondition": []any{"Clear"},
		"threats":          []any{"Boat traffic"},
		"species": []any{map[string]any{
			"type":  "Irrawaddy Dolphin",
			"adult": float64(1),
		}},
	}
	entries := AggregateSightings([]Observation{sighting})

	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title
	}
	assert.Equal(t, []string{
		"Monthly Frequency Summary",
		"Block Summary",
		"District Summary",
		"Water Body Type Summary",
		"Weather Condition Summary",
		"Threats Summary",
		"Age Group Summary",
	}, titles)

	reporting := Observation{
		"observedAt": "2025-04-01T10:00:00Z",
		"block":      "North",
		"district":   "Coastal",
		"species": []any{map[string]any{
			"type":  "Gangetic Dolphin",
			"adult": map[string]any{"stranded": float64(1)},
		}},
		"causes": []any{map[string]any{"cause": []any{"Disease"}}},
	}
	entries = AggregateReportings([]Observation{reporting})

	titles = titles[:0]
	for _, e := range entries {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{
		"Monthly Frequency Summary",
		"Block Summary",
		"District Summary",
		"Species Summary",
		"Status Summary",
		"Causes Summary",
		"Age Group Summary",
	}, titles)
}

func TestMonthlyFrequency_VariantLabels(t *testing.T) {
	observations := []Observation{
		{"observedAt": "2025-04-01T10:00:00Z"},
	}

	s := findEntry(t, AggregateSightings(observations), "Monthly Frequency Summary")
	assert.Equal(t, "Monthly Sightings Frequency", s.ChartTitle)
	assert.Equal(t, "Number of Sightings", s.YLabel)

	r := findEntry(t, AggregateReportings(observations), "Monthly Frequency Summary")
	assert.Equal(t, "Monthly Reportings Frequency", r.ChartTitle)
	assert.Equal(t, "Number of Reportings", r.YLabel)
}
