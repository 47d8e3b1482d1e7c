package domain

// Bar colors follow the house convention established by the frontend's
// palette; they are cosmetic but deterministic per statistic.
const (
	colorSkyBlue        = "87CEEB"
	colorDefaultBlue    = "1F77B4"
	colorSteelBlue      = "4682B4"
	colorTeal           = "008080"
	colorCoral          = "FF7F50"
	colorIndianRed      = "CD5C5C"
	colorMediumSeaGreen = "3CB371"
)

// The age-group keys a species entry may carry.
var ageGroupKeys = []string{"adult", "adultMale", "adultFemale", "subAdult", "unidentified"}

// Aggregate computes the fixed statistic battery for the given variant.
// The number and order of entries is fixed per variant; a statistic whose
// contributing category set is empty is omitted, never an error. The input
// batch is read-only throughout.
func Aggregate(variant Variant, observations []Observation) []SummaryEntry {
	if variant == VariantReportings {
		return AggregateReportings(observations)
	}
	return AggregateSightings(observations)
}

// AggregateSightings computes the sightings battery: monthly frequency,
// by-block, by-district, by-water-body-type, by-weather-condition,
// by-threat, and the age-group distribution.
func AggregateSightings(observations []Observation) []SummaryEntry {
	entries := make([]SummaryEntry, 0, 7)
	appendEntry := func(e SummaryEntry, ok bool) {
		if ok {
			entries = append(entries, e)
		}
	}

	appendEntry(monthlyFrequency(observations, VariantSightings))
	appendEntry(categoryStat(observations, "block", SummaryEntry{
		Title: "Block Summary", ChartTitle: "Sightings by Block",
		XLabel: "Block", YLabel: "Number of Sightings",
		Color: colorDefaultBlue, RotateXLabels: true,
	}))
	appendEntry(categoryStat(observations, "district", SummaryEntry{
		Title: "District Summary", ChartTitle: "Sightings by District",
		XLabel: "District", YLabel: "Number of Sightings",
		Color: colorSteelBlue, RotateXLabels: true,
	}))
	appendEntry(multiCategoryStat(observations, "waterBody", SummaryEntry{
		Title: "Water Body Type Summary", ChartTitle: "Sightings by Water Body Type",
		XLabel: "Water Body Type", YLabel: "Number of Sightings",
		Color: colorTeal, RotateXLabels: true,
	}))
	appendEntry(multiCategoryStat(observations, "weatherCondition", SummaryEntry{
		Title: "Weather Condition Summary", ChartTitle: "Sightings by Weather Condition",
		XLabel: "Weather Condition", YLabel: "Number of Sightings",
		Color: colorCoral, RotateXLabels: true,
	}))
	appendEntry(multiCategoryStat(observations, "threats", SummaryEntry{
		Title: "Threats Summary", ChartTitle: "Distribution of Threats",
		XLabel: "Threat Type", YLabel: "Frequency",
		Color: colorIndianRed, RotateXLabels: true,
	}))
	appendEntry(sightingAgeGroups(observations))

	return entries
}

// AggregateReportings computes the reportings battery: monthly frequency,
// by-block, by-district, by-species-type, status distribution, by-cause,
// and the age-group-by-status distribution.
func AggregateReportings(observations []Observation) []SummaryEntry {
	entries := make([]SummaryEntry, 0, 7)
	appendEntry := func(e SummaryEntry, ok bool) {
		if ok {
			entries = append(entries, e)
		}
	}

	appendEntry(monthlyFrequency(observations, VariantReportings))
	appendEntry(categoryStat(observations, "block", SummaryEntry{
		Title: "Block Summary", ChartTitle: "Reportings by Block",
		XLabel: "Block", YLabel: "Number of Reportings",
		Color: colorDefaultBlue, RotateXLabels: true,
	}))
	appendEntry(categoryStat(observations, "district", SummaryEntry{
		Title: "District Summary", ChartTitle: "Reportings by District",
		XLabel: "District", YLabel: "Number of Reportings",
		Color: colorSteelBlue, RotateXLabels: true,
	}))
	appendEntry(speciesTypes(observations))
	appendEntry(statusDistribution(observations))
	appendEntry(causeDistribution(observations))
	appendEntry(reportingAgeGroups(observations))

	return entries
}

// monthlyFrequency buckets observations by calendar year-month of their
// observedAt timestamp. Records with an absent or unparsable timestamp are
// skipped silently; they only drop out of this one statistic. Buckets sort
// ascending by YYYY-MM key and each gets a "January 2006" display label for
// the chart axis.
func monthlyFrequency(observations []Observation, variant Variant) (SummaryEntry, bool) {
	months := newCounter()
	for _, obs := range observations {
		t, ok := parseObservedAt(obs.stringField("observedAt"))
		if !ok {
			continue
		}
		months.add(t.Format("2006-01"), 1)
	}
	if months.empty() {
		return SummaryEntry{}, false
	}

	data := months.ascendingByCategory()
	labels := make([]string, len(data))
	for i, pair := range data {
		labels[i] = monthLabel(pair.Category)
	}

	entry := SummaryEntry{
		Title:         "Monthly Frequency Summary",
		ChartTitle:    "Monthly Sightings Frequency",
		XLabel:        "Month",
		YLabel:        "Number of Sightings",
		Color:         colorSkyBlue,
		RotateXLabels: true,
		Data:          data,
		DisplayLabels: labels,
	}
	if variant == VariantReportings {
		entry.ChartTitle = "Monthly Reportings Frequency"
		entry.YLabel = "Number of Reportings"
	}
	return entry, true
}

// categoryStat counts a scalar free-text field (block, district) across the
// batch. Observations missing the field contribute nothing.
func categoryStat(observations []Observation, field string, meta SummaryEntry) (SummaryEntry, bool) {
	c := newCounter()
	for _, obs := range observations {
		if v := obs.stringField(field); v != "" {
			c.add(v, 1)
		}
	}
	if c.empty() {
		return SummaryEntry{}, false
	}
	meta.Data = c.descending()
	return meta, true
}

// multiCategoryStat counts a field whose value is either a legacy scalar
// string or a list of strings, flattening both forms into one multi-set.
func multiCategoryStat(observations []Observation, field string, meta SummaryEntry) (SummaryEntry, bool) {
	c := newCounter()
	for _, obs := range observations {
		for _, v := range AsStrings(obs.Field(field, nil)) {
			c.add(v, 1)
		}
	}
	if c.empty() {
		return SummaryEntry{}, false
	}
	meta.Data = c.descending()
	return meta, true
}

// sightingAgeGroups sums the plain integer age-group counts carried by
// sightings species entries. Adult collapses the adult, adultMale and
// adultFemale columns.
func sightingAgeGroups(observations []Observation) (SummaryEntry, bool) {
	c := newCounter()
	for _, group := range []string{"Adult", "Sub-Adult", "Unidentified"} {
		c.add(group, 0)
	}

	for _, obs := range observations {
		for _, sp := range obs.speciesEntries() {
			c.add("Adult", asInt(sp["adult"])+asInt(sp["adultMale"])+asInt(sp["adultFemale"]))
			c.add("Sub-Adult", asInt(sp["subAdult"]))
			c.add("Unidentified", asInt(sp["unidentified"]))
		}
	}
	if c.total() == 0 {
		return SummaryEntry{}, false
	}

	return SummaryEntry{
		Title: "Age Group Summary", ChartTitle: "Age Group Distribution",
		XLabel: "Age Group", YLabel: "Count",
		Color: colorMediumSeaGreen,
		Data:  c.descending(),
	}, true
}

// speciesTypes counts species entries per type. This counts entries, not
// individual animals: one entry for three stranded dolphins is one count.
func speciesTypes(observations []Observation) (SummaryEntry, bool) {
	c := newCounter()
	for _, obs := range observations {
		for _, sp := range obs.speciesEntries() {
			name, _ := sp["type"].(string)
			if name == "" {
				name = "Unknown"
			}
			c.add(name, 1)
		}
	}
	if c.empty() {
		return SummaryEntry{}, false
	}

	return SummaryEntry{
		Title: "Species Summary", ChartTitle: "Reportings by Species",
		XLabel: "Species", YLabel: "Number of Reportings",
		Color: colorTeal, RotateXLabels: true,
		Data: c.descending(),
	}, true
}

// statusDistribution sums stranded/injured/dead across every age-group
// sub-structure of every species entry. A sub-structure that is not a
// mapping (legacy scalar) contributes zero rather than failing.
func statusDistribution(observations []Observation) (SummaryEntry, bool) {
	c := newCounter()
	for _, status := range []string{"Stranded", "Injured", "Dead"} {
		c.add(status, 0)
	}

	for _, obs := range observations {
		for _, sp := range obs.speciesEntries() {
			for _, group := range ageGroupKeys {
				sc := asMap(sp[group])
				if sc == nil {
					continue
				}
				c.add("Stranded", asInt(sc["stranded"]))
				c.add("Injured", asInt(sc["injured"]))
				c.add("Dead", asInt(sc["dead"]))
			}
		}
	}
	if c.total() == 0 {
		return SummaryEntry{}, false
	}

	return SummaryEntry{
		Title: "Status Summary", ChartTitle: "Animals by Status",
		XLabel: "Status", YLabel: "Count",
		Color: colorCoral,
		Data:  c.descending(),
	}, true
}

// causeDistribution flattens each cause entry's cause list, plus one
// synthetic "Other: <text>" category when otherCause is present.
func causeDistribution(observations []Observation) (SummaryEntry, bool) {
	c := newCounter()
	for _, obs := range observations {
		raw, _ := obs.Field("causes", nil).([]any)
		for _, item := range raw {
			entry := asMap(item)
			if entry == nil {
				continue
			}
			for _, cause := range AsStrings(entry["cause"]) {
				c.add(cause, 1)
			}
			if other, _ := entry["otherCause"].(string); other != "" {
				c.add("Other: "+other, 1)
			}
		}
	}
	if c.empty() {
		return SummaryEntry{}, false
	}

	return SummaryEntry{
		Title: "Causes Summary", ChartTitle: "Distribution of Causes",
		XLabel: "Cause", YLabel: "Frequency",
		Color: colorIndianRed, RotateXLabels: true,
		Data: c.descending(),
	}, true
}

// reportingAgeGroups sums each age group's stranded+injured+dead across
// species entries. Adult male/female stay separate here, unlike the
// sightings battery.
func reportingAgeGroups(observations []Observation) (SummaryEntry, bool) {
	groups := []struct{ key, label string }{
		{"adult", "Adult"},
		{"adultMale", "Adult Male"},
		{"adultFemale", "Adult Female"},
		{"subAdult", "Sub-Adult"},
	}

	c := newCounter()
	for _, g := range groups {
		c.add(g.label, 0)
	}

	for _, obs := range observations {
		for _, sp := range obs.speciesEntries() {
			for _, g := range groups {
				sc := asMap(sp[g.key])
				if sc == nil {
					continue
				}
				c.add(g.label, asInt(sc["stranded"])+asInt(sc["injured"])+asInt(sc["dead"]))
			}
		}
	}
	if c.total() == 0 {
		return SummaryEntry{}, false
	}

	return SummaryEntry{
		Title: "Age Group Summary", ChartTitle: "Age Group Distribution",
		XLabel: "Age Group", YLabel: "Count",
		Color: colorMediumSeaGreen, RotateXLabels: true,
		Data: c.descending(),
	}, true
}
