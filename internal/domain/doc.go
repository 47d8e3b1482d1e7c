// Package domain models wildlife observation records and the aggregate
// statistics derived from them.
//
// # Data Source
//
// Observations are sightings and strandings of aquatic animals submitted by
// the field-reporting frontend as JSON. Records are semi-structured: every
// field is optional, and several fields changed shape over the app's life,
// so the model is an open mapping with tolerant accessors instead of a
// rigid struct.
//
// # Field Conventions
//
// observedAt:
//
//	ISO-8601 timestamp, usually with a trailing "Z". Legacy submissions
//	sometimes omit the offset. Malformed values are tolerated and the
//	record simply drops out of the monthly-frequency statistic.
//
// waterBody, weatherCondition:
//
//	Originally a single string ("River"); current submissions carry a list
//	(["River", "Estuary"]). Both normalize through [AsStrings] into the
//	same flattened multi-set of category occurrences.
//
// species:
//
//	A list of entries, each with a "type" (species name) and per-age-group
//	sub-structures keyed adult, adultMale, adultFemale, subAdult,
//	unidentified. Sightings store plain non-negative counts there;
//	reportings store {stranded, injured, dead} status mappings. Missing
//	keys count as 0, and a non-mapping value where a mapping is expected
//	contributes 0 instead of failing.
//
// causes (reportings only):
//
//	A list of entries with a "cause" string list and an optional free-text
//	"otherCause", which yields one synthetic category prefixed "Other: ".
//
// # Statistic Batteries
//
// Each report variant computes a fixed, ordered battery of statistics (see
// [AggregateSightings] and [AggregateReportings]). A statistic whose source
// categories are entirely absent from the batch is omitted, not an error.
// Within a statistic, monthly buckets sort chronologically ascending by
// YYYY-MM key; every other statistic sorts descending by count with ties in
// first-encountered order.
package domain
