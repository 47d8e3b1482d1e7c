// Command genmock generates mock observation fixtures for the report
// service test suites, one file per report variant. It uses the actual
// domain package and a fixed clock plus seed so fixtures are reproducible.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -count 200 \
//	  -sightings-out data/mock/sightings.json \
//	  -reportings-out data/mock/reportings.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/wildlife-report-service/internal/domain"
)

var (
	blocks      = []string{"North", "South", "East", "West", "Central"}
	districts   = []string{"Coastal", "Riverine", "Delta", "Upland"}
	waterBodies = []string{"River", "Estuary", "Creek", "Canal", "Open_Sea"}
	weather     = []string{"Clear", "Overcast", "Light_Rain", "Heavy_Rain", "Foggy"}
	threatList  = []string{"Fishing nets", "Boat traffic", "Pollution", "Habitat loss"}
	speciesList = []string{"Irrawaddy Dolphin", "Gangetic Dolphin", "Smooth-coated Otter", "Saltwater Crocodile"}
	causeList   = []string{"Net entanglement", "Propeller strike", "Disease", "Unknown"}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	count := flag.Int("count", 200, "observations per fixture")
	sightingsOut := flag.String("sightings-out", "", "output path for the sightings fixture")
	reportingsOut := flag.String("reportings-out", "", "output path for the reportings fixture")
	flag.Parse()

	if *sightingsOut == "" || *reportingsOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -sightings-out, -reportings-out")
	}

	// Fixed clock and seed for reproducible fixtures.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2025, time.June, 30, 12, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)
	rng := rand.New(rand.NewSource(42))

	sightings := make([]domain.Observation, 0, *count)
	reportings := make([]domain.Observation, 0, *count)
	for i := 0; i < *count; i++ {
		sightings = append(sightings, mockObservation(rng, domain.VariantSightings))
		reportings = append(reportings, mockObservation(rng, domain.VariantReportings))
	}

	if err := writeFixture(*sightingsOut, sightings); err != nil {
		return fmt.Errorf("writing sightings fixture: %w", err)
	}
	log.Printf("wrote sightings fixture: %s (%d records)", *sightingsOut, len(sightings))

	if err := writeFixture(*reportingsOut, reportings); err != nil {
		return fmt.Errorf("writing reportings fixture: %w", err)
	}
	log.Printf("wrote reportings fixture: %s (%d records)", *reportingsOut, len(reportings))

	return nil
}

// mockObservation builds one record with realistic shape variety: some
// records carry legacy scalar waterBody/weatherCondition values, some the
// current list form, and a few drop fields entirely.
func mockObservation(rng *rand.Rand, variant domain.Variant) domain.Observation {
	observedAt := domain.Now().AddDate(0, -rng.Intn(6), -rng.Intn(28))

	obs := domain.Observation{
		"observedAt": observedAt.Format(time.RFC3339),
		"block":      pick(rng, blocks),
		"district":   pick(rng, districts),
	}

	// Legacy scalar form roughly a third of the time.
	if rng.Intn(3) == 0 {
		obs["waterBody"] = pick(rng, waterBodies)
		obs["weatherCondition"] = pick(rng, weather)
	} else {
		obs["waterBody"] = pickN(rng, waterBodies, 1+rng.Intn(2))
		obs["weatherCondition"] = pickN(rng, weather, 1+rng.Intn(2))
	}

	if variant == domain.VariantSightings {
		obs["threats"] = pickN(rng, threatList, rng.Intn(3))
		obs["species"] = []any{map[string]any{
			"type":         pick(rng, speciesList),
			"adult":        float64(rng.Intn(4)),
			"adultMale":    float64(rng.Intn(3)),
			"adultFemale":  float64(rng.Intn(3)),
			"subAdult":     float64(rng.Intn(2)),
			"unidentified": float64(rng.Intn(2)),
		}}
		return obs
	}

	statusCount := func() map[string]any {
		return map[string]any{
			"stranded": float64(rng.Intn(2)),
			"injured":  float64(rng.Intn(2)),
			"dead":     float64(rng.Intn(2)),
		}
	}
	obs["species"] = []any{map[string]any{
		"type":        pick(rng, speciesList),
		"adult":       statusCount(),
		"adultMale":   statusCount(),
		"adultFemale": statusCount(),
		"subAdult":    statusCount(),
	}}
	causes := map[string]any{"cause": pickN(rng, causeList, 1+rng.Intn(2))}
	if rng.Intn(5) == 0 {
		causes["otherCause"] = "Unverified report"
	}
	obs["causes"] = []any{causes}
	return obs
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}

func pickN(rng *rand.Rand, options []string, n int) []any {
	out := make([]any, 0, n)
	for _, i := range rng.Perm(len(options))[:min(n, len(options))] {
		out = append(out, options[i])
	}
	return out
}

func writeFixture(path string, observations []domain.Observation) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(map[string]any{"result": observations}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
