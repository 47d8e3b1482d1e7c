// Command validate performs offline integrity checks on an observation
// fixture: it parses the batch, runs the aggregation battery, and verifies
// the ordering invariants every report depends on. With -pdf it also runs
// the full render-and-assemble pipeline and writes the document out.
//
// Usage:
//
//	go run ./cmd/validate -json data/mock/sightings.json -variant sightings
//	go run ./cmd/validate -json data/mock/reportings.json -variant reportings -pdf out.pdf
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/wildlife-report-service/internal/domain"
	"github.com/couchcryptid/wildlife-report-service/internal/observability"
	"github.com/couchcryptid/wildlife-report-service/internal/pipeline"
	"github.com/couchcryptid/wildlife-report-service/internal/render"
	"github.com/couchcryptid/wildlife-report-service/internal/report"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

type aggregatorFunc func(domain.Variant, []domain.Observation) []domain.SummaryEntry

func (f aggregatorFunc) Aggregate(v domain.Variant, obs []domain.Observation) []domain.SummaryEntry {
	return f(v, obs)
}

func main() {
	jsonPath := flag.String("json", "", "path to observation fixture JSON")
	variantStr := flag.String("variant", "sightings", "report variant: sightings or reportings")
	pdfOut := flag.String("pdf", "", "optional output path for a full rendered report")
	flag.Parse()

	if *jsonPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	variant, err := domain.ParseVariant(*variantStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	if code := run(*jsonPath, variant, *pdfOut); code != 0 {
		os.Exit(code)
	}
}

func run(jsonPath string, variant domain.Variant, pdfOut string) int {
	fmt.Println("=== Observation Fixture Validation ===")
	fmt.Println()

	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read fixture: %v\n", err)
		return 1
	}

	observations, err := domain.ParseBatch(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse fixture: %v\n", err)
		return 1
	}
	fmt.Printf("loaded %d observations (%s)\n\n", len(observations), variant)

	entries := domain.Aggregate(variant, observations)

	phases := []*phase{
		checkBattery(variant, entries),
		checkOrdering(entries),
		checkCounts(entries),
	}

	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS  %s\n", p.name)
			continue
		}
		failed++
		fmt.Printf("FAIL  %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("      - %s\n", e)
		}
	}

	if pdfOut != "" {
		if err := writeReport(pdfOut, variant, observations); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: write report: %v\n", err)
			return 1
		}
		fmt.Printf("\nwrote report: %s\n", pdfOut)
	}

	if failed > 0 {
		fmt.Printf("\n%d phase(s) failed\n", failed)
		return 1
	}
	fmt.Println("\nall phases passed")
	return 0
}

// checkBattery verifies the produced statistics appear in the variant's
// fixed battery order, allowing omissions for empty categories.
func checkBattery(variant domain.Variant, entries []domain.SummaryEntry) *phase {
	p := &phase{name: "battery order"}

	order := []string{
		"Monthly Frequency Summary", "Block Summary", "District Summary",
		"Water Body Type Summary", "Weather Condition Summary",
		"Threats Summary", "Age Group Summary",
	}
	if variant == domain.VariantReportings {
		order = []string{
			"Monthly Frequency Summary", "Block Summary", "District Summary",
			"Species Summary", "Status Summary", "Causes Summary", "Age Group Summary",
		}
	}

	pos := 0
	for _, entry := range entries {
		found := false
		for ; pos < len(order); pos++ {
			if order[pos] == entry.Title {
				found = true
				pos++
				break
			}
		}
		if !found {
			p.errorf("unexpected or out-of-order statistic %q", entry.Title)
		}
	}
	return p
}

// checkOrdering verifies monthly buckets ascend chronologically and every
// other statistic descends by count.
func checkOrdering(entries []domain.SummaryEntry) *phase {
	p := &phase{name: "ordering invariants"}
	for _, entry := range entries {
		if entry.Title == "Monthly Frequency Summary" {
			for i := 1; i < len(entry.Data); i++ {
				if entry.Data[i-1].Category >= entry.Data[i].Category {
					p.errorf("%s: bucket %q not before %q", entry.Title, entry.Data[i-1].Category, entry.Data[i].Category)
				}
			}
			continue
		}
		for i := 1; i < len(entry.Data); i++ {
			if entry.Data[i-1].Count < entry.Data[i].Count {
				p.errorf("%s: count %d before %d", entry.Title, entry.Data[i-1].Count, entry.Data[i].Count)
			}
		}
	}
	return p
}

// checkCounts verifies basic data sanity: no empty categories, no negative
// counts, no statistic with an empty data set.
func checkCounts(entries []domain.SummaryEntry) *phase {
	p := &phase{name: "data sanity"}
	for _, entry := range entries {
		if len(entry.Data) == 0 {
			p.errorf("%s: empty data", entry.Title)
		}
		for _, pair := range entry.Data {
			if pair.Category == "" {
				p.errorf("%s: empty category label", entry.Title)
			}
			if pair.Count < 0 {
				p.errorf("%s: negative count for %q", entry.Title, pair.Category)
			}
		}
	}
	return p
}

func writeReport(path string, variant domain.Variant, observations []domain.Observation) error {
	generator := pipeline.New(
		aggregatorFunc(domain.Aggregate),
		render.New(1000, 500),
		report.New(),
		slog.Default(),
		observability.NewMetricsForTesting(),
	)
	pdf, _, err := generator.Generate(context.Background(), variant, observations)
	if err != nil {
		return err
	}
	return os.WriteFile(path, pdf, 0o644)
}
