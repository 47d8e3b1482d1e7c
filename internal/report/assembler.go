// Package report assembles chart artifacts and summary tables into the
// final paginated PDF document.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/couchcryptid/wildlife-report-service/internal/domain"
)

// Layout constants, A4 portrait in millimetres.
const (
	pageWidth   = 210.0
	chartWidth  = 165.0
	chartHeight = 115.5
	catColWidth = 120.0
	frqColWidth = 60.0
)

// Precondition violations. These abort the whole report call; they are not
// soft per-item failures.
var (
	ErrNoCharts       = errors.New("no chart artifacts provided")
	ErrNoObservations = errors.New("no observations provided")
)

var titleCaser = cases.Title(language.English)

// Assembler renders the report document. It is stateless; every call
// builds a fresh document from its arguments only.
type Assembler struct{}

// New creates a PDF assembler.
func New() *Assembler {
	return &Assembler{}
}

// Assemble produces the report: page 1 is a cover with the variant title,
// generation timestamp, and observation count; each following page holds
// one chart image above a Category|Frequency table built from the
// same-position summary entry. Charts and entries must be in 1:1 positional
// correspondence. Fails fast on an empty chart sequence, a missing chart
// buffer, or a zero observation count.
func (a *Assembler) Assemble(charts []domain.ChartArtifact, entries []domain.SummaryEntry, observationCount int, variant domain.Variant) ([]byte, error) {
	if len(charts) == 0 {
		return nil, ErrNoCharts
	}
	if observationCount <= 0 {
		return nil, ErrNoObservations
	}
	for _, c := range charts {
		if len(c.PNG) == 0 {
			return nil, fmt.Errorf("chart artifact %q is missing", c.Name)
		}
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	a.coverPage(pdf, observationCount, variant)

	for i, c := range charts {
		pdf.AddPage()
		a.chartImage(pdf, c)
		if i < len(entries) {
			a.summaryTable(pdf, entries[i])
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	return buf.Bytes(), nil
}

func (a *Assembler) coverPage(pdf *fpdf.Fpdf, observationCount int, variant domain.Variant) {
	pdf.AddPage()

	title := "Sightings Report"
	if variant == domain.VariantReportings {
		title = "Reportings Report"
	}

	pdf.SetY(70)
	pdf.SetFont("Helvetica", "B", 32)
	pdf.SetTextColor(31, 71, 136)
	pdf.CellFormat(0, 18, title, "", 1, "C", false, 0, "")
	pdf.Ln(20)

	now := domain.Now()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "Report Generated", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 8, now.Format("January 2, 2006"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, now.Format("3:04 PM"), "", 1, "C", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Total Observations", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("%d records", observationCount), "", 1, "C", false, 0, "")
}

func (a *Assembler) chartImage(pdf *fpdf.Fpdf, c domain.ChartArtifact) {
	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(c.Name, opts, bytes.NewReader(c.PNG))
	x := (pageWidth - chartWidth) / 2
	pdf.ImageOptions(c.Name, x, pdf.GetY(), chartWidth, chartHeight, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + chartHeight + 10)
}

func (a *Assembler) summaryTable(pdf *fpdf.Fpdf, entry domain.SummaryEntry) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, entry.Title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(44, 90, 160)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(128, 128, 128)
	pdf.CellFormat(catColWidth, 9, "Category", "1", 0, "L", true, 0, "")
	pdf.CellFormat(frqColWidth, 9, "Frequency", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, pair := range entry.Data {
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(211, 211, 211)
		}
		pdf.CellFormat(catColWidth, 8, humanizeCategory(pair.Category), "1", 0, "L", true, 0, "")
		pdf.CellFormat(frqColWidth, 8, strconv.Itoa(pair.Count), "1", 1, "L", true, 0, "")
	}
}

// humanizeCategory presents a raw category key in display form:
// underscores become spaces and each word is title-cased.
func humanizeCategory(category string) string {
	return titleCaser.String(strings.ReplaceAll(category, "_", " "))
}
