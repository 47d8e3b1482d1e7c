package domain

// ChartArtifact is one rendered chart image, held in memory for the
// lifetime of a single report-generation call. Name is unique within the
// call's namespace; the assembler uses it as the embedded-image key.
type ChartArtifact struct {
	Name string
	PNG  []byte
}
