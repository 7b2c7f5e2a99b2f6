package domain

// Section names under which the dashboard groups charts. Partitioning is
// structural: single-column charts are univariate, two-column relationship
// charts bivariate, tables, heatmaps and wider charts multivariate.
const (
	SectionUnivariate   = "univariate"
	SectionBivariate    = "bivariate"
	SectionMultivariate = "multivariate"
)

// Sections lists the section names in display order.
func Sections() []string {
	return []string{SectionUnivariate, SectionBivariate, SectionMultivariate}
}

// RenderedChart is one serialized chart as the dashboard consumes it. JSON
// holds the Plotly figure document (data traces plus layout) as a string; the
// browser parses it and hands it straight to the plotting call, so nothing
// downstream may reshape it.
type RenderedChart struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	JSON        string `json:"json"`
}

// AnalysisPayload is the success response for one upload. Rows counts the
// table after deduplication, MissingValues counts cells before cleaning, and
// AnalysisSections always carries all three section keys.
type AnalysisPayload struct {
	Rows             int                        `json:"rows"`
	CleanScore       int                        `json:"clean_score"`
	MissingValues    int                        `json:"missing_values"`
	AnalysisSections map[string][]RenderedChart `json:"analysis_sections"`
	Preview          []map[string]any           `json:"preview"`
}
