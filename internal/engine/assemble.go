package engine

import (
	"time"

	"catalyst/internal/charts"
	"catalyst/internal/dataset"
	"catalyst/internal/domain"
)

// assemble serializes the charts into their sections and attaches the
// cleaning numbers and row preview. Charts that fail to serialize are
// dropped, never the whole payload.
func (e *Engine) assemble(ds *dataset.Dataset, report dataset.CleaningReport, rendered []charts.Chart) *domain.AnalysisPayload {
	sections := make(map[string][]domain.RenderedChart, 3)
	for _, name := range domain.Sections() {
		sections[name] = []domain.RenderedChart{}
	}

	// Suggestions can repeat a standard chart. Keep the first build.
	seen := make(map[string]struct{}, len(rendered))
	for i := range rendered {
		chart := &rendered[i]
		key := chart.Type + "\x00" + chart.Title
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		doc, err := chart.Figure.MarshalString()
		if err != nil {
			e.logger.Error().Err(domain.RenderErr(chart.Title, err)).Msg("chart dropped")
			continue
		}
		name := sectionFor(chart)
		sections[name] = append(sections[name], domain.RenderedChart{
			Type:        chart.Type,
			Title:       chart.Title,
			Description: chart.Description,
			JSON:        doc,
		})
	}

	return &domain.AnalysisPayload{
		Rows:             report.Rows,
		CleanScore:       report.CleanScore,
		MissingValues:    report.MissingBefore,
		AnalysisSections: sections,
		Preview:          previewRows(ds, e.previewRows),
	}
}

// sectionFor places a chart by its shape: one source column is univariate,
// two is bivariate, anything wider is multivariate. Tables and heatmaps
// summarize all numeric columns at once, so they always land in
// multivariate regardless of how many columns that happens to be.
func sectionFor(c *charts.Chart) string {
	if c.Type == charts.TypeHeatmap || c.Type == charts.TypeTable {
		return domain.SectionMultivariate
	}
	switch len(c.Columns) {
	case 0, 1:
		return domain.SectionUnivariate
	case 2:
		return domain.SectionBivariate
	default:
		return domain.SectionMultivariate
	}
}

func previewRows(ds *dataset.Dataset, limit int) []map[string]any {
	n := ds.Rows()
	if limit < n {
		n = limit
	}
	rows := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		row := make(map[string]any, len(ds.Columns))
		for _, col := range ds.Columns {
			row[col.Name] = previewCell(col, i)
		}
		rows = append(rows, row)
	}
	return rows
}

// previewCell types a cell for JSON: numeric cells become numbers, datetime
// cells normalize to RFC 3339, everything else stays the stored string.
func previewCell(col *dataset.Column, i int) any {
	switch col.Kind {
	case dataset.KindNumeric:
		if v, ok := col.Float(i); ok {
			return v
		}
	case dataset.KindDatetime:
		if t, ok := col.Time(i); ok {
			return t.Format(time.RFC3339)
		}
	}
	return col.Values[i]
}
