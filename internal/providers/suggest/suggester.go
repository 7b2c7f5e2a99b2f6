// Package suggest asks a hosted model for deep-dive chart suggestions based
// on a compact dataset profile. Providers are interchangeable behind the
// Suggester interface; every response is validated against a fixed chart-type
// enumeration and the profile's columns before anything reaches the chart
// builders.
package suggest

import (
	"context"
	"strings"

	"catalyst/internal/dataset"
)

// Chart types a provider may suggest. Anything else is discarded during
// normalization.
const (
	ChartKDE     = "kde"
	ChartLine    = "line"
	ChartHeatmap = "heatmap"
	ChartScatter = "scatter"
)

const (
	geminiProviderName = "gemini"
	openAIProviderName = "openai"

	// maxSuggestions caps how many validated suggestions one response may
	// contribute.
	maxSuggestions = 8
)

// Suggestion is one validated chart recommendation.
type Suggestion struct {
	ChartType string
	Columns   []string
	Rationale string
}

// Suggester performs the single outbound suggestion call for one upload.
// Implementations make one attempt, bounded by the caller's context; the
// pipeline recovers from any error by continuing with standard charts only.
type Suggester interface {
	Suggest(ctx context.Context, profile dataset.Profile) ([]Suggestion, error)
}

// Disabled is the Suggester used when no provider is configured. It keeps
// the pipeline fully operational without network access.
type Disabled struct{}

// NewDisabled returns the no-op Suggester.
func NewDisabled() *Disabled {
	return &Disabled{}
}

// Suggest returns no suggestions.
func (*Disabled) Suggest(context.Context, dataset.Profile) ([]Suggestion, error) {
	return nil, nil
}

var _ Suggester = (*Disabled)(nil)

// suggestionPayload is the wire shape providers decode. Models sometimes
// answer with "type" instead of "chart_type" or with x/y fields instead of a
// columns array; both spellings are accepted, everything else is dropped.
type suggestionPayload struct {
	ChartType string   `json:"chart_type"`
	Type      string   `json:"type"`
	Columns   []string `json:"columns"`
	X         string   `json:"x"`
	Y         string   `json:"y"`
	Rationale string   `json:"rationale"`
}

// chartTypeAliases maps free-form model vocabulary onto the enumeration.
var chartTypeAliases = map[string]string{
	"kde":                 ChartKDE,
	"density":             ChartKDE,
	"density curve":       ChartKDE,
	"violin":              ChartKDE,
	"line":                ChartLine,
	"line chart":          ChartLine,
	"time series":         ChartLine,
	"time-series":         ChartLine,
	"timeseries":          ChartLine,
	"trend":               ChartLine,
	"heatmap":             ChartHeatmap,
	"correlation":         ChartHeatmap,
	"correlation heatmap": ChartHeatmap,
	"scatter":             ChartScatter,
	"scatter plot":        ChartScatter,
	"scatterplot":         ChartScatter,
}

// normalizeChartType resolves a raw chart type to the enumeration; false when
// it falls outside it.
func normalizeChartType(raw string) (string, bool) {
	t, ok := chartTypeAliases[strings.ToLower(strings.TrimSpace(raw))]
	return t, ok
}

// normalizeSuggestions validates raw model output: unknown chart types and
// columns missing from the profile are discarded, x/y fields fold into the
// columns list, and each type's column shape is enforced. The second return
// lists why entries were dropped, for logging.
func normalizeSuggestions(raw []suggestionPayload, profile dataset.Profile) ([]Suggestion, []string) {
	kinds := make(map[string]dataset.Kind, len(profile.Columns))
	for _, c := range profile.Columns {
		kinds[c.Name] = c.Kind
	}

	var out []Suggestion
	var dropped []string
	for _, p := range raw {
		if len(out) >= maxSuggestions {
			break
		}
		rawType := p.ChartType
		if strings.TrimSpace(rawType) == "" {
			rawType = p.Type
		}
		chartType, ok := normalizeChartType(rawType)
		if !ok {
			dropped = append(dropped, "unknown chart type "+strings.TrimSpace(rawType))
			continue
		}

		cols := make([]string, 0, len(p.Columns)+2)
		for _, c := range append(append([]string{}, p.Columns...), p.X, p.Y) {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			if _, exists := kinds[c]; !exists {
				cols = nil
				dropped = append(dropped, "unknown column "+c)
				break
			}
			cols = append(cols, c)
		}
		if cols == nil {
			continue
		}

		s, reason := shapeSuggestion(chartType, cols, kinds, profile)
		if reason != "" {
			dropped = append(dropped, reason)
			continue
		}
		s.Rationale = strings.TrimSpace(p.Rationale)
		out = append(out, s)
	}
	return out, dropped
}

// shapeSuggestion enforces the per-type column shape and trims extras.
func shapeSuggestion(chartType string, cols []string, kinds map[string]dataset.Kind, profile dataset.Profile) (Suggestion, string) {
	switch chartType {
	case ChartKDE:
		if len(cols) == 0 || kinds[cols[0]] != dataset.KindNumeric {
			return Suggestion{}, "kde needs a numeric column"
		}
		return Suggestion{ChartType: chartType, Columns: cols[:1]}, ""
	case ChartLine:
		if len(cols) < 2 {
			return Suggestion{}, "line needs x and y columns"
		}
		if kinds[cols[1]] != dataset.KindNumeric {
			return Suggestion{}, "line needs a numeric y column"
		}
		return Suggestion{ChartType: chartType, Columns: cols[:2]}, ""
	case ChartScatter:
		if len(cols) < 2 {
			return Suggestion{}, "scatter needs two columns"
		}
		return Suggestion{ChartType: chartType, Columns: cols[:2]}, ""
	case ChartHeatmap:
		numeric := profile.NumericColumnNames()
		if len(numeric) < 2 {
			return Suggestion{}, "heatmap needs at least two numeric columns"
		}
		return Suggestion{ChartType: chartType, Columns: numeric}, ""
	default:
		return Suggestion{}, "unknown chart type " + chartType
	}
}
