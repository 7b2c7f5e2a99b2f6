// Package engine runs the analysis pipeline for one uploaded file: parse,
// clean, build the standard chart suite, fold in provider suggestions, and
// assemble the dashboard payload.
package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"catalyst/internal/charts"
	"catalyst/internal/dataset"
	"catalyst/internal/domain"
	"catalyst/internal/infra"
	"catalyst/internal/providers/suggest"
)

const defaultSuggestTimeout = 15 * time.Second

// Options configures an Engine. Zero values fall back to sensible defaults,
// except Suggester, which falls back to the disabled provider.
type Options struct {
	NumericImputation string
	TextLengthMin     int
	BarTopCategories  int
	TimeSeriesMax     int

	// PreviewRows is how many cleaned rows the payload echoes back. Zero
	// means no preview.
	PreviewRows int

	Suggester      suggest.Suggester
	SuggestTimeout time.Duration
	Logger         *infra.Logger
}

// Engine executes the pipeline. It is stateless across uploads and safe for
// concurrent use.
type Engine struct {
	datasetOpts    dataset.Options
	chartOpts      charts.StandardOptions
	previewRows    int
	suggester      suggest.Suggester
	suggestTimeout time.Duration
	logger         infra.Logger
}

// New builds an Engine from the given options.
func New(opts Options) *Engine {
	suggester := opts.Suggester
	if suggester == nil {
		suggester = suggest.NewDisabled()
	}
	timeout := opts.SuggestTimeout
	if timeout <= 0 {
		timeout = defaultSuggestTimeout
	}
	previewRows := opts.PreviewRows
	if previewRows < 0 {
		previewRows = 0
	}
	logger := infra.NewLogger("")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Engine{
		datasetOpts: dataset.Options{
			NumericImputation: opts.NumericImputation,
			TextLengthMin:     opts.TextLengthMin,
		},
		chartOpts: charts.StandardOptions{
			BarTopN:       opts.BarTopCategories,
			TimeSeriesMax: opts.TimeSeriesMax,
		},
		previewRows:    previewRows,
		suggester:      suggester,
		suggestTimeout: timeout,
		logger:         logger,
	}
}

// Analyze ingests one uploaded tabular file and produces the dashboard
// payload. Errors from the parsing stage abort the run; everything after
// parsing degrades instead of failing, so a reachable dataset always yields
// a payload.
func (e *Engine) Analyze(ctx context.Context, filename string, r io.Reader) (*domain.AnalysisPayload, error) {
	format, err := dataset.FormatForFilename(filename)
	if err != nil {
		return nil, err
	}

	ds, err := dataset.Parse(format, r, e.datasetOpts)
	if err != nil {
		return nil, err
	}

	report := dataset.Clean(ds, e.datasetOpts)
	e.logger.Info().
		Str("filename", filename).
		Int("rows_before", report.RowsBefore).
		Int("rows", report.Rows).
		Int("missing_cells", report.MissingBefore).
		Int("duplicates_removed", report.DuplicatesRemoved).
		Strs("dropped_columns", report.DroppedColumns).
		Int("clean_score", report.CleanScore).
		Msg("dataset cleaned")

	dataset.EngineerFeatures(ds, e.datasetOpts)

	rendered, warnings := charts.Standard(ds, e.chartOpts)
	for _, warn := range warnings {
		e.logger.Warn().Str("detail", warn).Msg("standard chart skipped")
	}

	rendered = append(rendered, e.suggested(ctx, ds)...)

	return e.assemble(ds, report, rendered), nil
}

// suggested asks the configured provider for deep-dive charts and builds the
// ones that survive validation. Provider failures are recovered here; the
// upload still succeeds on standard charts alone.
func (e *Engine) suggested(ctx context.Context, ds *dataset.Dataset) []charts.Chart {
	profile := dataset.BuildProfile(ds)

	sctx, cancel := context.WithTimeout(ctx, e.suggestTimeout)
	defer cancel()

	sugs, err := e.suggester.Suggest(sctx, profile)
	if err != nil {
		e.logger.Warn().Err(domain.AIServiceErr(err)).Msg("chart suggestions unavailable, serving standard charts only")
		return nil
	}

	out := make([]charts.Chart, 0, len(sugs))
	for _, s := range sugs {
		chart, err := e.buildSuggested(ds, s)
		if err != nil {
			e.logger.Debug().Err(err).Str("chart_type", s.ChartType).Msg("suggested chart not buildable")
			continue
		}
		if s.Rationale != "" {
			chart.Description = s.Rationale
		}
		out = append(out, *chart)
	}
	return out
}

func (e *Engine) buildSuggested(ds *dataset.Dataset, s suggest.Suggestion) (*charts.Chart, error) {
	switch s.ChartType {
	case suggest.ChartKDE:
		col, err := requireColumns(ds, s.Columns, 1)
		if err != nil {
			return nil, err
		}
		return charts.KDE(col[0])
	case suggest.ChartLine:
		cols, err := requireColumns(ds, s.Columns, 2)
		if err != nil {
			return nil, err
		}
		return charts.Line(cols[0], cols[1])
	case suggest.ChartScatter:
		cols, err := requireColumns(ds, s.Columns, 2)
		if err != nil {
			return nil, err
		}
		return charts.Scatter(cols[0], cols[1])
	case suggest.ChartHeatmap:
		return charts.CorrelationHeatmap(ds.ColumnsOfKind(dataset.KindNumeric))
	default:
		return nil, fmt.Errorf("unsupported chart type %q", s.ChartType)
	}
}

func requireColumns(ds *dataset.Dataset, names []string, n int) ([]*dataset.Column, error) {
	if len(names) < n {
		return nil, fmt.Errorf("need %d columns, got %d", n, len(names))
	}
	cols := make([]*dataset.Column, 0, n)
	for _, name := range names[:n] {
		col := ds.Column(name)
		if col == nil {
			return nil, fmt.Errorf("column %q not found", name)
		}
		cols = append(cols, col)
	}
	return cols, nil
}
