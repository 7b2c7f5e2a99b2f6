package charts

import (
	"fmt"

	"catalyst/internal/dataset"
)

// StandardOptions bound the deterministic suite.
type StandardOptions struct {
	// BarTopN caps categorical bars before the "Other" bucket.
	BarTopN int
	// TimeSeriesMax caps how many numeric columns pair with the first
	// datetime column for trend lines.
	TimeSeriesMax int
}

func (o StandardOptions) withDefaults() StandardOptions {
	if o.BarTopN <= 0 {
		o.BarTopN = 20
	}
	if o.TimeSeriesMax <= 0 {
		o.TimeSeriesMax = 3
	}
	return o
}

// Standard emits the guaranteed chart suite for a cleaned dataset, in a
// fixed order: descriptive statistics, correlation matrix, one histogram and
// one box plot per numeric column, one bar chart per categorical column, and
// trend lines pairing the first datetime column with the leading numeric
// columns. It never fails; free-text and unknown columns produce no chart
// and come back as warnings instead.
func Standard(ds *dataset.Dataset, opts StandardOptions) ([]Chart, []string) {
	opts = opts.withDefaults()

	var out []Chart
	var warnings []string
	add := func(c *Chart, err error) {
		if err != nil {
			warnings = append(warnings, err.Error())
			return
		}
		out = append(out, *c)
	}

	numeric := ds.ColumnsOfKind(dataset.KindNumeric)
	if len(numeric) > 0 {
		add(StatsTable(ds.Columns))
	}
	if len(numeric) >= 2 {
		add(CorrelationHeatmap(ds.Columns))
	}
	for _, c := range numeric {
		add(Histogram(c))
		add(Box(c))
	}
	for _, c := range ds.ColumnsOfKind(dataset.KindCategorical) {
		add(Bar(c, opts.BarTopN))
	}
	if dt := ds.ColumnsOfKind(dataset.KindDatetime); len(dt) > 0 {
		limit := opts.TimeSeriesMax
		if limit > len(numeric) {
			limit = len(numeric)
		}
		for _, c := range numeric[:limit] {
			add(Line(dt[0], c))
		}
	}
	for _, c := range ds.Columns {
		switch c.Kind {
		case dataset.KindText:
			warnings = append(warnings, fmt.Sprintf("column %q is free text, no chart emitted", c.Name))
		case dataset.KindUnknown:
			warnings = append(warnings, fmt.Sprintf("column %q has no determinable type, no chart emitted", c.Name))
		}
	}
	return out, warnings
}
