package charts

import (
	"fmt"
	"math"
	"sort"
	"time"

	"catalyst/internal/dataset"
)

// Histogram builds the distribution chart for one numeric column.
func Histogram(col *dataset.Column) (*Chart, error) {
	vals := col.Floats()
	if len(vals) == 0 {
		return nil, fmt.Errorf("column %q has no numeric values", col.Name)
	}
	fig := &Figure{
		Data: []Trace{{
			Type:   "histogram",
			X:      anyFloats(vals),
			Marker: accentMarker(),
		}},
		Layout: plotLayout("Dist: "+humanize(col.Name), col.Name, "count"),
	}
	return &Chart{
		Type:        TypeHistogram,
		Title:       "Dist: " + humanize(col.Name),
		Description: fmt.Sprintf("Distribution of %s.", col.Name),
		Columns:     []string{col.Name},
		Figure:      fig,
	}, nil
}

// Box builds the outlier chart for one numeric column.
func Box(col *dataset.Column) (*Chart, error) {
	vals := col.Floats()
	if len(vals) == 0 {
		return nil, fmt.Errorf("column %q has no numeric values", col.Name)
	}
	fig := &Figure{
		Data: []Trace{{
			Type:      "box",
			Y:         anyFloats(vals),
			Name:      humanize(col.Name),
			BoxPoints: "outliers",
			FillColor: colorAccent,
			Line:      inkLine(),
			Marker:    &Marker{Color: colorInk},
		}},
		Layout: plotLayout("Outliers: "+humanize(col.Name), "", col.Name),
	}
	return &Chart{
		Type:        TypeBox,
		Title:       "Outliers: " + humanize(col.Name),
		Description: fmt.Sprintf("Spread and outliers of %s.", col.Name),
		Columns:     []string{col.Name},
		Figure:      fig,
	}, nil
}

// Bar builds the frequency chart for one categorical column, keeping the
// topN most frequent values and folding the rest into an "Other" bucket.
func Bar(col *dataset.Column, topN int) (*Chart, error) {
	counts := col.ValueCounts()
	if len(counts) == 0 {
		return nil, fmt.Errorf("column %q has no values", col.Name)
	}
	if topN > 0 && len(counts) > topN {
		other := 0
		for _, vc := range counts[topN:] {
			other += vc.Count
		}
		counts = append(counts[:topN], dataset.ValueCount{Value: "Other", Count: other})
	}
	x := make([]any, len(counts))
	y := make([]any, len(counts))
	for i, vc := range counts {
		x[i] = vc.Value
		y[i] = vc.Count
	}
	fig := &Figure{
		Data: []Trace{{
			Type:   "bar",
			X:      x,
			Y:      y,
			Marker: accentMarker(),
		}},
		Layout: plotLayout("Count: "+humanize(col.Name), col.Name, "count"),
	}
	return &Chart{
		Type:        TypeBar,
		Title:       "Count: " + humanize(col.Name),
		Description: fmt.Sprintf("Most frequent values of %s.", col.Name),
		Columns:     []string{col.Name},
		Figure:      fig,
	}, nil
}

// KDE builds the density chart for one numeric column, rendered as a violin
// with the inner box and mean line visible.
func KDE(col *dataset.Column) (*Chart, error) {
	vals := col.Floats()
	if len(vals) == 0 {
		return nil, fmt.Errorf("column %q has no numeric values", col.Name)
	}
	fig := &Figure{
		Data: []Trace{{
			Type:      "violin",
			Y:         anyFloats(vals),
			Name:      humanize(col.Name),
			Box:       &Toggle{Visible: true},
			MeanLine:  &Toggle{Visible: true},
			Points:    "all",
			FillColor: colorAccent,
			Line:      inkLine(),
			Marker:    &Marker{Color: colorInk, Size: 3},
		}},
		Layout: plotLayout("Density: "+humanize(col.Name), "", col.Name),
	}
	return &Chart{
		Type:        TypeKDE,
		Title:       "Density: " + humanize(col.Name),
		Description: fmt.Sprintf("Density estimate of %s.", col.Name),
		Columns:     []string{col.Name},
		Figure:      fig,
	}, nil
}

// Line builds a value-over-x chart: rows are paired, sorted by the x column
// (time order for datetime columns) and drawn as a connected line.
func Line(x, y *dataset.Column) (*Chart, error) {
	xs, ys := pairedSeries(x, y)
	if len(xs) == 0 {
		return nil, fmt.Errorf("columns %q and %q share no plottable rows", x.Name, y.Name)
	}
	fig := &Figure{
		Data: []Trace{{
			Type:   "scatter",
			Mode:   "lines+markers",
			X:      xs,
			Y:      ys,
			Line:   inkLine(),
			Marker: &Marker{Color: colorAccent, Size: 6, Line: &LineStyle{Color: colorInk, Width: 1}},
		}},
		Layout: plotLayout("Trend: "+humanize(y.Name), x.Name, y.Name),
	}
	return &Chart{
		Type:        TypeLine,
		Title:       "Trend: " + humanize(y.Name),
		Description: fmt.Sprintf("%s over %s.", y.Name, x.Name),
		Columns:     []string{x.Name, y.Name},
		Figure:      fig,
	}, nil
}

// Scatter builds the relationship chart for two columns.
func Scatter(x, y *dataset.Column) (*Chart, error) {
	rows := minRows(x, y)
	xs := make([]any, 0, rows)
	ys := make([]any, 0, rows)
	for i := 0; i < rows; i++ {
		xv, ok := plotValue(x, i)
		if !ok {
			continue
		}
		yv, ok := plotValue(y, i)
		if !ok {
			continue
		}
		xs = append(xs, xv)
		ys = append(ys, yv)
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("columns %q and %q share no plottable rows", x.Name, y.Name)
	}
	fig := &Figure{
		Data: []Trace{{
			Type:   "scatter",
			Mode:   "markers",
			X:      xs,
			Y:      ys,
			Marker: accentMarker(),
		}},
		Layout: plotLayout(humanize(x.Name)+" vs "+humanize(y.Name), x.Name, y.Name),
	}
	return &Chart{
		Type:        TypeScatter,
		Title:       humanize(x.Name) + " vs " + humanize(y.Name),
		Description: fmt.Sprintf("Relationship between %s and %s.", x.Name, y.Name),
		Columns:     []string{x.Name, y.Name},
		Figure:      fig,
	}, nil
}

// CorrelationHeatmap builds the pairwise Pearson matrix over the numeric
// columns. At least two are required.
func CorrelationHeatmap(cols []*dataset.Column) (*Chart, error) {
	var numeric []*dataset.Column
	for _, c := range cols {
		if c.Kind == dataset.KindNumeric {
			numeric = append(numeric, c)
		}
	}
	if len(numeric) < 2 {
		return nil, fmt.Errorf("correlation needs at least two numeric columns, have %d", len(numeric))
	}
	names := make([]string, len(numeric))
	for i, c := range numeric {
		names[i] = c.Name
	}
	z := make([][]float64, len(numeric))
	for i := range numeric {
		z[i] = make([]float64, len(numeric))
		for j := range numeric {
			if i == j {
				z[i][j] = 1
				continue
			}
			z[i][j] = pearson(numeric[i], numeric[j])
		}
	}
	lo, hi := -1.0, 1.0
	fig := &Figure{
		Data: []Trace{{
			Type:       "heatmap",
			X:          anyStrings(names),
			Y:          anyStrings(names),
			Z:          z,
			ColorScale: heatmapScale,
			ZMin:       &lo,
			ZMax:       &hi,
		}},
		Layout: baseLayout("Correlation Matrix"),
	}
	return &Chart{
		Type:        TypeHeatmap,
		Title:       "Correlation Matrix",
		Description: "Pairwise correlation between numeric columns.",
		Columns:     names,
		Figure:      fig,
	}, nil
}

// statLabels follow the classic describe() rows.
var statLabels = []any{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// StatsTable builds the descriptive-statistics table over the numeric
// columns.
func StatsTable(cols []*dataset.Column) (*Chart, error) {
	var numeric []*dataset.Column
	for _, c := range cols {
		if c.Kind == dataset.KindNumeric {
			numeric = append(numeric, c)
		}
	}
	if len(numeric) == 0 {
		return nil, fmt.Errorf("no numeric columns to describe")
	}
	header := make([]string, 0, len(numeric)+1)
	header = append(header, "stat")
	values := make([][]any, 0, len(numeric)+1)
	values = append(values, statLabels)
	for _, c := range numeric {
		header = append(header, c.Name)
		values = append(values, describe(c.Floats()))
	}
	fig := &Figure{
		Data: []Trace{{
			Type: "table",
			Header: &TableHeader{
				Values: header,
				Align:  "left",
				Fill:   &Fill{Color: colorInk},
				Font:   &Font{Family: fontBody, Size: bodySize, Color: colorPaper},
				Line:   &LineStyle{Color: colorInk, Width: 1},
			},
			Cells: &TableCells{
				Values: values,
				Align:  "left",
				Fill:   &Fill{Color: colorPlot},
				Font:   &Font{Family: fontBody, Size: bodySize, Color: colorInk},
				Line:   &LineStyle{Color: colorInk, Width: 1},
			},
		}},
		Layout: baseLayout("Descriptive Statistics"),
	}
	names := make([]string, len(numeric))
	for i, c := range numeric {
		names[i] = c.Name
	}
	return &Chart{
		Type:        TypeTable,
		Title:       "Descriptive Statistics",
		Description: "Summary statistics for every numeric column.",
		Columns:     names,
		Figure:      fig,
	}, nil
}

// pairedSeries aligns two columns row by row, keeps rows where x is ordered
// and y is numeric, and returns them sorted by x.
func pairedSeries(x, y *dataset.Column) ([]any, []any) {
	type point struct {
		t time.Time
		f float64
		s string
		y float64
	}
	rows := minRows(x, y)
	pts := make([]point, 0, rows)
	for i := 0; i < rows; i++ {
		yv, ok := y.Float(i)
		if !ok {
			continue
		}
		switch x.Kind {
		case dataset.KindDatetime:
			if t, ok := x.Time(i); ok {
				pts = append(pts, point{t: t, y: yv})
			}
		case dataset.KindNumeric:
			if f, ok := x.Float(i); ok {
				pts = append(pts, point{f: f, y: yv})
			}
		default:
			if v := x.Values[i]; v != "" {
				pts = append(pts, point{s: v, y: yv})
			}
		}
	}
	sort.SliceStable(pts, func(i, j int) bool {
		switch x.Kind {
		case dataset.KindDatetime:
			return pts[i].t.Before(pts[j].t)
		case dataset.KindNumeric:
			return pts[i].f < pts[j].f
		default:
			return pts[i].s < pts[j].s
		}
	})
	xs := make([]any, len(pts))
	ys := make([]any, len(pts))
	for i, p := range pts {
		switch x.Kind {
		case dataset.KindDatetime:
			xs[i] = p.t.Format(time.RFC3339)
		case dataset.KindNumeric:
			xs[i] = p.f
		default:
			xs[i] = p.s
		}
		ys[i] = p.y
	}
	return xs, ys
}

// plotValue renders one cell for a scatter axis using the column's kind.
func plotValue(c *dataset.Column, i int) (any, bool) {
	switch c.Kind {
	case dataset.KindNumeric:
		return nullableFloat(c.Float(i))
	case dataset.KindDatetime:
		if t, ok := c.Time(i); ok {
			return t.Format(time.RFC3339), true
		}
		return nil, false
	default:
		if v := c.Values[i]; v != "" {
			return v, true
		}
		return nil, false
	}
}

func nullableFloat(f float64, ok bool) (any, bool) {
	if !ok {
		return nil, false
	}
	return f, true
}

func minRows(a, b *dataset.Column) int {
	if len(a.Values) < len(b.Values) {
		return len(a.Values)
	}
	return len(b.Values)
}

func pearson(a, b *dataset.Column) float64 {
	var n, sx, sy, sxx, syy, sxy float64
	rows := minRows(a, b)
	for i := 0; i < rows; i++ {
		x, ok := a.Float(i)
		if !ok {
			continue
		}
		y, ok := b.Float(i)
		if !ok {
			continue
		}
		n++
		sx += x
		sy += y
		sxx += x * x
		syy += y * y
		sxy += x * y
	}
	if n < 2 {
		return 0
	}
	denom := math.Sqrt((n*sxx - sx*sx) * (n*syy - sy*sy))
	if denom == 0 {
		return 0
	}
	r := (n*sxy - sx*sy) / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

func describe(vals []float64) []any {
	if len(vals) == 0 {
		return []any{0, nil, nil, nil, nil, nil, nil, nil}
	}
	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	mean := 0.0
	for _, v := range s {
		mean += v
	}
	mean /= float64(len(s))
	std := 0.0
	if len(s) > 1 {
		for _, v := range s {
			std += (v - mean) * (v - mean)
		}
		std = math.Sqrt(std / float64(len(s)-1))
	}
	return []any{
		len(s),
		round2(mean),
		round2(std),
		round2(s[0]),
		round2(quantile(s, 0.25)),
		round2(quantile(s, 0.50)),
		round2(quantile(s, 0.75)),
		round2(s[len(s)-1]),
	}
}

// quantile interpolates linearly between the two nearest order statistics.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func anyFloats(vals []float64) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func anyStrings(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
