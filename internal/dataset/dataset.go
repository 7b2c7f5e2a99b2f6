package dataset

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a column by the predominant type of its cells.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
	KindDatetime    Kind = "datetime"
	KindText        Kind = "text"
	KindUnknown     Kind = "unknown"
)

// Options tune parsing, type inference and cleaning. The zero value selects
// the defaults.
type Options struct {
	// NumericImputation is the fill strategy for missing numeric cells:
	// "median" (default) or "mean".
	NumericImputation string
	// TextLengthMin is the average cell length beyond which a non-numeric,
	// non-datetime column counts as free text instead of categorical.
	TextLengthMin int
}

const (
	ImputeMedian = "median"
	ImputeMean   = "mean"

	defaultTextLengthMin = 10
)

func (o Options) withDefaults() Options {
	if o.NumericImputation != ImputeMean {
		o.NumericImputation = ImputeMedian
	}
	if o.TextLengthMin <= 0 {
		o.TextLengthMin = defaultTextLengthMin
	}
	return o
}

// Column is one named column of raw cells. Missing cells are normalized to
// the empty string at parse time; everything else is kept as received.
type Column struct {
	Name   string
	Kind   Kind
	Values []string
}

// Dataset is an in-memory table. It lives for one request: parsed from the
// upload, mutated in place by cleaning and feature engineering, then
// discarded once the response is assembled.
type Dataset struct {
	Columns []*Column
}

var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
}

func isMissingToken(v string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// normalizeCell maps missing-value tokens to the empty string and leaves
// other cells untouched.
func normalizeCell(v string) string {
	if isMissingToken(v) {
		return ""
	}
	return v
}

// Rows returns the number of data rows.
func (d *Dataset) Rows() int {
	if d == nil || len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Values)
}

// ColumnNames returns the column names in table order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name, or nil.
func (d *Dataset) Column(name string) *Column {
	for _, c := range d.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// HasColumn reports whether a column with the given name exists.
func (d *Dataset) HasColumn(name string) bool {
	return d.Column(name) != nil
}

// ColumnsOfKind returns the columns of the given kind in table order.
func (d *Dataset) ColumnsOfKind(kind Kind) []*Column {
	var out []*Column
	for _, c := range d.Columns {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Missing counts the column's missing cells.
func (c *Column) Missing() int {
	n := 0
	for _, v := range c.Values {
		if v == "" {
			n++
		}
	}
	return n
}

// Float parses the cell at row i as a number.
func (c *Column) Float(i int) (float64, bool) {
	if i < 0 || i >= len(c.Values) {
		return 0, false
	}
	return parseNumeric(c.Values[i])
}

// Time parses the cell at row i as a timestamp.
func (c *Column) Time(i int) (time.Time, bool) {
	if i < 0 || i >= len(c.Values) {
		return time.Time{}, false
	}
	return parseTime(c.Values[i])
}

// Floats returns every cell that parses as a number, in row order.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if f, ok := parseNumeric(v); ok {
			out = append(out, f)
		}
	}
	return out
}

// Distinct counts distinct non-missing values.
func (c *Column) Distinct() int {
	seen := make(map[string]struct{}, len(c.Values))
	for _, v := range c.Values {
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}

// ValueCount is one categorical value and its frequency.
type ValueCount struct {
	Value string
	Count int
}

// ValueCounts returns non-missing value frequencies sorted by count
// descending, ties broken by value ascending.
func (c *Column) ValueCounts() []ValueCount {
	counts := make(map[string]int, len(c.Values))
	for _, v := range c.Values {
		if v == "" {
			continue
		}
		counts[v]++
	}
	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// parseNumeric reports whether v is a finite number. NaN and infinities are
// rejected so one stray cell cannot poison column statistics.
func parseNumeric(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// timeLayouts are tried in order; day-first before month-first for slash
// dates.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
}

func parseTime(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// inferKinds classifies every column by majority vote over its non-missing
// cells: numeric wins ties against datetime, datetime against text. Columns
// that are neither are categorical unless their average cell length crosses
// the free-text threshold.
func (d *Dataset) inferKinds(opts Options) {
	opts = opts.withDefaults()
	for _, c := range d.Columns {
		c.Kind = inferKind(c.Values, opts.TextLengthMin)
	}
}

func inferKind(values []string, textLenMin int) Kind {
	var numCnt, dtCnt, txtCnt, nonMissing, totalLen int
	for _, v := range values {
		if v == "" {
			continue
		}
		nonMissing++
		totalLen += len([]rune(v))
		if _, ok := parseNumeric(v); ok {
			numCnt++
			continue
		}
		if _, ok := parseTime(v); ok {
			dtCnt++
			continue
		}
		txtCnt++
	}
	switch {
	case numCnt > 0 && numCnt >= dtCnt && numCnt >= txtCnt:
		return KindNumeric
	case dtCnt > 0 && dtCnt >= txtCnt:
		return KindDatetime
	case txtCnt > 0:
		if float64(totalLen)/float64(nonMissing) > float64(textLenMin) {
			return KindText
		}
		return KindCategorical
	default:
		return KindUnknown
	}
}
