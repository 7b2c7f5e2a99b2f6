package dataset

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// CleaningReport summarizes what cleaning did to one uploaded table. It is
// immutable once computed; the cleanliness score is based on the cell grid as
// uploaded, before any column or row was removed.
type CleaningReport struct {
	RowsBefore        int
	Rows              int
	MissingBefore     int
	DuplicatesRemoved int
	DroppedColumns    []string
	CleanScore        int
}

// Clean mutates ds in place and reports the result. Order: count missing
// cells, drop entirely-missing columns, drop exact-duplicate rows, impute the
// remaining gaps (numeric by the configured strategy, everything else by
// mode). After Clean a non-empty Dataset has no missing cells left.
func Clean(ds *Dataset, opts Options) CleaningReport {
	opts = opts.withDefaults()

	report := CleaningReport{
		RowsBefore: ds.Rows(),
	}
	totalCells := report.RowsBefore * len(ds.Columns)
	for _, c := range ds.Columns {
		report.MissingBefore += c.Missing()
	}
	report.CleanScore = cleanScore(report.MissingBefore, totalCells)

	dropAllMissingColumns(ds, &report)
	report.DuplicatesRemoved = dropDuplicateRows(ds)
	report.Rows = ds.Rows()
	impute(ds, opts)

	return report
}

// cleanScore is the percentage of cells that arrived populated, rounded to
// the nearest integer. An empty grid counts as fully clean.
func cleanScore(missing, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(100 * (1 - float64(missing)/float64(total))))
}

func dropAllMissingColumns(ds *Dataset, report *CleaningReport) {
	if ds.Rows() == 0 {
		return
	}
	kept := ds.Columns[:0]
	for _, c := range ds.Columns {
		if c.Missing() == len(c.Values) {
			report.DroppedColumns = append(report.DroppedColumns, c.Name)
			continue
		}
		kept = append(kept, c)
	}
	ds.Columns = kept
}

// dropDuplicateRows removes rows whose cells are all equal to an earlier
// row's, keeping the first occurrence, and returns how many were removed.
func dropDuplicateRows(ds *Dataset) int {
	rows := ds.Rows()
	if rows == 0 || len(ds.Columns) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, rows)
	keep := make([]int, 0, rows)
	var key strings.Builder
	for i := 0; i < rows; i++ {
		key.Reset()
		for _, c := range ds.Columns {
			key.WriteString(c.Values[i])
			key.WriteByte(0x1f)
		}
		k := key.String()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keep = append(keep, i)
	}
	if len(keep) == rows {
		return 0
	}
	for _, c := range ds.Columns {
		vals := make([]string, len(keep))
		for j, i := range keep {
			vals[j] = c.Values[i]
		}
		c.Values = vals
	}
	return rows - len(keep)
}

func impute(ds *Dataset, opts Options) {
	if ds.Rows() == 0 {
		return
	}
	for _, c := range ds.Columns {
		if c.Missing() == 0 {
			continue
		}
		fill := ""
		if c.Kind == KindNumeric {
			if v, ok := numericFill(c.Floats(), opts.NumericImputation); ok {
				fill = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		if fill == "" {
			fill = mode(c.Values)
		}
		if fill == "" {
			continue
		}
		for i, v := range c.Values {
			if v == "" {
				c.Values[i] = fill
			}
		}
	}
}

func numericFill(vals []float64, strategy string) (float64, bool) {
	if len(vals) == 0 {
		return 0, false
	}
	if strategy == ImputeMean {
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		return sum / float64(len(vals)), true
	}
	return median(vals), true
}

func median(vals []float64) float64 {
	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// mode returns the most frequent non-missing value; ties go to the
// lexicographically smallest so imputation stays deterministic.
func mode(values []string) string {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
	}
	best, bestCount := "", 0
	for v, n := range counts {
		if n > bestCount || (n == bestCount && v < best) {
			best, bestCount = v, n
		}
	}
	return best
}
