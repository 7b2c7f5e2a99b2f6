package charts

import (
	"testing"

	"github.com/stretchr/testify/require"

	"catalyst/internal/dataset"
)

func TestStandardSuiteComposition(t *testing.T) {
	ds := &dataset.Dataset{Columns: []*dataset.Column{
		numericColumn("amount", "1", "2", "3"),
		numericColumn("qty", "3", "1", "2"),
		categoricalColumn("city", "oslo", "bergen", "oslo"),
		datetimeColumn("signup", "2023-01-01", "2023-02-01", "2023-03-01"),
		{Name: "comment", Kind: dataset.KindText, Values: []string{"a long remark", "another remark", "more text"}},
		{Name: "junk", Kind: dataset.KindUnknown, Values: []string{"", "", ""}},
	}}

	charts, warnings := Standard(ds, StandardOptions{})

	types := make([]string, len(charts))
	for i, c := range charts {
		types[i] = c.Type
	}
	want := []string{
		TypeTable,
		TypeHeatmap,
		TypeHistogram, TypeBox,
		TypeHistogram, TypeBox,
		TypeBar,
		TypeLine, TypeLine,
	}
	require.Equal(t, want, types)

	require.Len(t, warnings, 2)
	require.Contains(t, warnings[0], "comment")
	require.Contains(t, warnings[1], "junk")
}

func TestStandardGuaranteeForNumericColumn(t *testing.T) {
	ds := &dataset.Dataset{Columns: []*dataset.Column{
		numericColumn("amount", "1", "2", "3"),
	}}

	charts, warnings := Standard(ds, StandardOptions{})

	require.Empty(t, warnings)
	require.Len(t, charts, 3)
	require.Equal(t, TypeTable, charts[0].Type)
	require.Equal(t, TypeHistogram, charts[1].Type)
	require.Equal(t, TypeBox, charts[2].Type)
	for _, c := range charts[1:] {
		require.Equal(t, []string{"amount"}, c.Columns)
	}
}

func TestStandardCategoricalOnly(t *testing.T) {
	ds := &dataset.Dataset{Columns: []*dataset.Column{
		categoricalColumn("city", "oslo", "bergen"),
	}}

	charts, warnings := Standard(ds, StandardOptions{})

	require.Empty(t, warnings)
	require.Len(t, charts, 1)
	require.Equal(t, TypeBar, charts[0].Type)
}

func TestStandardEmptyDataset(t *testing.T) {
	charts, warnings := Standard(&dataset.Dataset{}, StandardOptions{})

	require.Empty(t, charts)
	require.Empty(t, warnings)
}

func TestStandardTimeSeriesLimit(t *testing.T) {
	ds := &dataset.Dataset{Columns: []*dataset.Column{
		numericColumn("a", "1", "2"),
		numericColumn("b", "2", "3"),
		numericColumn("c", "3", "4"),
		numericColumn("d", "4", "5"),
		datetimeColumn("when", "2023-01-01", "2023-02-01"),
	}}

	charts, _ := Standard(ds, StandardOptions{TimeSeriesMax: 2})

	var lines []string
	for _, c := range charts {
		if c.Type == TypeLine {
			lines = append(lines, c.Columns[1])
		}
	}
	require.Equal(t, []string{"a", "b"}, lines)
}
