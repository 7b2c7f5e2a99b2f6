package dataset

import (
	"strings"
	"testing"

	"catalyst/internal/domain"
)

func TestFormatForFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Format
		wantErr  bool
	}{
		{name: "csv", filename: "sales.csv", want: FormatCSV},
		{name: "uppercase extension", filename: "SALES.CSV", want: FormatCSV},
		{name: "xlsx", filename: "report.xlsx", want: FormatXLSX},
		{name: "json", filename: "records.json", want: FormatJSON},
		{name: "full path", filename: "/tmp/uploads/data.csv", want: FormatCSV},
		{name: "unsupported", filename: "notes.txt", wantErr: true},
		{name: "no extension", filename: "data", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FormatForFilename(tc.filename)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("FormatForFilename(%q) accepted", tc.filename)
				}
				if !domain.IsParseError(err) {
					t.Fatalf("error %v is not a ParseError", err)
				}
				if err.Error() != "Unsupported file format" {
					t.Fatalf("error message = %q", err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("FormatForFilename(%q) returned error: %v", tc.filename, err)
			}
			if got != tc.want {
				t.Fatalf("FormatForFilename(%q) = %q, want %q", tc.filename, got, tc.want)
			}
		})
	}
}

func TestParseCSV(t *testing.T) {
	raw := "name,amount,signup\nalice,10.5,2023-01-02\nbob,NA,2023-02-03\ncarol,7,2023-03-04\n"

	ds, err := Parse(FormatCSV, strings.NewReader(raw), Options{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := ds.ColumnNames(); len(got) != 3 || got[0] != "name" || got[1] != "amount" || got[2] != "signup" {
		t.Fatalf("columns = %v", got)
	}
	if ds.Rows() != 3 {
		t.Fatalf("rows = %d, want 3", ds.Rows())
	}
	if kind := ds.Column("amount").Kind; kind != KindNumeric {
		t.Fatalf("amount kind = %q, want numeric", kind)
	}
	if kind := ds.Column("signup").Kind; kind != KindDatetime {
		t.Fatalf("signup kind = %q, want datetime", kind)
	}
	if kind := ds.Column("name").Kind; kind != KindCategorical {
		t.Fatalf("name kind = %q, want categorical", kind)
	}
	if got := ds.Column("amount").Values[1]; got != "" {
		t.Fatalf("NA cell = %q, want empty", got)
	}
}

func TestParseCSVSniffsSemicolon(t *testing.T) {
	raw := "name;amount\nalice;10\nbob;20\n"

	ds, err := Parse(FormatCSV, strings.NewReader(raw), Options{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := ds.ColumnNames(); len(got) != 2 || got[1] != "amount" {
		t.Fatalf("columns = %v", got)
	}
	if got, _ := ds.Column("amount").Float(1); got != 20 {
		t.Fatalf("amount[1] = %v, want 20", got)
	}
}

func TestParseCSVStripsBOM(t *testing.T) {
	raw := "\xef\xbb\xbfname,amount\nalice,1\n"

	ds, err := Parse(FormatCSV, strings.NewReader(raw), Options{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := ds.Columns[0].Name; got != "name" {
		t.Fatalf("first column = %q, want %q", got, "name")
	}
}

func TestParseCSVHeaderNormalization(t *testing.T) {
	raw := "name,,name\na,b,c\n"

	ds, err := Parse(FormatCSV, strings.NewReader(raw), Options{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := []string{"name", "column_2", "name_2"}
	got := ds.ColumnNames()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseCSVFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty file", raw: ""},
		{name: "whitespace only", raw: "  \n \n"},
		{name: "ragged row", raw: "a,b\n1,2,3\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(FormatCSV, strings.NewReader(tc.raw), Options{})
			if err == nil {
				t.Fatal("Parse accepted invalid input")
			}
			if !domain.IsParseError(err) {
				t.Fatalf("error %v is not a ParseError", err)
			}
		})
	}
}

func TestParseCSVHeaderOnly(t *testing.T) {
	ds, err := Parse(FormatCSV, strings.NewReader("a,b\n"), Options{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if ds.Rows() != 0 {
		t.Fatalf("rows = %d, want 0", ds.Rows())
	}
	if len(ds.Columns) != 2 {
		t.Fatalf("columns = %d, want 2", len(ds.Columns))
	}
}

func TestParseJSONRecords(t *testing.T) {
	raw := `[
		{"name": "alice", "amount": 10.5},
		{"amount": null, "name": "bob", "extra": true},
		{"name": "carol", "amount": 7}
	]`

	ds, err := Parse(FormatJSON, strings.NewReader(raw), Options{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := []string{"amount", "extra", "name"}
	got := ds.ColumnNames()
	if len(got) != len(want) {
		t.Fatalf("columns = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %d = %q, want %q", i, got[i], want[i])
		}
	}
	if ds.Rows() != 3 {
		t.Fatalf("rows = %d, want 3", ds.Rows())
	}
	if v := ds.Column("amount").Values[1]; v != "" {
		t.Fatalf("null cell = %q, want empty", v)
	}
	if v := ds.Column("extra").Values[0]; v != "" {
		t.Fatalf("absent cell = %q, want empty", v)
	}
	if v := ds.Column("extra").Values[1]; v != "true" {
		t.Fatalf("bool cell = %q, want %q", v, "true")
	}
	if v := ds.Column("amount").Values[0]; v != "10.5" {
		t.Fatalf("number cell = %q, want %q", v, "10.5")
	}
}

func TestParseJSONRejectsNonArray(t *testing.T) {
	for _, raw := range []string{`{"name":"alice"}`, `"text"`, `[]`} {
		if _, err := Parse(FormatJSON, strings.NewReader(raw), Options{}); err == nil {
			t.Fatalf("Parse accepted %q", raw)
		}
	}
}

func TestInferKindMajorityVote(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   Kind
	}{
		{name: "numeric majority", values: []string{"1", "2", "x"}, want: KindNumeric},
		{name: "numeric wins tie with text", values: []string{"1", "x"}, want: KindNumeric},
		{name: "datetime majority", values: []string{"2023-01-02", "2023-01-03", "x"}, want: KindDatetime},
		{name: "categorical", values: []string{"yes", "no", "yes"}, want: KindCategorical},
		{name: "free text", values: []string{"a long descriptive sentence", "another long remark here"}, want: KindText},
		{name: "all missing", values: []string{"", ""}, want: KindUnknown},
		{name: "empty", values: nil, want: KindUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := inferKind(tc.values, defaultTextLengthMin); got != tc.want {
				t.Fatalf("inferKind(%v) = %q, want %q", tc.values, got, tc.want)
			}
		})
	}
}

func TestValueCountsOrdering(t *testing.T) {
	col := &Column{Name: "city", Values: []string{"b", "a", "b", "c", "a", "b", ""}}

	counts := col.ValueCounts()
	want := []ValueCount{{Value: "b", Count: 3}, {Value: "a", Count: 2}, {Value: "c", Count: 1}}
	if len(counts) != len(want) {
		t.Fatalf("counts = %v, want %v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("counts[%d] = %v, want %v", i, counts[i], want[i])
		}
	}
}
