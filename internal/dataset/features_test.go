package dataset

import "testing"

func TestEngineerFeaturesDatetime(t *testing.T) {
	ds := &Dataset{Columns: []*Column{
		{Name: "signup", Kind: KindDatetime, Values: []string{"2023-01-15", "2024-06-01", ""}},
	}}

	EngineerFeatures(ds, Options{})

	year := ds.Column("signup_Year")
	if year == nil {
		t.Fatal("signup_Year was not derived")
	}
	if year.Kind != KindNumeric {
		t.Fatalf("signup_Year kind = %q, want numeric", year.Kind)
	}
	if year.Values[0] != "2023" || year.Values[1] != "2024" {
		t.Fatalf("years = %v", year.Values)
	}
	if year.Values[2] != "" {
		t.Fatalf("year for missing cell = %q, want empty", year.Values[2])
	}

	month := ds.Column("signup_Month")
	if month == nil {
		t.Fatal("signup_Month was not derived")
	}
	if month.Values[0] != "1" || month.Values[1] != "6" {
		t.Fatalf("months = %v", month.Values)
	}
}

func TestEngineerFeaturesTextLength(t *testing.T) {
	ds := &Dataset{Columns: []*Column{
		{Name: "comment", Kind: KindText, Values: []string{"short", "a much longer remark"}},
	}}

	EngineerFeatures(ds, Options{})

	length := ds.Column("comment_Length")
	if length == nil {
		t.Fatal("comment_Length was not derived")
	}
	if length.Values[0] != "5" || length.Values[1] != "20" {
		t.Fatalf("lengths = %v", length.Values)
	}
}

func TestEngineerFeaturesLeavesOtherKindsAlone(t *testing.T) {
	ds := &Dataset{Columns: []*Column{
		{Name: "city", Kind: KindCategorical, Values: []string{"oslo", "bergen"}},
		{Name: "amount", Kind: KindNumeric, Values: []string{"1", "2"}},
	}}

	EngineerFeatures(ds, Options{})

	if len(ds.Columns) != 2 {
		t.Fatalf("columns = %v, want no derived columns", ds.ColumnNames())
	}
}

func TestEngineerFeaturesSkipsCollidingNames(t *testing.T) {
	ds := &Dataset{Columns: []*Column{
		{Name: "signup", Kind: KindDatetime, Values: []string{"2023-01-15"}},
		{Name: "signup_Year", Kind: KindCategorical, Values: []string{"kept"}},
	}}

	EngineerFeatures(ds, Options{})

	year := ds.Column("signup_Year")
	if year.Values[0] != "kept" {
		t.Fatalf("existing column was overwritten: %v", year.Values)
	}
	if ds.Column("signup_Month") == nil {
		t.Fatal("signup_Month was not derived")
	}
}
