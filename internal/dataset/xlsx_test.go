package dataset

import (
	"archive/zip"
	"bytes"
	"testing"

	"catalyst/internal/domain"
)

func buildXLSX(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for name, data := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(data)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	raw := buildXLSX(t, map[string]string{
		"xl/workbook.xml": `<workbook xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` +
			`<sheets><sheet name="Data" sheetId="1" r:id="rId7"/></sheets></workbook>`,
		"xl/_rels/workbook.xml.rels": `<Relationships>` +
			`<Relationship Id="rId7" Type="worksheet" Target="worksheets/data.xml"/></Relationships>`,
		"xl/sharedStrings.xml": `<sst><si><t>name</t></si><si><t>amount</t></si>` +
			`<si><t>alice</t></si><si><t>bob</t></si></sst>`,
		"xl/worksheets/data.xml": `<worksheet><sheetData>` +
			`<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>` +
			`<row r="2"><c r="A2" t="s"><v>2</v></c><c r="B2"><v>10.5</v></c></row>` +
			`<row r="3"><c r="A3" t="s"><v>3</v></c><c r="C3"><v>9</v></c></row>` +
			`<row r="4"><c r="A4" t="inlineStr"><is><t>carol</t></is></c><c r="B4"><v>7</v></c></row>` +
			`</sheetData></worksheet>`,
	})

	ds, err := Parse(FormatXLSX, bytes.NewReader(raw), Options{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := ds.ColumnNames(); len(got) != 2 || got[0] != "name" || got[1] != "amount" {
		t.Fatalf("columns = %v", got)
	}
	if ds.Rows() != 3 {
		t.Fatalf("rows = %d, want 3", ds.Rows())
	}
	name := ds.Column("name")
	for i, want := range []string{"alice", "bob", "carol"} {
		if name.Values[i] != want {
			t.Fatalf("name[%d] = %q, want %q", i, name.Values[i], want)
		}
	}
	amount := ds.Column("amount")
	if amount.Kind != KindNumeric {
		t.Fatalf("amount kind = %q, want numeric", amount.Kind)
	}
	if amount.Values[1] != "" {
		t.Fatalf("omitted cell = %q, want empty", amount.Values[1])
	}
	if v, ok := amount.Float(2); !ok || v != 7 {
		t.Fatalf("amount[2] = %v (%v), want 7", v, ok)
	}
}

func TestParseXLSXFallsBackToSheet1(t *testing.T) {
	raw := buildXLSX(t, map[string]string{
		"xl/worksheets/sheet1.xml": `<worksheet><sheetData>` +
			`<row><c t="inlineStr"><is><t>city</t></is></c></row>` +
			`<row><c t="inlineStr"><is><t>oslo</t></is></c></row>` +
			`</sheetData></worksheet>`,
	})

	ds, err := Parse(FormatXLSX, bytes.NewReader(raw), Options{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := ds.Columns[0].Name; got != "city" {
		t.Fatalf("column = %q, want %q", got, "city")
	}
	if got := ds.Column("city").Values[0]; got != "oslo" {
		t.Fatalf("cell = %q, want %q", got, "oslo")
	}
}

func TestParseXLSXFailures(t *testing.T) {
	if _, err := Parse(FormatXLSX, bytes.NewReader([]byte("not a zip")), Options{}); err == nil || !domain.IsParseError(err) {
		t.Fatalf("invalid archive error = %v", err)
	}

	empty := buildXLSX(t, map[string]string{"xl/other.xml": `<x/>`})
	if _, err := Parse(FormatXLSX, bytes.NewReader(empty), Options{}); err == nil || !domain.IsParseError(err) {
		t.Fatalf("missing worksheet error = %v", err)
	}
}
