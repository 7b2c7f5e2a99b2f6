package dataset

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"catalyst/internal/domain"
)

// parseXLSX reads the first worksheet of an Office Open XML workbook. Only
// the parts needed for tabular extraction are touched: the workbook sheet
// list, its relationships, shared strings and one sheet document. Date cells
// arrive as raw serial numbers; no style table is consulted.
func parseXLSX(raw []byte) (*Dataset, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, domain.Parsef("invalid xlsx file: %v", err)
	}

	sheetXML := zipEntry(zr, firstSheetPath(zr))
	if len(sheetXML) == 0 {
		return nil, domain.Parsef("workbook has no worksheets")
	}
	shared := parseSharedStrings(zipEntry(zr, "xl/sharedStrings.xml"))

	rows := readSheetRows(sheetXML, shared)
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, domain.Parsef("uploaded file has no columns")
	}

	header := normalizeHeader(rows[0])
	cols := make([]*Column, len(header))
	for i, name := range header {
		cols[i] = &Column{Name: name, Values: make([]string, 0, len(rows)-1)}
	}
	for _, row := range rows[1:] {
		for i := range cols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cols[i].Values = append(cols[i].Values, normalizeCell(cell))
		}
	}
	return &Dataset{Columns: cols}, nil
}

func zipEntry(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil
		}
		defer rc.Close()
		b, _ := io.ReadAll(rc)
		return b
	}
	return nil
}

// firstSheetPath resolves the workbook's first sheet to its zip entry via the
// relationship table, falling back to the conventional sheet1 path.
func firstSheetPath(zr *zip.Reader) string {
	const fallback = "xl/worksheets/sheet1.xml"
	rid := firstSheetRID(zipEntry(zr, "xl/workbook.xml"))
	if rid == "" {
		return fallback
	}
	target := relationshipTarget(zipEntry(zr, "xl/_rels/workbook.xml.rels"), rid)
	if target == "" {
		return fallback
	}
	target = strings.TrimPrefix(target, "/")
	if !strings.HasPrefix(target, "xl/") {
		target = "xl/" + target
	}
	return target
}

func firstSheetRID(workbook []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(workbook))
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "sheet" {
			continue
		}
		for _, a := range se.Attr {
			if a.Name.Local == "id" {
				return a.Value
			}
		}
	}
}

func relationshipTarget(rels []byte, rid string) string {
	dec := xml.NewDecoder(bytes.NewReader(rels))
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		var id, target string
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "Id":
				id = a.Value
			case "Target":
				target = a.Value
			}
		}
		if id == rid {
			return target
		}
	}
}

func parseSharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []string
	var buf strings.Builder
	var inT bool
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "si":
				buf.Reset()
			case "t":
				inT = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inT = false
			case "si":
				out = append(out, buf.String())
			}
		case xml.CharData:
			if inT {
				buf.Write(t)
			}
		}
	}
}

// readSheetRows walks one worksheet document and materializes its rows. Cell
// references (for example "C12") place values at the right column even when
// empty cells are omitted from the XML.
func readSheetRows(sheet []byte, shared []string) [][]string {
	dec := xml.NewDecoder(bytes.NewReader(sheet))
	var rows [][]string
	var cur []string
	inRow := false
	for {
		tok, err := dec.Token()
		if err != nil {
			return rows
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "row":
				inRow = true
				cur = nil
			case "c":
				if !inRow {
					continue
				}
				var ref, typ string
				for _, a := range t.Attr {
					switch a.Name.Local {
					case "r":
						ref = a.Value
					case "t":
						typ = a.Value
					}
				}
				idx := columnIndex(ref)
				if idx < 0 {
					idx = len(cur)
				}
				for len(cur) <= idx {
					cur = append(cur, "")
				}
				cur[idx] = cellValue(dec, typ, shared)
			}
		case xml.EndElement:
			if t.Name.Local == "row" {
				rows = append(rows, cur)
				inRow = false
			}
		}
	}
}

// cellValue consumes tokens up to the cell's closing tag, collecting the
// inner <v> (or inline <is><t>) text, and resolves shared-string indices.
func cellValue(dec *xml.Decoder, typ string, shared []string) string {
	var val strings.Builder
	capture := false
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "v" || t.Name.Local == "t" {
				capture = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "v", "t":
				capture = false
			case "c":
				return resolveCell(val.String(), typ, shared)
			}
		case xml.CharData:
			if capture {
				val.Write(t)
			}
		}
	}
	return resolveCell(val.String(), typ, shared)
}

func resolveCell(v, typ string, shared []string) string {
	if typ != "s" {
		return v
	}
	idx, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || idx < 0 || idx >= len(shared) {
		return ""
	}
	return shared[idx]
}

// columnIndex converts the letter part of a cell reference to a zero-based
// column index; -1 when the reference is absent.
func columnIndex(ref string) int {
	i := 0
	for i < len(ref) {
		c := ref[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			i++
			continue
		}
		break
	}
	if i == 0 {
		return -1
	}
	idx := 0
	for _, c := range strings.ToUpper(ref[:i]) {
		idx = idx*26 + int(c-'A'+1)
	}
	return idx - 1
}
