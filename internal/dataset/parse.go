package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"catalyst/internal/domain"
)

// Format identifies a supported upload format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// FormatForFilename maps a file name to its Format by extension. Unsupported
// extensions are a ParseError; the message is shown to the user as-is.
func FormatForFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", domain.Parsef("Unsupported file format")
	}
}

// Parse decodes r into a Dataset according to format and infers column kinds.
// All failures are ParseErrors.
func Parse(format Format, r io.Reader, opts Options) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, domain.Parsef("could not read upload: %v", err)
	}
	var ds *Dataset
	switch format {
	case FormatCSV:
		ds, err = parseCSV(raw)
	case FormatXLSX:
		ds, err = parseXLSX(raw)
	case FormatJSON:
		ds, err = parseJSON(raw)
	default:
		return nil, domain.Parsef("Unsupported file format")
	}
	if err != nil {
		return nil, err
	}
	ds.inferKinds(opts)
	return ds, nil
}

// sniffDelimiter picks the most frequent of comma, semicolon and tab in the
// header line; comma wins ties.
func sniffDelimiter(raw []byte) rune {
	line := raw
	if idx := bytes.IndexByte(raw, '\n'); idx >= 0 {
		line = raw[:idx]
	}
	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, cand := range []byte{';', '\t'} {
		if n := bytes.Count(line, []byte{cand}); n > bestCount {
			best, bestCount = rune(cand), n
		}
	}
	return best
}

func parseCSV(raw []byte) (*Dataset, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, domain.Parsef("uploaded file is empty")
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = sniffDelimiter(raw)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, domain.Parsef("invalid delimited data: %v", err)
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, domain.Parsef("uploaded file has no columns")
	}

	header := normalizeHeader(records[0])
	cols := make([]*Column, len(header))
	for i, name := range header {
		cols[i] = &Column{Name: name, Values: make([]string, 0, len(records)-1)}
	}
	for _, row := range records[1:] {
		for i := range cols {
			cols[i].Values = append(cols[i].Values, normalizeCell(row[i]))
		}
	}
	return &Dataset{Columns: cols}, nil
}

// normalizeHeader fills empty header cells with positional names and
// disambiguates duplicates with a numeric suffix.
func normalizeHeader(cells []string) []string {
	seen := make(map[string]int, len(cells))
	out := make([]string, len(cells))
	for i, h := range cells {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		}
		seen[name]++
		out[i] = name
	}
	return out
}

// parseJSON accepts an array of flat record objects. The key union defines
// the columns (alphabetical order, for determinism); absent keys are missing
// cells, nested values are carried as their compact JSON text.
func parseJSON(raw []byte) (*Dataset, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var records []map[string]any
	if err := dec.Decode(&records); err != nil {
		return nil, domain.Parsef("invalid JSON records: %v", err)
	}
	if len(records) == 0 {
		return nil, domain.Parsef("uploaded file has no columns")
	}

	nameSet := make(map[string]struct{})
	for _, rec := range records {
		for k := range rec {
			nameSet[k] = struct{}{}
		}
	}
	if len(nameSet) == 0 {
		return nil, domain.Parsef("uploaded file has no columns")
	}
	names := make([]string, 0, len(nameSet))
	for k := range nameSet {
		names = append(names, k)
	}
	sort.Strings(names)

	cols := make([]*Column, len(names))
	for i, name := range names {
		cols[i] = &Column{Name: name, Values: make([]string, 0, len(records))}
	}
	for _, rec := range records {
		for i, name := range names {
			v, ok := rec[name]
			if !ok {
				cols[i].Values = append(cols[i].Values, "")
				continue
			}
			cols[i].Values = append(cols[i].Values, normalizeCell(jsonCell(v)))
		}
	}
	return &Dataset{Columns: cols}, nil
}

func jsonCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
