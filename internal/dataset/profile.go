package dataset

// NumericSummary carries the basic statistics shared with the suggestion
// service for one numeric column.
type NumericSummary struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// ColumnProfile is the compact per-column summary sent to the suggestion
// service: name, inferred type, numeric ranges and categorical cardinality.
type ColumnProfile struct {
	Name     string          `json:"name"`
	Kind     Kind            `json:"type"`
	Numeric  *NumericSummary `json:"numeric,omitempty"`
	Distinct int             `json:"distinct,omitempty"`
}

// Profile is the request-scoped dataset summary behind every suggestion
// call. It is regenerated per request and never persisted.
type Profile struct {
	Rows    int             `json:"rows"`
	Columns []ColumnProfile `json:"columns"`
}

// BuildProfile summarizes the cleaned Dataset for the suggestion service.
func BuildProfile(ds *Dataset) Profile {
	p := Profile{Rows: ds.Rows()}
	for _, c := range ds.Columns {
		cp := ColumnProfile{Name: c.Name, Kind: c.Kind}
		switch c.Kind {
		case KindNumeric:
			if s, ok := summarize(c.Floats()); ok {
				cp.Numeric = &s
			}
		case KindCategorical, KindText:
			cp.Distinct = c.Distinct()
		}
		p.Columns = append(p.Columns, cp)
	}
	return p
}

// NumericColumnNames lists the numeric columns in table order; handy for
// correlation-style charts that span every numeric column.
func (p Profile) NumericColumnNames() []string {
	var names []string
	for _, c := range p.Columns {
		if c.Kind == KindNumeric {
			names = append(names, c.Name)
		}
	}
	return names
}

func summarize(vals []float64) (NumericSummary, bool) {
	if len(vals) == 0 {
		return NumericSummary{}, false
	}
	s := NumericSummary{Min: vals[0], Max: vals[0]}
	sum := 0.0
	for _, v := range vals {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		sum += v
	}
	s.Mean = sum / float64(len(vals))
	return s, true
}
