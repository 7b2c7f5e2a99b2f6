package dataset

import "strconv"

// EngineerFeatures derives helper columns from the cleaned table: numeric
// year and month columns for every datetime column, and a length column for
// every free-text column. Derived names that collide with existing columns
// are skipped. Only columns present before the call are expanded, so derived
// columns never cascade.
func EngineerFeatures(ds *Dataset, opts Options) {
	opts = opts.withDefaults()
	base := append([]*Column(nil), ds.Columns...)
	for _, c := range base {
		switch c.Kind {
		case KindDatetime:
			addDerived(ds, c.Name+"_Year", deriveYear(c))
			addDerived(ds, c.Name+"_Month", deriveMonth(c))
		case KindText:
			addDerived(ds, c.Name+"_Length", deriveLength(c))
		}
	}
}

func addDerived(ds *Dataset, name string, values []string) {
	if values == nil || ds.HasColumn(name) {
		return
	}
	ds.Columns = append(ds.Columns, &Column{Name: name, Kind: KindNumeric, Values: values})
}

func deriveYear(c *Column) []string {
	out := make([]string, len(c.Values))
	found := false
	for i := range c.Values {
		if t, ok := c.Time(i); ok {
			out[i] = strconv.Itoa(t.Year())
			found = true
		}
	}
	if !found {
		return nil
	}
	return out
}

func deriveMonth(c *Column) []string {
	out := make([]string, len(c.Values))
	found := false
	for i := range c.Values {
		if t, ok := c.Time(i); ok {
			out[i] = strconv.Itoa(int(t.Month()))
			found = true
		}
	}
	if !found {
		return nil
	}
	return out
}

func deriveLength(c *Column) []string {
	out := make([]string, len(c.Values))
	for i, v := range c.Values {
		out[i] = strconv.Itoa(len([]rune(v)))
	}
	return out
}
