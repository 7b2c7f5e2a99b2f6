// Package charts builds Plotly figure documents for the dashboard. Every
// figure marshals to the library's native {"data": [...], "layout": {...}}
// shape, which the browser feeds straight into the plotting call.
package charts

import "encoding/json"

// Chart type tags. They name the variant of a chart spec, not the Plotly
// trace type (a kde chart renders as a violin trace, a line as a scatter
// trace in lines mode).
const (
	TypeHistogram = "histogram"
	TypeBox       = "box"
	TypeBar       = "bar"
	TypeKDE       = "kde"
	TypeLine      = "line"
	TypeHeatmap   = "heatmap"
	TypeTable     = "table"
	TypeScatter   = "scatter"
)

// Chart is one renderable chart before serialization: the tagged type, the
// display strings, the source columns it was built from, and the figure.
type Chart struct {
	Type        string
	Title       string
	Description string
	Columns     []string
	Figure      *Figure
}

// Figure is a complete Plotly figure document.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// MarshalString serializes the figure to its JSON document string.
func (f *Figure) MarshalString() (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Trace is one Plotly data trace. Only the fields the builders use are
// modeled; zero fields stay off the wire.
type Trace struct {
	Type       string       `json:"type"`
	Name       string       `json:"name,omitempty"`
	Mode       string       `json:"mode,omitempty"`
	X          []any        `json:"x,omitempty"`
	Y          []any        `json:"y,omitempty"`
	Z          [][]float64  `json:"z,omitempty"`
	BoxPoints  string       `json:"boxpoints,omitempty"`
	Points     string       `json:"points,omitempty"`
	Box        *Toggle      `json:"box,omitempty"`
	MeanLine   *Toggle      `json:"meanline,omitempty"`
	FillColor  string       `json:"fillcolor,omitempty"`
	Marker     *Marker      `json:"marker,omitempty"`
	Line       *LineStyle   `json:"line,omitempty"`
	ColorScale string       `json:"colorscale,omitempty"`
	ZMin       *float64     `json:"zmin,omitempty"`
	ZMax       *float64     `json:"zmax,omitempty"`
	Header     *TableHeader `json:"header,omitempty"`
	Cells      *TableCells  `json:"cells,omitempty"`
}

// Toggle switches a nested trace block on or off (violin box, mean line).
type Toggle struct {
	Visible bool `json:"visible"`
}

// Marker styles trace points and bars.
type Marker struct {
	Color string     `json:"color,omitempty"`
	Size  int        `json:"size,omitempty"`
	Line  *LineStyle `json:"line,omitempty"`
}

// LineStyle styles trace lines and outlines.
type LineStyle struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

// TableHeader is the header block of a table trace.
type TableHeader struct {
	Values []string   `json:"values"`
	Align  string     `json:"align,omitempty"`
	Fill   *Fill      `json:"fill,omitempty"`
	Font   *Font      `json:"font,omitempty"`
	Line   *LineStyle `json:"line,omitempty"`
}

// TableCells is the body block of a table trace; values are column-major.
type TableCells struct {
	Values [][]any    `json:"values"`
	Align  string     `json:"align,omitempty"`
	Fill   *Fill      `json:"fill,omitempty"`
	Font   *Font      `json:"font,omitempty"`
	Line   *LineStyle `json:"line,omitempty"`
}

// Fill is a background color block.
type Fill struct {
	Color string `json:"color,omitempty"`
}

// Font describes text styling.
type Font struct {
	Family string `json:"family,omitempty"`
	Size   int    `json:"size,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Layout is the figure layout block.
type Layout struct {
	Title        *Title  `json:"title,omitempty"`
	PaperBgcolor string  `json:"paper_bgcolor,omitempty"`
	PlotBgcolor  string  `json:"plot_bgcolor,omitempty"`
	Font         *Font   `json:"font,omitempty"`
	Margin       *Margin `json:"margin,omitempty"`
	XAxis        *Axis   `json:"xaxis,omitempty"`
	YAxis        *Axis   `json:"yaxis,omitempty"`
	ShowLegend   *bool   `json:"showlegend,omitempty"`
}

// Title is a layout or axis title.
type Title struct {
	Text string `json:"text"`
	Font *Font  `json:"font,omitempty"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Axis styles one plot axis.
type Axis struct {
	Title     *Title  `json:"title,omitempty"`
	GridColor string  `json:"gridcolor,omitempty"`
	GridWidth float64 `json:"gridwidth,omitempty"`
	LineColor string  `json:"linecolor,omitempty"`
	LineWidth float64 `json:"linewidth,omitempty"`
}
