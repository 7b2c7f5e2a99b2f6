package charts

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Dashboard styling: white paper, grey plot area, near-black ink with a neon
// accent, monospace body text. Heatmaps and tables carry their own color
// treatment and skip the marker outline.
const (
	colorPaper  = "#FFFFFF"
	colorPlot   = "#f0f0f0"
	colorInk    = "#1E1E1E"
	colorAccent = "#39FF14"

	fontBody  = "Courier New, monospace"
	fontTitle = "Inter, sans-serif"

	titleSize = 20
	bodySize  = 12

	heatmapScale = "Viridis"
)

var titleCaser = cases.Title(language.Und)

// humanize turns a column name into display text: underscores and dashes
// become spaces and each word is title-cased.
func humanize(name string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(name))
	if cleaned == "" {
		return name
	}
	return titleCaser.String(cleaned)
}

// baseLayout applies the shared dashboard layout to a titled figure.
func baseLayout(title string) Layout {
	return Layout{
		Title: &Title{
			Text: title,
			Font: &Font{Family: fontTitle, Size: titleSize, Color: colorInk},
		},
		PaperBgcolor: colorPaper,
		PlotBgcolor:  colorPlot,
		Font:         &Font{Family: fontBody, Size: bodySize, Color: colorInk},
		Margin:       &Margin{L: 40, R: 40, T: 60, B: 40},
	}
}

// plotLayout extends baseLayout with styled axes for cartesian charts.
func plotLayout(title, xTitle, yTitle string) Layout {
	l := baseLayout(title)
	l.XAxis = styledAxis(xTitle)
	l.YAxis = styledAxis(yTitle)
	return l
}

func styledAxis(title string) *Axis {
	a := &Axis{
		GridColor: colorInk,
		GridWidth: 1,
		LineColor: colorInk,
		LineWidth: 2,
	}
	if title != "" {
		a.Title = &Title{Text: title}
	}
	return a
}

// accentMarker is the default mark: neon fill with the ink outline.
func accentMarker() *Marker {
	return &Marker{
		Color: colorAccent,
		Line:  &LineStyle{Color: colorInk, Width: 2},
	}
}

func inkLine() *LineStyle {
	return &LineStyle{Color: colorInk, Width: 2}
}
