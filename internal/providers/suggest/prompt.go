package suggest

import (
	"fmt"
	"strconv"
	"strings"

	"catalyst/internal/dataset"
)

// buildPrompt renders the profile and the fixed instruction template into the
// single user message sent to the model. Both providers ask for the same
// envelope object so the strict-JSON response modes can be used.
func buildPrompt(p dataset.Profile) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "You are a data analyst picking deep-dive visualizations for a dashboard.\n")
	fmt.Fprintf(sb, "Dataset: %d rows.\nColumns:\n", p.Rows)
	for _, c := range p.Columns {
		sb.WriteString("- ")
		sb.WriteString(c.Name)
		sb.WriteString(": ")
		sb.WriteString(string(c.Kind))
		if c.Numeric != nil {
			fmt.Fprintf(sb, " (min %s, max %s, mean %s)",
				fmtStat(c.Numeric.Min), fmtStat(c.Numeric.Max), fmtStat(c.Numeric.Mean))
		}
		if c.Distinct > 0 {
			fmt.Fprintf(sb, " (%d distinct)", c.Distinct)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(sb, "Suggest up to %d charts that reveal something the basic histograms and bar charts would miss.\n", maxSuggestions)
	sb.WriteString(`Respond strictly with JSON: {"suggestions":[{"chart_type":"kde|line|heatmap|scatter","columns":["name"],"rationale":"one sentence"}]}` + "\n")
	sb.WriteString("Rules: chart_type must be one of kde, line, heatmap, scatter. ")
	sb.WriteString("Use only the listed column names. kde takes one numeric column. ")
	sb.WriteString("line takes an ordered x column and a numeric y column. ")
	sb.WriteString("scatter takes two columns. heatmap correlates the numeric columns.")
	return sb.String()
}

// fmtStat keeps prompt numbers compact.
func fmtStat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
