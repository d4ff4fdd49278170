package advisor

import (
	"fmt"
	"io"
	"strings"
)

// WriteText renders a report as the plain-text summary printed by the CLI.
func WriteText(w io.Writer, r Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\nLocation: %s (%.4f, %.4f)\n", r.Location.Name, r.Location.Latitude, r.Location.Longitude)

	b.WriteString("\n===== WEATHER SUMMARY =====\n")
	fmt.Fprintf(&b, "Average Temperature: %.1f°F\n", r.Summary.AvgTemp)
	fmt.Fprintf(&b, "Max Precipitation: %.2f inches\n", r.Summary.MaxPrecip)
	fmt.Fprintf(&b, "Max Wind Speed: %.1f mph\n", r.Summary.MaxWind)

	rec := r.Recommendation
	b.WriteString("\n===== CLOTHING RECOMMENDATION =====\n")
	fmt.Fprintf(&b, "Top: %s\n", rec.Top)
	fmt.Fprintf(&b, "Bottom: %s\n", rec.Bottom)
	if rec.OuterLayer != "" {
		fmt.Fprintf(&b, "Outer Layer: %s\n", rec.OuterLayer)
	}
	if len(rec.Accessories) > 0 {
		fmt.Fprintf(&b, "Accessories: %s\n", strings.Join(rec.Accessories, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
