package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
)

// render writes v as indented JSON, or calls table with a tabwriter in table mode.
func (a *app) render(v any, table func(w *tabwriter.Writer)) error {
	if a.format == "json" {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	table(w)
	return w.Flush()
}

func row(w *tabwriter.Writer, cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(w, strings.Join(parts, "\t"))
}

func formatRating(r *float64) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *r)
}

func stars(n *int) string {
	if n == nil {
		return ""
	}
	return strings.Repeat("★", *n) + strings.Repeat("☆", 5-*n)
}
