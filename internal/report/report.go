// Package report prints reports as console text blocks.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"textbrief/internal/domain"
)

const separatorWidth = 50

// Render writes one report block to w. Stage failures print a marker in
// place of the stage output.
func Render(w io.Writer, r domain.Report) error {
	var b strings.Builder

	if r.Document.Label != "" {
		fmt.Fprintf(&b, "\n====== Processing: %s ======\n\n", r.Document.Label)
	} else {
		b.WriteString("\n=== ORIGINAL TEXT ===\n\n")
	}

	if r.Err != nil {
		fmt.Fprintf(&b, "[document unavailable: %v]\n", r.Err)
		writeSeparator(&b)

		return write(w, b.String())
	}

	b.WriteString(strings.TrimSpace(r.Document.Text))
	b.WriteString("\n")

	b.WriteString("\n=== SUMMARY ===\n\n")
	if r.SummaryErr != nil {
		fmt.Fprintf(&b, "[summary unavailable: %v]\n", r.SummaryErr)
	} else {
		b.WriteString(r.Summary)
		b.WriteString("\n")
	}

	b.WriteString("\n=== NAMED ENTITIES (text, label) ===\n\n")
	switch {
	case r.EntitiesErr != nil:
		fmt.Fprintf(&b, "[entities unavailable: %v]\n", r.EntitiesErr)
	case len(r.Entities) == 0:
		b.WriteString("No named entities found.\n")
	default:
		for _, e := range r.Entities {
			fmt.Fprintf(&b, "- %s (%s)\n", e.Text, e.Label)
		}
	}

	b.WriteString("\n=== TONE / SENTIMENT ===\n\n")
	if r.ToneErr != nil {
		fmt.Fprintf(&b, "[tone unavailable: %v]\n", r.ToneErr)
	} else {
		fmt.Fprintf(&b, "{polarity: %s, subjectivity: %s}\n",
			FormatScore(r.Tone.Polarity), FormatScore(r.Tone.Subjectivity))
	}

	writeSeparator(&b)

	return write(w, b.String())
}

// FormatScore prints the shortest exact representation, always with a
// fractional part ("0.0", "0.25", "-1.0").
func FormatScore(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

func writeSeparator(b *strings.Builder) {
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", separatorWidth))
	b.WriteString("\n\n")
}

func write(w io.Writer, block string) error {
	if _, err := io.WriteString(w, block); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}
