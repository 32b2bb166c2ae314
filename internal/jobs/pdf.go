package jobs

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/unicode/norm"

	"github.com/samachar-app/samachar/internal/models"
)

// renderDigest lays out the weekly digest PDF: a title page header, the
// editorial overview when present, then one block per story.
func renderDigest(from, to, overview string, summaries []models.Summary) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Weekly Digest %s to %s", from, to), false)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, "Weekly News Digest", "", "L", false)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("%s to %s", from, to), "", "L", false)
	pdf.Ln(4)

	if overview != "" {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, "The Week in Brief", "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, asciiSafe(overview), "", "L", false)
		pdf.Ln(4)
	}

	currentDay := ""
	for _, s := range summaries {
		if s.Date != currentDay {
			currentDay = s.Date
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 12)
			pdf.MultiCell(0, 6, currentDay, "", "L", false)
		}

		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(0, 5, asciiSafe(s.Title), "", "L", false)

		if len(s.Tags) > 0 {
			tags := make([]string, len(s.Tags))
			for i, t := range s.Tags {
				tags[i] = string(t)
			}
			pdf.SetFont("Helvetica", "I", 8)
			pdf.MultiCell(0, 4, strings.Join(tags, ", "), "", "L", false)
		}

		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, asciiSafe(s.Body), "", "L", false)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// asciiSafe makes text renderable by the built-in PDF fonts: decompose
// accented characters, then drop anything outside printable ASCII.
func asciiSafe(s string) string {
	decomposed := norm.NFKD.String(s)
	var sb strings.Builder
	sb.Grow(len(decomposed))
	for _, r := range decomposed {
		if r == '\n' || (r >= 0x20 && r < 0x7f) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
