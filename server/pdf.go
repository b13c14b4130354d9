package server

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"

	"thought_leadership_workflow/workflow"
)

var pdfHeadings = []string{
	"FINAL OUTPUT - THOUGHT LEADERSHIP CONTENT",
	workflow.SectionMetadata,
	workflow.SectionValidation,
	workflow.SectionLinkedIn,
	workflow.SectionX,
	"WORKFLOW COMPLETED SUCCESSFULLY",
}

// buildPDF lays the full report text out as a letter-format PDF: section
// headers in bold, body in a monospace face matching the text report.
func buildPDF(report string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetMargins(25, 25, 25)
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()

	// Core fonts are cp1252 only; translate what we can, drop the rest.
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Helvetica", "B", 16)
	doc.MultiCell(0, 8, "Thought Leadership Content", "", "L", false)
	doc.Ln(4)

	for _, line := range strings.Split(report, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			doc.Ln(2)
		case strings.HasPrefix(line, "=") || strings.HasPrefix(line, "-"):
			// Rule lines exist for the text view only.
			doc.Ln(1)
		case isPDFHeading(line):
			doc.SetFont("Helvetica", "B", 12)
			doc.MultiCell(0, 6, tr(line), "", "L", false)
			doc.Ln(2)
		default:
			doc.SetFont("Courier", "", 9)
			doc.MultiCell(0, 4.5, tr(line), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isPDFHeading(line string) bool {
	for _, h := range pdfHeadings {
		if strings.Contains(line, h) {
			return true
		}
	}
	return false
}
