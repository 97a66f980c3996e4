package ingestion

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Page is the extracted text of a single PDF page, 1-indexed.
type Page struct {
	Number int
	Text   string
}

// ExtractPages reads a PDF and returns its non-empty pages. Pages that
// yield no text (scanned images, drawings) are skipped.
func ExtractPages(path string) ([]Page, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var pages []Page
	for num := 1; num <= reader.NumPage(); num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, Page{Number: num, Text: text})
	}
	return pages, nil
}

// classifyDocumentType maps a filename to its document type. This is
// the ingestion-time classifier; it knows the separator_* naming scheme
// of the raw document dumps.
func classifyDocumentType(filename string) string {
	lower := strings.ToLower(filename)

	switch {
	case strings.Contains(lower, "call-fiche") || strings.Contains(lower, "call_fiche"):
		return "call_document"
	case strings.Contains(lower, "separator_faq"):
		return "faq"
	case strings.Contains(lower, "template"):
		return "template"
	case strings.Contains(lower, "guide") || strings.Contains(lower, "guideline"):
		return "guide"
	case strings.Contains(lower, "separator_aga"):
		return "administrative_guide"
	case strings.Contains(lower, "separator_af"):
		return "application_form"
	case strings.Contains(lower, "separator_om"):
		return "operational_manual"
	case strings.Contains(lower, "separator_tc"):
		return "terms_conditions"
	case strings.Contains(lower, "separator_rules"):
		return "rules_document"
	case strings.Contains(lower, "separator_general-mga"):
		return "general_agreement"
	case strings.Contains(lower, "evaluation"):
		return "evaluation_guide"
	default:
		return "other"
	}
}
