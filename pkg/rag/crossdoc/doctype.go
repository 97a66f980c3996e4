package crossdoc

import "strings"

// Document type labels derived from filenames.
const (
	TypeCallDocument        = "call_document"
	TypeFAQ                 = "faq"
	TypeTemplate            = "template"
	TypeGuide               = "guide"
	TypeAdministrativeGuide = "administrative_guide"
	TypeEvaluationGuide     = "evaluation_guide"
	TypeOther               = "other"
)

// IdentifyDocumentType classifies a file by filename substrings. The
// checks are ordered; "guide" must run before "aga" would ever match a
// guideline, and anything unmatched is "other".
func IdentifyDocumentType(filename string) string {
	lower := strings.ToLower(filename)

	switch {
	case strings.Contains(lower, "call-fiche") || strings.Contains(lower, "call_fiche"):
		return TypeCallDocument
	case strings.Contains(lower, "faq"):
		return TypeFAQ
	case strings.Contains(lower, "template"):
		return TypeTemplate
	case strings.Contains(lower, "guide") || strings.Contains(lower, "guideline"):
		return TypeGuide
	case strings.Contains(lower, "aga"):
		return TypeAdministrativeGuide
	case strings.Contains(lower, "evaluation"):
		return TypeEvaluationGuide
	default:
		return TypeOther
	}
}
