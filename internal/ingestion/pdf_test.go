package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDocumentType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"AMIF-2025-TF2-AG-INTE-01-WOMEN_call-fiche.pdf", "call_document"},
		{"AMIF-2025-TF2-AG_separator_faq.pdf", "faq"},
		{"budget_template_v2.pdf", "template"},
		{"application_guide.pdf", "guide"},
		{"AMIF_guidelines_2025.pdf", "guide"},
		{"AMIF_separator_aga.pdf", "administrative_guide"},
		{"AMIF_separator_af.pdf", "application_form"},
		{"AMIF_separator_om.pdf", "operational_manual"},
		{"AMIF_separator_tc.pdf", "terms_conditions"},
		{"AMIF_separator_rules.pdf", "rules_document"},
		{"AMIF_separator_general-mga.pdf", "general_agreement"},
		{"evaluation_criteria.pdf", "evaluation_guide"},
		{"random_notes.pdf", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyDocumentType(tt.filename))
		})
	}
}

func TestDrugNameFromFilename(t *testing.T) {
	assert.Equal(t, "aspirin 500mg", drugNameFromFilename("aspirin_500mg.pdf"))
	assert.Equal(t, "ibuprofen", drugNameFromFilename("ibuprofen.pdf"))
}
