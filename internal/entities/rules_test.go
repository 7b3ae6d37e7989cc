package entities_test

import (
	"context"
	"testing"

	"textbrief/internal/domain"
	"textbrief/internal/entities"

	"github.com/google/go-cmp/cmp"
)

func TestRuleRecognizerFindsEntitiesInDocumentOrder(t *testing.T) {
	text := "On March 3, 2024, Acme Holdings Inc. agreed to pay Mr. John Smith $12,500 within 30 days. " +
		"See https://example.com/terms or email legal@acme.com. " +
		"Section 4(b) of the Fair Housing Act applies in New York."

	got, err := entities.NewRuleRecognizer().Recognize(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Entity{
		{Text: "March 3, 2024", Label: entities.LabelDate},
		{Text: "Acme Holdings Inc.", Label: entities.LabelOrg},
		{Text: "John Smith", Label: entities.LabelPerson},
		{Text: "$12,500", Label: entities.LabelMoney},
		{Text: "30 days", Label: entities.LabelDate},
		{Text: "https://example.com/terms", Label: entities.LabelURL},
		{Text: "legal@acme.com", Label: entities.LabelEmail},
		{Text: "Section 4(b)", Label: entities.LabelLaw},
		{Text: "Fair Housing Act", Label: entities.LabelLaw},
		{Text: "New York", Label: entities.LabelGPE},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected entities (-want +got):\n%s", diff)
	}
}

func TestRuleRecognizerCases(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []domain.Entity
	}{
		{
			"Sentence opener is not an entity",
			"Either party may terminate.",
			[]domain.Entity{},
		},
		{
			"Weekday",
			"The hearing is on Monday.",
			[]domain.Entity{{Text: "Monday", Label: entities.LabelDate}},
		},
		{
			"Acronym mid sentence",
			"The contract was reviewed by the FBI last week.",
			[]domain.Entity{{Text: "FBI", Label: entities.LabelOrg}},
		},
		{
			"Percent",
			"Interest accrues at 4.5% per year.",
			[]domain.Entity{
				{Text: "4.5%", Label: entities.LabelPercent},
			},
		},
		{
			"Street address",
			"The office moved to 12 Main Street last year.",
			[]domain.Entity{{Text: "Main Street", Label: entities.LabelFac}},
		},
		{
			"Honorific with institution",
			"It was signed before Judge Alice Moore of the Superior Court yesterday.",
			[]domain.Entity{
				{Text: "Alice Moore", Label: entities.LabelPerson},
				{Text: "Superior Court", Label: entities.LabelOrg},
			},
		},
		{
			"Organisation with connector",
			"Funds are held by Bank of America for the buyer.",
			[]domain.Entity{{Text: "Bank of America", Label: entities.LabelOrg}},
		},
	}

	r := entities.NewRuleRecognizer()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := r.Recognize(context.Background(), test.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("unexpected entities (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRuleRecognizerEmptyText(t *testing.T) {
	got, err := entities.NewRuleRecognizer().Recognize(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
