package ner

import (
	"context"
	"testing"
)

func TestRuleExtractorWorksAt(t *testing.T) {
	e := NewRuleExtractor()
	result, err := e.ExtractEntities(context.Background(), "I think Alice works at Acme Labs now")
	if err != nil {
		t.Fatalf("ExtractEntities() error = %v", err)
	}

	if len(result.Relationships) != 1 {
		t.Fatalf("relationships = %v, want 1", result.Relationships)
	}
	rel := result.Relationships[0]
	if rel.Subject != "Alice" || rel.Predicate != "works_at" || rel.Object != "Acme Labs" {
		t.Errorf("relationship = %+v", rel)
	}
	if len(result.PersonNames) != 1 || result.PersonNames[0] != "Alice" {
		t.Errorf("PersonNames = %v", result.PersonNames)
	}
	if len(result.Organizations) != 1 || result.Organizations[0] != "Acme Labs" {
		t.Errorf("Organizations = %v", result.Organizations)
	}
}

func TestRuleExtractorNamedPet(t *testing.T) {
	e := NewRuleExtractor()
	result, err := e.ExtractEntities(context.Background(), "my dog Luna loves the beach")
	if err != nil {
		t.Fatalf("ExtractEntities() error = %v", err)
	}
	if len(result.NamedObjects) != 1 || result.NamedObjects[0] != "Luna" {
		t.Errorf("NamedObjects = %v", result.NamedObjects)
	}
}

func TestRuleExtractorLocationCue(t *testing.T) {
	e := NewRuleExtractor()
	result, err := e.ExtractEntities(context.Background(), "we had dinner in Lisbon last summer")
	if err != nil {
		t.Fatalf("ExtractEntities() error = %v", err)
	}
	if len(result.Locations) != 1 || result.Locations[0] != "Lisbon" {
		t.Errorf("Locations = %v", result.Locations)
	}
}

func TestRuleExtractorOrgSuffix(t *testing.T) {
	e := NewRuleExtractor()
	result, err := e.ExtractEntities(context.Background(), "the appointment at Mayo Clinic went fine")
	if err != nil {
		t.Fatalf("ExtractEntities() error = %v", err)
	}
	if len(result.Organizations) != 1 || result.Organizations[0] != "Mayo Clinic" {
		t.Errorf("Organizations = %v", result.Organizations)
	}
}

func TestRuleExtractorSentenceLeadSkipped(t *testing.T) {
	e := NewRuleExtractor()
	result, err := e.ExtractEntities(context.Background(), "The weather was nice")
	if err != nil {
		t.Fatalf("ExtractEntities() error = %v", err)
	}
	if len(result.Entities) != 0 {
		t.Errorf("entities = %v, want none from a plain sentence", result.Entities)
	}
}

func TestRuleExtractorNoDuplicateClaims(t *testing.T) {
	e := NewRuleExtractor()
	result, err := e.ExtractEntities(context.Background(), "I saw Rachel yesterday and Rachel again today")
	if err != nil {
		t.Fatalf("ExtractEntities() error = %v", err)
	}
	if len(result.PersonNames) != 1 || result.PersonNames[0] != "Rachel" {
		t.Errorf("PersonNames = %v, want single Rachel", result.PersonNames)
	}
}

func TestMentionsOrderAndDedup(t *testing.T) {
	result := &ExtractionResult{
		PersonNames:   []string{"Alice", "Rachel"},
		NamedObjects:  []string{"Luna"},
		Organizations: []string{"Acme Labs"},
		Locations:     []string{"Lisbon", "alice"}, // duplicate of Alice, case-insensitive
		Entities: []Entity{
			{Text: "Pixel 9", Label: "PRODUCT", Confidence: 0.7},
			{Text: "Alice", Label: "PERSON", Confidence: 0.9},
		},
	}

	got := result.Mentions()
	want := []string{"Alice", "Rachel", "Luna", "Acme Labs", "Lisbon", "Pixel 9"}
	if len(got) != len(want) {
		t.Fatalf("Mentions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Mentions()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMentionsNilReceiver(t *testing.T) {
	var result *ExtractionResult
	if got := result.Mentions(); got != nil {
		t.Errorf("nil result Mentions() = %v, want nil", got)
	}
}
