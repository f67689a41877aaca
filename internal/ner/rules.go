package ner

import (
	"context"
	"regexp"
	"strings"
)

// RuleExtractor is a local, dependency-free extractor used when no external
// NER service is configured. It recognizes capitalized mentions and a small
// set of relationship patterns; precision over recall.
type RuleExtractor struct{}

// NewRuleExtractor creates a new rule-based extractor.
func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{}
}

var (
	worksAtPattern  = regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z][a-z]+)?) works (?:at|for) ([A-Z][A-Za-z]+(?: [A-Z][A-Za-z]+)*)`)
	livesInPattern  = regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z][a-z]+)?) (?:lives in|lived in|moved to|is based in) ([A-Z][a-z]+(?: [A-Z][a-z]+)*)`)
	namedPetPattern = regexp.MustCompile(`\b[Mm]y (dog|cat|pet|bird|car|boat) (?:named |called )?([A-Z][a-z]+)`)
	capSeqPattern   = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)*\b`)
	prepBefore      = regexp.MustCompile(`(?:in|at|to|from|near) $`)
)

// sentenceLeads are capitalized words that usually open a sentence rather
// than name anything.
var sentenceLeads = map[string]bool{
	"The": true, "This": true, "That": true, "These": true, "Those": true,
	"A": true, "An": true, "I": true, "My": true, "We": true, "He": true,
	"She": true, "They": true, "It": true, "When": true, "Where": true,
	"What": true, "Who": true, "How": true, "Why": true, "Did": true,
	"Do": true, "Does": true, "Is": true, "Are": true, "Was": true,
	"Tell": true, "Show": true, "Find": true, "Remember": true,
}

var orgSuffixes = []string{"Inc", "Corp", "Labs", "University", "Hospital", "School", "Clinic", "Company"}

// ExtractEntities runs the rule pipeline over the text. It never fails;
// the error return satisfies the Extractor contract.
func (e *RuleExtractor) ExtractEntities(_ context.Context, text string) (*ExtractionResult, error) {
	result := &ExtractionResult{}
	claimed := make(map[string]bool)

	claim := func(s string) bool {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || claimed[key] {
			return false
		}
		claimed[key] = true
		return true
	}

	for _, m := range worksAtPattern.FindAllStringSubmatch(text, -1) {
		subject, org := m[1], m[2]
		result.Relationships = append(result.Relationships, Relationship{
			Subject: subject, Predicate: "works_at", Object: org, Confidence: 0.9,
		})
		if claim(subject) {
			result.PersonNames = append(result.PersonNames, subject)
			result.Entities = append(result.Entities, Entity{Text: subject, Label: "PERSON", Confidence: 0.9})
		}
		if claim(org) {
			result.Organizations = append(result.Organizations, org)
			result.Entities = append(result.Entities, Entity{Text: org, Label: "ORG", Confidence: 0.9})
		}
	}

	for _, m := range livesInPattern.FindAllStringSubmatch(text, -1) {
		subject, place := m[1], m[2]
		result.Relationships = append(result.Relationships, Relationship{
			Subject: subject, Predicate: "lives_in", Object: place, Confidence: 0.8,
		})
		if claim(subject) && !sentenceLeads[subject] {
			result.PersonNames = append(result.PersonNames, subject)
			result.Entities = append(result.Entities, Entity{Text: subject, Label: "PERSON", Confidence: 0.8})
		}
		if claim(place) {
			result.Locations = append(result.Locations, place)
			result.Entities = append(result.Entities, Entity{Text: place, Label: "LOC", Confidence: 0.8})
		}
	}

	for _, m := range namedPetPattern.FindAllStringSubmatch(text, -1) {
		name := m[2]
		if claim(name) {
			result.NamedObjects = append(result.NamedObjects, name)
			result.Entities = append(result.Entities, Entity{Text: name, Label: "NAMED_OBJECT", Confidence: 0.8})
		}
	}

	// Remaining capitalized sequences, classified by local cues.
	for _, loc := range capSeqPattern.FindAllStringIndex(text, -1) {
		mention := text[loc[0]:loc[1]]
		words := strings.Fields(mention)

		// Strip a sentence-lead first word so "The Riverside Cafe" still
		// yields "Riverside Cafe".
		if sentenceLeads[words[0]] {
			if len(words) == 1 {
				continue
			}
			words = words[1:]
			mention = strings.Join(words, " ")
		}

		if !claim(mention) {
			continue
		}

		switch {
		case hasOrgSuffix(mention):
			result.Organizations = append(result.Organizations, mention)
			result.Entities = append(result.Entities, Entity{Text: mention, Label: "ORG", Confidence: 0.6})
		case prepBefore.MatchString(text[:loc[0]]):
			result.Locations = append(result.Locations, mention)
			result.Entities = append(result.Entities, Entity{Text: mention, Label: "LOC", Confidence: 0.6})
		case len(words) <= 2 && loc[0] > 0:
			result.PersonNames = append(result.PersonNames, mention)
			result.Entities = append(result.Entities, Entity{Text: mention, Label: "PERSON", Confidence: 0.5})
		}
	}

	return result, nil
}

func hasOrgSuffix(mention string) bool {
	for _, suffix := range orgSuffixes {
		if strings.HasSuffix(mention, suffix) {
			return true
		}
	}
	return false
}
