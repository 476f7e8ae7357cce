package models

import "strings"

// relatedPartyStopWords are corporate fillers ignored when deriving partial
// match patterns from a party name.
var relatedPartyStopWords = map[string]struct{}{
	"SDN":        {},
	"BHD":        {},
	"PLT":        {},
	"BERHAD":     {},
	"ENTERPRISE": {},
	"TRADING":    {},
	"SERVICES":   {},
	"SOLUTIONS":  {},
	"HOLDINGS":   {},
	"GROUP":      {},
	"AND":        {},
	"&":          {},
}

// purposeNoteKeywords seed the best-effort purpose note captured from a
// matched related-party description.
var purposeNoteKeywords = []string{
	"STATUTORY", "SALARY", "LOAN", "PAYMENT", "ADVANCE", "INTERBANK",
}

// RelatedParty is one configured counterparty (director, shareholder, sister
// company) whose transactions are tracked separately from ordinary trade
// flow.
type RelatedParty struct {
	Name         string `json:"name" yaml:"name"`
	Relationship string `json:"relationship" yaml:"relationship"`
}

// RelatedPartyPattern is a related party expanded into substring match
// patterns: the full name, the first two significant words, and the first
// significant word. Significant words are longer than two characters and not
// corporate stop words. The expansion is immutable for the run.
type RelatedPartyPattern struct {
	Name         string
	Relationship string
	Patterns     []string
}

// RelatedPartyMatch reports which configured party matched a description.
type RelatedPartyMatch struct {
	Name         string
	Relationship string
	PurposeNote  string
}

// ExpandRelatedParties builds the match patterns for every configured party.
func ExpandRelatedParties(parties []RelatedParty) []RelatedPartyPattern {
	patterns := make([]RelatedPartyPattern, 0, len(parties))
	for _, rp := range parties {
		nameUpper := strings.ToUpper(rp.Name)

		words := make([]string, 0)
		for _, w := range strings.Fields(nameUpper) {
			if _, stop := relatedPartyStopWords[w]; stop || len(w) <= 2 {
				continue
			}
			words = append(words, w)
		}

		search := []string{nameUpper}
		if len(words) >= 2 {
			search = append(search, strings.Join(words[:2], " "))
		}
		if len(words) >= 1 {
			search = append(search, words[0])
		}

		patterns = append(patterns, RelatedPartyPattern{
			Name:         rp.Name,
			Relationship: rp.Relationship,
			Patterns:     search,
		})
	}
	return patterns
}

// MatchRelatedParty returns the first configured party whose pattern appears
// in the case-folded description, with a purpose note taken from the first
// purpose keyword occurrence (30 characters from that point).
func MatchRelatedParty(descUpper string, patterns []RelatedPartyPattern) (RelatedPartyMatch, bool) {
	for _, rp := range patterns {
		for _, pattern := range rp.Patterns {
			if !strings.Contains(descUpper, pattern) {
				continue
			}
			note := ""
			for _, keyword := range purposeNoteKeywords {
				idx := strings.Index(descUpper, keyword)
				if idx < 0 {
					continue
				}
				end := idx + 30
				if end > len(descUpper) {
					end = len(descUpper)
				}
				note = strings.TrimSpace(descUpper[idx:end])
				break
			}
			return RelatedPartyMatch{
				Name:         rp.Name,
				Relationship: rp.Relationship,
				PurposeNote:  note,
			}, true
		}
	}
	return RelatedPartyMatch{}, false
}
