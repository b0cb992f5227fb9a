package profile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
)

var (
	budgetPrefixed = regexp.MustCompile(`(?i)(?:rs\.?|inr|₹)\s*([\d,]+)`)
	budgetSuffixed = regexp.MustCompile(`(?i)([\d,]+)\s*(?:rupees|rs)`)
	digits         = regexp.MustCompile(`\d+`)
	sentenceSplit  = regexp.MustCompile(`[.\n]`)
)

// Sanitize cross-checks a candidate profile against the original description.
// Every step independently overrides the extracted guess:
//
//  1. budget is re-parsed from currency-tagged amounts in the text when present
//  2. requirements survive only when backed by the text (numeric tokens,
//     concept synonyms, or a verbatim match)
//  3. tech-stack tools not present verbatim become "Not Specified"
//  4. description is replaced by the first sentence of the text
//
// The result is deterministic given fixed input, so re-running Sanitize on its
// own output yields an identical profile.
func Sanitize(p *model.ProjectProfile, source string, concepts map[string][]string) *model.ProjectProfile {
	textLower := strings.ToLower(source)

	if budget, ok := extractBudget(source); ok {
		p.BudgetINRPerMonth = budget
	}

	p.NonFunctionalRequirements = validRequirements(p.NonFunctionalRequirements, textLower, concepts)

	cleaned := make(map[string]string, len(p.TechStack))
	for layer, tool := range p.TechStack {
		if tool != "" && strings.Contains(textLower, strings.ToLower(tool)) {
			cleaned[layer] = tool
		} else {
			cleaned[layer] = model.NotSpecified
		}
	}
	p.TechStack = cleaned

	p.Description = strings.TrimSpace(sentenceSplit.Split(source, 2)[0])

	return p
}

// extractBudget finds a currency-prefixed ("Rs. 50,000", "₹50000") or
// currency-suffixed ("50000 rupees") amount and parses its digits.
func extractBudget(source string) (int, bool) {
	m := budgetPrefixed.FindStringSubmatch(source)
	if m == nil {
		m = budgetSuffixed.FindStringSubmatch(source)
	}
	if m == nil {
		return 0, false
	}

	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

// validRequirements keeps a candidate requirement when (a) every numeric token
// in it appears verbatim in the source text, (b) it matches a concept whose
// synonyms appear in the source, or (c) the whole string appears verbatim.
// Survivors from the concept path are Title-Cased; the list is deduplicated.
func validRequirements(candidates []string, textLower string, concepts map[string][]string) []string {
	var valid []string

	for _, nfr := range candidates {
		nfrClean := strings.ToLower(strings.TrimSpace(nfr))

		if nums := digits.FindAllString(nfrClean, -1); len(nums) > 0 && allIn(nums, textLower) {
			valid = append(valid, nfr)
			continue
		}

		if matched := matchConcept(nfrClean, textLower, concepts); matched != "" {
			valid = append(valid, titleCase(nfr))
			continue
		}

		if strings.Contains(textLower, nfrClean) {
			valid = append(valid, nfr)
		}
	}

	return dedup(valid)
}

// matchConcept returns the concept name when the requirement mentions the
// concept or one of its synonyms AND the source text contains at least one
// synonym for it.
func matchConcept(nfrClean, textLower string, concepts map[string][]string) string {
	for concept, keywords := range concepts {
		mentions := strings.Contains(nfrClean, concept)
		for _, k := range keywords {
			if strings.Contains(nfrClean, k) {
				mentions = true
				break
			}
		}
		if !mentions {
			continue
		}

		if strings.Contains(textLower, concept) {
			return concept
		}
		for _, k := range keywords {
			if strings.Contains(textLower, k) {
				return concept
			}
		}
	}
	return ""
}

func allIn(needles []string, haystack string) bool {
	for _, n := range needles {
		if !strings.Contains(haystack, n) {
			return false
		}
	}
	return true
}

func dedup(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// titleCase uppercases the first letter of each word and lowercases the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		if len(r) > 0 {
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
