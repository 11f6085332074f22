// internal/assistant/extractor.go
package assistant

import (
	"strings"
	"unicode"
)

// categoryVocabulary is the fixed category list, scanned in order with the
// first hit winning. "non-fiction" can never win over "fiction" because the
// shorter word is a substring of the longer one and is listed first; that
// matches the historical behavior and is covered by tests.
var categoryVocabulary = []string{"fiction", "non-fiction", "programming", "science", "history"}

// intentRules map a keyword to an intent, checked in order by plain
// substring containment ("available" also fires inside "unavailable").
var intentRules = []struct {
	keyword string
	intent  Intent
}{
	{"borrow", IntentBorrow},
	{"return", IntentReturn},
	{"available", IntentAvailability},
}

// fieldRule extracts one entity from the query. raw preserves the user's
// casing, lower is the lowercased copy used for matching. Rules are pure:
// they inspect the input and report a value, nothing else.
type fieldRule func(raw, lower string) (string, bool)

// RuleExtractor is the deterministic keyword/punctuation extractor used by
// the persistent-catalog system.
type RuleExtractor struct {
	titleRules    []fieldRule
	authorRules   []fieldRule
	categoryRules []fieldRule
}

func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{
		titleRules:    []fieldRule{titleBetweenQuotes},
		authorRules:   []fieldRule{authorAfterBy},
		categoryRules: []fieldRule{categoryFromVocabulary},
	}
}

// Extract evaluates the rule lists in a fixed order; within each list the
// first rule that produces a value wins and later rules are not consulted.
func (e *RuleExtractor) Extract(raw string) ParsedQuery {
	lower := strings.ToLower(raw)

	query := ParsedQuery{Intent: IntentSearch}
	for _, rule := range intentRules {
		if strings.Contains(lower, rule.keyword) {
			query.Intent = rule.intent
			break
		}
	}

	query.Title = firstMatch(e.titleRules, raw, lower)
	query.Author = firstMatch(e.authorRules, raw, lower)
	query.Category = firstMatch(e.categoryRules, raw, lower)

	if query.Title == "" && query.Author == "" && query.Category == "" {
		query.SearchTerm = raw
	}
	return query
}

func firstMatch(rules []fieldRule, raw, lower string) string {
	for _, rule := range rules {
		if value, ok := rule(raw, lower); ok {
			return value
		}
	}
	return ""
}

// titleBetweenQuotes takes the substring between the first pair of double
// quotes, preserving the original casing. Extra quotes are ignored.
func titleBetweenQuotes(raw, _ string) (string, bool) {
	parts := strings.Split(raw, `"`)
	if len(parts) < 3 {
		return "", false
	}
	return parts[1], true
}

// authorAfterBy takes the trimmed text after the first "by". The match is a
// plain substring, so "by" inside an unrelated word also fires; that false
// positive is accepted and documented rather than fixed. The extracted
// author is lowercase because matching runs on the lowered copy.
func authorAfterBy(_, lower string) (string, bool) {
	parts := strings.Split(lower, "by")
	if len(parts) < 2 {
		return "", false
	}
	author := strings.TrimFunc(parts[1], func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	if author == "" {
		return "", false
	}
	return author, true
}

// categoryFromVocabulary scans the fixed vocabulary in listed order and
// stops at the first substring hit.
func categoryFromVocabulary(_, lower string) (string, bool) {
	for _, category := range categoryVocabulary {
		if strings.Contains(lower, category) {
			return category, true
		}
	}
	return "", false
}
