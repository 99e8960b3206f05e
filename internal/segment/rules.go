package segment

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Header lines must be longer than minHeaderLen and shorter than maxHeaderLen characters.
const (
	minHeaderLen = 3
	maxHeaderLen = 100
)

// HeaderRule classifies a trimmed, non-empty line as a section header by its shape.
type HeaderRule struct {
	Name  string
	Match func(line string) bool
}

// PatternRule returns a HeaderRule matching lines that satisfy re and the header length bounds.
func PatternRule(name string, re *regexp.Regexp) HeaderRule {
	return HeaderRule{
		Name: name,
		Match: func(line string) bool {
			return headerLength(line) && re.MatchString(line)
		},
	}
}

var (
	allCapsRe       = regexp.MustCompile(`^[A-Z][A-Z\s]{2,}$`)
	numberedRe      = regexp.MustCompile(`^\d+\.?\s+[A-Z]`)
	sentenceLikeRe  = regexp.MustCompile(`^[A-Z][^.!?]*$`)
	titleCasePairRe = regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z][a-z]+$`)
)

// DefaultRules returns the built-in header rules in evaluation order:
// ALL CAPS lines, numbered headings ("2. Getting Around"), capitalized lines
// without terminal punctuation, and two-word Title Case phrases.
func DefaultRules() []HeaderRule {
	return []HeaderRule{
		PatternRule("all_caps", allCapsRe),
		PatternRule("numbered", numberedRe),
		PatternRule("sentence_like", sentenceLikeRe),
		PatternRule("title_case_pair", titleCasePairRe),
	}
}

// RulesByName returns the built-in rules with the given names, in the order
// given. No names selects DefaultRules.
func RulesByName(names ...string) ([]HeaderRule, error) {
	if len(names) == 0 {
		return DefaultRules(), nil
	}
	builtin := make(map[string]HeaderRule)
	for _, r := range DefaultRules() {
		builtin[r.Name] = r
	}
	rules := make([]HeaderRule, 0, len(names))
	for _, name := range names {
		r, ok := builtin[name]
		if !ok {
			return nil, fmt.Errorf("unknown header rule %q", name)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func headerLength(line string) bool {
	n := utf8.RuneCountInString(line)
	return n > minHeaderLen && n < maxHeaderLen
}
