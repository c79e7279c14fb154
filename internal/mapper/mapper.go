// Package mapper suggests a category and budgeting class for a transaction
// from its description, using an ordered first-match rule list. Rule order is
// load-bearing: more specific rules must come earlier, and the mapper never
// guesses when nothing matches.
package mapper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/grana-dev/grana/internal/model"
)

// Rule associates a description pattern with a category and class. Pattern is
// a literal substring unless Regex is set.
type Rule struct {
	Pattern      string      `yaml:"pattern"`
	Regex        bool        `yaml:"regex,omitempty"`
	CategoryID   int         `yaml:"category_id"`
	CategoryName string      `yaml:"category_name"`
	Class        model.Class `yaml:"class"`
}

// RuleSet is an immutable, ordered list of mapping rules. Regex patterns are
// compiled once at construction.
type RuleSet struct {
	rules    []Rule
	compiled []*regexp.Regexp // index-aligned with rules; nil for substring rules
}

// NewRuleSet builds a RuleSet, compiling every regex rule.
func NewRuleSet(rules ...Rule) (*RuleSet, error) {
	rs := &RuleSet{
		rules:    make([]Rule, len(rules)),
		compiled: make([]*regexp.Regexp, len(rules)),
	}
	copy(rs.rules, rules)

	for i, r := range rules {
		if r.Pattern == "" {
			return nil, fmt.Errorf("rule %d: empty pattern", i)
		}
		if !r.Regex {
			continue
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d: compiling pattern %q: %w", i, r.Pattern, err)
		}
		rs.compiled[i] = re
	}
	return rs, nil
}

// WithRule returns a new RuleSet with r appended at the lowest priority.
// The receiver is left untouched.
func (rs *RuleSet) WithRule(r Rule) (*RuleSet, error) {
	return NewRuleSet(append(rs.Rules(), r)...)
}

// Rules returns a copy of the ordered rule list.
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int { return len(rs.rules) }

// Match returns the first rule whose pattern matches the description, testing
// rules in order. Substring rules match case-insensitively; regex rules are
// applied as written. No match returns false and the caller must leave the
// transaction uncategorized for manual review.
func (rs *RuleSet) Match(description string) (Rule, bool) {
	lower := strings.ToLower(description)
	for i, r := range rs.rules {
		if re := rs.compiled[i]; re != nil {
			if re.MatchString(description) {
				return r, true
			}
			continue
		}
		if strings.Contains(lower, strings.ToLower(r.Pattern)) {
			return r, true
		}
	}
	return Rule{}, false
}

// Apply fills in the category and class suggested by the first matching rule
// for every candidate that has no category yet. Transfer candidates are never
// touched. Returns the number of candidates mapped.
func (rs *RuleSet) Apply(cands []model.Candidate) int {
	mapped := 0
	for i := range cands {
		c := &cands[i]
		if c.IsTransfer || c.CategoryID != 0 {
			continue
		}
		r, ok := rs.Match(c.Description)
		if !ok {
			continue
		}
		c.CategoryID = r.CategoryID
		c.CategoryName = r.CategoryName
		c.Class = r.Class
		mapped++
	}
	return mapped
}
