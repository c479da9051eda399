package sport

import (
	"sort"
	"strings"
)

// Default lists the sports the schedule page is known to carry
var Default = []string{
	"soccer", "cricket", "field hockey", "tennis", "boxing",
	"wwe", "basketball", "handball", "lacrosse", "volleyball", "hockey",
}

// Rule maps any label containing Substring to Value
type Rule struct {
	Substring string
	Value     string
}

// Rules are evaluated in order against the lowercased label.
// Any "hockey" label, including "field hockey", collapses into "hockey".
var Rules = []Rule{
	{Substring: "hockey", Value: "hockey"},
	{Substring: "wwe", Value: "wwe"},
	{Substring: "tennis", Value: "tennis"},
}

// Set is an immutable collection of supported sport identifiers
type Set struct {
	names map[string]struct{}
}

// NewSet builds a Set from the given names, lowercased and trimmed
func NewSet(names []string) Set {
	s := Set{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			s.names[name] = struct{}{}
		}
	}
	return s
}

// Contains reports whether name is a supported sport
func (s Set) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Names returns the supported sports in sorted order
func (s Set) Names() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classifier turns raw labels into supported sport identifiers
type Classifier struct {
	rules     []Rule
	supported Set
}

// NewClassifier creates a Classifier over the given supported sports using Rules.
// An empty list falls back to Default.
func NewClassifier(supported []string) *Classifier {
	if len(supported) == 0 {
		supported = Default
	}
	rules := make([]Rule, len(Rules))
	copy(rules, Rules)
	return &Classifier{
		rules:     rules,
		supported: NewSet(supported),
	}
}

// Normalize applies the rule table to label. The result is not checked
// against the supported set.
func (c *Classifier) Normalize(label string) string {
	lower := strings.ToLower(label)
	for _, rule := range c.rules {
		if strings.Contains(lower, rule.Substring) {
			return rule.Value
		}
	}
	return strings.TrimSpace(lower)
}

// Classify normalizes label and reports whether the result is supported
func (c *Classifier) Classify(label string) (string, bool) {
	name := c.Normalize(label)
	return name, c.supported.Contains(name)
}

// Supported reports whether name is in the supported set
func (c *Classifier) Supported(name string) bool {
	return c.supported.Contains(name)
}

// Mentions reports whether any supported sport occurs in label
func (c *Classifier) Mentions(label string) bool {
	lower := strings.ToLower(label)
	for name := range c.supported.names {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}

// Sports returns the supported set
func (c *Classifier) Sports() Set {
	return c.supported
}
