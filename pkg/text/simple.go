package text

import (
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// SimpleTextReplacer implements TextReplacer with case-insensitive literal
// matching. Compiled patterns are cached per FromText.
type SimpleTextReplacer struct {
	patterns map[string]*regexp.Regexp
}

var _ TextReplacer = (*SimpleTextReplacer)(nil)

// NewCaseInsensitiveReplacer creates a SimpleTextReplacer that matches regardless of case
func NewCaseInsensitiveReplacer() *SimpleTextReplacer {
	return &SimpleTextReplacer{
		patterns: make(map[string]*regexp.Regexp),
	}
}

// ReplaceString implements TextReplacer.ReplaceString. Each rule sees the
// output of the rules before it.
func (r *SimpleTextReplacer) ReplaceString(value string, rules []ReplacementRule) (string, int) {
	count := 0
	for _, rule := range rules {
		if rule.FromText == "" {
			continue
		}

		re := r.pattern(rule.FromText)
		if n := len(re.FindAllStringIndex(value, -1)); n > 0 {
			count += n
			value = re.ReplaceAllLiteralString(value, rule.ToText)
		}
	}
	return value, count
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *SimpleTextReplacer) ValidateRules(rules []ReplacementRule) error {
	if len(rules) == 0 {
		return errors.New("no replacement rules")
	}
	for i, rule := range rules {
		if rule.FromText == "" {
			return errors.Errorf("rule %d: from_text is required", i)
		}
	}
	return nil
}

func (r *SimpleTextReplacer) pattern(from string) *regexp.Regexp {
	if re, ok := r.patterns[from]; ok {
		return re
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(from))
	r.patterns[from] = re
	return re
}
