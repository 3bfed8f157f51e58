package text

// ReplacementRule defines a single text replacement operation
type ReplacementRule struct {
	// FromText is the text to replace
	FromText string

	// ToText is the replacement text
	ToText string
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceString applies the rules to a single value, in order, and
	// returns the result with the number of replacements made
	ReplaceString(value string, rules []ReplacementRule) (string, int)

	// ValidateRules checks that the rule set can be applied
	ValidateRules(rules []ReplacementRule) error
}
