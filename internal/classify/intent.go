package classify

import (
	"strings"

	"github.com/nao1215/siteprofile/internal/model"
)

// IntentRule maps an intent to the keywords that select it.
type IntentRule struct {
	Intent   model.Intent
	Keywords []string
}

// DefaultIntentRules returns the built-in rules in priority order.
func DefaultIntentRules() []IntentRule {
	return []IntentRule{
		{Intent: model.IntentAbout, Keywords: []string{"about", "about us", "company", "who we are", "our story"}},
		{Intent: model.IntentProducts, Keywords: []string{"product", "products", "portfolio", "solutions", "shop"}},
		{Intent: model.IntentResearch, Keywords: []string{"research", "science", "clinical", "studies", "innovation", "experts"}},
		{Intent: model.IntentCareers, Keywords: []string{"career", "careers", "jobs", "join", "work with"}},
		{Intent: model.IntentContact, Keywords: []string{"contact", "get in touch", "reach us"}},
	}
}

// Classifier assigns at most one intent to a link.
type Classifier struct {
	rules []IntentRule
}

// NewClassifier creates a Classifier from rules. Rules are evaluated in the
// given order. Keywords are lowercased once here. A nil or empty rules slice
// selects DefaultIntentRules.
func NewClassifier(rules []IntentRule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultIntentRules()
	}

	copied := make([]IntentRule, len(rules))
	for i, r := range rules {
		keywords := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = strings.ToLower(k); k != "" {
				keywords = append(keywords, k)
			}
		}
		copied[i] = IntentRule{Intent: r.Intent, Keywords: keywords}
	}
	return &Classifier{rules: copied}
}

// Classify returns the first intent whose keywords appear anywhere in the
// lowercased anchor text or URL. ok is false when no rule matches.
func (c *Classifier) Classify(anchorText, resolvedURL string) (model.Intent, bool) {
	combined := strings.ToLower(anchorText + " " + resolvedURL)
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(combined, keyword) {
				return rule.Intent, true
			}
		}
	}
	return "", false
}

// Rules returns a copy of the rules in evaluation order.
func (c *Classifier) Rules() []IntentRule {
	rules := make([]IntentRule, len(c.rules))
	for i, r := range c.rules {
		rules[i] = IntentRule{Intent: r.Intent, Keywords: append([]string(nil), r.Keywords...)}
	}
	return rules
}
