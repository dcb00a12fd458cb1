// Package classifier decides whether a question is about a supported CDP and
// which platforms it names. Matching is plain substring search on the
// lowercased question.
package classifier

import (
	"strings"

	"cdpbot/internal/domain"
)

var domainKeywords = []string{
	"cdp", "customer data platform", "segment", "mparticle",
	"lytics", "zeotap", "integration", "source", "audience",
	"profile", "data",
}

var comparisonKeywords = []string{"compare", "difference"}

// IsCDPQuestion reports whether the question contains any in-domain keyword.
func IsCDPQuestion(question string) bool {
	return containsAny(strings.ToLower(question), domainKeywords)
}

// IsComparison reports whether the question asks to compare platforms.
func IsComparison(question string) bool {
	return containsAny(strings.ToLower(question), comparisonKeywords)
}

// IdentifyPlatform returns the first platform, in canonical order, whose name
// appears in the question.
func IdentifyPlatform(question string) (domain.Platform, bool) {
	q := strings.ToLower(question)
	for _, p := range domain.Platforms() {
		if strings.Contains(q, string(p)) {
			return p, true
		}
	}
	return "", false
}

// MentionedPlatforms returns every candidate whose name appears in the
// question, keeping the order of candidates.
func MentionedPlatforms(question string, candidates []domain.Platform) []domain.Platform {
	q := strings.ToLower(question)
	var out []domain.Platform
	for _, p := range candidates {
		if strings.Contains(q, string(p)) {
			out = append(out, p)
		}
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
