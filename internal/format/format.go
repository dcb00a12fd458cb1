// Package format renders retrieval results as chat responses.
package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cdpbot/internal/domain"
)

const (
	// OutOfDomain is returned for questions unrelated to CDPs.
	OutOfDomain = "I can only answer questions about Customer Data Platforms (CDPs). Please ask me about Segment, mParticle, Lytics, or Zeotap."
	// NoPlatform asks the user to name a platform.
	NoPlatform = "Please specify which CDP you're asking about (Segment, mParticle, Lytics, or Zeotap)."
	// ComparisonNeedsPlatforms is returned when a comparison names fewer than two platforms.
	ComparisonNeedsPlatforms = "For CDP comparisons, please mention the specific CDPs you'd like to compare."
)

// Section is the retrieval result for one platform of a comparison.
type Section struct {
	Platform  domain.Platform
	Fragments []domain.Fragment
}

// NotFound is the apology returned when a platform has no relevant fragments.
func NotFound(platform domain.Platform) string {
	return fmt.Sprintf("I couldn't find specific information about that in the %s documentation. Could you rephrase your question?", platform)
}

// Answer numbers the fragments under a single-platform heading.
func Answer(platform domain.Platform, fragments []domain.Fragment) string {
	if len(fragments) == 0 {
		return NotFound(platform)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Here's how to do that in %s:\n\n", platform)
	for i, f := range fragments {
		fmt.Fprintf(&b, "%d. %s\n", i+1, f.Content)
	}
	return b.String()
}

// Comparison renders one labeled section per platform, in the given order.
func Comparison(sections []Section) string {
	if len(sections) < 2 {
		return ComparisonNeedsPlatforms
	}
	var b strings.Builder
	b.WriteString("Here's a comparison:\n\n")
	for _, s := range sections {
		fmt.Fprintf(&b, "%s:\n", Title(s.Platform))
		for _, f := range s.Fragments {
			fmt.Fprintf(&b, "- %s\n", f.Content)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Title returns the platform name with its first letter upper-cased.
func Title(platform domain.Platform) string {
	// a Caser keeps state between calls, so each call gets its own
	return cases.Title(language.English).String(string(platform))
}
