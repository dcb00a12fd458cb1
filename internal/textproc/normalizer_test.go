package textproc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cdpbot/internal/textproc"
)

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	n := textproc.NewNormalizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty input", in: "", want: ""},
		{name: "only stopwords", in: "What is it?", want: ""},
		{name: "question about platform", in: "What is Segment?", want: "segment"},
		{name: "lowercases and lemmatizes plurals", in: "How do I create Audiences from Sources?", want: "create audience source"},
		{name: "drops joined non-alphanumeric tokens", in: "Send e-mail events, don't wait", want: "send event wait"},
		{name: "keeps digits", in: "API v2 supports 100 profiles", want: "api v2 support 100 profile"},
		{name: "ies plural", in: "companies", want: "company"},
		{name: "sses plural", in: "addresses", want: "address"},
		{name: "ches plural", in: "matches", want: "match"},
		{name: "irregular plural", in: "people", want: "person"},
		{name: "short words untouched", in: "gas bus", want: "gas bus"},
		{name: "ss us is endings untouched", in: "class status analysis", want: "class status analysis"},
		{name: "possessive keeps the stem", in: "Segment's audiences", want: "segment audience"},
		{name: "possessive platform name", in: "How do I use mParticle's API?", want: "use mparticle api"},
		{name: "curly apostrophe possessive", in: "Zeotap’s identity graph", want: "zeotap identity graph"},
		{name: "contraction stem is a stopword", in: "We're syncing, they'll wait", want: "syncing wait"},
		{name: "plural of irregular plural", in: "peoples mens childrens", want: "person man child"},
		{name: "punctuation only", in: "?!... --", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestNormalizer_Idempotent(t *testing.T) {
	t.Parallel()

	n := textproc.NewNormalizer()
	inputs := []string{
		"How do I set up a new source in Segment?",
		"Which integrations does mParticle support for user profiles?",
		"Creating audiences, matches, addresses, companies and children's data",
		"Statuses of the analyses indices",
		"ties lies maps caches sizes",
		"peoples mens childrens",
		"Segment's audiences and mParticle's API",
	}

	for _, in := range inputs {
		once := n.Normalize(in)
		assert.Equal(t, once, n.Normalize(once), "input %q", in)
	}
}

func TestNormalizer_Tokens(t *testing.T) {
	t.Parallel()

	n := textproc.NewNormalizer()

	require.Nil(t, n.Tokens(""))
	assert.Equal(t, []string{"build", "audience"}, n.Tokens("Build the audiences"))
}

func TestLemmatizer_FixedPoint(t *testing.T) {
	t.Parallel()

	l := textproc.NewLemmatizer()
	words := []string{"audiences", "sources", "companies", "addresses", "boxes", "matches", "wishes", "children", "criteria", "data", "profile", "maps", "peoples", "mens", "childrens"}

	for _, w := range words {
		lemma := l.Lemma(w)
		assert.Equal(t, lemma, l.Lemma(lemma), "word %q", w)
	}
}
