package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"cdpbot/internal/docsource"
	"cdpbot/internal/domain"
	"cdpbot/internal/embedding/tfidf"
	"cdpbot/internal/format"
	"cdpbot/internal/index"
	"cdpbot/internal/service"
	"cdpbot/internal/textproc"
	"cdpbot/internal/vectorstore/memory"
)

// staticSource serves fixed fragments per platform.
type staticSource map[domain.Platform][]domain.Fragment

func (s staticSource) Fetch(_ context.Context, p domain.Platform, _ string) []domain.Fragment {
	return s[p]
}

func defaultPlatforms() []domain.PlatformSource {
	out := make([]domain.PlatformSource, 0, 4)
	for _, p := range domain.Platforms() {
		out = append(out, domain.PlatformSource{Platform: p, URL: "https://example.com/" + string(p)})
	}
	return out
}

func newIndex() *index.Index {
	return index.New(
		textproc.NewNormalizer(),
		func() domain.Vectorizer { return tfidf.NewVectorizer() },
		func() domain.VectorStore { return memory.NewStorage() },
	)
}

func newAssistant(t *testing.T, source domain.DocSource) *service.Assistant {
	t.Helper()
	a, err := service.NewAssistant(context.Background(), source, newIndex(), defaultPlatforms(), 0, zap.NewNop())
	require.NoError(t, err)
	return a
}

func stubAssistant(t *testing.T) *service.Assistant {
	t.Helper()
	return newAssistant(t, docsource.NewRecovering(docsource.Stub{}, zap.NewNop()))
}

func TestAssistant_GenerateResponse(t *testing.T) {
	t.Parallel()

	t.Run("out of domain question is refused", func(t *testing.T) {
		t.Parallel()

		got, err := stubAssistant(t).GenerateResponse("What's the capital of France?")
		require.NoError(t, err)
		assert.Equal(t, "I can only answer questions about Customer Data Platforms (CDPs). Please ask me about Segment, mParticle, Lytics, or Zeotap.", got)
	})

	t.Run("asks for a platform when none is named", func(t *testing.T) {
		t.Parallel()

		got, err := stubAssistant(t).GenerateResponse("How do I create an audience?")
		require.NoError(t, err)
		assert.Equal(t, format.NoPlatform, got)
	})

	t.Run("what is segment with no documentation", func(t *testing.T) {
		t.Parallel()

		got, err := stubAssistant(t).GenerateResponse("What is Segment?")
		require.NoError(t, err)
		assert.Equal(t, "I couldn't find specific information about that in the segment documentation. Could you rephrase your question?", got)
	})

	t.Run("returns ranked fragments", func(t *testing.T) {
		t.Parallel()

		a := newAssistant(t, staticSource{
			domain.Segment: {
				{Content: "Destinations receive events."},
				{Content: "To add a source, open Connections and click Add Source."},
				{Content: "Engage builds audiences."},
				{Content: "Protocols enforces tracking plans."},
			},
		})

		got, err := a.GenerateResponse("How do I add a source in Segment?")
		require.NoError(t, err)
		assert.Equal(t, "Here's how to do that in segment:\n\n"+
			"1. To add a source, open Connections and click Add Source.\n"+
			"2. Destinations receive events.\n"+
			"3. Engage builds audiences.\n", got)
	})
}

func TestAssistant_HandleComparison(t *testing.T) {
	t.Parallel()

	t.Run("needs two platforms", func(t *testing.T) {
		t.Parallel()

		got, err := stubAssistant(t).HandleComparison("compare segment with others")
		require.NoError(t, err)
		assert.Equal(t, "For CDP comparisons, please mention the specific CDPs you'd like to compare.", got)
	})

	t.Run("compare segment and mparticle with no documentation", func(t *testing.T) {
		t.Parallel()

		got, err := stubAssistant(t).HandleComparison("compare segment and mparticle")
		require.NoError(t, err)
		assert.Equal(t, "Here's a comparison:\n\nSegment:\n\nMparticle:\n\n", got)
	})

	t.Run("sections follow platform order", func(t *testing.T) {
		t.Parallel()

		a := newAssistant(t, staticSource{
			domain.Segment: {{Content: "Segment audiences are built in Engage."}},
			domain.Zeotap:  {{Content: "Zeotap audiences are built in the Audience module."}},
		})

		got, err := a.HandleComparison("What is the difference between Zeotap and Segment audiences?")
		require.NoError(t, err)
		assert.Equal(t, "Here's a comparison:\n\n"+
			"Segment:\n- Segment audiences are built in Engage.\n\n"+
			"Zeotap:\n- Zeotap audiences are built in the Audience module.\n\n", got)
	})
}

func TestAssistant_Respond(t *testing.T) {
	t.Parallel()

	a := stubAssistant(t)

	got, err := a.Respond("Compare lytics and zeotap")
	require.NoError(t, err)
	assert.Equal(t, "Here's a comparison:\n\nLytics:\n\nZeotap:\n\n", got)

	got, err = a.Respond("How do I build an audience in Lytics?")
	require.NoError(t, err)
	assert.Equal(t, format.NotFound(domain.Lytics), got)
}

func TestAssistant_FindMostRelevant(t *testing.T) {
	t.Parallel()

	t.Run("unknown platform fails", func(t *testing.T) {
		t.Parallel()

		_, err := stubAssistant(t).FindMostRelevant("anything", domain.Platform("hubspot"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnknownPlatform))
	})

	t.Run("zero fragments is empty", func(t *testing.T) {
		t.Parallel()

		got, err := stubAssistant(t).FindMostRelevant("What is Segment?", domain.Segment)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("caps at three fragments", func(t *testing.T) {
		t.Parallel()

		frags := []domain.Fragment{{Content: "a source"}, {Content: "b source"}, {Content: "c source"}, {Content: "d source"}, {Content: "e"}}
		a := newAssistant(t, staticSource{domain.MParticle: frags})

		got, err := a.FindMostRelevant("source", domain.MParticle)
		require.NoError(t, err)
		assert.Len(t, got, 3)
		assert.Equal(t, 5, a.FragmentCount(domain.MParticle))
	})
}

func TestNewAssistant(t *testing.T) {
	t.Parallel()

	t.Run("indexes every platform", func(t *testing.T) {
		t.Parallel()

		a := stubAssistant(t)
		assert.Equal(t, domain.Platforms(), a.Platforms())
	})

	t.Run("logs index stats per platform", func(t *testing.T) {
		t.Parallel()

		core, logs := observer.New(zapcore.InfoLevel)
		source := staticSource{domain.Segment: {{Content: "Sources send events."}, {Content: "Destinations receive events."}}}
		a, err := service.NewAssistant(context.Background(), source, newIndex(), defaultPlatforms(), 3, zap.New(core))
		require.NoError(t, err)

		entries := logs.FilterMessage("indexed documentation").All()
		require.Len(t, entries, 4)
		fields := entries[0].ContextMap()
		assert.Equal(t, "segment", fields["platform"])
		assert.Equal(t, "tfidf", fields["vectorizer"])
		assert.Equal(t, int64(2), fields["fragments"])
		assert.Equal(t, int64(0), entries[1].ContextMap()["fragments"])

		assert.Equal(t, 2, a.FragmentCount(domain.Segment))
		assert.Equal(t, 0, a.FragmentCount(domain.Platform("hubspot")))
	})

	t.Run("honors cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := service.NewAssistant(ctx, staticSource{}, newIndex(), defaultPlatforms(), 3, nil)
		require.ErrorIs(t, err, context.Canceled)
	})
}
