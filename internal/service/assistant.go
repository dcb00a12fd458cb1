package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cdpbot/internal/classifier"
	"cdpbot/internal/domain"
	"cdpbot/internal/format"
	"cdpbot/internal/index"
)

// DefaultTopK is the number of fragments returned per platform.
const DefaultTopK = 3

// Assistant answers CDP questions from an index built once at construction.
// It is not modified after NewAssistant returns.
type Assistant struct {
	index     *index.Index
	platforms []domain.Platform
	topK      int
	logger    *zap.Logger
}

// NewAssistant fetches the documentation of every platform from source and
// indexes it into idx.
func NewAssistant(ctx context.Context, source domain.DocSource, idx *index.Index, platforms []domain.PlatformSource, topK int, logger *zap.Logger) (*Assistant, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	a := &Assistant{
		index:  idx,
		topK:   topK,
		logger: logger,
	}
	for _, ps := range platforms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frags := source.Fetch(ctx, ps.Platform, ps.URL)
		if err := idx.Build(ps.Platform, frags); err != nil {
			return nil, fmt.Errorf("index %s documentation: %w", ps.Platform, err)
		}
		a.platforms = append(a.platforms, ps.Platform)
		stats, _ := idx.Stats(ps.Platform)
		logger.Info("indexed documentation",
			zap.String("platform", string(ps.Platform)),
			zap.String("vectorizer", stats.Vectorizer),
			zap.Int("dimension", stats.Dimension),
			zap.Int("fragments", stats.Fragments),
		)
	}
	return a, nil
}

// Platforms returns the indexed platforms in indexing order.
func (a *Assistant) Platforms() []domain.Platform {
	return append([]domain.Platform(nil), a.platforms...)
}

// FragmentCount returns how many fragments were indexed for the platform.
func (a *Assistant) FragmentCount(platform domain.Platform) int {
	stats, _ := a.index.Stats(platform)
	return stats.Fragments
}

// Respond routes a question to comparison or single-platform handling.
func (a *Assistant) Respond(question string) (string, error) {
	if classifier.IsComparison(question) {
		return a.HandleComparison(question)
	}
	return a.GenerateResponse(question)
}

// GenerateResponse runs the classify, retrieve and format pipeline for one platform.
func (a *Assistant) GenerateResponse(question string) (string, error) {
	if !classifier.IsCDPQuestion(question) {
		return format.OutOfDomain, nil
	}
	platform, ok := classifier.IdentifyPlatform(question)
	if !ok {
		return format.NoPlatform, nil
	}
	fragments, err := a.FindMostRelevant(question, platform)
	if err != nil {
		return "", err
	}
	return format.Answer(platform, fragments), nil
}

// HandleComparison retrieves fragments independently for every platform the
// question names. At least two platforms must be named.
func (a *Assistant) HandleComparison(question string) (string, error) {
	mentioned := classifier.MentionedPlatforms(question, a.platforms)
	if len(mentioned) < 2 {
		return format.ComparisonNeedsPlatforms, nil
	}
	sections := make([]format.Section, 0, len(mentioned))
	for _, p := range mentioned {
		fragments, err := a.FindMostRelevant(question, p)
		if err != nil {
			return "", err
		}
		sections = append(sections, format.Section{Platform: p, Fragments: fragments})
	}
	return format.Comparison(sections), nil
}

// FindMostRelevant returns up to topK fragments of the platform ranked by
// similarity to the question. It fails with domain.ErrUnknownPlatform when
// the platform was never indexed.
func (a *Assistant) FindMostRelevant(question string, platform domain.Platform) ([]domain.Fragment, error) {
	results, err := a.index.Search(platform, question, a.topK)
	if err != nil {
		return nil, err
	}
	fragments := make([]domain.Fragment, len(results))
	for i, r := range results {
		fragments[i] = r.Fragment
	}
	a.logger.Debug("retrieved fragments",
		zap.String("platform", string(platform)),
		zap.Int("count", len(fragments)),
	)
	return fragments, nil
}
