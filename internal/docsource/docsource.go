// Package docsource supplies documentation fragments per platform.
//
// Fetchers in this package may fail; wrap them with Recovering to obtain a
// domain.DocSource that logs failures and degrades to an empty fragment list.
package docsource

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cdpbot/internal/domain"
)

var _ domain.DocSource = (*Recovering)(nil)

// Recovering adapts a Fetcher to the never-failing DocSource contract.
type Recovering struct {
	next   domain.Fetcher
	logger *zap.Logger
}

// NewRecovering wraps next so that errors and panics are logged and swallowed.
func NewRecovering(next domain.Fetcher, logger *zap.Logger) *Recovering {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recovering{next: next, logger: logger}
}

// Fetch delegates to the wrapped Fetcher and returns no fragments on failure.
func (s *Recovering) Fetch(ctx context.Context, platform domain.Platform, sourceURL string) (fragments []domain.Fragment) {
	defer func() {
		if r := recover(); r != nil {
			s.fail(platform, sourceURL, fmt.Errorf("panic: %v", r))
			fragments = nil
		}
	}()

	begin := time.Now()
	fragments, err := s.next.Fetch(ctx, platform, sourceURL)
	if err != nil {
		s.fail(platform, sourceURL, err)
		return nil
	}
	s.logger.Debug("fetched documentation",
		zap.String("platform", string(platform)),
		zap.String("url", sourceURL),
		zap.Int("fragments", len(fragments)),
		zap.Duration("duration", time.Since(begin)),
	)
	return fragments
}

func (s *Recovering) fail(platform domain.Platform, sourceURL string, err error) {
	s.logger.Error("error fetching documentation",
		zap.String("platform", string(platform)),
		zap.String("url", sourceURL),
		zap.Error(err),
	)
}

// Stub is the placeholder fetcher: it never has any documentation.
type Stub struct{}

var _ domain.Fetcher = Stub{}

func (Stub) Fetch(ctx context.Context, _ domain.Platform, _ string) ([]domain.Fragment, error) {
	return nil, ctx.Err()
}
