package docsource

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"cdpbot/internal/domain"
)

// DefaultFetchTimeout is the default timeout for a documentation page request.
const DefaultFetchTimeout = 10 * time.Second

// contentSelector picks the block elements whose text becomes documentation.
// List items wrapping paragraphs are skipped so their text is not taken twice.
const contentSelector = "p, li:not(:has(p))"

var _ domain.Fetcher = (*WebFetcher)(nil)

// WebFetcher downloads a single documentation page and extracts its text.
// It does not follow links.
type WebFetcher struct {
	client  *http.Client
	timeout time.Duration
	chunker domain.Chunker
}

// Option configures a WebFetcher.
type Option func(*WebFetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *WebFetcher) {
		f.timeout = d
	}
}

// NewWebFetcher creates a WebFetcher that splits page text with chunker.
func NewWebFetcher(chunker domain.Chunker, opts ...Option) *WebFetcher {
	f := &WebFetcher{
		timeout: DefaultFetchTimeout,
		chunker: chunker,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{Timeout: f.timeout}
	return f
}

// Fetch retrieves sourceURL and turns its paragraphs and list items into fragments.
func (f *WebFetcher) Fetch(ctx context.Context, _ domain.Platform, sourceURL string) ([]domain.Fragment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, sourceURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("script, style, nav, header, footer").Remove()

	var fragments []domain.Fragment
	var chunkErr error
	doc.Find(contentSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text == "" {
			return true
		}
		got, err := f.chunker.Chunk(domain.Document{Path: sourceURL, Content: text})
		if err != nil {
			chunkErr = err
			return false
		}
		fragments = append(fragments, got...)
		return true
	})
	if chunkErr != nil {
		return nil, chunkErr
	}
	return fragments, nil
}
