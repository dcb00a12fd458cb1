package docsource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"cdpbot/internal/domain"
)

var _ domain.Fetcher = (*FileFetcher)(nil)

// FileFetcher reads documentation from a local directory laid out as
// <root>/<platform>/<file>. Markdown and text files are chunked into
// fragments; YAML files hold a ready-made list of fragments.
type FileFetcher struct {
	root    string
	chunker domain.Chunker
}

// NewFileFetcher creates a FileFetcher rooted at dir.
func NewFileFetcher(dir string, chunker domain.Chunker) *FileFetcher {
	return &FileFetcher{root: dir, chunker: chunker}
}

// Fetch returns the fragments of every file in the platform directory, in
// file name order. A missing platform directory yields no fragments.
func (f *FileFetcher) Fetch(ctx context.Context, platform domain.Platform, _ string) ([]domain.Fragment, error) {
	dir := filepath.Join(f.root, string(platform))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var fragments []domain.Fragment
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		var got []domain.Fragment
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".md", ".txt":
			got, err = f.readText(path)
		case ".yaml", ".yml":
			got, err = readYAML(path)
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		fragments = append(fragments, got...)
	}
	return fragments, nil
}

func (f *FileFetcher) readText(path string) ([]domain.Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return f.chunker.Chunk(domain.Document{Path: path, Content: string(data)})
}

func readYAML(path string) ([]domain.Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw []domain.Fragment
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	fragments := raw[:0]
	for _, fr := range raw {
		if strings.TrimSpace(fr.Content) == "" {
			continue
		}
		if fr.Source == "" {
			fr.Source = path
		}
		fragments = append(fragments, fr)
	}
	return fragments, nil
}
