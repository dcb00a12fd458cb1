package chunker

import (
	"regexp"
	"strings"

	"cdpbot/internal/domain"
)

// SentenceChunker splits documentation into sentence-based fragments with overlap.
type SentenceChunker struct {
	sentencesPerChunk int
	overlapSentences  int
	splitter          *regexp.Regexp
}

func NewSentenceChunker(sentencesPerChunk, overlapSentences int) *SentenceChunker {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = 5
	}
	if overlapSentences < 0 || overlapSentences >= sentencesPerChunk {
		overlapSentences = 0
	}
	return &SentenceChunker{
		sentencesPerChunk: sentencesPerChunk,
		overlapSentences:  overlapSentences,
		splitter:          regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
	}
}

func (c *SentenceChunker) Chunk(document domain.Document) ([]domain.Fragment, error) {
	var sentences []string
	last := 0
	for _, loc := range c.splitter.FindAllStringIndex(document.Content, -1) {
		sentences = append(sentences, document.Content[loc[0]:loc[1]])
		last = loc[1]
	}
	// trailing text without terminal punctuation is its own sentence
	sentences = append(sentences, document.Content[last:])
	var kept []string
	for _, s := range sentences {
		if s = strings.Join(strings.Fields(s), " "); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil, nil
	}
	var fragments []domain.Fragment
	i := 0
	for i < len(kept) {
		end := i + c.sentencesPerChunk
		if end > len(kept) {
			end = len(kept)
		}
		fragments = append(fragments, domain.Fragment{
			Content: strings.Join(kept[i:end], " "),
			Source:  document.Path,
		})
		if end == len(kept) {
			break
		}
		i = end - c.overlapSentences
	}
	return fragments, nil
}
