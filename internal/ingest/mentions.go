package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/gcbaptista/answer-ranker/internal/errors"
	"github.com/gcbaptista/answer-ranker/model"
)

// ResolveMentions checks each span against the document buffer and attaches its covered
// text. The result is ordered by position.
func ResolveMentions(doc *model.Document, spans []model.Span) ([]model.NamedEntityMention, error) {
	mentions := make([]model.NamedEntityMention, 0, len(spans))
	for _, span := range spans {
		if !span.Within(len(doc.Text)) {
			return nil, errors.NewInvalidSpanError(doc.ID, "mention", span.Begin, span.End, len(doc.Text))
		}
		mentions = append(mentions, model.NamedEntityMention{Span: span, Text: doc.Covered(span)})
	}
	sort.SliceStable(mentions, func(i, j int) bool {
		return mentions[i].Begin < mentions[j].Begin
	})
	return mentions, nil
}

// LoadMentions reads a JSON array of {"begin", "end"} spans produced by an entity recognizer
// and resolves them against doc.
func LoadMentions(path string, doc *model.Document) ([]model.NamedEntityMention, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- sidecar next to an operator-supplied document
	if err != nil {
		return nil, fmt.Errorf("failed to read mentions file %s: %w", path, err)
	}

	var spans []model.Span
	if err := json.Unmarshal(data, &spans); err != nil {
		return nil, fmt.Errorf("failed to decode mentions file %s: %w", path, err)
	}

	mentions, err := ResolveMentions(doc, spans)
	if err != nil {
		return nil, fmt.Errorf("invalid mentions file %s: %w", path, err)
	}
	return mentions, nil
}
