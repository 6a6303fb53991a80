// Package ingest turns raw question/answer text files into documents.
//
// Each non-blank line of a file is one sentence. A line starting with "Q" or "q" is the
// question; its text starts after the two-character prefix ("Q "). Any other line is a
// candidate answer of the form "A <0|1> <text>", where the third character is the gold label.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gcbaptista/answer-ranker/internal/errors"
	"github.com/gcbaptista/answer-ranker/model"
)

const (
	questionPrefixLen = 2 // "Q "
	answerPrefixLen   = 4 // "A 1 "
	labelOffset       = 2

	// MentionsSuffix is appended to a document file's base name to locate its entity sidecar.
	MentionsSuffix = ".entities.json"
)

// SentenceKind is the closed set of sentence kinds a line can be classified as.
type SentenceKind int

const (
	KindQuestion SentenceKind = iota
	KindAnswer
)

func (k SentenceKind) String() string {
	switch k {
	case KindQuestion:
		return "question"
	case KindAnswer:
		return "answer"
	default:
		return fmt.Sprintf("SentenceKind(%d)", int(k))
	}
}

// Classify returns the kind of a line by its first character.
func Classify(line string) SentenceKind {
	if strings.HasPrefix(line, "Q") || strings.HasPrefix(line, "q") {
		return KindQuestion
	}
	return KindAnswer
}

// NewQuestion creates the question for a line spanning [lineBegin, lineEnd).
func NewQuestion(lineBegin, lineEnd int) model.Question {
	return model.Question{Span: prefixedSpan(lineBegin, lineEnd, questionPrefixLen)}
}

// NewAnswer creates the answer at position index for line, which spans [lineBegin, lineEnd).
func NewAnswer(line string, lineBegin, lineEnd, index int) model.Answer {
	return model.Answer{
		Span:      prefixedSpan(lineBegin, lineEnd, answerPrefixLen),
		IsCorrect: len(line) > labelOffset && line[labelOffset] == '1',
		Index:     index,
	}
}

// prefixedSpan skips the prefix of a line. Lines shorter than the prefix yield an empty span.
func prefixedSpan(lineBegin, lineEnd, prefixLen int) model.Span {
	begin := lineBegin + prefixLen
	if begin > lineEnd {
		begin = lineEnd
	}
	return model.Span{Begin: begin, End: lineEnd}
}

// ParseText classifies every line of text and returns the resulting document.
// A document without a question line is returned as is; a second question line is an error.
func ParseText(id, text string) (*model.Document, error) {
	doc := &model.Document{
		ID:      id,
		Text:    text,
		Answers: make([]model.Answer, 0),
	}

	for lineBegin := 0; lineBegin < len(text); {
		lineEnd := strings.IndexByte(text[lineBegin:], '\n')
		next := len(text)
		if lineEnd < 0 {
			lineEnd = len(text)
		} else {
			lineEnd += lineBegin
			next = lineEnd + 1
		}
		if lineEnd > lineBegin && text[lineEnd-1] == '\r' {
			lineEnd--
		}

		line := text[lineBegin:lineEnd]
		if strings.TrimSpace(line) != "" {
			switch Classify(line) {
			case KindQuestion:
				if doc.Question != nil {
					return nil, errors.NewValidationError("question", fmt.Sprintf("document '%s' has more than one question line", id))
				}
				q := NewQuestion(lineBegin, lineEnd)
				doc.Question = &q
			case KindAnswer:
				doc.Answers = append(doc.Answers, NewAnswer(line, lineBegin, lineEnd, len(doc.Answers)))
			}
		}
		lineBegin = next
	}
	return doc, nil
}

// LoadFile reads and parses one document file. The document ID and source are the file's
// base name. Mentions are read from the sibling "<name>.entities.json" when it exists.
func LoadFile(path string) (*model.Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read document file %s: %w", path, err)
	}

	name := filepath.Base(path)
	doc, err := ParseText(strings.TrimSuffix(name, filepath.Ext(name)), string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document file %s: %w", path, err)
	}
	doc.Source = name

	mentionsPath := MentionsPath(path)
	if _, statErr := os.Stat(mentionsPath); statErr == nil {
		mentions, err := LoadMentions(mentionsPath, doc)
		if err != nil {
			return nil, err
		}
		doc.Mentions = mentions
	}
	return doc, nil
}

// MentionsPath returns the entity sidecar path for a document file.
func MentionsPath(documentPath string) string {
	return strings.TrimSuffix(documentPath, filepath.Ext(documentPath)) + MentionsSuffix
}

// LoadDir loads every "*.txt" file in dir, ordered by file name.
func LoadDir(dir string) ([]*model.Document, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list documents in %s: %w", dir, err)
	}
	sort.Strings(paths)

	docs := make([]*model.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
