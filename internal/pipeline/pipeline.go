// Package pipeline drives a batch of documents through reference building, scoring,
// evaluation and reporting.
package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/answer-ranker/config"
	"github.com/gcbaptista/answer-ranker/internal/errors"
	"github.com/gcbaptista/answer-ranker/internal/evaluation"
	"github.com/gcbaptista/answer-ranker/internal/ngram"
	"github.com/gcbaptista/answer-ranker/internal/reference"
	"github.com/gcbaptista/answer-ranker/internal/scoring"
	"github.com/gcbaptista/answer-ranker/model"
	"github.com/gcbaptista/answer-ranker/store"
)

// Pipeline ranks documents with one set of settings and owns the evaluator of its batch.
// Per-document state never outlives ProcessDocument, so documents may run concurrently.
type Pipeline struct {
	settings   config.RankerSettings
	logger     *zap.Logger
	references *reference.Builder
	scorer     *scoring.Service
	evaluator  *evaluation.Evaluator
	scores     *store.ScoreStore
	gold       *store.ReferenceStore
	report     *evaluation.ReportWriter
	metrics    *Metrics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithReportWriter makes Run write a report per document and the summary line.
func WithReportWriter(w *evaluation.ReportWriter) Option {
	return func(p *Pipeline) { p.report = w }
}

// WithGoldStore makes the gold and combined reference modes read persisted gold sets,
// keyed by document ID, instead of each document's own correct answers.
func WithGoldStore(s *store.ReferenceStore) Option {
	return func(p *Pipeline) { p.gold = s }
}

// WithScoreStore records every AnswerScore in s.
func WithScoreStore(s *store.ScoreStore) Option {
	return func(p *Pipeline) { p.scores = s }
}

// New creates a Pipeline. Settings are defaulted and validated.
func New(settings config.RankerSettings, logger *zap.Logger, opts ...Option) (*Pipeline, error) {
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, errors.NewValidationError("settings", strings.Join(problems, "; "))
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pipeline{
		settings:   settings,
		logger:     logger,
		references: reference.NewBuilder(settings.MaxN),
		scorer:     scoring.NewService(settings.MaxN, settings.EntityScoring),
		evaluator:  evaluation.NewEvaluator(settings.UseTieBreak(), settings.ZeroCorrectPolicy),
		scores:     store.NewScoreStore(),
		metrics:    NewMetrics(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Scores returns the store receiving every AnswerScore.
func (p *Pipeline) Scores() *store.ScoreStore {
	return p.scores
}

// Metrics returns the throughput and failure counters of the pipeline.
func (p *Pipeline) Metrics() *Metrics {
	return p.metrics
}

// Validate checks the shape of a document before anything is computed for it.
// Empty answer spans are allowed; they are skipped during scoring.
func Validate(doc *model.Document) error {
	if doc.Question == nil {
		return errors.NewMissingQuestionError(doc.ID)
	}
	textLen := len(doc.Text)
	if q := doc.Question.Span; !q.Within(textLen) {
		return errors.NewInvalidSpanError(doc.ID, "question", q.Begin, q.End, textLen)
	}
	for _, a := range doc.Answers {
		if !a.IsEmpty() && !a.Within(textLen) {
			return errors.NewInvalidSpanError(doc.ID, "answer", a.Begin, a.End, textLen)
		}
	}
	for _, m := range doc.Mentions {
		if !m.Within(textLen) {
			return errors.NewInvalidSpanError(doc.ID, "mention", m.Begin, m.End, textLen)
		}
	}
	return nil
}

// Reference returns the reference set doc's answers are matched against.
func (p *Pipeline) Reference(doc *model.Document) (*ngram.Set, error) {
	if p.gold == nil || p.settings.ReferenceMode == config.ReferenceModeQuestion {
		return p.references.Build(doc, p.settings.ReferenceMode)
	}

	questionSet, err := p.references.FromQuestion(doc)
	if err != nil {
		return nil, err
	}
	goldSet, err := p.gold.Get(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("no persisted gold reference: %w", err)
	}
	if p.settings.ReferenceMode == config.ReferenceModeCombined {
		return questionSet.Union(goldSet), nil
	}
	return goldSet, nil
}

// ProcessDocument validates, scores and evaluates one document. A failing document leaves
// the accumulators untouched.
func (p *Pipeline) ProcessDocument(doc *model.Document) (model.EvaluationResult, error) {
	start := time.Now()
	result, err := p.processDocument(doc)
	if err != nil {
		p.metrics.RecordFailed(FailureKind(err))
		return result, err
	}
	p.metrics.RecordProcessed(time.Since(start))
	return result, nil
}

// FailureKind names the error class of a document failure.
func FailureKind(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrMissingQuestion):
		return "missing_question"
	case stderrors.Is(err, errors.ErrNoCorrectAnswers):
		return "no_correct_answers"
	case stderrors.Is(err, errors.ErrInvalidSpan):
		return "invalid_span"
	case stderrors.Is(err, errors.ErrDocumentNotFound):
		return "document_not_found"
	case stderrors.Is(err, errors.ErrInvalidInput):
		return "invalid_input"
	default:
		return "other"
	}
}

func (p *Pipeline) processDocument(doc *model.Document) (model.EvaluationResult, error) {
	if err := Validate(doc); err != nil {
		return model.EvaluationResult{}, err
	}

	ref, err := p.Reference(doc)
	if err != nil {
		return model.EvaluationResult{}, err
	}

	scores, err := p.scorer.ScoreDocument(doc, ref)
	if err != nil {
		return model.EvaluationResult{}, err
	}

	result, err := p.evaluator.Evaluate(doc, scores)
	if err != nil {
		return model.EvaluationResult{}, err
	}
	result.Scores = scores
	p.scores.ReplaceDocument(doc.ID, scores)
	return result, nil
}

// Outcome is the result of one document in a batch. Exactly one of Result and Err is set.
type Outcome struct {
	Document *model.Document
	Result   *model.EvaluationResult
	Err      error
}

// RunResult describes a finished batch.
type RunResult struct {
	RunID    string
	Outcomes []Outcome // In input order
	Failed   int
	Summary  model.EvaluationSummary
	Duration time.Duration
}

// Run processes docs with up to settings.Workers documents in flight. Failing documents are
// logged and skipped; the batch stops early only when ctx is cancelled. Reports are written
// in input order once every document has been processed.
func (p *Pipeline) Run(ctx context.Context, docs []*model.Document) (*RunResult, error) {
	start := time.Now()
	run := &RunResult{
		RunID:    uuid.New().String(),
		Outcomes: make([]Outcome, len(docs)),
	}
	logger := p.logger.With(zap.String("run_id", run.RunID))
	logger.Info("Batch started",
		zap.Int("documents", len(docs)),
		zap.Int("workers", p.settings.Workers),
		zap.String("reference_mode", p.settings.ReferenceMode),
		zap.Bool("entity_scoring", p.settings.EntityScoring))

	if len(docs) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(p.settings.Workers, len(docs)))

		for i, doc := range docs {
			run.Outcomes[i].Document = doc
			i, doc := i, doc
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				result, err := p.ProcessDocument(doc)
				if err != nil {
					run.Outcomes[i].Err = err
					return nil
				}
				run.Outcomes[i].Result = &result
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			logger.Warn("Batch cancelled", zap.Error(err))
			return nil, fmt.Errorf("batch %s cancelled: %w", run.RunID, err)
		}
	}

	for _, outcome := range run.Outcomes {
		if outcome.Err != nil {
			run.Failed++
			logger.Warn("Document skipped",
				zap.String("document", outcome.Document.ID),
				zap.Error(outcome.Err))
			continue
		}
		if p.report != nil {
			if err := p.report.WriteDocument(outcome.Document, *outcome.Result); err != nil {
				return nil, err
			}
		}
	}

	run.Summary = p.evaluator.Summary()
	run.Duration = time.Since(start)
	logger.Info("Batch finished",
		zap.Int("counted", run.Summary.Documents),
		zap.Int("skipped", run.Summary.Skipped),
		zap.Int("failed", run.Failed),
		zap.Float64("average_precision", run.Summary.AveragePrecision),
		zap.Duration("took", run.Duration))
	return run, nil
}

// Summary returns the accumulated evaluation state of every document processed so far.
func (p *Pipeline) Summary() model.EvaluationSummary {
	return p.evaluator.Summary()
}

// Reset clears the evaluation accumulators and the score store.
func (p *Pipeline) Reset() {
	p.evaluator.Reset()
	p.scores.Clear()
}

// Finish writes the average precision line. It is a no-op without a report writer.
func (p *Pipeline) Finish() error {
	if p.report == nil {
		return nil
	}
	return p.report.WriteSummary(p.evaluator.Summary())
}

// BuildGold builds the gold reference set of every document that has at least one
// gold-correct answer and stores it under the document ID. Documents without a question
// are skipped like any other malformed document.
func (p *Pipeline) BuildGold(ctx context.Context, docs []*model.Document) (*store.ReferenceStore, error) {
	gold := store.NewReferenceStore()
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := Validate(doc); err != nil {
			p.logger.Warn("Document skipped", zap.String("document", doc.ID), zap.Error(err))
			continue
		}
		set := p.references.FromGold(doc)
		if set.Len() == 0 {
			p.logger.Warn("Document has no gold n-grams", zap.String("document", doc.ID))
			continue
		}
		gold.Put(doc.ID, set)
	}
	p.logger.Info("Gold references built", zap.Int("documents", gold.Len()))
	return gold, nil
}
