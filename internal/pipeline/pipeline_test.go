package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gcbaptista/answer-ranker/config"
	"github.com/gcbaptista/answer-ranker/internal/errors"
	"github.com/gcbaptista/answer-ranker/internal/evaluation"
	"github.com/gcbaptista/answer-ranker/internal/testutil"
	"github.com/gcbaptista/answer-ranker/model"
)

func skyDocument() *model.Document {
	return testutil.NewDocument("sky").
		Question("What color is the sky?").
		Answer(false, "The grass is green.").
		Answer(true, "The sky is blue.").
		Build()
}

func newPipeline(t *testing.T, settings config.RankerSettings, opts ...Option) *Pipeline {
	t.Helper()
	p, err := New(settings, zap.NewNop(), opts...)
	require.NoError(t, err)
	return p
}

func TestNew_InvalidSettings(t *testing.T) {
	_, err := New(config.RankerSettings{MaxN: 7}, zap.NewNop())
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidInput))
}

func TestProcessDocument_SkyExample(t *testing.T) {
	p := newPipeline(t, config.DefaultSettings())

	result, err := p.ProcessDocument(skyDocument())
	require.NoError(t, err)

	require.Len(t, result.Ranked, 2)
	assert.Equal(t, "The sky is blue.", result.Ranked[0].Text)
	assert.True(t, result.Ranked[0].IsCorrect)
	assert.Greater(t, result.Ranked[0].Score, result.Ranked[1].Score)
	assert.Equal(t, 1.0, result.Precision)
	assert.Equal(t, 2, p.Scores().Len())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.Document)
		wantErr error
	}{
		{"valid", func(*model.Document) {}, nil},
		{"missing question", func(d *model.Document) { d.Question = nil }, errors.ErrMissingQuestion},
		{"question outside text", func(d *model.Document) { d.Question.End = len(d.Text) + 1 }, errors.ErrInvalidSpan},
		{"answer outside text", func(d *model.Document) { d.Answers[0].Begin = -1 }, errors.ErrInvalidSpan},
		{"empty answer span is allowed", func(d *model.Document) { d.Answers[0].End = d.Answers[0].Begin }, nil},
		{"mention outside text", func(d *model.Document) {
			d.Mentions = []model.NamedEntityMention{{Span: model.Span{Begin: 0, End: 1000}, Text: "sky"}}
		}, errors.ErrInvalidSpan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := skyDocument()
			tt.mutate(doc)
			err := Validate(doc)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, tt.wantErr))
		})
	}
}

func TestRun_IsolatesFailures(t *testing.T) {
	var out bytes.Buffer
	settings := config.DefaultSettings()
	settings.Color = config.ColorOff
	p := newPipeline(t, settings, WithReportWriter(evaluation.NewConsoleReportWriter(&out, settings.Color)))

	broken := testutil.NewDocument("broken").Answer(true, "The sky is blue.").Build()
	half := testutil.NewDocument("half").
		Question("Who shot Lincoln?").
		Answer(false, "Lincoln was shot.").
		Answer(true, "Booth did it.").
		Answer(true, "John Wilkes Booth.").
		Answer(false, "Nobody.").
		Build()

	run, err := p.Run(context.Background(), []*model.Document{skyDocument(), broken, half})
	require.NoError(t, err)

	assert.NotEmpty(t, run.RunID)
	assert.Equal(t, 1, run.Failed)
	require.Len(t, run.Outcomes, 3)
	assert.True(t, stderrors.Is(run.Outcomes[1].Err, errors.ErrMissingQuestion))
	assert.Nil(t, run.Outcomes[1].Result)
	assert.Equal(t, 2, run.Summary.Documents)

	require.NoError(t, p.Finish())
	assert.Contains(t, out.String(), "Question: What color is the sky?\n+ ")
	assert.Contains(t, out.String(), "Question: Who shot Lincoln?\n")
	assert.NotContains(t, out.String(), "broken")
	assert.Contains(t, out.String(), "Average Precision: ")
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	docs := make([]*model.Document, 0, 40)
	for i := 0; i < 40; i++ {
		b := testutil.NewDocument(fmt.Sprintf("doc-%02d", i)).
			Question(fmt.Sprintf("What color is the sky on day %d?", i)).
			Answer(i%2 == 0, "The sky is blue.").
			Answer(i%2 == 1, "The grass is green.")
		if i%7 == 0 {
			b.Answer(true, fmt.Sprintf("On day %d the sky is grey.", i))
		}
		docs = append(docs, b.Build())
	}

	run := func(workers int) *RunResult {
		settings := config.DefaultSettings()
		settings.Workers = workers
		result, err := newPipeline(t, settings).Run(context.Background(), docs)
		require.NoError(t, err)
		return result
	}

	sequential := run(1)
	parallel := run(8)

	assert.Equal(t, sequential.Summary.Documents, parallel.Summary.Documents)
	assert.InDelta(t, sequential.Summary.AveragePrecision, parallel.Summary.AveragePrecision, 1e-9)
	for i := range docs {
		require.NotNil(t, parallel.Outcomes[i].Result)
		assert.Equal(t, docs[i].ID, parallel.Outcomes[i].Result.DocumentID, "outcomes keep input order")
		assert.Equal(t, *sequential.Outcomes[i].Result, *parallel.Outcomes[i].Result)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newPipeline(t, config.DefaultSettings())
	_, err := p.Run(ctx, []*model.Document{skyDocument()})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, context.Canceled))
	assert.Equal(t, 0, p.Summary().Documents)
}

func TestRun_Empty(t *testing.T) {
	run, err := newPipeline(t, config.DefaultSettings()).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, run.Outcomes)
	assert.Equal(t, model.EvaluationSummary{}, run.Summary)
}

func TestGoldStore(t *testing.T) {
	training := testutil.NewDocument("lincoln").
		Question("Who shot Lincoln?").
		Answer(true, "John Wilkes Booth shot Abraham Lincoln.").
		Answer(false, "Nobody.").
		Build()
	heldOut := testutil.NewDocument("lincoln").
		Question("Who killed the president?").
		Answer(false, "The president went to the theatre.").
		Answer(true, "Booth shot Lincoln.").
		Build()

	builder := newPipeline(t, config.DefaultSettings())
	gold, err := builder.BuildGold(context.Background(), []*model.Document{training})
	require.NoError(t, err)
	require.Equal(t, 1, gold.Len())

	settings := config.DefaultSettings()
	settings.ReferenceMode = config.ReferenceModeGold
	p := newPipeline(t, settings, WithGoldStore(gold))

	result, err := p.ProcessDocument(heldOut)
	require.NoError(t, err)
	assert.Equal(t, "Booth shot Lincoln.", result.Ranked[0].Text)
	assert.Equal(t, 1.0, result.Precision)

	unknown := testutil.NewDocument("unknown").Question("Why?").Answer(true, "Because.").Build()
	_, err = p.ProcessDocument(unknown)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrDocumentNotFound))
}

func TestBuildGold_SkipsMalformed(t *testing.T) {
	docs := []*model.Document{
		testutil.NewDocument("noq").Answer(true, "Yes.").Build(),
		testutil.NewDocument("nogold").Question("Why?").Answer(false, "No.").Build(),
		skyDocument(),
	}

	gold, err := newPipeline(t, config.DefaultSettings()).BuildGold(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, []string{"sky"}, gold.DocumentIDs())
}

func TestReset(t *testing.T) {
	p := newPipeline(t, config.DefaultSettings())
	_, err := p.ProcessDocument(skyDocument())
	require.NoError(t, err)
	require.Equal(t, 1, p.Summary().Documents)

	p.Reset()
	assert.Equal(t, 0, p.Summary().Documents)
	assert.Equal(t, 0, p.Scores().Len())
}

func TestProcessDocument_ReusedIDReplacesScores(t *testing.T) {
	p := newPipeline(t, config.DefaultSettings())
	_, err := p.ProcessDocument(skyDocument())
	require.NoError(t, err)
	require.Equal(t, 2, p.Scores().Len())

	smaller := testutil.NewDocument("sky").Question("Who?").Answer(true, "Me.").Build()
	result, err := p.ProcessDocument(smaller)
	require.NoError(t, err)

	require.Len(t, result.Scores, 1)
	assert.Equal(t, 0, result.Scores[0].Answer.Index)
	assert.Equal(t, result.Scores, p.Scores().ForDocument("sky"))
}

func TestMetrics(t *testing.T) {
	p := newPipeline(t, config.DefaultSettings())
	_, err := p.ProcessDocument(skyDocument())
	require.NoError(t, err)
	_, err = p.ProcessDocument(testutil.NewDocument("noq").Answer(true, "Yes.").Build())
	require.Error(t, err)

	snapshot := p.Metrics().Snapshot()
	assert.Equal(t, int64(1), snapshot.DocumentsProcessed)
	assert.Equal(t, int64(1), snapshot.DocumentsFailed)
	assert.Equal(t, map[string]int64{"missing_question": 1}, snapshot.FailuresByKind)
	assert.InDelta(t, 0.5, p.Metrics().SuccessRate(), 1e-12)
}

func TestMetrics_RecentWindow(t *testing.T) {
	m := NewMetrics()
	assert.Equal(t, 1.0, m.SuccessRate())
	for i := 0; i < maxRecentDurations+10; i++ {
		m.RecordProcessed(time.Millisecond)
	}
	snapshot := m.Snapshot()
	assert.Equal(t, int64(maxRecentDurations+10), snapshot.DocumentsProcessed)
	assert.Equal(t, time.Millisecond, snapshot.AverageProcessingTime)
	assert.Equal(t, time.Millisecond, snapshot.RecentProcessingTime)
}

func TestFailureKind(t *testing.T) {
	assert.Equal(t, "invalid_span", FailureKind(errors.NewInvalidSpanError("d", "answer", 0, 9, 3)))
	assert.Equal(t, "no_correct_answers", FailureKind(fmt.Errorf("wrapped: %w", errors.NewNoCorrectAnswersError("d"))))
	assert.Equal(t, "other", FailureKind(context.Canceled))
}
