package scoring

import (
	"sort"

	"github.com/gcbaptista/answer-ranker/model"
)

// EntityProximityScorer rewards answers whose single-token named entities keep the
// order and spacing they have in the question.
type EntityProximityScorer struct{}

// NewEntityProximityScorer creates an EntityProximityScorer.
func NewEntityProximityScorer() *EntityProximityScorer {
	return &EntityProximityScorer{}
}

// Sum returns the raw agreement sum for the answer.
//
// For every pair qi, qj (i < j) of question entities ordered by position, the first answer
// mention with the same covered text is taken as each entity's counterpart. Pairs where
// either counterpart is missing are skipped. Otherwise sign(d) * (diff - |d|) is added,
// where diff is the offset from qi to qj in the question and d the offset between their
// counterparts in the answer.
func (s *EntityProximityScorer) Sum(question model.Question, answer model.Answer, mentions []model.NamedEntityMention) int {
	inQuestion := mentionsIn(question.Span, mentions)
	inAnswer := mentionsIn(answer.Span, mentions)

	sum := 0
	for i := 0; i < len(inQuestion); i++ {
		first, ok := firstByText(inAnswer, inQuestion[i].Text)
		if !ok {
			continue
		}
		for j := i + 1; j < len(inQuestion); j++ {
			second, ok := firstByText(inAnswer, inQuestion[j].Text)
			if !ok {
				continue
			}
			diff := inQuestion[j].Begin - inQuestion[i].Begin
			d := second.Begin - first.Begin
			sum += sign(d) * (diff - abs(d))
		}
	}
	return sum
}

// Adjust returns the additive score adjustment 1/sum. A zero sum, which includes the case
// where no entity qualifies, is treated as 1 and yields an adjustment of 1.
func (s *EntityProximityScorer) Adjust(question model.Question, answer model.Answer, mentions []model.NamedEntityMention) float64 {
	sum := s.Sum(question, answer, mentions)
	if sum == 0 {
		sum = 1
	}
	return 1 / float64(sum)
}

// mentionsIn returns the single-token mentions overlapping span, ordered by position.
func mentionsIn(span model.Span, mentions []model.NamedEntityMention) []model.NamedEntityMention {
	selected := make([]model.NamedEntityMention, 0)
	for _, m := range mentions {
		if m.Overlaps(span) && m.IsSingleToken() {
			selected = append(selected, m)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Begin < selected[j].Begin
	})
	return selected
}

func firstByText(mentions []model.NamedEntityMention, text string) (model.NamedEntityMention, bool) {
	for _, m := range mentions {
		if m.Text == text {
			return m, true
		}
	}
	return model.NamedEntityMention{}, false
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
