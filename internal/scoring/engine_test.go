package scoring

import (
	"encoding/json"
	"testing"

	"github.com/abhisek/aipath/internal/careers"
	"github.com/abhisek/aipath/internal/questionnaire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sheet(r, ds, nlp, pe int) ScoreSheet {
	return ScoreSheet{
		careers.Researcher:     r,
		careers.DataScientist:  ds,
		careers.NLPEngineer:    nlp,
		careers.PromptEngineer: pe,
	}
}

func TestScore_EndToEnd(t *testing.T) {
	tests := []struct {
		name    string
		answers AnswerSet
		want    ScoreSheet
		career  careers.ID
	}{
		{
			name: "theory-minded researcher",
			answers: AnswerSet{
				"interests":   "research",
				"programming": "expert",
				"thinking":    "theoretical",
				"curiosity":   "understand",
			},
			want:   sheet(12, 6, 6, 0),
			career: careers.Researcher,
		},
		{
			name: "experimental builder",
			answers: AnswerSet{
				"interests":   "applications",
				"programming": "beginner",
				"thinking":    "creative",
				"curiosity":   "solve",
			},
			want:   sheet(0, 6, 5, 12),
			career: careers.PromptEngineer,
		},
		{
			name:    "partial answers",
			answers: AnswerSet{"interests": "data"},
			want:    sheet(1, 3, 1, 1),
			career:  careers.DataScientist,
		},
		{
			name: "language focus",
			answers: AnswerSet{
				"interests":   "language",
				"programming": "advanced",
				"thinking":    "systematic",
				"curiosity":   "communicate",
			},
			want:   sheet(6, 6, 12, 6),
			career: careers.NLPEngineer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Score(tt.answers)
			assert.Equal(t, tt.want, res.Scores)
			assert.Equal(t, tt.career, res.Career)
			assert.Equal(t, careers.Lookup(tt.career), res.Profile)
		})
	}
}

func TestScore_EmptyAnswers(t *testing.T) {
	for _, answers := range []AnswerSet{nil, {}} {
		res := Score(answers)
		assert.Equal(t, ScoreSheet{}, res.Scores)
		assert.Equal(t, careers.Researcher, res.Career)
		assert.Equal(t, "AI Researcher", res.Profile.Title)
	}
}

func TestScore_IgnoresUnresolvablePairs(t *testing.T) {
	base := AnswerSet{"interests": "data"}
	noisy := AnswerSet{
		"interests":   "data",
		"favourite":   "blue",
		"programming": "wizard",
		"thinking":    "research", // value from another question
	}
	assert.Equal(t, Score(base), Score(noisy))
}

func TestScore_Deterministic(t *testing.T) {
	answers := AnswerSet{
		"interests":   "language",
		"programming": "intermediate",
		"thinking":    "analytical",
		"curiosity":   "predict",
	}
	first := Score(answers)
	for range 50 {
		require.Equal(t, first, Score(answers.Clone()))
	}
}

func TestScore_SumOfOptionWeights(t *testing.T) {
	qn := questionnaire.Default()
	for _, q := range qn.Questions() {
		for _, o := range q.Options {
			got := Score(AnswerSet{q.ID: o.Value}).Scores
			for _, id := range careers.All() {
				assert.Equalf(t, o.Weights.For(id), got.Get(id), "%s/%s %s", q.ID, o.Value, id)
			}
		}
	}
}

func TestScore_Monotonic(t *testing.T) {
	qn := questionnaire.Default()
	partial := AnswerSet{"interests": "research"}
	before := Score(partial).Scores

	for _, q := range qn.Questions() {
		if _, answered := partial[q.ID]; answered {
			continue
		}
		for _, o := range q.Options {
			extended := partial.Clone()
			extended[q.ID] = o.Value
			after := Score(extended).Scores
			for _, id := range careers.All() {
				assert.Equal(t, before.Get(id)+o.Weights.For(id), after.Get(id))
				assert.GreaterOrEqual(t, after.Get(id), before.Get(id))
			}
		}
	}
}

func TestScore_TieBreakEnumerationOrder(t *testing.T) {
	// interests=data + thinking=creative: researcher 1, ds 4, nlp 2, pe 4.
	a := AnswerSet{"interests": "data", "thinking": "creative"}
	res := Score(a)
	require.Equal(t, sheet(1, 4, 2, 4), res.Scores)
	assert.Equal(t, careers.DataScientist, res.Career)

	// Same sheet reached through a different insertion order.
	b := AnswerSet{}
	b["thinking"] = "creative"
	b["interests"] = "data"
	assert.Equal(t, res.Career, Score(b).Career)
}

func TestEngine_CustomQuestionnaire(t *testing.T) {
	qn, err := questionnaire.New([]questionnaire.Question{
		{
			ID:     "only",
			Prompt: "Pick one",
			Options: []questionnaire.Option{
				{Value: "words", Label: "Words", Weights: questionnaire.Weights{careers.NLPEngineer: 2, careers.PromptEngineer: 2}},
			},
		},
	})
	require.NoError(t, err)

	e := NewEngine(qn)
	res := e.Score(AnswerSet{"only": "words", "interests": "research"})
	assert.Equal(t, sheet(0, 0, 2, 2), res.Scores)
	assert.Equal(t, careers.NLPEngineer, res.Career)
}

func TestScoreSheet_Ranked(t *testing.T) {
	s := sheet(3, 7, 3, 9)
	got := s.Ranked()
	want := []Standing{
		{careers.PromptEngineer, 9},
		{careers.DataScientist, 7},
		{careers.Researcher, 3},
		{careers.NLPEngineer, 3},
	}
	assert.Equal(t, want, got)
}

func TestScoreSheet_Fraction(t *testing.T) {
	var zero ScoreSheet
	assert.Zero(t, zero.Fraction(careers.Researcher))

	s := sheet(12, 6, 0, 3)
	assert.InDelta(t, 1.0, s.Fraction(careers.Researcher), 1e-9)
	assert.InDelta(t, 0.5, s.Fraction(careers.DataScientist), 1e-9)
	assert.InDelta(t, 0.25, s.Fraction(careers.PromptEngineer), 1e-9)
	assert.Equal(t, 12, s.Max())
	assert.Equal(t, 21, s.Total())
}

func TestScoreSheet_JSON(t *testing.T) {
	s := sheet(1, 3, 1, 1)
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"researcher":1,"data_scientist":3,"nlp_engineer":1,"prompt_engineer":1}`, string(b))

	var partial ScoreSheet
	require.NoError(t, json.Unmarshal([]byte(`{"nlp_engineer":4}`), &partial))
	assert.Equal(t, sheet(0, 0, 4, 0), partial)

	assert.Error(t, json.Unmarshal([]byte(`{"wizard":4}`), &partial))
	assert.Error(t, json.Unmarshal([]byte(`{"researcher":-1}`), &partial))
}

func TestResult_JSON(t *testing.T) {
	res := Score(AnswerSet{"interests": "data"})
	b, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded struct {
		Career  string         `json:"career"`
		Profile map[string]any `json:"profile"`
		Scores  map[string]int `json:"scores"`
	}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "data_scientist", decoded.Career)
	assert.Equal(t, "Data Scientist", decoded.Profile["title"])
	assert.Equal(t, 3, decoded.Scores["data_scientist"])
}

func TestSheetFromMap(t *testing.T) {
	got, err := SheetFromMap(map[string]int{"nlp_engineer": 7, "researcher": 2})
	require.NoError(t, err)
	assert.Equal(t, sheet(2, 0, 7, 0), got)

	_, err = SheetFromMap(map[string]int{"astronaut": 1})
	assert.Error(t, err)

	_, err = SheetFromMap(map[string]int{"researcher": -1})
	assert.ErrorContains(t, err, "negative score")
}
