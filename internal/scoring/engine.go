package scoring

import (
	"github.com/abhisek/aipath/internal/careers"
	"github.com/abhisek/aipath/internal/questionnaire"
)

// AnswerSet maps a question ID to the chosen option value.
type AnswerSet map[string]string

// Clone returns an independent copy of a.
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Result is the outcome of scoring one AnswerSet.
type Result struct {
	Career  careers.ID      `json:"career"`
	Profile careers.Profile `json:"profile"`
	Scores  ScoreSheet      `json:"scores"`
}

// Engine scores answer sets against a questionnaire. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	qn *questionnaire.Questionnaire
}

// NewEngine creates an Engine for qn. A nil qn selects the built-in
// questionnaire.
func NewEngine(qn *questionnaire.Questionnaire) *Engine {
	if qn == nil {
		qn = questionnaire.Default()
	}
	return &Engine{qn: qn}
}

// Questionnaire returns the questionnaire the engine scores against.
func (e *Engine) Questionnaire() *questionnaire.Questionnaire {
	return e.qn
}

// Tally sums the weights of every resolvable answer. Pairs naming an
// unknown question or an option outside that question contribute nothing.
func (e *Engine) Tally(answers AnswerSet) ScoreSheet {
	var sheet ScoreSheet
	for qid, value := range answers {
		opt, ok := e.qn.Option(qid, value)
		if !ok {
			continue
		}
		for _, id := range careers.All() {
			sheet[id] += opt.Weights.For(id)
		}
	}
	return sheet
}

// Score maps answers to a recommended career. It never fails: an empty or
// entirely unresolvable answer set yields all-zero scores and the first
// career in enumeration order.
func (e *Engine) Score(answers AnswerSet) Result {
	sheet := e.Tally(answers)
	winner := sheet.Leader()
	return Result{
		Career:  winner,
		Profile: careers.Lookup(winner),
		Scores:  sheet,
	}
}

// Score runs the built-in questionnaire's engine.
func Score(answers AnswerSet) Result {
	return defaultEngine.Score(answers)
}

var defaultEngine = NewEngine(nil)
