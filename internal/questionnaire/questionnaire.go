package questionnaire

import (
	"errors"
	"fmt"
	"slices"
)

// Questionnaire is an immutable, indexed set of questions.
type Questionnaire struct {
	questions []Question
	byID      map[string]int
}

// std is the built-in questionnaire, set by init() in seed.go.
var std *Questionnaire

// Default returns the built-in career questionnaire.
func Default() *Questionnaire {
	return std
}

// New validates questions and builds a Questionnaire from a private copy.
func New(questions []Question) (*Questionnaire, error) {
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}
	return build(questions), nil
}

func build(questions []Question) *Questionnaire {
	qs := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = slices.Clone(q.Options)
		qs[i] = q
	}

	qn := &Questionnaire{
		questions: qs,
		byID:      make(map[string]int, len(qs)),
	}
	for i := range qn.questions {
		qn.byID[qn.questions[i].ID] = i
	}
	return qn
}

// Len returns the number of questions.
func (qn *Questionnaire) Len() int {
	return len(qn.questions)
}

// At returns the question at position i in presentation order.
func (qn *Questionnaire) At(i int) Question {
	return cloneQuestion(qn.questions[i])
}

// Questions returns all questions in presentation order.
func (qn *Questionnaire) Questions() []Question {
	out := make([]Question, len(qn.questions))
	for i, q := range qn.questions {
		out[i] = cloneQuestion(q)
	}
	return out
}

// Question returns a question by ID.
func (qn *Questionnaire) Question(id string) (Question, bool) {
	i, ok := qn.byID[id]
	if !ok {
		return Question{}, false
	}
	return cloneQuestion(qn.questions[i]), true
}

// Option resolves a (question, value) pair. It reports false when either
// the question or the value is unknown.
func (qn *Questionnaire) Option(questionID, value string) (Option, bool) {
	i, ok := qn.byID[questionID]
	if !ok {
		return Option{}, false
	}
	return qn.questions[i].Option(value)
}

// Missing returns the IDs of questions with no entry in answers, in
// presentation order.
func (qn *Questionnaire) Missing(answers map[string]string) []string {
	var missing []string
	for _, q := range qn.questions {
		if _, ok := answers[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// CheckAnswers reports every answer that does not resolve to an option.
// Scoring never calls it; it backs strict input modes only.
func (qn *Questionnaire) CheckAnswers(answers map[string]string) error {
	var errs []error
	for _, q := range qn.questions {
		v, ok := answers[q.ID]
		if ok && q.OptionIndex(v) < 0 {
			errs = append(errs, fmt.Errorf("question %q has no option %q (want one of %v)", q.ID, v, q.Values()))
		}
	}
	var unknown []string
	for id := range answers {
		if _, ok := qn.byID[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	slices.Sort(unknown)
	for _, id := range unknown {
		errs = append(errs, fmt.Errorf("unknown question %q", id))
	}
	return errors.Join(errs...)
}

// Validate re-checks the questionnaire's structure.
func (qn *Questionnaire) Validate() error {
	return validateQuestions(qn.questions)
}

func cloneQuestion(q Question) Question {
	q.Options = slices.Clone(q.Options)
	return q
}
