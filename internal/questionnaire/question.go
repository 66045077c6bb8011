package questionnaire

import "github.com/abhisek/aipath/internal/careers"

// MaxWeight is the largest weight an option may give a single career.
const MaxWeight = 3

// Weights holds an option's contribution to every career, indexed by
// careers.ID. The fixed size guarantees all four careers are covered.
type Weights [careers.Count]int

// For returns the weight given to career id.
func (w Weights) For(id careers.ID) int {
	if !id.Valid() {
		return 0
	}
	return w[id]
}

// Option is one selectable answer to a question.
type Option struct {
	Value   string  `json:"value" yaml:"value"`
	Label   string  `json:"label" yaml:"label"`
	Weights Weights `json:"-" yaml:"-"`
}

// Question is a single assessment prompt with its ordered options.
type Question struct {
	ID      string   `json:"id" yaml:"id"`
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Options []Option `json:"options" yaml:"options"`
}

// Option returns the option with the given value.
func (q Question) Option(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// OptionIndex returns the position of value among the question's options,
// or -1 when the value does not belong to this question.
func (q Question) OptionIndex(value string) int {
	for i, o := range q.Options {
		if o.Value == value {
			return i
		}
	}
	return -1
}

// Values returns the option values in display order.
func (q Question) Values() []string {
	out := make([]string, len(q.Options))
	for i, o := range q.Options {
		out[i] = o.Value
	}
	return out
}
