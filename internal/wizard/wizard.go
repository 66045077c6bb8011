// Package wizard sequences a questionnaire one question at a time.
//
// State is a value type: every transition returns a new State and leaves the
// receiver untouched, so screens can hold it by value and reassign.
package wizard

import (
	"github.com/abhisek/aipath/internal/questionnaire"
	"github.com/abhisek/aipath/internal/scoring"
)

// State is the position within a questionnaire plus the answers so far.
type State struct {
	qn      *questionnaire.Questionnaire
	index   int
	answers scoring.AnswerSet
}

// New starts a fresh assessment at the first question.
func New(qn *questionnaire.Questionnaire) State {
	if qn == nil {
		qn = questionnaire.Default()
	}
	return State{qn: qn, answers: scoring.AnswerSet{}}
}

// Index returns the zero-based position of the current question.
func (s State) Index() int { return s.index }

// Total returns the number of questions.
func (s State) Total() int { return s.qn.Len() }

// Current returns the question being shown.
func (s State) Current() questionnaire.Question {
	return s.qn.At(s.index)
}

// IsFirst reports whether the current question is the first one.
func (s State) IsFirst() bool { return s.index == 0 }

// IsLast reports whether the current question is the last one.
func (s State) IsLast() bool { return s.index == s.qn.Len()-1 }

// Selected returns the answer recorded for the current question.
func (s State) Selected() (string, bool) {
	v, ok := s.answers[s.Current().ID]
	return v, ok
}

// Select records value as the answer to the current question, replacing
// any earlier choice. Values outside the current question are rejected and
// the state is returned unchanged.
func (s State) Select(value string) (State, bool) {
	q := s.Current()
	if q.OptionIndex(value) < 0 {
		return s, false
	}
	next := s
	next.answers = s.answers.Clone()
	next.answers[q.ID] = value
	return next, true
}

// CanProceed reports whether the current question has been answered.
func (s State) CanProceed() bool {
	_, ok := s.Selected()
	return ok
}

// Next advances to the following question. On the last question it
// reports done=true instead of moving. Without an answer for the current
// question the state does not change.
func (s State) Next() (next State, done bool) {
	if !s.CanProceed() {
		return s, false
	}
	if s.IsLast() {
		return s, true
	}
	next = s
	next.index++
	return next, false
}

// Prev moves back one question. It is a no-op on the first question.
func (s State) Prev() State {
	if s.IsFirst() {
		return s
	}
	next := s
	next.index--
	return next
}

// Progress returns (index+1)/total as a fraction in (0, 1].
func (s State) Progress() float64 {
	if s.qn.Len() == 0 {
		return 0
	}
	return float64(s.index+1) / float64(s.qn.Len())
}

// ProgressPercent returns Progress scaled to a whole percentage.
func (s State) ProgressPercent() int {
	return int(s.Progress()*100 + 0.5)
}

// Answered returns how many questions have an answer.
func (s State) Answered() int {
	return len(s.answers)
}

// Answers returns a copy of the answers collected so far.
func (s State) Answers() scoring.AnswerSet {
	return s.answers.Clone()
}
