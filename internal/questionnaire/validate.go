package questionnaire

import (
	"fmt"
	"strings"

	"github.com/abhisek/aipath/internal/careers"
)

// validateQuestions performs all structural checks on a question set.
// Returns a combined error describing all problems found, or nil if valid.
func validateQuestions(questions []Question) error {
	var errs []string

	if len(questions) == 0 {
		errs = append(errs, "no questions")
	}

	ids := make(map[string]bool, len(questions))
	for qi, q := range questions {
		if q.ID == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty ID", qi))
		} else if ids[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		ids[q.ID] = true

		if strings.TrimSpace(q.Prompt) == "" {
			errs = append(errs, fmt.Sprintf("question %q: empty prompt", q.ID))
		}
		if len(q.Options) == 0 {
			errs = append(errs, fmt.Sprintf("question %q: no options", q.ID))
		}

		values := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			prefix := fmt.Sprintf("question %q option %q", q.ID, o.Value)
			if o.Value == "" {
				errs = append(errs, fmt.Sprintf("question %q: option with empty value", q.ID))
			} else if values[o.Value] {
				errs = append(errs, fmt.Sprintf("%s: duplicate value", prefix))
			}
			values[o.Value] = true

			if strings.TrimSpace(o.Label) == "" {
				errs = append(errs, fmt.Sprintf("%s: empty label", prefix))
			}
			for _, c := range careers.All() {
				if w := o.Weights.For(c); w < 0 || w > MaxWeight {
					errs = append(errs, fmt.Sprintf("%s: weight for %s must be in [0, %d], got %d", prefix, c, MaxWeight, w))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("questionnaire validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// ValidateShape checks that qn has exactly n questions with exactly m
// options each.
func ValidateShape(qn *Questionnaire, n, m int) error {
	var errs []string
	if qn.Len() != n {
		errs = append(errs, fmt.Sprintf("expected %d questions, got %d", n, qn.Len()))
	}
	for _, q := range qn.questions {
		if len(q.Options) != m {
			errs = append(errs, fmt.Sprintf("question %q: expected %d options, got %d", q.ID, m, len(q.Options)))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("questionnaire shape invalid:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
