package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var assessmentColumns = []string{
	"id", "sequence", "timestamp", "assessment_id", "career", "scores",
	"questions_answered", "duration_ms",
}

func (r *eventRepo) AppendAssessment(ctx context.Context, data AssessmentEventData) error {
	if data.AssessmentID == "" {
		return fmt.Errorf("append assessment: empty assessment ID")
	}
	scores, err := json.Marshal(data.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	err = r.insert(ctx, assessmentTable,
		[]string{"assessment_id", "career", "scores", "questions_answered", "duration_ms"},
		[]any{data.AssessmentID, data.Career, string(scores), data.QuestionsAnswered, data.DurationMs},
	)
	if err != nil {
		return fmt.Errorf("save assessment event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAssessments(ctx context.Context, opts QueryOpts) ([]AssessmentRecord, error) {
	query, args := selectEvents(assessmentTable, assessmentColumns, opts).Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var out []AssessmentRecord
	for rows.Next() {
		rec, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetAssessment(ctx context.Context, idOrPrefix string) (*AssessmentRecord, error) {
	if idOrPrefix == "" {
		return nil, nil
	}
	query, args := sqlite().Select(assessmentColumns...).
		From(sqlite().Table(assessmentTable)).
		Where(entsql.HasPrefix("assessment_id", idOrPrefix)).
		OrderBy(entsql.Desc("sequence")).
		Limit(2).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessment: %w", err)
	}
	defer rows.Close()

	var found []AssessmentRecord
	for rows.Next() {
		rec, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch {
	case len(found) == 0:
		return nil, nil
	case len(found) > 1 && found[0].AssessmentID != idOrPrefix:
		return nil, fmt.Errorf("assessment ID prefix %q is ambiguous", idOrPrefix)
	}
	return &found[0], nil
}

func (r *eventRepo) CareerCounts(ctx context.Context) ([]CareerCount, error) {
	query, args := sqlite().Select("career", entsql.As(entsql.Count("*"), "n")).
		From(sqlite().Table(assessmentTable)).
		GroupBy("career").
		OrderBy(entsql.Desc("n"), "career").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query career counts: %w", err)
	}
	defer rows.Close()

	var out []CareerCount
	for rows.Next() {
		var c CareerCount
		if err := rows.Scan(&c.Career, &c.Count); err != nil {
			return nil, fmt.Errorf("scan career count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanAssessment(rows *sql.Rows) (AssessmentRecord, error) {
	var (
		rec    AssessmentRecord
		ts     string
		scores string
	)
	err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.AssessmentID, &rec.Career,
		&scores, &rec.QuestionsAnswered, &rec.DurationMs)
	if err != nil {
		return rec, fmt.Errorf("scan assessment: %w", err)
	}
	if rec.Timestamp, err = parseTime(ts); err != nil {
		return rec, err
	}
	if err := json.Unmarshal([]byte(scores), &rec.Scores); err != nil {
		return rec, fmt.Errorf("decode scores for %s: %w", rec.AssessmentID, err)
	}
	return rec, nil
}
