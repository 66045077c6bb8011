package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// AssessmentEventData captures the outcome of one completed assessment.
// Only the result is kept; the answers themselves are never persisted.
type AssessmentEventData struct {
	AssessmentID      string
	Career            string
	Scores            map[string]int
	QuestionsAnswered int
	DurationMs        int64
}

// AssessmentRecord is a stored assessment event.
type AssessmentRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AssessmentEventData
}

// CareerCount is the number of assessments that recommended a career.
type CareerCount struct {
	Career string
	Count  int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMModelUsage aggregates calls to one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAssessment records a completed assessment.
	AppendAssessment(ctx context.Context, data AssessmentEventData) error

	// QueryAssessments returns assessments, newest first.
	QueryAssessments(ctx context.Context, opts QueryOpts) ([]AssessmentRecord, error)

	// GetAssessment looks up an assessment by its ID or a unique ID prefix.
	// Returns nil when nothing matches.
	GetAssessment(ctx context.Context, idOrPrefix string) (*AssessmentRecord, error)

	// CareerCounts returns how often each career was recommended.
	CareerCounts(ctx context.Context) ([]CareerCount, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns the LLM events logged for purpose, newest first.
	QueryLLMEvents(ctx context.Context, purpose string, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single LLM event, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByModel aggregates the calls logged for purpose per model.
	LLMUsageByModel(ctx context.Context, purpose string) ([]LLMModelUsage, error)
}
