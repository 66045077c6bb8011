package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abhisek/aipath/internal/careers"
	"github.com/abhisek/aipath/internal/report"
	"github.com/abhisek/aipath/internal/scoring"
)

// ListQuestionsTool handles the list_questions MCP tool.
type ListQuestionsTool struct {
	engine *scoring.Engine
}

// NewListQuestionsTool creates a ListQuestionsTool.
func NewListQuestionsTool(engine *scoring.Engine) *ListQuestionsTool {
	return &ListQuestionsTool{engine: engine}
}

// Definition returns the MCP tool definition for list_questions.
func (t *ListQuestionsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_questions",
		mcp.WithDescription(
			"List the AI career assessment questions in order, with the option values "+
				"accepted by score_assessment.",
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the list_questions tool call.
func (t *ListQuestionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(t.engine.Questionnaire().Questions())
}

// ScoreAssessmentTool handles the score_assessment MCP tool.
type ScoreAssessmentTool struct {
	engine *scoring.Engine
	now    func() time.Time
}

// NewScoreAssessmentTool creates a ScoreAssessmentTool.
func NewScoreAssessmentTool(engine *scoring.Engine) *ScoreAssessmentTool {
	return &ScoreAssessmentTool{engine: engine, now: time.Now}
}

// ScoreResponse is the payload returned by score_assessment.
type ScoreResponse struct {
	report.Report
	Unanswered []string `json:"unanswered,omitempty"`
}

// Definition returns the MCP tool definition for score_assessment. Every
// question becomes an optional string parameter restricted to its values.
func (t *ScoreAssessmentTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Score a set of answers and return the recommended AI career with the full " +
				"score sheet. Unanswered questions contribute nothing.",
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	}
	for _, q := range t.engine.Questionnaire().Questions() {
		opts = append(opts, mcp.WithString(q.ID,
			mcp.Description(q.Prompt),
			mcp.Enum(q.Values()...),
		))
	}
	return mcp.NewTool("score_assessment", opts...)
}

// Handle processes the score_assessment tool call.
func (t *ScoreAssessmentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	answers := scoring.AnswerSet{}
	for _, q := range t.engine.Questionnaire().Questions() {
		if v := req.GetString(q.ID, ""); v != "" {
			answers[q.ID] = v
		}
	}

	res := t.engine.Score(answers)
	return jsonResult(ScoreResponse{
		Report:     report.Build(res, t.now()),
		Unanswered: t.engine.Questionnaire().Missing(answers),
	})
}

// DescribeCareerTool handles the describe_career MCP tool.
type DescribeCareerTool struct{}

// NewDescribeCareerTool creates a DescribeCareerTool.
func NewDescribeCareerTool() *DescribeCareerTool {
	return &DescribeCareerTool{}
}

// CareerResponse is the payload returned by describe_career.
type CareerResponse struct {
	ID careers.ID `json:"id"`
	careers.Profile
}

// Definition returns the MCP tool definition for describe_career.
func (t *DescribeCareerTool) Definition() mcp.Tool {
	ids := make([]string, 0, careers.Count)
	for _, id := range careers.All() {
		ids = append(ids, id.String())
	}
	return mcp.NewTool("describe_career",
		mcp.WithDescription("Describe one AI career path: summary, key skills and next steps."),
		mcp.WithString("career",
			mcp.Required(),
			mcp.Description("Career id"),
			mcp.Enum(ids...),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the describe_career tool call.
func (t *DescribeCareerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("career", "")
	if raw == "" {
		return mcp.NewToolResultError("'career' is required"), nil
	}
	id, err := careers.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(CareerResponse{ID: id, Profile: careers.Lookup(id)})
}

// jsonResult renders v as indented JSON text with v as structured content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultStructured(v, string(b)), nil
}
