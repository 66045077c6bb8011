package mcpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abhisek/aipath/internal/careers"
	"github.com/abhisek/aipath/internal/store"
)

const defaultHistoryLimit = 10

// RecentAssessmentsTool handles the recent_assessments MCP tool.
type RecentAssessmentsTool struct {
	repo store.EventRepo
}

// NewRecentAssessmentsTool creates a RecentAssessmentsTool.
func NewRecentAssessmentsTool(repo store.EventRepo) *RecentAssessmentsTool {
	return &RecentAssessmentsTool{repo: repo}
}

// HistoryEntry is one past result returned by recent_assessments.
type HistoryEntry struct {
	ID        string         `json:"id"`
	Career    string         `json:"career"`
	Title     string         `json:"title"`
	Scores    map[string]int `json:"scores"`
	Answered  int            `json:"questions_answered"`
	Timestamp time.Time      `json:"timestamp"`
}

// Definition returns the MCP tool definition for recent_assessments.
func (t *RecentAssessmentsTool) Definition() mcp.Tool {
	return mcp.NewTool("recent_assessments",
		mcp.WithDescription("List the most recent assessment results on this machine, newest first."),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum results (default %d)", defaultHistoryLimit)),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle processes the recent_assessments tool call.
func (t *RecentAssessmentsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := defaultHistoryLimit
	if v, ok := req.GetArguments()["limit"].(float64); ok && v > 0 {
		limit = int(v)
	}

	records, err := t.repo.QueryAssessments(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to query history: %v", err)), nil
	}

	entries := make([]HistoryEntry, 0, len(records))
	for _, r := range records {
		title := r.Career
		if id, err := careers.Parse(r.Career); err == nil {
			title = careers.DisplayName(id)
		}
		entries = append(entries, HistoryEntry{
			ID:        r.AssessmentID,
			Career:    r.Career,
			Title:     title,
			Scores:    r.Scores,
			Answered:  r.QuestionsAnswered,
			Timestamp: r.Timestamp,
		})
	}
	return jsonResult(entries)
}
