// Package mcpserver exposes the career assessment over the Model Context
// Protocol so assistants can list the questions, score answers and look up
// career profiles.
package mcpserver

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/abhisek/aipath/internal/scoring"
	"github.com/abhisek/aipath/internal/store"
)

// Deps are the collaborators the server's tools need.
type Deps struct {
	Engine  *scoring.Engine
	Repo    store.EventRepo // optional; enables recent_assessments
	Log     *zap.Logger
	Version string
}

// New creates the MCP server with every tool registered.
func New(deps Deps) *server.MCPServer {
	if deps.Engine == nil {
		deps.Engine = scoring.NewEngine(nil)
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}

	s := server.NewMCPServer(
		"aipath",
		deps.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(logCalls(deps.Log)),
		server.WithInstructions(instructions),
	)

	listTool := NewListQuestionsTool(deps.Engine)
	s.AddTool(listTool.Definition(), listTool.Handle)

	scoreTool := NewScoreAssessmentTool(deps.Engine)
	s.AddTool(scoreTool.Definition(), scoreTool.Handle)

	careerTool := NewDescribeCareerTool()
	s.AddTool(careerTool.Definition(), careerTool.Handle)

	if deps.Repo != nil {
		historyTool := NewRecentAssessmentsTool(deps.Repo)
		s.AddTool(historyTool.Definition(), historyTool.Handle)
	}

	return s
}

// Serve runs s over stdin/stdout until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

const instructions = `aipath recommends one of four AI careers from a short questionnaire.
Call list_questions to see the questions and accepted option values, ask the user each question,
then call score_assessment with their answers. describe_career explains any career id.`

// logCalls records every tool call with its duration.
func logCalls(log *zap.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			res, err := next(ctx, req)
			fields := []zap.Field{
				zap.String("tool", req.Params.Name),
				zap.Duration("elapsed", time.Since(start)),
			}
			switch {
			case err != nil:
				log.Warn("tool call failed", append(fields, zap.Error(err))...)
			case res != nil && res.IsError:
				log.Info("tool call returned error", fields...)
			default:
				log.Debug("tool call", fields...)
			}
			return res, err
		}
	}
}
