package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/aipath/internal/mcpserver"
	"github.com/abhisek/aipath/internal/scoring"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the assessment over MCP (stdio)",
	Long: "Run a Model Context Protocol server on stdin/stdout exposing the tools\n" +
		"list_questions, score_assessment, describe_career and recent_assessments.\n" +
		"Logs go to the log file, never to stdout.",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps := mcpserver.Deps{
			Engine:  scoring.NewEngine(nil),
			Log:     logger,
			Version: version,
		}
		// Without a store the history tool is simply not offered.
		if st, err := openStore(cmd); err != nil {
			logger.Warn("history unavailable", zap.Error(err))
		} else {
			defer st.Close()
			deps.Repo = st.EventRepo()
		}

		s := mcpserver.New(deps)
		logger.Info("mcp server starting", zap.String("version", version))
		return mcpserver.Serve(s)
	},
}
