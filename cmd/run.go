package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/aipath/internal/app"
	"github.com/abhisek/aipath/internal/coach"
	"github.com/abhisek/aipath/internal/llm"
	"github.com/abhisek/aipath/internal/scoring"
	"github.com/abhisek/aipath/internal/selfupdate"
	"github.com/abhisek/aipath/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	skip, _ := cmd.Flags().GetBool("no-splash")
	opts := app.Options{
		Engine:      scoring.NewEngine(nil),
		Repo:        eventRepo,
		Log:         logger,
		SkipWelcome: skip,
		CheckUpdate: checkUpdate,
	}
	opts.Coach = buildCoach(cmd.Context(), eventRepo)

	return app.Run(opts)
}

// buildCoach returns nil when no LLM provider is configured; the app
// works without it.
func buildCoach(ctx context.Context, eventRepo store.EventRepo) *coach.Service {
	if !cfg.CoachEnabled() {
		logger.Info("no LLM provider configured, AI coach disabled")
		return nil
	}
	provider, err := llm.NewProvider(ctx, cfg.LLM, eventRepo, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI coaching will be unavailable.")
		logger.Warn("LLM provider init failed", zap.Error(err))
		return nil
	}
	logger.Info("AI coach enabled",
		zap.String("provider", cfg.LLM.Provider), zap.String("model", provider.ModelID()))
	return coach.NewService(provider, cfg.Coach)
}

// checkUpdate reports a newer release version, or "" when up to date.
func checkUpdate(ctx context.Context) (string, error) {
	if version == devVersion {
		return "", nil
	}
	res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil {
		return "", err
	}
	if !res.UpdateAvailable {
		return "", nil
	}
	return res.LatestVersion, nil
}
