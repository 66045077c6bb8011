package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/aipath/internal/selfupdate"
)

const updateTimeout = 2 * time.Minute

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update aipath to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		checkOnly, _ := cmd.Flags().GetBool("check")
		target, _ := cmd.Flags().GetString("version")

		ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
		defer cancel()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(updateTimeout))
		out := cmd.OutOrStdout()
		if checkOnly {
			return runUpdateCheck(ctx, out, checker)
		}

		plan, err := checker.Update(ctx, &selfupdate.UpdateInput{
			CurrentVersion: version,
			TargetVersion:  target,
		}, func(p selfupdate.Progress) {
			fmt.Fprintln(out, p.Message)
		})
		switch {
		case err == nil:
			logger.Info("updated", zap.String("from", version), zap.String("to", plan.Version))
			fmt.Fprintf(out, "Updated aipath %s -> %s\n", version, plan.Version)
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Fprintln(out, "This is a development build; install a release first.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Fprintf(out, "aipath %s is the latest release.\n", version)
			return nil
		case errors.Is(err, fs.ErrPermission):
			return fmt.Errorf("%w\n\nTry running: sudo aipath update", err)
		}
		logger.Warn("update failed", zap.Error(err))
		return err
	},
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only report whether a newer release exists")
	updateCmd.Flags().String("version", "", "Install this release instead of the latest (e.g. v1.2.0)")
}

func runUpdateCheck(ctx context.Context, w io.Writer, checker *selfupdate.Checker) error {
	res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}
	if !res.UpdateAvailable {
		fmt.Fprintf(w, "aipath %s is up to date (latest %s).\n", version, res.LatestVersion)
		return nil
	}
	fmt.Fprintf(w, "aipath %s is available (running %s).\n%s\nRun `aipath update` to install it.\n",
		res.LatestVersion, version, res.ReleaseURL)
	return nil
}
