package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aipath/internal/careers"
	"github.com/abhisek/aipath/internal/report"
	"github.com/abhisek/aipath/internal/scoring"
	"github.com/abhisek/aipath/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past assessment results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		records, err := s.EventRepo().QueryAssessments(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query assessments: %w", err)
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No assessments yet.")
			return nil
		}
		printHistory(cmd.OutOrStdout(), records)

		counts, err := s.EventRepo().CareerCounts(ctx)
		if err != nil {
			return fmt.Errorf("query career counts: %w", err)
		}
		printCareerCounts(cmd.OutOrStdout(), counts)
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a past result as a report",
	Long:  "Export a past result. <id> may be any unique prefix of the assessment ID.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		formatName, _ := cmd.Flags().GetString("format")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := s.EventRepo().GetAssessment(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("get assessment: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("assessment %q not found", args[0])
		}

		res, err := resultFromRecord(*rec)
		if err != nil {
			return err
		}

		format := report.FormatMarkdown
		switch {
		case formatName != "":
			if format, err = report.ParseFormat(formatName); err != nil {
				return err
			}
		case output != "":
			format = report.FormatFromPath(output)
		}

		var w io.Writer = cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			w = f
		}
		return report.Write(w, format, report.Build(res, rec.Timestamp))
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of assessments to show")
	historyExportCmd.Flags().StringP("output", "o", "", "Write to a file (format inferred from the extension)")
	historyExportCmd.Flags().StringP("format", "f", "", "Output format: "+formatNames())

	historyCmd.AddCommand(historyExportCmd)
}

func printHistory(w io.Writer, records []store.AssessmentRecord) {
	fmt.Fprintf(w, "%-8s  %-16s  %-16s  %5s  %8s\n", "ID", "Date", "Career", "Score", "Answered")
	fmt.Fprintln(w, strings.Repeat("─", 62))
	for _, r := range records {
		id := r.AssessmentID
		if len(id) > 8 {
			id = id[:8]
		}
		name := r.Career
		if c, err := careers.Parse(r.Career); err == nil {
			name = careers.DisplayName(c)
		}
		fmt.Fprintf(w, "%-8s  %-16s  %-16s  %5d  %8d\n",
			id, r.Timestamp.Local().Format("2006-01-02 15:04"), name, r.Scores[r.Career], r.QuestionsAnswered)
	}
}

func printCareerCounts(w io.Writer, counts []store.CareerCount) {
	if len(counts) == 0 {
		return
	}
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("%s %d", c.Career, c.Count))
	}
	fmt.Fprintf(w, "\nAll time: %s\n", strings.Join(parts, ", "))
}

// resultFromRecord rebuilds a scoring.Result from a stored assessment.
func resultFromRecord(rec store.AssessmentRecord) (scoring.Result, error) {
	id, err := careers.Parse(rec.Career)
	if err != nil {
		return scoring.Result{}, fmt.Errorf("stored assessment %s: %w", rec.AssessmentID, err)
	}
	sheet, err := scoring.SheetFromMap(rec.Scores)
	if err != nil {
		return scoring.Result{}, fmt.Errorf("stored assessment %s: %w", rec.AssessmentID, err)
	}
	return scoring.Result{Career: id, Profile: careers.Lookup(id), Scores: sheet}, nil
}
