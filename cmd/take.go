package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/aipath/internal/questionnaire"
	"github.com/abhisek/aipath/internal/report"
	"github.com/abhisek/aipath/internal/scoring"
	"github.com/abhisek/aipath/internal/store"
)

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Score an assessment from the command line",
	Long: "Score answers given as question=value pairs without starting the TUI.\n" +
		"Run 'aipath questions' to see the question ids and option values.",
	Example: "  aipath take -a interests=research -a programming=expert -a thinking=theoretical -a curiosity=understand\n" +
		"  aipath take -a interests=data --format json",
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, _ := cmd.Flags().GetStringArray("answer")
		strict, _ := cmd.Flags().GetBool("strict")
		formatName, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		save, _ := cmd.Flags().GetBool("save")

		answers, err := parseAnswers(pairs)
		if err != nil {
			return err
		}

		var format report.Format
		if formatName == "" && output != "" {
			format = report.FormatFromPath(output)
		} else if format, err = report.ParseFormat(formatName); err != nil {
			return err
		}

		engine := scoring.NewEngine(nil)
		res, answered, err := take(engine, answers, strict, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		var record func() error
		if save {
			record = func() error { return recordTake(cmd, res, answered) }
		}
		return deliver(cmd.OutOrStdout(), output, format, report.Build(res, time.Now()), record)
	},
}

// deliver writes rep to output, or to stdout when output is empty. The
// output file is created before record runs so a bad path never leaves a
// history entry behind.
func deliver(stdout io.Writer, output string, format report.Format, rep report.Report, record func() error) error {
	w := stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if record != nil {
		if err := record(); err != nil {
			return err
		}
	}
	return report.Write(w, format, rep)
}

func init() {
	takeCmd.Flags().StringArrayP("answer", "a", nil, "Answer as question=value (repeatable)")
	takeCmd.Flags().Bool("strict", false, "Reject unknown question ids and option values")
	takeCmd.Flags().StringP("format", "f", "", "Output format: "+formatNames()+" (default text, or inferred from --output)")
	takeCmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	takeCmd.Flags().Bool("save", false, "Record the result in history")
}

func formatNames() string {
	names := make([]string, 0, len(report.Formats()))
	for _, f := range report.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// parseAnswers turns question=value pairs into an AnswerSet. A later pair
// for the same question wins.
func parseAnswers(pairs []string) (scoring.AnswerSet, error) {
	answers := make(scoring.AnswerSet, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid answer %q: want question=value", p)
		}
		answers[k] = v
	}
	return answers, nil
}

// take scores answers and returns how many of them resolved to an option.
// Unanswered questions and ignored pairs are reported on warn. In strict
// mode unknown ids or values are an error instead of being ignored.
func take(engine *scoring.Engine, answers scoring.AnswerSet, strict bool, warn io.Writer) (scoring.Result, int, error) {
	qn := engine.Questionnaire()
	if strict {
		if err := qn.CheckAnswers(answers); err != nil {
			return scoring.Result{}, 0, err
		}
	}
	if missing := qn.Missing(answers); len(missing) > 0 {
		fmt.Fprintf(warn, "warning: unanswered questions: %s\n", strings.Join(missing, ", "))
	}
	answered, ignored := resolveAnswers(qn, answers)
	if len(ignored) > 0 {
		fmt.Fprintf(warn, "warning: ignored answers: %s\n", strings.Join(ignored, ", "))
	}
	res := engine.Score(answers)
	logger.Debug("assessment scored",
		zap.String("career", res.Career.String()),
		zap.Int("answered", answered),
		zap.Int("ignored", len(ignored)),
		zap.Bool("strict", strict))
	return res, answered, nil
}

// resolveAnswers counts the pairs that name a real option and lists the
// rest as sorted question=value strings.
func resolveAnswers(qn *questionnaire.Questionnaire, answers scoring.AnswerSet) (int, []string) {
	answered := 0
	var ignored []string
	for qid, v := range answers {
		if _, ok := qn.Option(qid, v); ok {
			answered++
			continue
		}
		ignored = append(ignored, qid+"="+v)
	}
	slices.Sort(ignored)
	return answered, ignored
}

func recordTake(cmd *cobra.Command, res scoring.Result, answered int) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	id := uuid.NewString()
	err = st.EventRepo().AppendAssessment(context.Background(), store.AssessmentEventData{
		AssessmentID:      id,
		Career:            res.Career.String(),
		Scores:            res.Scores.Map(),
		QuestionsAnswered: answered,
	})
	if err != nil {
		return fmt.Errorf("record assessment: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "saved as %s\n", id)
	return nil
}
