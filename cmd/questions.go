package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aipath/internal/careers"
	"github.com/abhisek/aipath/internal/questionnaire"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the assessment questions and option values",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		weights, _ := cmd.Flags().GetBool("weights")

		qn := questionnaire.Default()
		if asJSON {
			return writeQuestionsJSON(cmd.OutOrStdout(), qn, weights)
		}
		printQuestions(cmd.OutOrStdout(), qn, weights)
		return nil
	},
}

func init() {
	questionsCmd.Flags().Bool("json", false, "Print as JSON")
	questionsCmd.Flags().Bool("weights", false, "Show each option's points per career")
}

type jsonOption struct {
	Value   string         `json:"value"`
	Label   string         `json:"label"`
	Weights map[string]int `json:"weights,omitempty"`
}

type jsonQuestion struct {
	ID      string       `json:"id"`
	Prompt  string       `json:"prompt"`
	Options []jsonOption `json:"options"`
}

// writeQuestionsJSON encodes the questionnaire, adding each option's
// per-career points keyed by career id when weights is set.
func writeQuestionsJSON(w io.Writer, qn *questionnaire.Questionnaire, weights bool) error {
	out := make([]jsonQuestion, 0, qn.Len())
	for _, q := range qn.Questions() {
		jq := jsonQuestion{ID: q.ID, Prompt: q.Prompt, Options: make([]jsonOption, 0, len(q.Options))}
		for _, o := range q.Options {
			jo := jsonOption{Value: o.Value, Label: o.Label}
			if weights {
				jo.Weights = make(map[string]int, careers.Count)
				for _, id := range careers.All() {
					jo.Weights[id.String()] = o.Weights.For(id)
				}
			}
			jq.Options = append(jq.Options, jo)
		}
		out = append(out, jq)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printQuestions(w io.Writer, qn *questionnaire.Questionnaire, weights bool) {
	for i, q := range qn.Questions() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%d. %s  [%s]\n", i+1, q.Prompt, q.ID)
		for _, o := range q.Options {
			fmt.Fprintf(w, "   %-14s %s\n", o.Value, o.Label)
			if weights {
				var parts []string
				for _, id := range careers.All() {
					parts = append(parts, fmt.Sprintf("%s %d", id, o.Weights.For(id)))
				}
				fmt.Fprintf(w, "   %-14s (%s)\n", "", strings.Join(parts, ", "))
			}
		}
	}
}
