package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aipath/internal/careers"
)

var careersCmd = &cobra.Command{
	Use:   "careers [id]",
	Short: "Describe the AI careers AI Path can recommend",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := careers.All()
		if len(args) == 1 {
			id, err := careers.Parse(args[0])
			if err != nil {
				return err
			}
			ids = []careers.ID{id}
		}
		printCareers(cmd.OutOrStdout(), ids)
		return nil
	},
}

func printCareers(w io.Writer, ids []careers.ID) {
	sep := strings.Repeat("─", 60)
	for i, id := range ids {
		if i > 0 {
			fmt.Fprintln(w)
		}
		p := careers.Lookup(id)
		fmt.Fprintf(w, "%s  (%s)\n%s\n%s\n", p.Title, id, sep, p.Description)

		fmt.Fprintln(w, "\nKey skills:")
		for n, s := range p.Skills {
			fmt.Fprintf(w, "  %d. %s\n", n+1, s)
		}
		fmt.Fprintln(w, "\nNext steps:")
		for n, s := range p.NextSteps {
			fmt.Fprintf(w, "  %d. %s\n", n+1, s)
		}
	}
}
