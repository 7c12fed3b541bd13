package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minhvu/quizdeck/internal/api"
	"github.com/minhvu/quizdeck/internal/history"
	sess "github.com/minhvu/quizdeck/internal/session"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List your completed tests, grouped by question set",
	RunE: func(cmd *cobra.Command, args []string) error {
		gate, err := resolveGate(cmd)
		if err != nil {
			return fmt.Errorf("load credentials: %w", err)
		}

		agg := history.NewAggregator(api.New(resolveServerURL(cmd)), gate)
		records, err := agg.Fetch(cmd.Context())
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No completed tests.")
			return nil
		}

		for _, g := range history.GroupBySetName(records) {
			fmt.Println(g.SetName)
			for _, r := range g.Records {
				fmt.Printf("  %s  %d/%d in %s\n",
					r.CompletedAt.Format("2006-01-02 15:04"),
					r.SumCorrect, r.TotalQuestions,
					sess.FormatElapsed(r.TimeSpent))
			}
		}
		return nil
	},
}
