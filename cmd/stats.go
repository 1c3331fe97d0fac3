package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/analytics"
)

var statsTopStates int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Batch statistics over the full record set",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initCore()
		if err != nil {
			return err
		}
		defer env.Close()

		s := analytics.Compute(env.Records)

		p := message.NewPrinter(language.English)
		p.Printf("records:             %d\n", s.TotalRecords)
		p.Printf("total amount:        $%.2f\n", s.TotalAmount)
		p.Printf("average amount:      $%.2f\n", s.AverageAmount)
		p.Printf("unique contributors: %d\n", s.UniqueContributors)
		p.Printf("risk buckets:        high=%d medium=%d low=%d\n", s.Risk.High, s.Risk.Medium, s.Risk.Low)

		p.Printf("\nmonthly trend (%.1f%% change over last two months):\n", s.TrendChangePct)
		for _, m := range s.MonthlyTrend {
			p.Printf("  %s  %6d contributions  $%.2f\n", m.Month, m.Count, m.Amount)
		}

		p.Printf("\ntop states:\n")
		states := s.ByState
		if statsTopStates > 0 && len(states) > statsTopStates {
			states = states[:statsTopStates]
		}
		for _, st := range states {
			p.Printf("  %-2s  %6d contributions  $%.2f\n", st.State, st.Count, st.Amount)
		}

		p.Printf("\ntop contributions:\n")
		for _, r := range s.TopContributions {
			p.Printf("  %-30s %-2s  %-8s  $%.2f\n", r.Name, r.State, r.Date, r.Amount)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsTopStates, "top-states", 10, "how many states to print")
	rootCmd.AddCommand(statsCmd)
}
