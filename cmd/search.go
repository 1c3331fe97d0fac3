package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/export"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/model"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/search"
)

var (
	searchFuzzy     bool
	searchCity      string
	searchState     string
	searchMinAmount string
	searchMaxAmount string
	searchStartDate string
	searchEndDate   string
	searchLimit     int
	searchOffset    int
	searchOut       string
)

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search contribution records by contributor name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initCore()
		if err != nil {
			return err
		}
		defer env.Close()

		f, err := buildFilter(searchCity, searchState, searchMinAmount, searchMaxAmount, searchStartDate, searchEndDate)
		if err != nil {
			return err
		}

		mode := model.SearchModeExact
		if searchFuzzy {
			mode = model.SearchModeFuzzy
		}

		limit := searchLimit
		if searchOut != "" {
			limit = 0 // exports carry the full match set, not a page
		}

		result, err := env.Searcher.Search(search.Query{
			Name:   strings.Join(args, " "),
			Mode:   mode,
			Filter: f,
			Limit:  limit,
			Offset: searchOffset,
		})
		if err != nil {
			return err
		}

		if searchOut != "" {
			return writeExport(searchOut, result.Records)
		}

		p := message.NewPrinter(language.English)
		p.Printf("%d matching contributions\n", result.Total)
		for _, r := range result.Records {
			p.Printf("  %-30s %-18s %-2s  %-8s  $%.2f\n", r.Name, r.City, r.State, r.Date, r.Amount)
		}
		return nil
	},
}

// writeExport picks the format from the file extension: .xlsx gets a
// worksheet, everything else gets CSV.
func writeExport(path string, records []*model.Record) error {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return export.WriteXLSX(path, records)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.WriteCSV(f, records)
}

func init() {
	searchCmd.Flags().BoolVar(&searchFuzzy, "fuzzy", false, "per-token approximate matching instead of exact substring")
	searchCmd.Flags().StringVar(&searchCity, "city", "", "filter: city substring")
	searchCmd.Flags().StringVar(&searchState, "state", "", "filter: exact state code")
	searchCmd.Flags().StringVar(&searchMinAmount, "min-amount", "", "filter: minimum amount (inclusive)")
	searchCmd.Flags().StringVar(&searchMaxAmount, "max-amount", "", "filter: maximum amount (inclusive)")
	searchCmd.Flags().StringVar(&searchStartDate, "start-date", "", "filter: start date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchEndDate, "end-date", "", "filter: end date (YYYY-MM-DD)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 50, "max records to print")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "records to skip")
	searchCmd.Flags().StringVar(&searchOut, "out", "", "write matches to a .csv or .xlsx file instead of printing")
	rootCmd.AddCommand(searchCmd)
}
