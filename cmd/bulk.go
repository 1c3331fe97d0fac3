package main

import (
	"bufio"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/model"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/search"
)

var (
	bulkFile      string
	bulkFuzzy     bool
	bulkCity      string
	bulkState     string
	bulkMinAmount string
	bulkMaxAmount string
	bulkStartDate string
	bulkEndDate   string
	bulkOut       string
)

var bulkCmd = &cobra.Command{
	Use:   "bulk [name ...]",
	Short: "Search up to 1000 contributor names in one run",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := args
		if bulkFile != "" {
			fileNames, err := readNames(bulkFile)
			if err != nil {
				return err
			}
			names = append(names, fileNames...)
		}

		env, err := initCore()
		if err != nil {
			return err
		}
		defer env.Close()

		f, err := buildFilter(bulkCity, bulkState, bulkMinAmount, bulkMaxAmount, bulkStartDate, bulkEndDate)
		if err != nil {
			return err
		}

		mode := model.SearchModeExact
		if bulkFuzzy {
			mode = model.SearchModeFuzzy
		}

		result, err := env.Bulk.Run(cmd.Context(), search.BulkRequest{Names: names, Mode: mode, Filter: f})
		if err != nil {
			return err
		}

		p := message.NewPrinter(language.English)
		p.Printf("searched %d names, %d with results\n", result.Summary.TotalNames, result.Summary.NamesWithResults)
		p.Printf("%d contributions, $%.2f total\n", result.Summary.TotalContributions, result.Summary.TotalAmount)

		keys := make([]string, 0, len(result.Results))
		for name := range result.Results {
			keys = append(keys, name)
		}
		sort.Strings(keys)
		for _, name := range keys {
			e := result.Results[name]
			p.Printf("  %-30s %5d contributions  $%.2f\n", name, e.Count, e.TotalAmount)
		}

		if bulkOut != "" {
			records, ok := env.Cache.Get(result.ExportID)
			if !ok {
				return eris.Wrap(model.ErrNotFound, "bulk: cached result vanished before export")
			}
			return writeExport(bulkOut, records)
		}

		p.Printf("export id: %s\n", result.ExportID)
		return nil
	},
}

// readNames loads one name per line, skipping blanks.
func readNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "bulk: open names file")
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		names = append(names, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "bulk: read names file")
	}
	return names, nil
}

func init() {
	bulkCmd.Flags().StringVar(&bulkFile, "file", "", "file with one contributor name per line")
	bulkCmd.Flags().BoolVar(&bulkFuzzy, "fuzzy", false, "per-token approximate matching instead of exact substring")
	bulkCmd.Flags().StringVar(&bulkCity, "city", "", "filter: city substring")
	bulkCmd.Flags().StringVar(&bulkState, "state", "", "filter: exact state code")
	bulkCmd.Flags().StringVar(&bulkMinAmount, "min-amount", "", "filter: minimum amount (inclusive)")
	bulkCmd.Flags().StringVar(&bulkMaxAmount, "max-amount", "", "filter: maximum amount (inclusive)")
	bulkCmd.Flags().StringVar(&bulkStartDate, "start-date", "", "filter: start date (YYYY-MM-DD)")
	bulkCmd.Flags().StringVar(&bulkEndDate, "end-date", "", "filter: end date (YYYY-MM-DD)")
	bulkCmd.Flags().StringVar(&bulkOut, "out", "", "write the flattened match union to a .csv or .xlsx file")
	rootCmd.AddCommand(bulkCmd)
}
