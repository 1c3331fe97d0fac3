package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/model"
)

// WriteXLSX renders the same rows as WriteCSV to a single worksheet at
// path, for operators who want a spreadsheet instead of delimited text.
func WriteXLSX(path string, records []*model.Record) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("contributions")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, c := range Columns {
		header.AddCell().Value = c
	}

	for _, r := range records {
		row := sheet.AddRow()
		row.AddCell().Value = r.CommitteeID
		row.AddCell().Value = r.Name
		row.AddCell().Value = r.City
		row.AddCell().Value = r.State
		row.AddCell().Value = r.Zip
		row.AddCell().Value = r.Employer
		row.AddCell().Value = r.Occupation
		row.AddCell().Value = r.Date
		row.AddCell().SetFloat(r.Amount)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}
	return nil
}
