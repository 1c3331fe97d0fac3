// Package export renders result sets as delimited files.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/model"
)

// Columns lists the export fields in their fixed, documented order.
var Columns = []string{
	"committee_id",
	"name",
	"city",
	"state",
	"zip",
	"employer",
	"occupation",
	"date",
	"amount",
}

// WriteCSV renders records with a header row first. Fields containing a
// comma or double quote are wrapped in double quotes with inner quotes
// doubled; everything else is emitted unquoted (encoding/csv's RFC 4180
// behavior is the contract).
func WriteCSV(w io.Writer, records []*model.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, r := range records {
		if err := cw.Write(row(r)); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "export: flush")
	}
	return nil
}

func row(r *model.Record) []string {
	return []string{
		r.CommitteeID,
		r.Name,
		r.City,
		r.State,
		r.Zip,
		r.Employer,
		r.Occupation,
		r.Date,
		strconv.FormatFloat(r.Amount, 'f', 2, 64),
	}
}
