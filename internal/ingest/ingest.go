// Package ingest loads pipe-delimited individual-contribution source
// files into the immutable record set the rest of the process shares.
package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/model"
	"github.com/ZhenWang-Jen/political-contribution-monitor/internal/normalize"
)

// Column positions in the FEC individual-contribution file layout.
const (
	colCommitteeID = 0
	colName        = 7
	colCity        = 8
	colState       = 9
	colZip         = 10
	colEmployer    = 11
	colOccupation  = 12
	colDate        = 13
	colAmount      = 14

	minColumns = 15
)

// LoadFile reads one source file. Loading happens once at startup and
// must complete before any query is served.
func LoadFile(path string) ([]*model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open source file")
	}
	defer f.Close()

	records, err := Load(f)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: %s", path)
	}
	return records, nil
}

// Load parses records from r. Rows with too few columns are skipped with
// a warning; a malformed or negative amount becomes 0 rather than
// failing the load. NormalizedName is computed here, once, so the query
// path never re-derives it.
func Load(r io.Reader) ([]*model.Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = '|'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var records []*model.Record
	skipped := 0
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: line %d", line)
		}
		if len(row) < minColumns {
			skipped++
			continue
		}

		amount, err := strconv.ParseFloat(strings.TrimSpace(row[colAmount]), 64)
		if err != nil || amount < 0 {
			amount = 0
		}

		name := strings.TrimSpace(row[colName])
		records = append(records, &model.Record{
			CommitteeID:    strings.TrimSpace(row[colCommitteeID]),
			Name:           name,
			City:           strings.TrimSpace(row[colCity]),
			State:          strings.TrimSpace(row[colState]),
			Zip:            strings.TrimSpace(row[colZip]),
			Employer:       strings.TrimSpace(row[colEmployer]),
			Occupation:     strings.TrimSpace(row[colOccupation]),
			Date:           strings.TrimSpace(row[colDate]),
			Amount:         amount,
			NormalizedName: normalize.Name(name),
		})
	}

	if skipped > 0 {
		zap.L().Warn("ingest: skipped short rows", zap.Int("skipped", skipped))
	}
	zap.L().Info("ingest: load complete", zap.Int("records", len(records)))
	return records, nil
}
