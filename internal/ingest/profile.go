// Package ingest reads collaborator-supplied record files. It performs
// no matching or inference; it only decodes rows into model records in
// file order.
package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// profileColumns maps recognized header names to record fields.
// Matching is case-insensitive and ignores spaces/underscores.
var profileColumns = map[string]string{
	"fullname":     "name",
	"name":         "name",
	"title":        "title",
	"jobtitle":     "title",
	"organization": "org",
	"company":      "org",
	"location":     "location",
	"profileurl":   "url",
	"linkedinurl":  "url",
	"email":        "email",
}

// ReadProfileCSV reads profile records from a CSV file with a header
// row. Unrecognized columns are ignored; rows shorter than the header
// are padded with empty fields.
func ReadProfileCSV(path string) ([]model.ProfileRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open profile csv")
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read csv header")
	}
	cols := mapColumns(header)

	var records []model.ProfileRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "ingest: read csv row")
		}
		records = append(records, rowToProfile(row, cols))
	}

	zap.L().Debug("ingest: parsed profile csv",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)
	return records, nil
}

// ReadProfileXLSX reads profile records from the first sheet of an
// XLSX file with a header row.
func ReadProfileXLSX(path string) ([]model.ProfileRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open profile xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("ingest: %s has no sheets", path)
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, nil
	}

	cols := mapColumns(rowToStrings(sheet.Rows[0]))
	var records []model.ProfileRecord
	for _, row := range sheet.Rows[1:] {
		records = append(records, rowToProfile(rowToStrings(row), cols))
	}

	zap.L().Debug("ingest: parsed profile xlsx",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)
	return records, nil
}

// mapColumns resolves a header row into field -> column index.
func mapColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		key = strings.ReplaceAll(key, " ", "")
		key = strings.ReplaceAll(key, "_", "")
		if field, ok := profileColumns[key]; ok {
			if _, taken := cols[field]; !taken {
				cols[field] = i
			}
		}
	}
	return cols
}

func rowToProfile(row []string, cols map[string]int) model.ProfileRecord {
	cell := func(field string) string {
		i, ok := cols[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	return model.ProfileRecord{
		FullName:     cell("name"),
		Title:        cell("title"),
		Organization: cell("org"),
		Location:     cell("location"),
		ProfileURL:   cell("url"),
		Email:        cell("email"),
	}
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
