// Package export serializes finished leads for downstream consumers.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// leadHeader is the column layout shared by CSV and XLSX export.
var leadHeader = []string{
	"full_name", "title", "organization", "location",
	"profile_url", "email", "email_provenance", "completeness",
}

func leadRow(l model.Lead) []string {
	return []string{
		l.FullName,
		l.Title,
		l.Organization,
		l.Location,
		l.ProfileURL,
		l.Email,
		string(l.Provenance),
		fmt.Sprintf("%.2f", l.Completeness),
	}
}

// WriteCSV writes leads to a CSV file with a header row.
func WriteCSV(leads []model.Lead, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(leadHeader); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, l := range leads {
		if err := w.Write(leadRow(l)); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}

	zap.L().Info("export: wrote csv", zap.String("path", path), zap.Int("leads", len(leads)))
	return nil
}

// WriteXLSX writes leads to a single-sheet XLSX workbook.
func WriteXLSX(leads []model.Lead, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	addRow(sheet, leadHeader)
	for _, l := range leads {
		addRow(sheet, leadRow(l))
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}
	zap.L().Info("export: wrote xlsx", zap.String("path", path), zap.Int("leads", len(leads)))
	return nil
}

// WriteJSON writes leads and the run summary as indented JSON.
func WriteJSON(leads []model.Lead, summary model.RunSummary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create json")
	}
	defer f.Close() //nolint:errcheck

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	payload := struct {
		Leads   []model.Lead     `json:"leads"`
		Summary model.RunSummary `json:"summary"`
	}{Leads: leads, Summary: summary}
	if err := enc.Encode(payload); err != nil {
		return eris.Wrap(err, "export: encode json")
	}

	zap.L().Info("export: wrote json", zap.String("path", path), zap.Int("leads", len(leads)))
	return nil
}

func addRow(sheet *xlsx.Sheet, cells []string) {
	row := sheet.AddRow()
	for _, c := range cells {
		row.AddCell().SetString(c)
	}
}
