package ingest

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// ReadWebsiteRecords decodes website-source records from a JSON or
// YAML file, chosen by extension.
func ReadWebsiteRecords(path string) ([]model.WebsiteRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read website records")
	}

	var records []model.WebsiteRecord
	switch strings.ToLower(ext(path)) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, eris.Wrapf(err, "ingest: parse website yaml %s", path)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, eris.Wrapf(err, "ingest: parse website json %s", path)
		}
	}

	zap.L().Debug("ingest: parsed website records",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)
	return records, nil
}

func ext(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return ""
}
