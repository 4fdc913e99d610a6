package main

import (
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadgen-cli/internal/emailpattern"
	"github.com/sells-group/leadgen-cli/internal/export"
	"github.com/sells-group/leadgen-cli/internal/ingest"
	"github.com/sells-group/leadgen-cli/internal/lead"
	"github.com/sells-group/leadgen-cli/internal/model"
)

var (
	runProfiles   []string
	runWebsites   []string
	runOutput     string
	runFormat     string
	runMinMatches int
	runNoStore    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Aggregate record files into leads",
	Long: `Reads profile records (CSV or XLSX) and website records (JSON or
YAML), matches them by organization, merges each pair into a lead, and
infers missing emails from the organization's observed address pattern.

Examples:
  # CSV profiles + JSON website records, CSV output
  leadgen-cli run --profiles profiles.csv --websites sites.json

  # Multiple inputs, Excel output
  leadgen-cli run --profiles a.csv --profiles b.xlsx --websites sites.yaml \
    --format xlsx --output leads.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		profiles, websites, err := ingestAll(runProfiles, runWebsites)
		if err != nil {
			return err
		}
		zap.L().Info("run: ingested records",
			zap.Int("profiles", len(profiles)),
			zap.Int("websites", len(websites)),
		)

		minMatches := cfg.Match.MinPatternMatches
		if runMinMatches > 0 {
			minMatches = runMinMatches
		}
		engine := lead.NewEngine(emailpattern.NewCache(), lead.WithMinPatternMatches(minMatches))

		leads, summary, err := engine.Aggregate(profiles, websites)
		if err != nil {
			return eris.Wrap(err, "run: aggregate")
		}

		if !runNoStore {
			st, storeErr := openStore(ctx)
			if storeErr != nil {
				zap.L().Warn("run: store unavailable, skipping run history", zap.Error(storeErr))
			} else {
				defer st.Close() //nolint:errcheck
				if run, createErr := st.CreateRun(ctx, "cli", summary, leads); createErr != nil {
					zap.L().Warn("run: failed to persist run", zap.Error(createErr))
				} else {
					zap.L().Info("run: persisted", zap.String("run_id", run.ID))
				}
			}
		}

		return writeLeads(leads, summary)
	},
}

func init() {
	runCmd.Flags().StringArrayVar(&runProfiles, "profiles", nil, "profile record file (csv or xlsx); repeatable")
	runCmd.Flags().StringArrayVar(&runWebsites, "websites", nil, "website record file (json or yaml); repeatable")
	runCmd.Flags().StringVar(&runOutput, "output", "", "output path (default from config)")
	runCmd.Flags().StringVar(&runFormat, "format", "", "output format: csv, xlsx, or json (default from config)")
	runCmd.Flags().IntVar(&runMinMatches, "min-matches", 0, "minimum pattern evidence before synthesizing emails (default from config)")
	runCmd.Flags().BoolVar(&runNoStore, "no-store", false, "skip persisting the run to the history store")
	_ = runCmd.MarkFlagRequired("profiles")
	rootCmd.AddCommand(runCmd)
}

// ingestAll reads all input files concurrently, preserving the order
// records appear across the flag lists.
func ingestAll(profilePaths, websitePaths []string) ([]model.ProfileRecord, []model.WebsiteRecord, error) {
	profileSets := make([][]model.ProfileRecord, len(profilePaths))
	websiteSets := make([][]model.WebsiteRecord, len(websitePaths))

	var g errgroup.Group
	g.SetLimit(4)
	var mu sync.Mutex

	for i, path := range profilePaths {
		i, path := i, path
		g.Go(func() error {
			var recs []model.ProfileRecord
			var err error
			if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
				recs, err = ingest.ReadProfileXLSX(path)
			} else {
				recs, err = ingest.ReadProfileCSV(path)
			}
			if err != nil {
				return err
			}
			mu.Lock()
			profileSets[i] = recs
			mu.Unlock()
			return nil
		})
	}
	for i, path := range websitePaths {
		i, path := i, path
		g.Go(func() error {
			recs, err := ingest.ReadWebsiteRecords(path)
			if err != nil {
				return err
			}
			mu.Lock()
			websiteSets[i] = recs
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, eris.Wrap(err, "run: ingest")
	}

	var profiles []model.ProfileRecord
	for _, set := range profileSets {
		profiles = append(profiles, set...)
	}
	var websites []model.WebsiteRecord
	for _, set := range websiteSets {
		websites = append(websites, set...)
	}
	return profiles, websites, nil
}

// writeLeads dispatches export by configured or flag-selected format.
func writeLeads(leads []model.Lead, summary model.RunSummary) error {
	format := runFormat
	if format == "" {
		format = cfg.Export.Format
	}
	output := runOutput
	if output == "" {
		output = cfg.Export.Output
	}

	switch format {
	case "csv":
		return export.WriteCSV(leads, output)
	case "xlsx":
		return export.WriteXLSX(leads, output)
	case "json":
		return export.WriteJSON(leads, summary, output)
	default:
		return eris.Errorf("run: unknown output format %q", format)
	}
}
