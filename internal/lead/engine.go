package lead

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/emailpattern"
	"github.com/sells-group/leadgen-cli/internal/model"
)

// DefaultMinPatternMatches is the default confidence floor: at least
// one observed pair must reproduce the winning template before it is
// used for synthesis.
const DefaultMinPatternMatches = 1

// Engine runs the full match → merge → infer pipeline over in-memory
// record sets. It is a pure transformation: the only cross-call state
// is the injected detection cache, which is safe to share between
// concurrent runs over the same organizations.
type Engine struct {
	cache      *emailpattern.Cache
	minMatches int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMinPatternMatches sets the minimum winning-template tally
// required before synthesis. Values below 1 are clamped to the default.
func WithMinPatternMatches(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.minMatches = n
		}
	}
}

// NewEngine creates an aggregation engine around the given detection
// cache. A nil cache gets a private one.
func NewEngine(cache *emailpattern.Cache, opts ...Option) *Engine {
	e := &Engine{cache: cache, minMatches: DefaultMinPatternMatches}
	if e.cache == nil {
		e.cache = emailpattern.NewCache()
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Aggregate matches and merges the run's records into Leads, one per
// profile record, in profile input order. Re-running over the same
// inputs yields an identical lead sequence. The only hard failure is a
// profile record carrying neither a name nor an organization; such
// inputs are rejected before any lead is produced.
func (e *Engine) Aggregate(profiles []model.ProfileRecord, websites []model.WebsiteRecord) ([]model.Lead, model.RunSummary, error) {
	for i, p := range profiles {
		if strings.TrimSpace(p.FullName) == "" && strings.TrimSpace(p.Organization) == "" {
			return nil, model.RunSummary{}, eris.Errorf("lead: profile record %d has no name and no organization", i)
		}
	}

	idx := indexWebsites(websites)
	pairs := idx.match(profiles)

	leads := make([]model.Lead, 0, len(pairs))
	var summary model.RunSummary
	for _, pair := range pairs {
		l := e.mergeLead(pair, idx.evidence[pair.OrgKey])
		summary.Add(l)
		leads = append(leads, l)
	}

	zap.L().Info("lead: aggregation complete",
		zap.Int("profiles", len(profiles)),
		zap.Int("websites", len(websites)),
		zap.Int("leads", summary.Leads),
		zap.Int("matched", summary.Matched),
		zap.Int("observed", summary.Observed),
		zap.Int("inferred", summary.Inferred),
		zap.Int("missing", summary.Missing),
	)

	return leads, summary, nil
}
