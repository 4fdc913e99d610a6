// Package lead pairs profile and website records by organization,
// merges each pair into a Lead, and fills missing emails from detected
// organization patterns.
package lead

import (
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/orgkey"
)

// Pair is one matcher output: a profile record and the website record
// (if any) sharing its organization key.
type Pair struct {
	Profile      model.ProfileRecord
	ProfileIndex int
	Website      *model.WebsiteRecord
	OrgKey       string
}

// websiteIndex holds website records and org-level email evidence
// keyed by normalized organization name.
type websiteIndex struct {
	byKey    map[string]*model.WebsiteRecord
	evidence map[string][]model.NamedEmail
}

// indexWebsites builds the org-key index over website records. When
// multiple records normalize to the same key, the one with the most
// (name, email) evidence pairs wins the pairing slot; ties keep the
// record seen first, so resolution is stable across shuffled input of
// the tied records. Evidence is the union of pairs across all records
// sharing the key, in input order, regardless of which record won.
func indexWebsites(websites []model.WebsiteRecord) *websiteIndex {
	idx := &websiteIndex{
		byKey:    make(map[string]*model.WebsiteRecord, len(websites)),
		evidence: make(map[string][]model.NamedEmail, len(websites)),
	}
	for i := range websites {
		w := &websites[i]
		key := orgkey.Normalize(w.Organization)
		if key == "" {
			zap.L().Debug("match: website record has no usable organization name",
				zap.String("organization", w.Organization),
			)
			continue
		}
		idx.evidence[key] = append(idx.evidence[key], w.Pairs...)

		existing, ok := idx.byKey[key]
		if !ok {
			idx.byKey[key] = w
			continue
		}
		if len(w.Pairs) > len(existing.Pairs) {
			zap.L().Debug("match: ambiguous organization key resolved by evidence count",
				zap.String("key", key),
				zap.String("kept", w.Organization),
				zap.String("dropped", existing.Organization),
			)
			idx.byKey[key] = w
		}
	}
	return idx
}

// match pairs profiles against the index, preserving profile input order.
func (idx *websiteIndex) match(profiles []model.ProfileRecord) []Pair {
	pairs := make([]Pair, 0, len(profiles))
	for i, p := range profiles {
		key := orgkey.Normalize(p.Organization)
		pair := Pair{Profile: p, ProfileIndex: i, OrgKey: key}
		if key != "" {
			pair.Website = idx.byKey[key]
		}
		pairs = append(pairs, pair)
	}
	return pairs
}

// MatchRecords pairs each profile record with the website record
// sharing its organization key, preserving profile input order. Profiles
// whose organization is empty or normalizes to nothing pass through
// unmatched; website records that never pair are dropped, since they
// carry no individual identity.
func MatchRecords(profiles []model.ProfileRecord, websites []model.WebsiteRecord) []Pair {
	return indexWebsites(websites).match(profiles)
}
