package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func TestMatchRecords_PairsByOrgKey(t *testing.T) {
	t.Parallel()

	profiles := []model.ProfileRecord{
		{FullName: "Jane Doe", Organization: "Acme Inc"},
		{FullName: "Bob Roy", Organization: "Globex Corp"},
	}
	websites := []model.WebsiteRecord{
		{Organization: "Acme", Pairs: []model.NamedEmail{{Name: "John Smith", Email: "john.smith@acme.com"}}},
	}

	pairs := MatchRecords(profiles, websites)
	require.Len(t, pairs, 2)

	require.NotNil(t, pairs[0].Website)
	assert.Equal(t, "Acme", pairs[0].Website.Organization)
	assert.Equal(t, "acme", pairs[0].OrgKey)

	assert.Nil(t, pairs[1].Website, "no website record for globex")
	assert.Equal(t, "globex", pairs[1].OrgKey)
}

func TestMatchRecords_PreservesProfileOrder(t *testing.T) {
	t.Parallel()

	profiles := []model.ProfileRecord{
		{FullName: "C", Organization: "Gamma"},
		{FullName: "A", Organization: "Alpha"},
		{FullName: "B", Organization: "Beta"},
	}

	pairs := MatchRecords(profiles, nil)
	require.Len(t, pairs, 3)
	for i, p := range pairs {
		assert.Equal(t, profiles[i].FullName, p.Profile.FullName)
		assert.Equal(t, i, p.ProfileIndex)
	}
}

func TestMatchRecords_OneWebsiteManyProfiles(t *testing.T) {
	t.Parallel()

	profiles := []model.ProfileRecord{
		{FullName: "Jane Doe", Organization: "Acme Inc"},
		{FullName: "Tim Wu", Organization: "Acme, Inc."},
	}
	websites := []model.WebsiteRecord{{Organization: "Acme"}}

	pairs := MatchRecords(profiles, websites)
	require.Len(t, pairs, 2)
	require.NotNil(t, pairs[0].Website)
	require.NotNil(t, pairs[1].Website)
	assert.Same(t, pairs[0].Website, pairs[1].Website)
}

func TestMatchRecords_EmptyOrgPassesThroughUnmatched(t *testing.T) {
	t.Parallel()

	profiles := []model.ProfileRecord{
		{FullName: "Jane Doe", Organization: ""},
		{FullName: "Tim Wu", Organization: "&.,"},
	}
	websites := []model.WebsiteRecord{{Organization: "Acme"}}

	pairs := MatchRecords(profiles, websites)
	require.Len(t, pairs, 2, "malformed organizations are never dropped")
	assert.Nil(t, pairs[0].Website)
	assert.Nil(t, pairs[1].Website)
}

func TestIndexWebsites_AmbiguousKeyResolvedByEvidence(t *testing.T) {
	t.Parallel()

	thin := model.WebsiteRecord{
		Organization: "Acme Inc",
		Pairs:        []model.NamedEmail{{Name: "A B", Email: "a.b@acme-inc.com"}},
	}
	rich := model.WebsiteRecord{
		Organization: "Acme",
		Pairs: []model.NamedEmail{
			{Name: "C D", Email: "c.d@acme.com"},
			{Name: "E F", Email: "e.f@acme.com"},
		},
	}

	// Selection must not depend on the order of the conflicting records.
	for _, websites := range [][]model.WebsiteRecord{{thin, rich}, {rich, thin}} {
		idx := indexWebsites(websites)
		got := idx.byKey["acme"]
		require.NotNil(t, got)
		assert.Equal(t, "Acme", got.Organization, "record with more evidence wins")
	}
}

func TestIndexWebsites_AmbiguousTieKeepsFirstSeen(t *testing.T) {
	t.Parallel()

	first := model.WebsiteRecord{
		Organization: "Acme Inc",
		Pairs:        []model.NamedEmail{{Name: "A B", Email: "a.b@acme-inc.com"}},
	}
	second := model.WebsiteRecord{
		Organization: "Acme",
		Pairs:        []model.NamedEmail{{Name: "C D", Email: "c.d@acme.com"}},
	}

	idx := indexWebsites([]model.WebsiteRecord{first, second})
	require.NotNil(t, idx.byKey["acme"])
	assert.Equal(t, "Acme Inc", idx.byKey["acme"].Organization)
}

func TestIndexWebsites_EvidenceIsUnionAcrossKey(t *testing.T) {
	t.Parallel()

	idx := indexWebsites([]model.WebsiteRecord{
		{Organization: "Acme Inc", Pairs: []model.NamedEmail{{Name: "A B", Email: "a.b@acme.com"}}},
		{Organization: "Acme", Pairs: []model.NamedEmail{
			{Name: "C D", Email: "c.d@acme.com"},
			{Name: "E F", Email: "e.f@acme.com"},
		}},
	})

	require.Len(t, idx.evidence["acme"], 3, "evidence pools across records sharing a key")
	assert.Equal(t, "a.b@acme.com", idx.evidence["acme"][0].Email, "input order preserved")
}
