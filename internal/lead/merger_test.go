package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/leadgen-cli/internal/emailpattern"
	"github.com/sells-group/leadgen-cli/internal/model"
)

func newTestEngine() *Engine {
	return NewEngine(emailpattern.NewCache())
}

func TestMergeLead_IdentityFieldsFromProfile(t *testing.T) {
	t.Parallel()

	pair := Pair{
		Profile: model.ProfileRecord{
			FullName:     "Jane Doe",
			Title:        "CTO",
			Organization: "Acme Inc",
			Location:     "Austin, TX",
			ProfileURL:   "https://example.com/in/janedoe",
		},
		OrgKey:  "acme",
		Website: &model.WebsiteRecord{Organization: "Acme"},
	}

	l := newTestEngine().mergeLead(pair, nil)
	assert.Equal(t, "Jane Doe", l.FullName)
	assert.Equal(t, "CTO", l.Title)
	assert.Equal(t, "Acme Inc", l.Organization, "profile organization wins over website")
	assert.Equal(t, "Austin, TX", l.Location)
	assert.Equal(t, "Acme", l.WebsiteOrg)
	assert.True(t, l.Matched)
}

func TestMergeLead_OrganizationFallsBackToWebsite(t *testing.T) {
	t.Parallel()

	pair := Pair{
		Profile: model.ProfileRecord{FullName: "Jane Doe"},
		Website: &model.WebsiteRecord{Organization: "Acme"},
	}

	l := newTestEngine().mergeLead(pair, nil)
	assert.Equal(t, "Acme", l.Organization)
}

func TestMergeLead_ObservedProfileEmailWins(t *testing.T) {
	t.Parallel()

	pair := Pair{
		Profile: model.ProfileRecord{
			FullName:     "Jane Doe",
			Organization: "Acme Inc",
			Email:        "jd@personal.net",
		},
		OrgKey: "acme",
		Website: &model.WebsiteRecord{
			Organization: "Acme",
			Pairs:        []model.NamedEmail{{Name: "Jane Doe", Email: "jane.doe@acme.com"}},
		},
	}
	evidence := pair.Website.Pairs

	l := newTestEngine().mergeLead(pair, evidence)
	assert.Equal(t, "jd@personal.net", l.Email)
	assert.Equal(t, model.EmailObserved, l.Provenance, "observed always wins over inference")
}

func TestMergeLead_WebsitePairEmailForExactName(t *testing.T) {
	t.Parallel()

	pair := Pair{
		Profile: model.ProfileRecord{FullName: "Jane Doe", Organization: "Acme Inc"},
		OrgKey:  "acme",
		Website: &model.WebsiteRecord{
			Organization: "Acme",
			Pairs: []model.NamedEmail{
				{Name: "John Smith", Email: "john.smith@acme.com"},
				{Name: "JANE  DOE", Email: "jane.doe@acme.com"},
			},
		},
	}

	l := newTestEngine().mergeLead(pair, pair.Website.Pairs)
	assert.Equal(t, "jane.doe@acme.com", l.Email)
	assert.Equal(t, model.EmailObserved, l.Provenance, "verbatim website email is observed, not inferred")
}

func TestMergeLead_InferredFromPattern(t *testing.T) {
	t.Parallel()

	evidence := []model.NamedEmail{
		{Name: "John Smith", Email: "john.smith@acme.com"},
		{Name: "Amy Lee", Email: "amy.lee@acme.com"},
	}
	pair := Pair{
		Profile: model.ProfileRecord{
			FullName:     "Jane Doe",
			Title:        "CTO",
			Organization: "Acme Inc",
			Location:     "Austin, TX",
		},
		OrgKey:  "acme",
		Website: &model.WebsiteRecord{Organization: "Acme", Pairs: evidence},
	}

	l := newTestEngine().mergeLead(pair, evidence)
	assert.Equal(t, "jane.doe@acme.com", l.Email)
	assert.Equal(t, model.EmailInferred, l.Provenance)
	assert.InDelta(t, 1.0, l.Completeness, 0.001)
}

func TestMergeLead_MissingWithoutEvidence(t *testing.T) {
	t.Parallel()

	pair := Pair{
		Profile: model.ProfileRecord{
			FullName:     "Jane Doe",
			Title:        "CTO",
			Organization: "Acme Inc",
		},
		OrgKey: "acme",
	}

	l := newTestEngine().mergeLead(pair, nil)
	assert.Empty(t, l.Email)
	assert.Equal(t, model.EmailMissing, l.Provenance)
	assert.InDelta(t, 0.75, l.Completeness, 0.001, "3 of 4 required fields")
}

func TestMergeLead_UndetectablePatternIsNotAnError(t *testing.T) {
	t.Parallel()

	evidence := []model.NamedEmail{
		{Name: "John Smith", Email: "info@acme.com"},
	}
	pair := Pair{
		Profile: model.ProfileRecord{FullName: "Jane Doe", Organization: "Acme Inc"},
		OrgKey:  "acme",
		Website: &model.WebsiteRecord{Organization: "Acme", Pairs: evidence},
	}

	l := newTestEngine().mergeLead(pair, evidence)
	assert.Equal(t, model.EmailMissing, l.Provenance)
}

func TestMergeLead_SingleTokenNameCannotBeSynthesized(t *testing.T) {
	t.Parallel()

	evidence := []model.NamedEmail{
		{Name: "John Smith", Email: "john.smith@acme.com"},
	}
	pair := Pair{
		Profile: model.ProfileRecord{FullName: "Madonna", Organization: "Acme Inc"},
		OrgKey:  "acme",
		Website: &model.WebsiteRecord{Organization: "Acme", Pairs: evidence},
	}

	l := newTestEngine().mergeLead(pair, evidence)
	assert.Equal(t, model.EmailMissing, l.Provenance)
}

func TestMergeLead_ConfidenceFloorBlocksSynthesis(t *testing.T) {
	t.Parallel()

	evidence := []model.NamedEmail{
		{Name: "John Smith", Email: "john.smith@acme.com"},
	}
	pair := Pair{
		Profile: model.ProfileRecord{FullName: "Jane Doe", Organization: "Acme Inc"},
		OrgKey:  "acme",
		Website: &model.WebsiteRecord{Organization: "Acme", Pairs: evidence},
	}

	strict := NewEngine(emailpattern.NewCache(), WithMinPatternMatches(2))
	l := strict.mergeLead(pair, evidence)
	assert.Equal(t, model.EmailMissing, l.Provenance, "one matching pair is below the floor of two")

	lenient := newTestEngine()
	l = lenient.mergeLead(pair, evidence)
	assert.Equal(t, model.EmailInferred, l.Provenance)
}

func TestMergeLead_MalformedRecordStillMerges(t *testing.T) {
	t.Parallel()

	pair := Pair{
		Profile: model.ProfileRecord{Organization: "Acme Inc"},
		OrgKey:  "acme",
	}

	l := newTestEngine().mergeLead(pair, nil)
	assert.Empty(t, l.FullName)
	assert.Equal(t, model.EmailMissing, l.Provenance)
	assert.InDelta(t, 0.25, l.Completeness, 0.001, "only organization present")
}

func TestWebsiteEmailFor(t *testing.T) {
	t.Parallel()

	pairs := []model.NamedEmail{
		{Name: "John Smith", Email: "john.smith@acme.com"},
		{Name: "José Núñez", Email: "jose.nunez@acme.com"},
		{Name: "No Email", Email: ""},
	}

	assert.Equal(t, "john.smith@acme.com", websiteEmailFor("john  SMITH", pairs))
	assert.Equal(t, "jose.nunez@acme.com", websiteEmailFor("Jose Nunez", pairs))
	assert.Empty(t, websiteEmailFor("No Email", pairs), "pair without email does not count")
	assert.Empty(t, websiteEmailFor("Jane Doe", pairs))
	assert.Empty(t, websiteEmailFor("", pairs))
}
