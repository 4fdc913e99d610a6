package lead

import (
	"strings"

	"github.com/sells-group/leadgen-cli/internal/emailpattern"
	"github.com/sells-group/leadgen-cli/internal/model"
)

// mergeLead fuses one matcher pair into a Lead. Field precedence is
// fixed: identity fields (name, title, location) always come from the
// profile record; organization falls back to the website display name;
// email resolves observed-profile, then observed-website-pair, then
// synthesis, then missing. Observed always wins, and the provenance
// tag set here is final.
func (e *Engine) mergeLead(pair Pair, evidence []model.NamedEmail) model.Lead {
	p := pair.Profile
	lead := model.Lead{
		FullName:     strings.TrimSpace(p.FullName),
		Title:        strings.TrimSpace(p.Title),
		Organization: strings.TrimSpace(p.Organization),
		Location:     strings.TrimSpace(p.Location),
		ProfileURL:   p.ProfileURL,
		Provenance:   model.EmailMissing,
		ProfileIndex: pair.ProfileIndex,
		Matched:      pair.Website != nil,
	}
	if lead.Organization == "" && pair.Website != nil {
		lead.Organization = strings.TrimSpace(pair.Website.Organization)
	}
	if pair.Website != nil {
		lead.WebsiteOrg = pair.Website.Organization
	}

	switch {
	case p.Email != "":
		lead.Email = p.Email
		lead.Provenance = model.EmailObserved
	case pair.Website != nil && websiteEmailFor(p.FullName, pair.Website.Pairs) != "":
		lead.Email = websiteEmailFor(p.FullName, pair.Website.Pairs)
		lead.Provenance = model.EmailObserved
	default:
		if email, ok := e.synthesize(pair.OrgKey, p.FullName, evidence); ok {
			lead.Email = email
			lead.Provenance = model.EmailInferred
		}
	}

	lead.Completeness = lead.Score()
	return lead
}

// synthesize runs read-through detection for the organization and
// applies the template, honoring the configured match floor.
func (e *Engine) synthesize(key, fullName string, evidence []model.NamedEmail) (string, bool) {
	if key == "" || len(evidence) == 0 {
		return "", false
	}
	det := e.cache.Get(key, func() emailpattern.Detection {
		return emailpattern.Detect(evidence)
	})
	if !det.Detected || det.Matches < e.minMatches {
		return "", false
	}
	return emailpattern.Synthesize(fullName, det)
}

// websiteEmailFor returns the email a website record explicitly
// associates with this exact person, or "". Name comparison folds case
// and diacritics through the shared tokenizer rules, but requires the
// whole name to agree, not just first/last tokens.
func websiteEmailFor(fullName string, pairs []model.NamedEmail) string {
	want := emailpattern.FoldName(fullName)
	if want == "" {
		return ""
	}
	for _, p := range pairs {
		if p.Email != "" && emailpattern.FoldName(p.Name) == want {
			return p.Email
		}
	}
	return ""
}
