package model

// EmailProvenance tags how a lead's email field was obtained.
type EmailProvenance string

// Email provenance values. An email is `observed` only if it came
// verbatim from an input record, `inferred` only if synthesized from a
// detected organization pattern, `missing` otherwise. A lead's
// provenance is never silently upgraded after assignment.
const (
	EmailObserved EmailProvenance = "observed"
	EmailInferred EmailProvenance = "inferred"
	EmailMissing  EmailProvenance = "missing"
)

// LeadRequiredFields is the number of fields counted by the
// completeness score: name, title, organization, email.
const LeadRequiredFields = 4

// Lead is the terminal merged record for one person, ready for export.
type Lead struct {
	FullName     string          `json:"full_name"`
	Title        string          `json:"title,omitempty"`
	Organization string          `json:"organization,omitempty"`
	Location     string          `json:"location,omitempty"`
	ProfileURL   string          `json:"profile_url,omitempty"`
	Email        string          `json:"email,omitempty"`
	Provenance   EmailProvenance `json:"email_provenance"`
	Completeness float64         `json:"completeness"`

	// Source references.
	ProfileIndex int    `json:"profile_index"`
	WebsiteOrg   string `json:"website_org,omitempty"`
	Matched      bool   `json:"matched"`
}

// Score recomputes the completeness score from the current field
// values: the fraction of {name, title, organization, email} that is
// non-empty. Email counts only for observed or inferred provenance, so
// the score is monotonic in filled fields and never rewards a missing
// email that merely has residual text.
func (l *Lead) Score() float64 {
	n := 0
	if l.FullName != "" {
		n++
	}
	if l.Title != "" {
		n++
	}
	if l.Organization != "" {
		n++
	}
	if l.Email != "" && l.Provenance != EmailMissing {
		n++
	}
	return float64(n) / LeadRequiredFields
}
