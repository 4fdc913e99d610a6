package model

// RunSummary holds per-run aggregate counters for diagnostics.
type RunSummary struct {
	Leads     int `json:"leads"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`

	// Leads by email provenance.
	Observed int `json:"observed"`
	Inferred int `json:"inferred"`
	Missing  int `json:"missing"`
}

// Add counts one lead into the summary.
func (s *RunSummary) Add(lead Lead) {
	s.Leads++
	if lead.Matched {
		s.Matched++
	} else {
		s.Unmatched++
	}
	switch lead.Provenance {
	case EmailObserved:
		s.Observed++
	case EmailInferred:
		s.Inferred++
	case EmailMissing:
		s.Missing++
	}
}
