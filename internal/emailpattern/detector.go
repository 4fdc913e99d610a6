package emailpattern

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Detection is the outcome of pattern detection for one organization.
// Detected == false means no observed pair matched any candidate
// template; that is a normal terminal state, not an error.
type Detection struct {
	Detected bool     `json:"detected"`
	Template Template `json:"template,omitempty"`

	// Matches is the winning template's tally. Callers compare it
	// against their configured floor before synthesizing.
	Matches int `json:"matches"`

	// LowConfidence is set when fewer than two usable pairs backed
	// the detection.
	LowConfidence bool `json:"low_confidence"`
}

// Undetected is the explicit no-pattern result.
var Undetected = Detection{}

// Detect infers the dominant email template from the (name, email)
// pairs observed for one organization. Each pair with at least two name
// tokens votes for every candidate template that reproduces its email
// local-part exactly (case-insensitive). Highest tally wins; ties break
// toward the earliest candidate. The domain is the majority domain over
// observed emails, first-seen on ties.
func Detect(pairs []model.NamedEmail) Detection {
	if len(pairs) == 0 {
		return Undetected
	}

	tallies := make(map[TemplateID]int, len(Candidates))
	domainCounts := make(map[string]int)
	var domainOrder []string
	usable := 0

	for _, p := range pairs {
		local, domain, ok := splitEmail(p.Email)
		if !ok {
			continue
		}
		if _, seen := domainCounts[domain]; !seen {
			domainOrder = append(domainOrder, domain)
		}
		domainCounts[domain]++

		tok := SplitName(p.Name)
		if tok.First == "" || tok.Last == "" {
			// Single-word names carry no layout evidence.
			continue
		}
		usable++

		for _, id := range Candidates {
			if id.LocalPart(tok) == local {
				tallies[id]++
			}
		}
	}

	var winner TemplateID
	best := 0
	for _, id := range Candidates {
		if tallies[id] > best {
			winner = id
			best = tallies[id]
		}
	}
	if best == 0 {
		zap.L().Debug("emailpattern: no candidate template matched",
			zap.Int("pairs", len(pairs)),
			zap.Int("usable", usable),
		)
		return Undetected
	}

	domain := ""
	domainBest := 0
	for _, d := range domainOrder {
		if domainCounts[d] > domainBest {
			domain = d
			domainBest = domainCounts[d]
		}
	}

	return Detection{
		Detected:      true,
		Template:      Template{ID: winner, Domain: domain},
		Matches:       best,
		LowConfidence: usable < 2,
	}
}

// splitEmail returns the lower-cased local-part and domain of an
// address, rejecting anything without exactly one "@".
func splitEmail(email string) (local, domain string, ok bool) {
	s := strings.ToLower(strings.TrimSpace(email))
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') || at == len(s)-1 {
		return "", "", false
	}
	return s[:at], s[at+1:], true
}
