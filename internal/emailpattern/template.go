package emailpattern

// TemplateID identifies one of the fixed candidate local-part layouts.
type TemplateID string

// Candidate templates, most standard first. Detection ties break toward
// the earliest entry in this list.
const (
	TemplateFirstDotLast TemplateID = "first.last"
	TemplateFirstLast    TemplateID = "firstlast"
	TemplateFLast        TemplateID = "flast"
	TemplateFirstULast   TemplateID = "first_last"
	TemplateFirst        TemplateID = "first"
)

// Candidates is the fixed ordered candidate list the detector scores
// against. Order is ranking, not just enumeration.
var Candidates = []TemplateID{
	TemplateFirstDotLast,
	TemplateFirstLast,
	TemplateFLast,
	TemplateFirstULast,
	TemplateFirst,
}

// Template is a detected email-construction pattern bound to a domain.
type Template struct {
	ID     TemplateID `json:"id"`
	Domain string     `json:"domain"`
}

// LocalPart renders the template's local-part for the given name
// tokens. Returns "" when the tokens cannot satisfy the template
// (e.g. a single-token name against a layout requiring a last name).
func (id TemplateID) LocalPart(tok NameTokens) string {
	if tok.First == "" {
		return ""
	}
	switch id {
	case TemplateFirstDotLast:
		if tok.Last == "" {
			return ""
		}
		return tok.First + "." + tok.Last
	case TemplateFirstLast:
		if tok.Last == "" {
			return ""
		}
		return tok.First + tok.Last
	case TemplateFLast:
		if tok.Last == "" {
			return ""
		}
		return tok.First[:1] + tok.Last
	case TemplateFirstULast:
		if tok.Last == "" {
			return ""
		}
		return tok.First + "_" + tok.Last
	case TemplateFirst:
		return tok.First
	default:
		return ""
	}
}
