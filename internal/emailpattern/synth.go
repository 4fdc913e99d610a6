package emailpattern

// Synthesize builds a candidate email for a person from a detection.
// It returns ("", false) when the detection is undetected, the name
// cannot satisfy the template, or the template has no domain. The
// caller tags any returned candidate as inferred; synthesis never
// produces an observed address.
func Synthesize(fullName string, det Detection) (string, bool) {
	if !det.Detected || det.Template.Domain == "" {
		return "", false
	}
	local := det.Template.ID.LocalPart(SplitName(fullName))
	if local == "" {
		return "", false
	}
	return local + "@" + det.Template.Domain, true
}
