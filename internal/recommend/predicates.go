package recommend

import (
	"fmt"
	"strings"

	"github.com/spigell/vetnav/internal/benefits"
)

// The predicates below are heuristics over free-text eligibility clauses,
// not eligibility proofs. Each returns a verdict plus the textual evidence
// it matched on so the heuristic stays independently testable.

// MatchesDisability reports whether a benefit looks relevant to a veteran
// with a service-connected disability: a disability-related tag, a
// description mention, or an eligibility clause mention.
func MatchesDisability(b *benefits.Benefit) (bool, string) {
	for _, tag := range b.Tags {
		lower := strings.ToLower(tag)
		if strings.Contains(lower, "disability") || strings.Contains(lower, "service_connected") {
			return true, fmt.Sprintf("tag %q", tag)
		}
	}

	if strings.Contains(strings.ToLower(b.Description), "disability") {
		return true, `description mentions "disability"`
	}

	for _, clause := range b.Eligibility {
		if strings.Contains(strings.ToLower(clause), "disability") {
			return true, fmt.Sprintf("eligibility clause %q", clause)
		}
	}

	return false, ""
}

// MatchesPost911 reports whether a benefit's eligibility text is compatible
// with post-9/11 service. The absent-"period" fallback is imprecise on
// arbitrary text; it is kept for compatibility with the original matching
// behavior and lives here so it can be refined in one place.
func MatchesPost911(b *benefits.Benefit) (bool, string) {
	text := strings.ToLower(b.EligibilityText())

	if strings.Contains(text, "before 9/11") {
		return false, `eligibility mentions "before 9/11"`
	}

	switch {
	case strings.Contains(text, "post-9/11"):
		return true, `eligibility mentions "post-9/11"`
	case strings.Contains(text, "9/11"):
		return true, `eligibility mentions "9/11"`
	case strings.Contains(text, "september"):
		return true, `eligibility mentions "september"`
	case !strings.Contains(text, "period"):
		return true, `eligibility names no service period`
	}

	return false, `eligibility names a service period other than post-9/11`
}

// MatchesWartime reports whether a benefit is tied to wartime or combat
// service via its tags or eligibility clauses.
func MatchesWartime(b *benefits.Benefit) (bool, string) {
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), "wartime_service") {
			return true, fmt.Sprintf("tag %q", tag)
		}
	}

	for _, clause := range b.Eligibility {
		lower := strings.ToLower(clause)
		if strings.Contains(lower, "wartime") || strings.Contains(lower, "combat") {
			return true, fmt.Sprintf("eligibility clause %q", clause)
		}
	}

	return false, ""
}

// MatchesState reports whether a benefit is reachable from the given state:
// federal benefits always are, state benefits only in their own state.
func MatchesState(b *benefits.Benefit, state string) (bool, string) {
	if b.Level == benefits.LevelFederal {
		return true, "federal benefit"
	}
	if b.State == state {
		return true, fmt.Sprintf("state benefit for %s", state)
	}
	return false, ""
}
