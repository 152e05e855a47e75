// Package recommend scores the benefits catalog against a veteran profile.
// It applies a fixed sequence of profile-gated narrowing steps and a final
// additive wartime step. A step whose profile field is unset passes the
// list through unchanged, so a sparse profile recommends broadly.
package recommend

import (
	"go.uber.org/zap"

	"github.com/spigell/vetnav/internal/benefits"
	"github.com/spigell/vetnav/internal/filtering"
)

// Steps builds the recommendation pipeline for a profile. original must be
// the pre-narrowing catalog: the wartime step unions candidates from it and
// can restore records an earlier step removed. The step order is part of
// the engine's contract.
func Steps(original *benefits.Benefits, p *Profile) []filtering.Filter {
	if p == nil {
		p = &Profile{}
	}

	return []filtering.Filter{
		&disabilityStep{enabled: p.HasServiceConnectedDisability},
		&stateStep{state: p.ActiveState},
		&post911Step{enabled: p.ServedAfter911},
		&wartimeUnionStep{enabled: p.IsWarTimeVeteran, original: original},
	}
}

// Recommend returns the subset of the catalog matching the profile.
// Pure and deterministic; the input list is never mutated.
func Recommend(b *benefits.Benefits, p *Profile) *benefits.Benefits {
	return filtering.Run(nil, Steps(b, p), b)
}

// Run is Recommend with per-step logging.
func Run(logger *zap.Logger, b *benefits.Benefits, p *Profile) *benefits.Benefits {
	return filtering.Run(logger, Steps(b, p), b)
}

type disabilityStep struct {
	enabled bool
}

func (s *disabilityStep) Name() string { return "disability" }

func (s *disabilityStep) Apply(b *benefits.Benefits) (*benefits.Benefits, filtering.Step) {
	return narrow(b, s.enabled, MatchesDisability)
}

type stateStep struct {
	state string
}

func (s *stateStep) Name() string { return "active_state" }

func (s *stateStep) Apply(b *benefits.Benefits) (*benefits.Benefits, filtering.Step) {
	return narrow(b, s.state != "", func(benefit *benefits.Benefit) (bool, string) {
		return MatchesState(benefit, s.state)
	})
}

type post911Step struct {
	enabled bool
}

func (s *post911Step) Name() string { return "post_911" }

func (s *post911Step) Apply(b *benefits.Benefits) (*benefits.Benefits, filtering.Step) {
	return narrow(b, s.enabled, MatchesPost911)
}

type wartimeUnionStep struct {
	enabled  bool
	original *benefits.Benefits
}

func (s *wartimeUnionStep) Name() string { return "wartime_union" }

// Apply is additive, not narrowing: wartime candidates come from the
// original catalog and are appended unless a record with the same title is
// already present. Wartime eligibility can restore benefits an earlier
// step excluded.
func (s *wartimeUnionStep) Apply(b *benefits.Benefits) (*benefits.Benefits, filtering.Step) {
	initial := b.Len()
	if !s.enabled {
		return b, filtering.Step{Initial: initial, Left: initial}
	}

	items := make([]*benefits.Benefit, initial, initial+s.original.Len())
	copy(items, b.Items)

	present := make(map[string]struct{}, initial)
	for _, benefit := range b.Items {
		present[benefit.Title] = struct{}{}
	}

	for _, candidate := range s.original.Items {
		if candidate.Title == "" {
			continue
		}
		if _, ok := present[candidate.Title]; ok {
			continue
		}
		if matched, _ := MatchesWartime(candidate); matched {
			items = append(items, candidate)
			present[candidate.Title] = struct{}{}
		}
	}

	next := &benefits.Benefits{Items: items}
	return next, filtering.Step{Initial: initial, Left: next.Len()}
}

func narrow(b *benefits.Benefits, enabled bool, match func(*benefits.Benefit) (bool, string)) (*benefits.Benefits, filtering.Step) {
	initial := b.Len()
	if !enabled {
		return b, filtering.Step{Initial: initial, Left: initial}
	}

	kept := make([]*benefits.Benefit, 0, initial)
	for _, benefit := range b.Items {
		if matched, _ := match(benefit); matched {
			kept = append(kept, benefit)
		}
	}

	next := &benefits.Benefits{Items: kept}
	return next, filtering.Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}
