// Package filtering narrows a benefits catalog against user-supplied
// criteria. Each criteria dimension is a named step; all supplied
// dimensions must match (logical AND). Filtering is pure and preserves
// catalog order, so running the same criteria twice is a no-op on the
// second pass.
package filtering

import (
	"go.uber.org/zap"

	"github.com/spigell/vetnav/internal/benefits"
)

// All is the sentinel criteria value meaning "no constraint".
const All = "all"

// Filter represents a single filtering step applied to benefits.
type Filter interface {
	Name() string
	Apply(b *benefits.Benefits) (*benefits.Benefits, Step)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Criteria holds the transient, user-editable filter dimensions. The zero
// value (or the "all" sentinel on string dimensions) imposes no constraint.
type Criteria struct {
	Category      string   `json:"category,omitempty" mapstructure:"category"`
	State         string   `json:"state,omitempty" mapstructure:"state"`
	Level         string   `json:"level,omitempty" mapstructure:"level"`
	Underutilized *bool    `json:"underutilized,omitempty" mapstructure:"underutilized"`
	Tags          []string `json:"tags,omitempty" mapstructure:"tags"`
	Keyword       string   `json:"keyword,omitempty" mapstructure:"keyword"`
}

// IsZero reports whether no dimension is constrained.
func (c Criteria) IsZero() bool {
	return !constrained(c.Category) &&
		!constrained(c.State) &&
		!constrained(c.Level) &&
		c.Underutilized == nil &&
		len(c.Tags) == 0 &&
		c.Keyword == ""
}

func constrained(v string) bool {
	return v != "" && v != All
}

// Steps builds the pipeline of dimension filters for the given criteria.
// Unconstrained dimensions still appear as steps; they pass everything
// through and report zero drops.
func Steps(c Criteria) []Filter {
	return []Filter{
		&categoryFilter{category: c.Category},
		&stateFilter{state: c.State},
		&levelFilter{level: c.Level},
		&underutilizedFilter{value: c.Underutilized},
		&tagsFilter{tags: c.Tags},
		&keywordFilter{keyword: c.Keyword},
	}
}

// Apply filters the catalog against the criteria. Pure and order-preserving.
func Apply(b *benefits.Benefits, c Criteria) *benefits.Benefits {
	return Run(nil, Steps(c), b)
}

// Run executes the supplied filters sequentially, logging a report per step.
func Run(logger *zap.Logger, steps []Filter, b *benefits.Benefits) *benefits.Benefits {
	for _, step := range steps {
		next, info := step.Apply(b)

		if logger != nil && info.Left != info.Initial {
			logger.Info("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		b = next
	}

	return b
}

// keep builds a new list of the benefits satisfying the predicate,
// preserving input order. The input list is never mutated.
func keep(b *benefits.Benefits, match func(*benefits.Benefit) bool) (*benefits.Benefits, Step) {
	initial := b.Len()
	kept := make([]*benefits.Benefit, 0, initial)
	for _, benefit := range b.Items {
		if match(benefit) {
			kept = append(kept, benefit)
		}
	}

	next := &benefits.Benefits{Items: kept}
	return next, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}
