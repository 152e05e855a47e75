package filtering

import (
	"strings"

	"github.com/spigell/vetnav/internal/benefits"
)

type categoryFilter struct {
	category string
}

func (f *categoryFilter) Name() string { return "category" }

func (f *categoryFilter) Apply(b *benefits.Benefits) (*benefits.Benefits, Step) {
	if !constrained(f.category) {
		return b, Step{Initial: b.Len(), Left: b.Len()}
	}

	return keep(b, func(benefit *benefits.Benefit) bool {
		return benefit.Category == f.category
	})
}

type stateFilter struct {
	state string
}

func (f *stateFilter) Name() string { return "state" }

// The "federal" state value is a special case: it matches every federal
// benefit regardless of the record's own state field.
func (f *stateFilter) Apply(b *benefits.Benefits) (*benefits.Benefits, Step) {
	if !constrained(f.state) {
		return b, Step{Initial: b.Len(), Left: b.Len()}
	}

	return keep(b, func(benefit *benefits.Benefit) bool {
		if f.state == benefits.LevelFederal && benefit.Level == benefits.LevelFederal {
			return true
		}
		return benefit.State == f.state
	})
}

type levelFilter struct {
	level string
}

func (f *levelFilter) Name() string { return "level" }

func (f *levelFilter) Apply(b *benefits.Benefits) (*benefits.Benefits, Step) {
	if !constrained(f.level) {
		return b, Step{Initial: b.Len(), Left: b.Len()}
	}

	return keep(b, func(benefit *benefits.Benefit) bool {
		return benefit.Level == f.level
	})
}

type underutilizedFilter struct {
	value *bool
}

func (f *underutilizedFilter) Name() string { return "underutilized" }

func (f *underutilizedFilter) Apply(b *benefits.Benefits) (*benefits.Benefits, Step) {
	if f.value == nil {
		return b, Step{Initial: b.Len(), Left: b.Len()}
	}

	return keep(b, func(benefit *benefits.Benefit) bool {
		return benefit.Underutilized == *f.value
	})
}

type tagsFilter struct {
	tags []string
}

func (f *tagsFilter) Name() string { return "tags" }

// Tags match with OR semantics: one shared tag is enough.
func (f *tagsFilter) Apply(b *benefits.Benefits) (*benefits.Benefits, Step) {
	if len(f.tags) == 0 {
		return b, Step{Initial: b.Len(), Left: b.Len()}
	}

	return keep(b, func(benefit *benefits.Benefit) bool {
		for _, tag := range f.tags {
			if benefit.HasTag(tag) {
				return true
			}
		}
		return false
	})
}

type keywordFilter struct {
	keyword string
}

func (f *keywordFilter) Name() string { return "keyword" }

func (f *keywordFilter) Apply(b *benefits.Benefits) (*benefits.Benefits, Step) {
	if f.keyword == "" {
		return b, Step{Initial: b.Len(), Left: b.Len()}
	}

	keyword := strings.ToLower(f.keyword)
	return keep(b, func(benefit *benefits.Benefit) bool {
		return strings.Contains(strings.ToLower(benefit.Title), keyword) ||
			strings.Contains(strings.ToLower(benefit.Description), keyword)
	})
}
