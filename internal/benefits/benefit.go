package benefits

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
)

// Levels of government (or lack thereof) a benefit can originate from.
const (
	LevelFederal = "federal"
	LevelState   = "state"
	LevelLocal   = "local"
	LevelPrivate = "private"
)

// Editorial priority values populated by the catalog.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

var (
	// ValidLevels lists every accepted value of the level field.
	ValidLevels = []string{LevelFederal, LevelState, LevelLocal, LevelPrivate}

	// ValidCategories lists every accepted benefit category.
	ValidCategories = []string{
		"healthcare", "housing", "education", "employment",
		"financial", "burial", "other",
	}

	// ValidPriorities lists every accepted editorial priority.
	ValidPriorities = []string{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

	// ValidTags is the controlled tag vocabulary used across the catalog.
	ValidTags = []string{
		"active_duty", "wartime_service", "disability_rating", "service_connected",
		"spouse_eligible", "child_eligible", "survivor_benefit", "income_based",
		"asset_limit", "residency_required", "healthcare", "housing", "education",
		"employment", "financial", "tax_property", "entrepreneurship", "burial",
		"transportation", "veterans_home", "license_fee", "underutilized",
		"disability", "memorial", "family",
	}
)

// Benefits holds the catalog loaded for the session.
type Benefits struct {
	Items []*Benefit
}

// Benefit is a single immutable catalog entry.
type Benefit struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Level       string      `json:"level"`
	State       string      `json:"state,omitempty"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Eligibility []string    `json:"eligibility"`
	Application Application `json:"application"`
	Source      string      `json:"source"`
	Tags        []string    `json:"tags"`
	Priority    string      `json:"priority"`

	Underutilized       bool   `json:"underutilized,omitempty"`
	UnderutilizedReason string `json:"underutilizedReason,omitempty"`
}

// Application describes how a benefit is applied for.
type Application struct {
	URL          string `json:"url"`
	Instructions string `json:"instructions,omitempty"`
}

func (b *Benefits) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Items)
}

// FindByID returns the benefit with the given id, or nil when absent.
// A missing benefit is an expected state (stale links), not an error.
func (b *Benefits) FindByID(id string) *Benefit {
	for _, benefit := range b.Items {
		if benefit.ID == id {
			return benefit
		}
	}
	return nil
}

// FindByTitle returns the benefit with the given title, case-insensitively.
func (b *Benefits) FindByTitle(title string) *Benefit {
	for _, benefit := range b.Items {
		if strings.EqualFold(benefit.Title, title) {
			return benefit
		}
	}
	return nil
}

func (b *Benefits) Titles() []string {
	titles := make([]string, 0, b.Len())
	for _, benefit := range b.Items {
		titles = append(titles, benefit.Title)
	}
	return titles
}

// Categories returns the distinct categories present in the catalog, sorted.
func (b *Benefits) Categories() []string {
	return b.distinct(func(benefit *Benefit) []string {
		return []string{benefit.Category}
	})
}

// States returns the distinct state codes present in the catalog, sorted.
// Records without a state (federal and national-scope entries) are skipped.
func (b *Benefits) States() []string {
	return b.distinct(func(benefit *Benefit) []string {
		if benefit.State == "" {
			return nil
		}
		return []string{benefit.State}
	})
}

// Tags returns the distinct tags present in the catalog, sorted.
func (b *Benefits) Tags() []string {
	return b.distinct(func(benefit *Benefit) []string {
		return benefit.Tags
	})
}

func (b *Benefits) distinct(values func(*Benefit) []string) []string {
	seen := make(map[string]struct{})
	for _, benefit := range b.Items {
		for _, v := range values(benefit) {
			if v == "" {
				continue
			}
			seen[v] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// HasTag reports whether the benefit carries the given tag exactly.
func (b *Benefit) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// EligibilityText joins the eligibility clauses for substring scanning.
func (b *Benefit) EligibilityText() string {
	return strings.Join(b.Eligibility, " ")
}

// DumpToTmpFile writes the current list to a temporary JSON file and
// returns its name.
func (b *Benefits) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "benefits_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b.Items); err != nil {
		return "", err
	}
	return file.Name(), nil
}
