package session

import (
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/vetnav/internal/benefits"
	"github.com/spigell/vetnav/internal/filtering"
	"github.com/spigell/vetnav/internal/recommend"
)

func testCatalog() *benefits.Benefits {
	return &benefits.Benefits{
		Items: []*benefits.Benefit{
			{
				ID:          "A",
				Title:       "VA Disability Compensation",
				Level:       benefits.LevelFederal,
				Category:    "healthcare",
				Description: "VA disability comp",
				Tags:        []string{"disability"},
				Eligibility: []string{"service-connected disability required"},
			},
			{
				ID:          "B",
				Title:       "CA Housing Grant",
				Level:       benefits.LevelState,
				State:       "CA",
				Category:    "housing",
				Description: "CA housing grant",
				Tags:        []string{"housing"},
			},
		},
	}
}

func ids(b *benefits.Benefits) []string {
	out := make([]string, 0, b.Len())
	for _, benefit := range b.Items {
		out = append(out, benefit.ID)
	}
	return out
}

func TestNewWithEmptyStoreUsesDefaults(t *testing.T) {
	t.Parallel()

	mgr, err := New(testCatalog(), NewMemoryStore(), zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !mgr.Criteria().IsZero() {
		t.Fatalf("expected empty criteria, got %+v", mgr.Criteria())
	}
	if mgr.Profile() != nil {
		t.Fatalf("expected no profile, got %+v", mgr.Profile())
	}
	if !reflect.DeepEqual(ids(mgr.Filtered()), []string{"A", "B"}) {
		t.Fatalf("expected the full catalog when unfiltered, got %v", ids(mgr.Filtered()))
	}
	if mgr.Recommended().Len() != 0 {
		t.Fatalf("expected no recommendations before a profile is submitted")
	}
}

func TestSetFiltersPersistsAndRecomputes(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	mgr, err := New(testCatalog(), store, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mgr.SetFilters(filtering.Criteria{Category: "housing"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(ids(mgr.Filtered()), []string{"B"}) {
		t.Fatalf("expected filtered subset [B], got %v", ids(mgr.Filtered()))
	}

	if _, ok, _ := store.Get(FiltersKey); !ok {
		t.Fatalf("expected filters to be persisted")
	}

	// A fresh manager over the same store restores the criteria.
	restored, err := New(testCatalog(), store, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.Criteria().Category != "housing" {
		t.Fatalf("expected restored criteria, got %+v", restored.Criteria())
	}
	if !reflect.DeepEqual(ids(restored.Filtered()), []string{"B"}) {
		t.Fatalf("expected restored subset [B], got %v", ids(restored.Filtered()))
	}
}

func TestSetProfilePersistsAndRecomputes(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	mgr, err := New(testCatalog(), store, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mgr.SetProfile(&recommend.Profile{HasServiceConnectedDisability: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(ids(mgr.Recommended()), []string{"A"}) {
		t.Fatalf("expected recommended subset [A], got %v", ids(mgr.Recommended()))
	}

	// A resubmitted profile replaces the previous one wholesale.
	if err := mgr.SetProfile(&recommend.Profile{ActiveState: "CA"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ids(mgr.Recommended()), []string{"A", "B"}) {
		t.Fatalf("expected recommended subset [A B], got %v", ids(mgr.Recommended()))
	}

	restored, err := New(testCatalog(), store, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.Profile() == nil || restored.Profile().ActiveState != "CA" {
		t.Fatalf("expected restored profile, got %+v", restored.Profile())
	}
	if !reflect.DeepEqual(ids(restored.Recommended()), []string{"A", "B"}) {
		t.Fatalf("expected restored recommendations, got %v", ids(restored.Recommended()))
	}
}

func TestClearFiltersRemovesPersistedCopy(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	mgr, err := New(testCatalog(), store, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mgr.SetFilters(filtering.Criteria{Category: "housing"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.ClearFilters(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !mgr.Criteria().IsZero() {
		t.Fatalf("expected criteria to reset, got %+v", mgr.Criteria())
	}
	if !reflect.DeepEqual(ids(mgr.Filtered()), []string{"A", "B"}) {
		t.Fatalf("expected the full catalog after clearing, got %v", ids(mgr.Filtered()))
	}
	if _, ok, _ := store.Get(FiltersKey); ok {
		t.Fatalf("expected the persisted filters to be removed")
	}
}

func TestNewFailsOnMalformedBlob(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if err := store.Set(FiltersKey, []byte("{not json")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := New(testCatalog(), store, zap.NewNop()); err == nil {
		t.Fatalf("expected a malformed persisted blob to fail the session up front")
	}
}
