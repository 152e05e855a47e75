package recommend

import (
	"reflect"
	"testing"

	"github.com/spigell/vetnav/internal/benefits"
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
				Eligibility: []string{"California residency"},
			},
			{
				ID:          "W",
				Title:       "Wartime Pension",
				Level:       benefits.LevelFederal,
				Category:    "financial",
				Description: "Pension for wartime veterans",
				Tags:        []string{"wartime_service"},
				Eligibility: []string{"wartime service during a recognized period"},
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

func TestRecommendWithEmptyProfile(t *testing.T) {
	t.Parallel()

	got := Recommend(testCatalog(), &Profile{})
	if !reflect.DeepEqual(ids(got), []string{"A", "B", "W"}) {
		t.Fatalf("expected every step to be skipped for an empty profile, got %v", ids(got))
	}

	got = Recommend(testCatalog(), nil)
	if !reflect.DeepEqual(ids(got), []string{"A", "B", "W"}) {
		t.Fatalf("expected a nil profile to behave like an empty one, got %v", ids(got))
	}
}

func TestRecommendDisabilityNarrowing(t *testing.T) {
	t.Parallel()

	got := Recommend(testCatalog(), &Profile{HasServiceConnectedDisability: true})
	if !reflect.DeepEqual(ids(got), []string{"A"}) {
		t.Fatalf("expected only the disability benefit, got %v", ids(got))
	}

	for _, benefit := range got.Items {
		if matched, _ := MatchesDisability(benefit); !matched {
			t.Fatalf("record %s in the output does not satisfy the disability predicate", benefit.ID)
		}
	}
}

func TestRecommendStateNarrowing(t *testing.T) {
	t.Parallel()

	// A and W kept because federal, B kept because of the state match.
	got := Recommend(testCatalog(), &Profile{ActiveState: "CA"})
	if !reflect.DeepEqual(ids(got), []string{"A", "B", "W"}) {
		t.Fatalf("unexpected state narrowing result: %v", ids(got))
	}

	got = Recommend(testCatalog(), &Profile{ActiveState: "TX"})
	if !reflect.DeepEqual(ids(got), []string{"A", "W"}) {
		t.Fatalf("expected the CA grant to drop for a TX resident, got %v", ids(got))
	}
}

func TestRecommendWartimeUnionRestoresExcludedRecords(t *testing.T) {
	t.Parallel()

	// The disability step removes the wartime pension; the wartime step
	// must bring it back from the original catalog.
	got := Recommend(testCatalog(), &Profile{
		HasServiceConnectedDisability: true,
		IsWarTimeVeteran:              true,
	})

	if !reflect.DeepEqual(ids(got), []string{"A", "W"}) {
		t.Fatalf("expected the wartime union to restore W, got %v", ids(got))
	}
}

func TestRecommendWartimeUnionDoesNotDuplicate(t *testing.T) {
	t.Parallel()

	got := Recommend(testCatalog(), &Profile{IsWarTimeVeteran: true})

	seen := make(map[string]int)
	for _, benefit := range got.Items {
		seen[benefit.Title]++
	}
	for title, count := range seen {
		if count > 1 {
			t.Fatalf("benefit %q appears %d times", title, count)
		}
	}

	if got.FindByTitle("Wartime Pension") == nil {
		t.Fatalf("expected the wartime benefit to be present")
	}
}

func TestRecommendPost911Narrowing(t *testing.T) {
	t.Parallel()

	catalog := &benefits.Benefits{
		Items: []*benefits.Benefit{
			{ID: "gi", Title: "Post-9/11 GI Bill", Eligibility: []string{"Post-9/11 service required"}},
			{ID: "old", Title: "Vietnam Era Pension", Eligibility: []string{"service during the Vietnam era period"}},
			{ID: "open", Title: "Open Benefit", Eligibility: []string{"honorable discharge"}},
		},
	}

	got := Recommend(catalog, &Profile{ServedAfter911: true})
	if !reflect.DeepEqual(ids(got), []string{"gi", "open"}) {
		t.Fatalf("unexpected post-9/11 narrowing: %v", ids(got))
	}
}

func TestRecommendDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()
	Recommend(catalog, &Profile{HasServiceConnectedDisability: true, IsWarTimeVeteran: true})

	if !reflect.DeepEqual(ids(catalog), []string{"A", "B", "W"}) {
		t.Fatalf("input catalog was mutated: %v", ids(catalog))
	}
}

func TestRecommendConcreteScenario(t *testing.T) {
	t.Parallel()

	catalog := &benefits.Benefits{
		Items: []*benefits.Benefit{
			{
				ID: "A", Title: "A", Level: benefits.LevelFederal, Category: "healthcare",
				Tags: []string{"disability"}, Description: "VA disability comp",
				Eligibility: []string{"service-connected disability required"},
			},
			{
				ID: "B", Title: "B", Level: benefits.LevelState, State: "CA", Category: "housing",
				Tags: []string{"housing"}, Description: "CA housing grant",
				Eligibility: []string{"California residency"},
			},
		},
	}

	if got := Recommend(catalog, &Profile{HasServiceConnectedDisability: true}); !reflect.DeepEqual(ids(got), []string{"A"}) {
		t.Fatalf("disability profile: expected [A], got %v", ids(got))
	}

	if got := Recommend(catalog, &Profile{ActiveState: "CA"}); !reflect.DeepEqual(ids(got), []string{"A", "B"}) {
		t.Fatalf("CA profile: expected [A B], got %v", ids(got))
	}
}

func TestValidBranch(t *testing.T) {
	t.Parallel()

	if !ValidBranch(BranchArmy) {
		t.Fatalf("expected army to be a valid branch")
	}
	if ValidBranch("starfleet") {
		t.Fatalf("expected an unknown branch to be invalid")
	}
}
