package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/vetnav/internal/benefits"
	"github.com/spigell/vetnav/internal/filtering"
)

func TestSuggestedFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"VA Disability Compensation", "va-disability-compensation.xlsx"},
		{"  Post-9/11   GI Bill ", "post-9/11-gi-bill.xlsx"},
		{"", "benefit.xlsx"},
		{"   ", "benefit.xlsx"},
	}

	for _, tt := range tests {
		if got := SuggestedFilename(tt.title); got != tt.want {
			t.Fatalf("SuggestedFilename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestWriteWorkbook(t *testing.T) {
	t.Parallel()

	list := &benefits.Benefits{
		Items: []*benefits.Benefit{
			{
				ID:          "A",
				Title:       "VA Disability Compensation",
				Level:       benefits.LevelFederal,
				Category:    "healthcare",
				Description: "Monthly compensation",
				Eligibility: []string{"service-connected disability", "honorable discharge"},
				Application: benefits.Application{URL: "https://va.gov/disability"},
				Source:      "VA",
				Tags:        []string{"disability", "financial"},
				Priority:    benefits.PriorityCritical,
			},
			{
				ID:                  "B",
				Title:               "CA Housing Grant",
				Level:               benefits.LevelState,
				State:               "CA",
				Category:            "housing",
				Description:         "State housing grant",
				Application:         benefits.Application{URL: "https://calvet.ca.gov"},
				Source:              "CalVet",
				Tags:                []string{"housing"},
				Priority:            benefits.PriorityMedium,
				Underutilized:       true,
				UnderutilizedReason: "low awareness",
			},
		},
	}

	generatedAt := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	meta := Metadata{
		Criteria:    filtering.Criteria{Category: "housing", Keyword: "grant"},
		GeneratedAt: generatedAt,
	}

	var buf bytes.Buffer
	if err := Write(&buf, list, meta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(benefitsSheet)
	if err != nil {
		t.Fatalf("reading benefits sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected a header plus 2 rows, got %d rows", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][1] != "Title" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "A" || rows[1][7] != "service-connected disability; honorable discharge" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[2][0] != "B" || rows[2][12] != "low awareness" {
		t.Fatalf("unexpected second row: %v", rows[2])
	}

	metaRows, err := f.GetRows(metadataSheet)
	if err != nil {
		t.Fatalf("reading metadata sheet: %v", err)
	}
	got := make(map[string]string, len(metaRows))
	for _, row := range metaRows {
		if len(row) >= 2 {
			got[row[0]] = row[1]
		}
	}

	if got["Generated At"] != generatedAt.Format(time.RFC3339) {
		t.Fatalf("unexpected timestamp: %q", got["Generated At"])
	}
	if got["Benefits Exported"] != "2" {
		t.Fatalf("unexpected export count: %q", got["Benefits Exported"])
	}
	if got["Category Filter"] != "housing" {
		t.Fatalf("unexpected category snapshot: %q", got["Category Filter"])
	}
	if got["State Filter"] != "all" {
		t.Fatalf("unexpected state snapshot: %q", got["State Filter"])
	}
	if got["Underutilized Filter"] != "all" {
		t.Fatalf("unexpected underutilized snapshot: %q", got["Underutilized Filter"])
	}
	if got["Keyword"] != "grant" {
		t.Fatalf("unexpected keyword snapshot: %q", got["Keyword"])
	}
}

func TestWriteEmptyList(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Write(&buf, &benefits.Benefits{}, Metadata{GeneratedAt: time.Now()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(benefitsSheet)
	if err != nil {
		t.Fatalf("reading benefits sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected only the header row, got %d rows", len(rows))
	}
}
