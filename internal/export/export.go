// Package export produces the printable artifact handed to the user: an
// XLSX workbook built from a finalized benefit list plus a snapshot of the
// criteria that selected it. The engine treats this as a best-effort
// external boundary; nothing here feeds back into matching.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/vetnav/internal/benefits"
	"github.com/spigell/vetnav/internal/filtering"
)

// ReportFilename is the fixed name used for a full-list export.
const ReportFilename = "veteran-benefits-report.xlsx"

const (
	benefitsSheet = "Benefits"
	metadataSheet = "Metadata"
)

var header = []string{
	"ID", "Title", "Level", "State", "Category", "Priority",
	"Description", "Eligibility", "Application URL", "Source",
	"Tags", "Underutilized", "Underutilized Reason",
}

// Metadata describes how and when the exported list was produced.
type Metadata struct {
	Criteria    filtering.Criteria
	GeneratedAt time.Time
}

// SuggestedFilename derives a filename from a single benefit's title:
// lowercased, whitespace collapsed to hyphens.
func SuggestedFilename(title string) string {
	name := strings.Join(strings.Fields(strings.ToLower(title)), "-")
	if name == "" {
		name = "benefit"
	}
	return name + ".xlsx"
}

// Write renders the benefit list and metadata as an XLSX workbook.
func Write(w io.Writer, b *benefits.Benefits, meta Metadata) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", benefitsSheet)

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("building header cell: %w", err)
		}
		if err := f.SetCellValue(benefitsSheet, cell, title); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, benefit := range b.Items {
		row := []any{
			benefit.ID,
			benefit.Title,
			benefit.Level,
			benefit.State,
			benefit.Category,
			benefit.Priority,
			benefit.Description,
			strings.Join(benefit.Eligibility, "; "),
			benefit.Application.URL,
			benefit.Source,
			strings.Join(benefit.Tags, ", "),
			benefit.Underutilized,
			benefit.UnderutilizedReason,
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("building cell for row %d: %w", i+2, err)
			}
			if err := f.SetCellValue(benefitsSheet, cell, value); err != nil {
				return fmt.Errorf("writing row %d: %w", i+2, err)
			}
		}
	}

	if _, err := f.NewSheet(metadataSheet); err != nil {
		return fmt.Errorf("creating metadata sheet: %w", err)
	}
	if err := writeMetadata(f, b.Len(), meta); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeMetadata(f *excelize.File, count int, meta Metadata) error {
	rows := [][2]any{
		{"Generated At", meta.GeneratedAt.Format(time.RFC3339)},
		{"Benefits Exported", count},
		{"Category Filter", orAll(meta.Criteria.Category)},
		{"State Filter", orAll(meta.Criteria.State)},
		{"Level Filter", orAll(meta.Criteria.Level)},
		{"Underutilized Filter", boolFilter(meta.Criteria.Underutilized)},
		{"Tag Filters", orAll(strings.Join(meta.Criteria.Tags, ", "))},
		{"Keyword", orAll(meta.Criteria.Keyword)},
	}

	for i, row := range rows {
		keyCell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("building metadata cell: %w", err)
		}
		valueCell, err := excelize.CoordinatesToCellName(2, i+1)
		if err != nil {
			return fmt.Errorf("building metadata cell: %w", err)
		}
		if err := f.SetCellValue(metadataSheet, keyCell, row[0]); err != nil {
			return fmt.Errorf("writing metadata: %w", err)
		}
		if err := f.SetCellValue(metadataSheet, valueCell, row[1]); err != nil {
			return fmt.Errorf("writing metadata: %w", err)
		}
	}
	return nil
}

func orAll(v string) string {
	if v == "" {
		return "all"
	}
	return v
}

func boolFilter(v *bool) string {
	if v == nil {
		return "all"
	}
	if *v {
		return "yes"
	}
	return "no"
}
