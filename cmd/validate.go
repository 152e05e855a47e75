package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/vetnav/internal/benefits"
)

var validateCmd = &cobra.Command{
	Use:   "validate <catalog.json>",
	Short: "Validate a benefits catalog file and report every schema violation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return validate(args[0])
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validate prints a per-record report and fails the run when any record is
// invalid, so the command is usable as a data-integrity gate in CI.
func validate(path string) error {
	catalog, recordErrs, err := benefits.LoadFile(path)
	if err != nil {
		return err
	}

	total := catalog.Len() + len(recordErrs)
	fmt.Printf("Validating %d benefits...\n", total)
	fmt.Printf("Total benefits processed: %d\n", total)
	fmt.Printf("Valid records: %d\n", catalog.Len())
	fmt.Printf("Invalid records: %d\n", len(recordErrs))

	if len(recordErrs) == 0 {
		fmt.Println("\nAll benefits are valid!")
		return nil
	}

	fmt.Println("\n===== VALIDATION ERRORS =====")
	for _, recordErr := range recordErrs {
		fmt.Printf("\nRecord #%d\n", recordErr.Index)
		fmt.Printf("Benefit ID: %s\n", orUnknown(recordErr.ID))
		fmt.Printf("Title: %q\n", orUnknown(recordErr.Title))
		fmt.Println("Issues found:")
		for _, issue := range recordErr.Issues {
			fmt.Printf("  - %s\n", issue)
		}
	}

	return errors.New("catalog contains invalid records")
}

func orUnknown(v string) string {
	if v == "" {
		return "UNKNOWN"
	}
	return v
}
