package cmd

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/vetnav/internal/benefits"
	"github.com/spigell/vetnav/internal/export"
	"github.com/spigell/vetnav/internal/session"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current results to a spreadsheet report",
	Run: func(cmd *cobra.Command, _ []string) {
		runExport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().BoolP("recommended", "r", false, "export profile-based recommendations instead of the filtered list")
	exportCmd.Flags().String("benefit", "", "export a single benefit by id")
	exportCmd.Flags().StringP("output", "o", "", "output file (default derives from the content)")
}

func runExport(cmd *cobra.Command) {
	logger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	catalog := loadCatalog(config, logger)

	store, err := session.OpenSQLite(config.Session.Path)
	if err != nil {
		logger.Fatal("opening session store", zap.Error(err))
	}
	defer store.Close()

	mgr, err := session.New(catalog, store, logger)
	if err != nil {
		logger.Fatal("restoring session", zap.Error(err))
	}

	list, filename := exportSelection(cmd, catalog, mgr, logger)

	if list.Len() == 0 {
		logger.Info("nothing to export", zap.String("reason", "no benefits match the current criteria"))
		return
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		filename = output
	} else if config.Export != nil && config.Export.Directory != "" {
		filename = filepath.Join(config.Export.Directory, filename)
	}

	if err := writeReport(filename, list, mgr.Criteria()); err != nil {
		logger.Fatal("writing report", zap.Error(err))
	}

	logger.Info("report written",
		zap.String("filename", filename),
		zap.Int("benefits", list.Len()),
	)
}

// exportSelection picks what to export: a single benefit by id, the
// recommended subset, or the filtered list.
func exportSelection(cmd *cobra.Command, catalog *benefits.Benefits, mgr *session.Manager, logger *zap.Logger) (*benefits.Benefits, string) {
	if id, _ := cmd.Flags().GetString("benefit"); id != "" {
		benefit := catalog.FindByID(id)
		if benefit == nil {
			logger.Fatal("benefit not found", zap.String("id", id))
		}
		single := &benefits.Benefits{Items: []*benefits.Benefit{benefit}}
		return single, export.SuggestedFilename(benefit.Title)
	}

	if recommended, _ := cmd.Flags().GetBool("recommended"); recommended {
		if mgr.Profile() == nil {
			logger.Fatal("no profile found",
				zap.String("hint", fmt.Sprintf("run '%s profile' to answer the questionnaire first", app)),
			)
		}
		return mgr.Recommended(), export.ReportFilename
	}

	return mgr.Filtered(), export.ReportFilename
}
