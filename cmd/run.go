package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/vetnav/internal/benefits"
	"github.com/spigell/vetnav/internal/export"
	"github.com/spigell/vetnav/internal/filtering"
	"github.com/spigell/vetnav/internal/grouping"
	"github.com/spigell/vetnav/internal/logger"
	"github.com/spigell/vetnav/internal/session"
)

const (
	PromptExportReport = "Export report"
	PromptDumpToFile   = "Dump benefits to file"
	PromptClearFilters = "Clear filters"
	PromptExit         = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptExportReport, PromptDumpToFile, PromptClearFilters, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Match the catalog against your saved filters and profile",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("category", "", "only benefits in this category")
	runCmd.Flags().String("state", "", "only benefits for this state (\"federal\" matches all federal benefits)")
	runCmd.Flags().String("level", "", "only benefits at this level (federal, state, local, private)")
	runCmd.Flags().String("underutilized", "", "only underutilized (yes) or non-underutilized (no) benefits")
	runCmd.Flags().StringSlice("tags", nil, "only benefits with at least one of these tags")
	runCmd.Flags().String("keyword", "", "only benefits whose title or description contains this keyword")
	runCmd.Flags().BoolP("recommended", "r", false, "show profile-based recommendations instead of the filtered list")
	runCmd.Flags().BoolP("non-interactive", "y", false, "print the results and exit without prompting")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	logger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting vetnav", zap.String("version", version))

	catalog := loadCatalog(config, logger)

	if catalog.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "catalog is empty"))
		return
	}

	store, err := session.OpenSQLite(config.Session.Path)
	if err != nil {
		logger.Fatal("opening session store", zap.Error(err))
	}
	defer store.Close()

	mgr, err := session.New(catalog, store, logger)
	if err != nil {
		logger.Fatal("restoring session", zap.Error(err))
	}

	if criteria, ok := criteriaFromFlags(cmd, config); ok {
		if err := validateCriteria(criteria); err != nil {
			logger.Fatal("invalid filter criteria", zap.Error(err))
		}
		if err := mgr.SetFilters(criteria); err != nil {
			logger.Fatal("setting filters", zap.Error(err))
		}
	}

	recommended, _ := cmd.Flags().GetBool("recommended")

	list := mgr.Filtered()
	if recommended {
		if mgr.Profile() == nil {
			logger.Fatal("no profile found",
				zap.String("hint", fmt.Sprintf("run '%s profile' to answer the questionnaire first", app)),
			)
		}
		list = mgr.Recommended()
	}

	if list.Len() == 0 {
		logger.Info("no benefits match the current criteria",
			zap.String("hint", "loosen the filters or clear them"),
		)
		return
	}

	grouped := grouping.Group(list, grouping.Editorial)
	if grouped.Dropped > 0 {
		logger.Warn("records with unrecognized priority were left out of the report",
			zap.Int("dropped", grouped.Dropped),
		)
	}

	printGrouped(grouped)
	logger.Info("current list of benefits", zap.Int("count", list.Len()))

	if nonInteractive, _ := cmd.Flags().GetBool("non-interactive"); nonInteractive {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, config, mgr, list); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, mgr *session.Manager, list *benefits.Benefits) error {
	switch action {
	case PromptExportReport:
		path := export.ReportFilename
		if config.Export != nil && config.Export.Directory != "" {
			path = filepath.Join(config.Export.Directory, path)
		}
		if err := writeReport(path, list, mgr.Criteria()); err != nil {
			return fmt.Errorf("export report: %w", err)
		}
		logger.Info("report written", zap.String("filename", path))
		return nil
	case PromptDumpToFile:
		filename, err := list.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptClearFilters:
		if err := mgr.ClearFilters(); err != nil {
			return fmt.Errorf("clear filters: %w", err)
		}
		logger.Info("filters cleared", zap.Int("benefits", mgr.Filtered().Len()))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// loadCatalog loads the configured catalog best-effort: invalid records are
// logged and skipped, only an unreadable payload is fatal.
func loadCatalog(config *Config, logger *zap.Logger) *benefits.Benefits {
	catalog, recordErrs, err := benefits.LoadFile(config.Catalog)
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err), zap.String("path", config.Catalog))
	}

	for _, recordErr := range recordErrs {
		logger.Warn("skipping invalid catalog record",
			zap.Int("index", recordErr.Index),
			zap.String("id", recordErr.ID),
			zap.String("title", recordErr.Title),
			zap.Strings("issues", recordErr.Issues),
		)
	}

	logger.Info("catalog loaded",
		zap.String("path", config.Catalog),
		zap.Int("benefits", catalog.Len()),
		zap.Int("skipped", len(recordErrs)),
	)

	return catalog
}

// criteriaFromFlags builds filter criteria from flags, falling back to the
// config file's filters section. The second result reports whether any
// source supplied criteria at all; when false, the persisted session
// criteria stay in effect.
func criteriaFromFlags(cmd *cobra.Command, config *Config) (filtering.Criteria, bool) {
	criteria := filtering.Criteria{}
	if config.Filters != nil {
		criteria = *config.Filters
	}

	set := config.Filters != nil

	if v, _ := cmd.Flags().GetString("category"); v != "" {
		criteria.Category = v
		set = true
	}
	if v, _ := cmd.Flags().GetString("state"); v != "" {
		criteria.State = v
		set = true
	}
	if v, _ := cmd.Flags().GetString("level"); v != "" {
		criteria.Level = v
		set = true
	}
	if v, _ := cmd.Flags().GetString("keyword"); v != "" {
		criteria.Keyword = v
		set = true
	}
	if v, _ := cmd.Flags().GetStringSlice("tags"); len(v) > 0 {
		criteria.Tags = v
		set = true
	}
	if v, _ := cmd.Flags().GetString("underutilized"); v != "" {
		value := v == "yes" || v == "true"
		criteria.Underutilized = &value
		set = true
	}

	return criteria, set
}

// validateCriteria rejects enum values outside the catalog vocabularies
// before they silently match nothing.
func validateCriteria(c filtering.Criteria) error {
	if c.Level != "" && c.Level != filtering.All && !contains(benefits.ValidLevels, c.Level) {
		return fmt.Errorf("unknown level %q (valid values: %s)", c.Level, strings.Join(benefits.ValidLevels, ", "))
	}
	if c.Category != "" && c.Category != filtering.All && !contains(benefits.ValidCategories, c.Category) {
		return fmt.Errorf("unknown category %q (valid values: %s)", c.Category, strings.Join(benefits.ValidCategories, ", "))
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func printGrouped(grouped *grouping.Grouped) {
	for _, bucket := range grouped.Order {
		items := grouped.Buckets[bucket]
		if len(items) == 0 {
			continue
		}

		fmt.Printf("\n== %s (%d)\n", bucket, len(items))
		for _, benefit := range items {
			scope := benefit.Level
			if benefit.State != "" {
				scope = fmt.Sprintf("%s/%s", benefit.Level, benefit.State)
			}
			fmt.Printf("  %-40s %-15s %s\n", benefit.Title, scope, benefit.Category)
		}
	}
	fmt.Println()
}

func writeReport(path string, list *benefits.Benefits, criteria filtering.Criteria) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return export.Write(file, list, export.Metadata{
		Criteria:    criteria,
		GeneratedAt: time.Now(),
	})
}

func newLogger() (*zap.Logger, error) {
	return logger.New(viper.GetBool("json"), viper.GetBool("debug"))
}
