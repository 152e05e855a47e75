package cmd

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/vetnav/internal/recommend"
	"github.com/spigell/vetnav/internal/session"
)

const (
	answerYes  = "Yes"
	answerNo   = "No"
	answerSkip = "Skip"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Answer a short questionnaire to personalize recommendations",
	Run: func(_ *cobra.Command, _ []string) {
		profile()
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

// profile collects a veteran profile interactively and saves it wholesale:
// a new submission fully replaces any previously saved profile.
func profile() {
	logger, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	catalog := loadCatalog(config, logger)

	answers, err := collectProfile()
	if err != nil {
		logger.Fatal("collecting profile", zap.Error(err))
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

	if err := mgr.SetProfile(answers); err != nil {
		logger.Fatal("saving profile", zap.Error(err))
	}

	logger.Info("profile saved",
		zap.Int("recommended_benefits", mgr.Recommended().Len()),
		zap.String("hint", fmt.Sprintf("run '%s run --recommended' to see them", app)),
	)
}

func collectProfile() (*recommend.Profile, error) {
	p := &recommend.Profile{}
	var err error

	if p.HonorableDischarge, err = askYesNo("Did you receive an honorable discharge?"); err != nil {
		return nil, err
	}

	if p.HasServiceConnectedDisability, err = askYesNo("Do you have a service-connected disability?"); err != nil {
		return nil, err
	}
	if p.HasServiceConnectedDisability {
		if p.DisabilityRating, err = askInt("Disability rating (0-100, empty to skip)", 0, 100); err != nil {
			return nil, err
		}
	}

	if p.ServedAfter911, err = askYesNo("Did you serve after September 11, 2001?"); err != nil {
		return nil, err
	}

	if p.IsWarTimeVeteran, err = askYesNo("Did you serve during a period of war?"); err != nil {
		return nil, err
	}

	if p.ActiveState, err = askState("Your state of residence (two-letter code, empty to skip)"); err != nil {
		return nil, err
	}

	if p.IsLowIncome, err = askYesNo("Is your household income limited?"); err != nil {
		return nil, err
	}

	if p.EligibleForMedicaid, err = askYesNo("Are you eligible for Medicaid?"); err != nil {
		return nil, err
	}

	if p.Age, err = askInt("Your age (empty to skip)", 1, 130); err != nil {
		return nil, err
	}

	if p.Branch, err = askBranch(); err != nil {
		return nil, err
	}

	if p.YearsOfService, err = askInt("Years of service (empty to skip)", 0, 80); err != nil {
		return nil, err
	}

	return p, nil
}

// askYesNo treats both "No" and "Skip" as unset: a skipped answer means
// unknown, and the matching steps only ever act on an affirmative answer.
func askYesNo(label string) (bool, error) {
	question := promptui.Select{
		Label: label,
		Items: []string{answerYes, answerNo, answerSkip},
	}

	_, answer, err := question.Run()
	if err != nil {
		return false, err
	}
	return answer == answerYes, nil
}

func askInt(label string, minValue, maxValue int) (int, error) {
	question := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return nil
			}
			n, err := strconv.Atoi(strings.TrimSpace(input))
			if err != nil {
				return fmt.Errorf("enter a number")
			}
			if n < minValue || n > maxValue {
				return fmt.Errorf("enter a number between %d and %d", minValue, maxValue)
			}
			return nil
		},
	}

	answer, err := question.Run()
	if err != nil {
		return 0, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return 0, nil
	}
	return strconv.Atoi(answer)
}

func askState(label string) (string, error) {
	question := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			input = strings.TrimSpace(input)
			if input == "" {
				return nil
			}
			if len(input) != 2 {
				return fmt.Errorf("use a two-letter state code, e.g. CA")
			}
			return nil
		},
	}

	answer, err := question.Run()
	if err != nil {
		return "", err
	}
	return strings.ToUpper(strings.TrimSpace(answer)), nil
}

func askBranch() (string, error) {
	question := promptui.Select{
		Label: "Your branch of service",
		Items: append([]string{answerSkip}, recommend.Branches...),
	}

	_, answer, err := question.Run()
	if err != nil {
		return "", err
	}
	if answer == answerSkip {
		return "", nil
	}
	return answer, nil
}
