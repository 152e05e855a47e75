package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/vetnav/internal/filtering"
)

const (
	app = "vetnav"

	defaultCatalogPath = "benefitsMasterList.json"
	defaultSessionPath = "vetnav-session.db"
)

type Config struct {
	Catalog string              `mapstructure:"catalog"`
	Session *SessionConfig      `mapstructure:"session"`
	Filters *filtering.Criteria `mapstructure:"filters"`
	Export  *ExportConfig       `mapstructure:"export"`
}

type SessionConfig struct {
	Path string `mapstructure:"path"`
}

type ExportConfig struct {
	Directory string `mapstructure:"directory"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "vetnav is a cli for matching a veteran benefits catalog against your profile and filters",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("catalog", "VETNAV_CATALOG"); err != nil {
		log.Fatalf("binding VETNAV_CATALOG environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is vetnav.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("catalog", "", "path to the benefits catalog JSON file")
	rootCmd.PersistentFlags().String("session-db", "", "path to the session state database")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("catalog", rootCmd.PersistentFlags().Lookup("catalog"))
	viper.BindPFlag("session.path", rootCmd.PersistentFlags().Lookup("session-db"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// An explicitly requested config file must parse.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")

	// The config file is optional; everything has a flag or a default.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Catalog == "" {
		config.Catalog = defaultCatalogPath
	}
	if config.Session == nil {
		config.Session = &SessionConfig{}
	}
	if config.Session.Path == "" {
		config.Session.Path = defaultSessionPath
	}

	return config, nil
}
