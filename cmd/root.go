package cmd

import (
	"errors"
	"log"

	"paperscout/internal/arxiv"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "paper-scout"
)

type Config struct {
	Search    *arxiv.SearchParams `mapstructure:"search"`
	SeenFile  string              `mapstructure:"seen-file"`
	UserAgent string              `mapstructure:"user-agent"`
	MinScore  int                 `mapstructure:"min-score"`
	Output    *OutputConfig       `mapstructure:"output"`
}

type OutputConfig struct {
	Dir    string `mapstructure:"dir"`
	TopN   int    `mapstructure:"top-n"`
	Report bool   `mapstructure:"report"`
	HTML   bool   `mapstructure:"html"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "paper-scout fetches recent arXiv papers and scores their fit against code + judged-submission data",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is paper-scout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional: every setting has a flag or a default.
	// A file that exists but fails to parse is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config Config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &config,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, err
	}

	if config.Search == nil {
		config.Search = &arxiv.SearchParams{}
	}
	if config.Output == nil {
		config.Output = &OutputConfig{}
	}

	return &config, nil
}
