// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the credit-engine CLI. It scores
// applicants from financial statements, a psychometric questionnaire and news
// sentiment, either one-off from the command line or as an HTTP service.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/credit-engine/internal/logging"
	"github.com/pdiddy/credit-engine/internal/secrets"
	"github.com/pdiddy/credit-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is resolved from flags, env, config file and .secrets/ before
	// any subcommand runs.
	cfg types.Config

	log zerolog.Logger
)

// rootCmd is the base command for the credit-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "credit-engine",
	Short: "Alternative credit scoring from financial, psychometric and news evidence",
	Long: `credit-engine turns heterogeneous applicant evidence into bounded scores
with a three-tier risk label.

Three independent pipelines are available: financial statements, a
psychometric questionnaire, and news sentiment about the applicant. Each can
be run on its own (score), all together for one applicant (assess), or served
over HTTP (serve).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		bootLog := logging.New(types.LogConfig{
			Level:  viper.GetString("log.level"),
			Pretty: viper.GetBool("log.pretty"),
		}, os.Stderr)

		store, err := secrets.Load(secrets.DefaultDir, bootLog)
		if err != nil {
			return err
		}
		if len(store) > 0 {
			keys := make([]string, 0, len(store))
			for k := range store {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			bootLog.Debug().Strs("keys", keys).Msg("loaded secrets")
		}

		cfg = configFrom(viper.GetViper(), store)
		log = logging.New(cfg.Log, os.Stderr)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./credit-engine.yaml or ~/.config/credit-engine/credit-engine.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-pretty", false, "human-readable log output")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))
}

func initConfig() {
	// A missing .env file is normal.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("credit-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "credit-engine"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("CREDIT_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
