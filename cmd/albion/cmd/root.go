package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/config"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/factory"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/generic"
	"github.com/cgarciahasapromotion-pixel/calculateur-albion/lease"
)

var (
	cfgFile  string
	logLevel string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "albion",
	Short: "Commercial lease creditor claim and post-judgment rent monitor",
	Long: `Albion computes what a landlord declares against a tenant in
insolvency proceedings, and follows the rent falling due after the judgment.

It provides tools for:
  - Declaring rent arrears, late interest, indemnities and TEOM at the judgment
  - Checking post-judgment rent against the payments received
  - Sampling balances over time for charts and exports
  - Serving the same computations over an HTTP API

Dossiers are YAML or JSON documents; settings the document leaves out come
from the configuration file (or the Albion presets).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			c.Log.Level = logLevel
			if _, err := log.ParseLevel(logLevel); err != nil {
				return fmt.Errorf("--log-level: %w", err)
			}
		}
		c.ApplyLogging()
		cfg = c
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file, YAML or JSON (default: Albion presets)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
}

// readDossier parses a dossier file with the configured defaults.
func readDossier(path string) (*lease.Dossier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dossier: %w", err)
	}
	defaults, err := cfg.Defaults()
	if err != nil {
		return nil, err
	}
	d, err := factory.NewDossierFactory(defaults).ParseDossier(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.WithFields(log.Fields{"dossier": d.Name, "mode": d.Mode, "payments": len(d.Payments)}).Debug("dossier loaded")
	return d, nil
}

// parseDateFlag returns def when the flag was left empty.
func parseDateFlag(name, value string, def generic.Date) (generic.Date, error) {
	if value == "" {
		return def, nil
	}
	d, err := generic.ParseDate(value)
	if err != nil {
		return generic.Date{}, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}
