package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage configuration files.

Subcommands:
  init     - Generate a configuration file with the Albion presets
  validate - Validate an existing configuration file

Examples:
  albion config init --output albion.yaml
  albion config validate --file albion.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a configuration file with the Albion presets: server settings,
logging, the overdue check, the late-interest rate table and the lease
defaults. The format follows the extension (YAML for .yaml/.yml, JSON otherwise).

Example:
  albion config init --output albion.yaml`,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Check if a configuration file is valid and can be loaded.

Example:
  albion config validate --file albion.yaml`,
	RunE: runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "albion.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.Default().SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(out, "\nEdit the file and run with:")
	fmt.Fprintf(out, "  albion serve --config %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	c, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	defaults, err := c.Defaults()
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(out, "  Server: port %d, database %q\n", c.Server.Port, c.Server.DBPath)
	fmt.Fprintf(out, "  Judgment: %s\n", defaults.JudgmentDate)
	fmt.Fprintf(out, "  Rates: %d entries\n", len(defaults.Rates.Entries()))
	if c.Scheduler.Enabled {
		fmt.Fprintf(out, "  Overdue check: every %s\n", c.Scheduler.Interval)
	} else {
		fmt.Fprintln(out, "  Overdue check: disabled")
	}
	return nil
}
