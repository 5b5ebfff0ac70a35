package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the albion CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "albion version %s\n", version)
		fmt.Fprintln(out, "Creditor claim and post-judgment rent monitor for commercial leases")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
