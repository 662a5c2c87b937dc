package main

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags (available to all commands)
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vsctl",
	Short: "Vintage Story server configuration and release automation",
	Long: `vsctl generates the Vintage Story serverconfig.json from YAML defaults
and VS_CFG_ environment overrides, and automates semantic-version releases
from conventional commit history.`,
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// Add subcommands to root
	rootCmd.AddCommand(genConfigCmd)
	rootCmd.AddCommand(releaseCmd)
	rootCmd.AddCommand(nextVersionCmd)
	rootCmd.AddCommand(versionCmd)
}
