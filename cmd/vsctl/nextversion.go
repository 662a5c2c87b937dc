package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vintagehost/vsctl/internal/cli"
)

var nextVersionWorkDir string

var nextVersionCmd = &cobra.Command{
	Use:   "next-version",
	Short: "Print the current and next semantic version",
	Long: `Inspect the repository's tags and conventional commit history and print
the version a release would publish, without creating anything.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.NextVersionOptions{WorkDir: nextVersionWorkDir}
		if code := cli.NextVersionRun(opts); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	nextVersionCmd.Flags().StringVar(&nextVersionWorkDir, "work-dir", ".", "Repository work tree to inspect")
}
