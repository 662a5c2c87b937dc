package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vintagehost/vsctl/internal/cli"
)

var (
	// Command-specific flags for release
	repoFullName  string
	workDir       string
	releaseDryRun bool
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Tag, package and publish the next semantic version",
	Long: `Resolve the next semantic version from conventional commits, create and
push the version tag, package the work tree into a zip artifact, and publish
a release through the gh CLI.

Examples:
  vsctl release --repo vintagehost/vs-server
  vsctl release --dry-run`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.ReleaseOptions{
			RepoFullName: repoFullName,
			WorkDir:      workDir,
			DryRun:       releaseDryRun,
		}
		if opts.RepoFullName == "" {
			opts.RepoFullName = os.Getenv("GITHUB_REPOSITORY")
		}

		if code := cli.ReleaseRun(opts); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	// Release command specific flags
	releaseCmd.Flags().StringVar(&repoFullName, "repo", "", "Repository in owner/name form (default $GITHUB_REPOSITORY)")
	releaseCmd.Flags().StringVar(&workDir, "work-dir", ".", "Repository work tree to release")
	releaseCmd.Flags().BoolVar(&releaseDryRun, "dry-run", false, "Resolve and print the next version without tagging or publishing")
}
