package cli

import (
	"fmt"
	"os"

	"github.com/vintagehost/vsctl/internal/gitver"
)

// NextVersionOptions holds configuration for the next-version command.
type NextVersionOptions struct {
	WorkDir string `validate:"required"`
}

// NextVersionRun prints the current and next semantic version without any
// side effects. Returns the process exit code.
func NextVersionRun(opts NextVersionOptions) int {
	if err := validate.Struct(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid next-version options: %v\n", err)
		return 1
	}

	resolver, err := gitver.Open(opts.WorkDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	last := resolver.LastVersion()
	fmt.Printf("Current version: %s\n", last)

	commits := resolver.CommitsSince(last)
	next, ok := gitver.NextVersion(last, commits)
	if !ok {
		fmt.Println("No new commits since last version.")
		return 0
	}
	if !last.IsZero() {
		fmt.Printf("Bump type: %s\n", gitver.ClassifyBump(commits))
	}
	fmt.Printf("Next version: %s\n", next)
	return 0
}
