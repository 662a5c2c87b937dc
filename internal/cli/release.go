package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vintagehost/vsctl/internal/gitver"
	"github.com/vintagehost/vsctl/internal/release"
)

// ReleaseOptions holds configuration for the release command.
type ReleaseOptions struct {
	// RepoFullName is the owner/name identifier of the repository; the part
	// after the last slash names the artifact.
	RepoFullName string `validate:"required,repo_full_name"`
	// WorkDir is the work tree to resolve, tag and package.
	WorkDir string `validate:"required"`
	// DryRun stops after printing the resolved version.
	DryRun bool
}

// RepoName returns the artifact base name: everything after the last slash
// of the full name.
func (o ReleaseOptions) RepoName() string {
	if i := strings.LastIndex(o.RepoFullName, "/"); i >= 0 {
		return o.RepoFullName[i+1:]
	}
	return o.RepoFullName
}

// ReleaseRun resolves the next semantic version and, unless dry-running,
// tags it, packages the work tree and publishes the release. Each step must
// succeed before the next one starts. Returns the process exit code.
func ReleaseRun(opts ReleaseOptions) int {
	if opts.RepoFullName == "" {
		fmt.Fprintln(os.Stderr, "Error: no repository configured: set --repo or GITHUB_REPOSITORY to the owner/name form")
		return 1
	}
	if err := validate.Struct(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid release options: %v\n", err)
		return 1
	}

	fmt.Printf("Repository: %s\n\n", opts.RepoName())

	resolver, err := gitver.Open(opts.WorkDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	last := resolver.LastVersion()
	fmt.Printf("Current version: %s\n", last)

	commits := resolver.CommitsSince(last)
	fmt.Printf("Found %d new commits\n\n", len(commits))

	next, ok := gitver.NextVersion(last, commits)
	if !ok {
		fmt.Println("No new commits since last version. No action needed.")
		return 0
	}
	if last.IsZero() {
		fmt.Println("No previous version found. Setting first version to 0.0.1")
	} else {
		fmt.Printf("Determined bump type: %s\n", gitver.ClassifyBump(commits))
	}
	fmt.Printf("New version: %s\n\n", next)

	if opts.DryRun {
		fmt.Println("Dry run - skipping tag, package and release.")
		return 0
	}

	fmt.Println("Creating git tag...")
	tagger := release.NewTagger(resolver.Repository())
	if err := tagger.Tag(next); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating git tag: %v\n", err)
		return 1
	}
	if err := tagger.Push(next); err != nil {
		fmt.Fprintf(os.Stderr, "Error pushing git tag: %v\n", err)
		return 1
	}
	fmt.Printf("Created and pushed git tag: %s\n", next)

	fmt.Println("\nCreating release artifact...")
	zipPath, err := release.Archive(opts.WorkDir, opts.RepoName(), next)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating release artifact: %v\n", err)
		return 1
	}
	fmt.Printf("Created zip file: %s\n", filepath.Base(zipPath))

	fmt.Println("\nCreating release...")
	publisher := &release.Publisher{Dir: opts.WorkDir}
	if err := publisher.Publish(next, zipPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating release: %v\n", err)
		return 1
	}
	fmt.Printf("Created release for %s\n", next)

	return 0
}
