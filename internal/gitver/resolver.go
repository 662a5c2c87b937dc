// Package gitver resolves the current and next semantic version of a Git
// repository from its tag and commit history, per conventional-commit rules.
package gitver

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/vintagehost/vsctl/internal/semver"
)

// Resolver reads tag and commit history from a single repository. History
// query failures degrade to conservative fallbacks (zero version, empty
// commit list) with a notice on the error writer: an unreleased or empty
// repository is a normal state, not a pipeline failure.
type Resolver struct {
	repo   *git.Repository
	errOut io.Writer
}

// Open locates the repository that path belongs to, seeking upwards for the
// .git directory the way the git CLI does.
func Open(path string) (*Resolver, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to find a Git repository that path %q belongs to: %w", path, err)
	}
	return NewResolver(repo), nil
}

// NewResolver wraps an already-open repository.
func NewResolver(repo *git.Repository) *Resolver {
	return &Resolver{repo: repo, errOut: os.Stderr}
}

// Repository exposes the underlying repository for tagging.
func (r *Resolver) Repository() *git.Repository {
	return r.repo
}

// LastVersion returns the highest MAJOR.MINOR.PATCH tag by numeric ordering,
// or the zero version when the repository carries no release tags or the
// listing fails.
func (r *Resolver) LastVersion() semver.Version {
	tags, err := r.repo.Tags()
	if err != nil {
		fmt.Fprintf(r.errOut, "Error listing tags: %v\n", err)
		return semver.Zero
	}

	last := semver.Zero
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !semver.IsVersionTag(name) {
			return nil
		}
		v, err := semver.Parse(name)
		if err != nil {
			return nil
		}
		if v.Compare(last) > 0 {
			last = v
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(r.errOut, "Error listing tags: %v\n", err)
		return semver.Zero
	}
	return last
}

// CommitsSince returns the commits reachable from HEAD but not from the
// given version's tag, most recent first. The exclusion covers every
// ancestor of the tagged commit, so commits brought in through merges are
// still counted. For the zero version the whole history from HEAD is
// returned. Failures degrade to an empty list.
func (r *Resolver) CommitsSince(last semver.Version) []Commit {
	head, err := r.repo.Head()
	if err != nil {
		fmt.Fprintf(r.errOut, "Error reading HEAD: %v\n", err)
		return nil
	}

	excluded := map[plumbing.Hash]bool{}
	if !last.IsZero() {
		rev, err := r.repo.ResolveRevision(plumbing.Revision(last.String()))
		if err != nil {
			fmt.Fprintf(r.errOut, "Error resolving tag %s: %v\n", last, err)
			return nil
		}
		tagged, err := r.repo.CommitObject(*rev)
		if err != nil {
			fmt.Fprintf(r.errOut, "Error reading tagged commit %s: %v\n", last, err)
			return nil
		}
		err = object.NewCommitPreorderIter(tagged, nil, nil).ForEach(func(c *object.Commit) error {
			excluded[c.Hash] = true
			return nil
		})
		if err != nil {
			fmt.Fprintf(r.errOut, "Error reading commit history: %v\n", err)
			return nil
		}
	}

	headCommit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		fmt.Fprintf(r.errOut, "Error reading HEAD commit: %v\n", err)
		return nil
	}

	var commits []Commit
	err = object.NewCommitPreorderIter(headCommit, excluded, nil).ForEach(func(c *object.Commit) error {
		commits = append(commits, newCommit(c))
		return nil
	})
	if err != nil {
		fmt.Fprintf(r.errOut, "Error reading commit history: %v\n", err)
		return nil
	}
	return commits
}

// Resolve computes the next version to release. ok is false when there is
// nothing new to release.
func (r *Resolver) Resolve() (next semver.Version, ok bool) {
	last := r.LastVersion()
	return NextVersion(last, r.CommitsSince(last))
}

// NextVersion applies the release rules: no commits means no release; a
// never-released repository bootstraps straight to 0.0.1 regardless of
// commit content; otherwise the classified bump is applied to last.
func NextVersion(last semver.Version, commits []Commit) (semver.Version, bool) {
	if len(commits) == 0 {
		return semver.Zero, false
	}
	if last.IsZero() {
		return semver.Version{Patch: 1}, true
	}
	return last.Bumped(ClassifyBump(commits)), true
}

// newCommit splits a commit message into subject (first line) and body
// (everything after it, leading blank lines stripped).
func newCommit(c *object.Commit) Commit {
	subject := c.Message
	body := ""
	if i := strings.IndexByte(c.Message, '\n'); i >= 0 {
		subject = c.Message[:i]
		body = strings.TrimLeft(c.Message[i+1:], "\n")
	}
	return Commit{
		Hash:    c.Hash.String(),
		Subject: strings.TrimSpace(subject),
		Body:    body,
	}
}
