// Package release turns a resolved version into a published release: a tag
// on origin, a zip artifact of the work tree, and a hosting-platform release
// carrying that artifact.
package release

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"

	"github.com/vintagehost/vsctl/internal/semver"
)

// Tagger creates and publishes release tags on a repository.
type Tagger struct {
	repo *git.Repository
}

func NewTagger(repo *git.Repository) *Tagger {
	return &Tagger{repo: repo}
}

// Tag creates a lightweight tag named exactly after the version on the
// current HEAD. An already-existing tag is a hard failure: it is the guard
// against publishing the same version twice.
func (t *Tagger) Tag(version semver.Version) error {
	head, err := t.repo.Head()
	if err != nil {
		return fmt.Errorf("failed to read HEAD: %w", err)
	}
	if _, err := t.repo.CreateTag(version.String(), head.Hash(), nil); err != nil {
		return fmt.Errorf("failed to create tag %s: %w", version, err)
	}
	return nil
}

// Push publishes the version tag to the origin remote.
func (t *Tagger) Push(version semver.Version) error {
	refspec := gitconfig.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", version, version))
	err := t.repo.Push(&git.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []gitconfig.RefSpec{refspec},
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push tag %s to origin: %w", version, err)
	}
	return nil
}
