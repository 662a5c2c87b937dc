package gitver

import (
	"regexp"
	"strings"

	"github.com/vintagehost/vsctl/internal/semver"
)

// Commit is the slice of a commit record the bump classification needs.
type Commit struct {
	Hash    string
	Subject string
	Body    string
}

// breakingToken in a subject or body marks a breaking change regardless of
// the commit type prefix.
const breakingToken = "BREAKING CHANGE:"

var (
	// breakingSubjectRegex matches the bang form of a breaking feat or fix.
	breakingSubjectRegex = regexp.MustCompile(`^(feat|fix)!:`)
	// featSubjectRegex matches a plain feature commit.
	featSubjectRegex = regexp.MustCompile(`^feat:`)
)

// ClassifyBump scans commits in the order given (most recent first) and
// returns the bump level their conventional-commit markers call for. The
// scan short-circuits on the first breaking change; commits without any
// recognized prefix default the result to a patch bump.
func ClassifyBump(commits []Commit) semver.Bump {
	minor := false
	for _, c := range commits {
		if strings.Contains(c.Subject, breakingToken) || strings.Contains(c.Body, breakingToken) {
			return semver.BumpMajor
		}
		if breakingSubjectRegex.MatchString(c.Subject) {
			return semver.BumpMajor
		}
		if featSubjectRegex.MatchString(c.Subject) {
			minor = true
		}
	}
	if minor {
		return semver.BumpMinor
	}
	return semver.BumpPatch
}
