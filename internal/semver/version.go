// Package semver implements the small slice of semantic versioning the
// release tooling needs: parsing MAJOR.MINOR.PATCH triples, ordering them
// numerically, and applying a bump level to produce the next version.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// versionRegex matches strict MAJOR.MINOR.PATCH release tags. Prefixed
// ("v1.2.3") or suffixed ("1.2.3-rc1") tags are not release tags here.
var versionRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Bump identifies which component of a version an increment applies to.
type Bump int

const (
	BumpPatch Bump = iota
	BumpMinor
	BumpMajor
)

func (b Bump) String() string {
	switch b {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	default:
		return "patch"
	}
}

// Version is an ordered MAJOR.MINOR.PATCH triple. The zero value ("0.0.0")
// doubles as the "repository has never been released" marker.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Zero is the version reported for repositories without any release tag.
var Zero = Version{}

// IsVersionTag reports whether tag is a release tag this tooling manages.
func IsVersionTag(tag string) bool {
	return versionRegex.MatchString(tag)
}

// Parse converts a MAJOR.MINOR.PATCH string into a Version.
func Parse(s string) (Version, error) {
	if !versionRegex.MatchString(s) {
		return Zero, fmt.Errorf("invalid version %q: expected MAJOR.MINOR.PATCH", s)
	}
	parts := strings.SplitN(s, ".", 3)
	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Zero, fmt.Errorf("invalid version %q: %w", s, err)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustParse is Parse for statically known inputs; it panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// IsZero reports whether v is the never-released marker version.
func (v Version) IsZero() bool {
	return v == Zero
}

// Compare orders versions numerically by component. It returns -1 when v is
// lower than o, 0 when equal, and 1 when higher, so that "1.10.0" sorts
// above "1.2.3".
func (v Version) Compare(o Version) int {
	pairs := [3][2]int{
		{v.Major, o.Major},
		{v.Minor, o.Minor},
		{v.Patch, o.Patch},
	}
	for _, p := range pairs {
		if p[0] != p[1] {
			if p[0] < p[1] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Bumped returns the next version for the given bump level. A major bump
// zeroes minor and patch, a minor bump zeroes patch, and a patch bump only
// increments the patch component.
func (v Version) Bumped(b Bump) Version {
	switch b {
	case BumpMajor:
		return Version{Major: v.Major + 1}
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}
