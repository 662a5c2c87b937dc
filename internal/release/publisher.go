package release

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/vintagehost/vsctl/internal/semver"
)

// ghBinary is the release-hosting CLI; it must be on PATH and authenticated.
const ghBinary = "gh"

// Publisher creates hosting-platform releases through the gh CLI.
type Publisher struct {
	// Dir is the working directory for the CLI invocation, normally the
	// repository root.
	Dir string
	// Out and ErrOut receive the CLI's output; they default to the process
	// streams.
	Out    io.Writer
	ErrOut io.Writer
}

// releaseArgs builds the gh argv for publishing version with the archive as
// the sole asset.
func releaseArgs(version semver.Version, assetPath string) []string {
	return []string{
		"release", "create", version.String(), assetPath,
		"--title", fmt.Sprintf("Release %s", version),
		"--notes", fmt.Sprintf("Automated release for version %s", version),
	}
}

// Publish creates the release for version, attaching the zip at assetPath.
// A CLI failure is propagated; there is no retry.
func (p *Publisher) Publish(version semver.Version, assetPath string) error {
	cmd := exec.Command(ghBinary, releaseArgs(version, assetPath)...)
	cmd.Dir = p.Dir
	cmd.Stdout = p.Out
	cmd.Stderr = p.ErrOut
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to create release %s with %s: %w", version, ghBinary, err)
	}
	return nil
}
