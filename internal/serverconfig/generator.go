package serverconfig

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"dario.cat/mergo"
)

// ErrNoDefaults reports the missing-defaults-file precondition. Callers use
// it to distinguish the precondition failure from runtime failures; both end
// the run.
var ErrNoDefaults = errors.New("defaults file does not exist")

// Generator merges the YAML defaults document with environment overrides and
// writes the result as JSON. Process state (environment, paths) is injected
// by the caller rather than read ambiently, so runs are testable in a plain
// temp directory.
type Generator struct {
	// DefaultsPath locates the YAML defaults document. The file must exist.
	DefaultsPath string
	// OutputPath is where the merged JSON document is written. Any previous
	// file at this path is renamed to a ".backup" sibling first.
	OutputPath string
	// Env holds the override variables, usually the VS_CFG_ subset of the
	// process environment.
	Env map[string]string
	// DryRun applies overrides and prints the summary without touching the
	// filesystem output.
	DryRun bool
	// Out receives progress output; defaults to os.Stdout.
	Out io.Writer
}

func (g *Generator) out() io.Writer {
	if g.Out != nil {
		return g.Out
	}
	return os.Stdout
}

// Run executes the full generation: load defaults, apply overrides, back up
// any previous output, write the merged JSON and print a summary. It returns
// ErrNoDefaults (wrapped) when the defaults document is missing.
func (g *Generator) Run() error {
	if _, err := os.Stat(g.DefaultsPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNoDefaults, g.DefaultsPath)
		}
		return fmt.Errorf("failed to stat defaults file %s: %w", g.DefaultsPath, err)
	}

	doc, err := LoadDefaults(g.DefaultsPath)
	if err != nil {
		return err
	}

	if !g.DryRun {
		if err := backupExisting(g.OutputPath, g.out()); err != nil {
			return err
		}
	}

	fmt.Fprintf(g.out(), "Generating serverconfig.json at %s\n", g.OutputPath)
	if err := g.applyOverrides(doc); err != nil {
		return err
	}

	if !g.DryRun {
		if err := writeJSON(g.OutputPath, doc); err != nil {
			return err
		}
	}

	g.printSummary(doc)
	return nil
}

// applyOverrides merges the recognized environment overrides into doc. The
// creative-mode variable is consumed in a pre-pass (nested, boolean-parsed)
// so the flat merge never sees it twice.
func (g *Generator) applyOverrides(doc Document) error {
	env := make(map[string]string, len(g.Env))
	for key, value := range g.Env {
		env[key] = value
	}

	if raw, ok := env[creativeModeEnv]; ok {
		fmt.Fprintln(g.out(), "Allowing Creative Mode")
		world, ok := doc["WorldConfig"].(map[string]any)
		if !ok {
			world = map[string]any{}
			doc["WorldConfig"] = world
		}
		world["AllowCreativeMode"] = ParseBool(raw)
		delete(env, creativeModeEnv)
	}

	overrides := Document{}
	for key, value := range env {
		field, ok := envSettingMap[key]
		if !ok {
			continue
		}
		overrides[field] = value
	}
	if len(overrides) == 0 {
		return nil
	}

	if err := mergo.Merge(&doc, overrides, mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to merge environment overrides: %w", err)
	}

	fmt.Fprintln(g.out(), "Applied the following overrides from environment variables:")
	fields := make([]string, 0, len(overrides))
	for field := range overrides {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(g.out(), "  %s: %v\n", field, overrides[field])
	}
	return nil
}

// printSummary emits the human-readable digest of the generated document.
func (g *Generator) printSummary(doc Document) {
	w := g.out()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Successfully generated serverconfig.json")
	fmt.Fprintf(w, "Server Name: %v\n", doc["ServerName"])
	fmt.Fprintf(w, "Port: %v\n", doc["Port"])
	fmt.Fprintf(w, "Max Clients: %v\n", doc["MaxClients"])
	if cmds, ok := doc["StartupCommands"]; ok && cmds != nil {
		fmt.Fprintf(w, "Startup Commands: %v\n", cmds)
	}
}
