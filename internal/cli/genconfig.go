// Package cli wires command-line options into the generation and release
// workflows and owns the exit-code policy: run functions report the process
// exit code instead of calling os.Exit themselves.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vintagehost/vsctl/internal/serverconfig"
)

// GenConfigOptions holds configuration for the generate-config command.
type GenConfigOptions struct {
	DefaultsPath string `validate:"required"`
	OutputPath   string `validate:"required"`
	// EnvFile optionally names a dotenv file supplying additional VS_CFG_
	// overrides. Variables from the process environment win on conflict.
	EnvFile string
	DryRun  bool
	// Environ is the raw process environment, os.Environ() in production.
	Environ []string
}

// DefaultsPathFromEnv resolves the fixed defaults location from the
// environment: $HOMEPATH/server-config.yaml, with /vintagestory as the
// fallback home.
func DefaultsPathFromEnv(getenv func(string) string) string {
	home := getenv("HOMEPATH")
	if home == "" {
		home = "/vintagestory"
	}
	return filepath.Join(home, "server-config.yaml")
}

// OutputPathFromEnv resolves the default output location:
// $DATAPATH/serverconfig.json, with /vintagestory/data as the fallback.
func OutputPathFromEnv(getenv func(string) string) string {
	data := getenv("DATAPATH")
	if data == "" {
		data = "/vintagestory/data"
	}
	return filepath.Join(data, "serverconfig.json")
}

// GenConfigRun generates the server configuration and returns the process
// exit code: 0 on success, 1 on the missing-defaults precondition or any
// runtime failure.
func GenConfigRun(opts GenConfigOptions) int {
	if err := validate.Struct(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid generate-config options: %v\n", err)
		return 1
	}

	env, err := overrideEnvironment(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	gen := &serverconfig.Generator{
		DefaultsPath: opts.DefaultsPath,
		OutputPath:   opts.OutputPath,
		Env:          env,
		DryRun:       opts.DryRun,
	}
	if err := gen.Run(); err != nil {
		if errors.Is(err, serverconfig.ErrNoDefaults) {
			fmt.Fprintf(os.Stderr, "Warning: %v. Exiting.\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error generating serverconfig.json: %v\n", err)
		}
		return 1
	}
	return 0
}

// overrideEnvironment collects the VS_CFG_ variables from the optional
// dotenv file and the process environment. Process values take precedence
// over file-sourced ones.
func overrideEnvironment(opts GenConfigOptions) (map[string]string, error) {
	env := make(map[string]string)

	if opts.EnvFile != "" {
		fileVars, err := godotenv.Read(opts.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", opts.EnvFile, err)
		}
		for key, value := range fileVars {
			if strings.HasPrefix(key, serverconfig.EnvPrefix) {
				env[key] = value
			}
		}
	}

	for _, kv := range opts.Environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, serverconfig.EnvPrefix) {
			continue
		}
		env[key] = value
	}
	return env, nil
}
