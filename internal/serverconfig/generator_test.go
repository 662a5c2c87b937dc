package serverconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDefaults creates a defaults YAML file in a temp directory and returns
// its path alongside a default output path in the same directory.
func writeDefaults(t *testing.T, yamlBody string) (defaultsPath, outputPath string) {
	t.Helper()
	dir := t.TempDir()
	defaultsPath = filepath.Join(dir, "server-config.yaml")
	require.NoError(t, os.WriteFile(defaultsPath, []byte(yamlBody), 0o644))
	return defaultsPath, filepath.Join(dir, "data", "serverconfig.json")
}

// readOutput parses the generated JSON document.
func readOutput(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestParseBool(t *testing.T) {
	truthy := []string{"1", "true", "yes", "TRUE", "Yes", "YES", "True"}
	for _, s := range truthy {
		assert.True(t, ParseBool(s), "expected %q to parse as true", s)
	}

	falsy := []string{"0", "false", "no", "FALSE", "No", "", "on", "enabled", "y", "2"}
	for _, s := range falsy {
		assert.False(t, ParseBool(s), "expected %q to parse as false", s)
	}
}

func TestGeneratorRun(t *testing.T) {
	t.Run("environment overrides defaults", func(t *testing.T) {
		defaultsPath, outputPath := writeDefaults(t, "ServerName: \"A\"\nPort: 1234\n")

		gen := &Generator{
			DefaultsPath: defaultsPath,
			OutputPath:   outputPath,
			Env:          map[string]string{"VS_CFG_SERVER_NAME": "B"},
			Out:          &bytes.Buffer{},
		}
		require.NoError(t, gen.Run())

		doc := readOutput(t, outputPath)
		assert.Equal(t, "B", doc["ServerName"])
		assert.EqualValues(t, 1234, doc["Port"])
	})

	t.Run("override values stay raw strings", func(t *testing.T) {
		defaultsPath, outputPath := writeDefaults(t, "Port: 42420\n")

		gen := &Generator{
			DefaultsPath: defaultsPath,
			OutputPath:   outputPath,
			Env:          map[string]string{"VS_CFG_SERVER_PORT": "42421"},
			Out:          &bytes.Buffer{},
		}
		require.NoError(t, gen.Run())

		doc := readOutput(t, outputPath)
		assert.Equal(t, "42421", doc["Port"])
	})

	t.Run("unrecognized prefixed variables are ignored", func(t *testing.T) {
		defaultsPath, outputPath := writeDefaults(t, "ServerName: \"A\"\n")

		gen := &Generator{
			DefaultsPath: defaultsPath,
			OutputPath:   outputPath,
			Env:          map[string]string{"VS_CFG_NO_SUCH_SETTING": "x"},
			Out:          &bytes.Buffer{},
		}
		require.NoError(t, gen.Run())

		doc := readOutput(t, outputPath)
		assert.Equal(t, "A", doc["ServerName"])
		assert.NotContains(t, doc, "NO_SUCH_SETTING")
	})

	t.Run("creative mode merges nested as boolean", func(t *testing.T) {
		defaultsPath, outputPath := writeDefaults(t, "ServerName: \"A\"\nWorldConfig:\n  Seed: 7\n  AllowCreativeMode: false\n")

		out := &bytes.Buffer{}
		gen := &Generator{
			DefaultsPath: defaultsPath,
			OutputPath:   outputPath,
			Env:          map[string]string{"VS_CFG_ALLOW_CREATIVE_MODE": "Yes"},
			Out:          out,
		}
		require.NoError(t, gen.Run())

		doc := readOutput(t, outputPath)
		world, ok := doc["WorldConfig"].(map[string]any)
		require.True(t, ok, "WorldConfig should be a mapping")
		assert.Equal(t, true, world["AllowCreativeMode"])
		assert.EqualValues(t, 7, world["Seed"])
		// Consumed by the pre-pass: never merged at top level.
		assert.NotContains(t, doc, "AllowCreativeMode")
		assert.Contains(t, out.String(), "Allowing Creative Mode")
	})

	t.Run("creative mode creates missing WorldConfig mapping", func(t *testing.T) {
		defaultsPath, outputPath := writeDefaults(t, "ServerName: \"A\"\n")

		gen := &Generator{
			DefaultsPath: defaultsPath,
			OutputPath:   outputPath,
			Env:          map[string]string{"VS_CFG_ALLOW_CREATIVE_MODE": "off"},
			Out:          &bytes.Buffer{},
		}
		require.NoError(t, gen.Run())

		doc := readOutput(t, outputPath)
		world, ok := doc["WorldConfig"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, false, world["AllowCreativeMode"])
	})

	t.Run("previous output is backed up", func(t *testing.T) {
		defaultsPath, outputPath := writeDefaults(t, "ServerName: \"fresh\"\n")
		require.NoError(t, os.MkdirAll(filepath.Dir(outputPath), 0o755))
		require.NoError(t, os.WriteFile(outputPath, []byte(`{"ServerName":"old"}`), 0o644))
		// A stale backup must be overwritten, not appended to.
		require.NoError(t, os.WriteFile(outputPath+".backup", []byte("stale"), 0o644))

		gen := &Generator{
			DefaultsPath: defaultsPath,
			OutputPath:   outputPath,
			Env:          map[string]string{},
			Out:          &bytes.Buffer{},
		}
		require.NoError(t, gen.Run())

		backup, err := os.ReadFile(outputPath + ".backup")
		require.NoError(t, err)
		assert.Equal(t, `{"ServerName":"old"}`, string(backup))

		doc := readOutput(t, outputPath)
		assert.Equal(t, "fresh", doc["ServerName"])
	})

	t.Run("missing defaults file is a distinct precondition failure", func(t *testing.T) {
		dir := t.TempDir()
		gen := &Generator{
			DefaultsPath: filepath.Join(dir, "absent.yaml"),
			OutputPath:   filepath.Join(dir, "serverconfig.json"),
			Out:          &bytes.Buffer{},
		}
		err := gen.Run()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoDefaults))
		assert.NoFileExists(t, filepath.Join(dir, "serverconfig.json"))
	})

	t.Run("empty defaults document", func(t *testing.T) {
		defaultsPath, outputPath := writeDefaults(t, "")

		gen := &Generator{
			DefaultsPath: defaultsPath,
			OutputPath:   outputPath,
			Env:          map[string]string{"VS_CFG_SERVER_NAME": "solo"},
			Out:          &bytes.Buffer{},
		}
		require.NoError(t, gen.Run())

		doc := readOutput(t, outputPath)
		assert.Equal(t, map[string]any{"ServerName": "solo"}, doc)
	})

	t.Run("dry run writes nothing", func(t *testing.T) {
		defaultsPath, outputPath := writeDefaults(t, "ServerName: \"A\"\n")

		out := &bytes.Buffer{}
		gen := &Generator{
			DefaultsPath: defaultsPath,
			OutputPath:   outputPath,
			Env:          map[string]string{"VS_CFG_SERVER_NAME": "B"},
			DryRun:       true,
			Out:          out,
		}
		require.NoError(t, gen.Run())

		assert.NoFileExists(t, outputPath)
		assert.Contains(t, out.String(), "ServerName: B")
	})

	t.Run("summary lists core fields and startup commands", func(t *testing.T) {
		defaultsPath, outputPath := writeDefaults(t,
			"ServerName: \"Aurora\"\nPort: 42420\nMaxClients: 16\nStartupCommands: [\"/time set day\"]\n")

		out := &bytes.Buffer{}
		gen := &Generator{
			DefaultsPath: defaultsPath,
			OutputPath:   outputPath,
			Env:          map[string]string{},
			Out:          out,
		}
		require.NoError(t, gen.Run())

		assert.Contains(t, out.String(), "Server Name: Aurora")
		assert.Contains(t, out.String(), "Port: 42420")
		assert.Contains(t, out.String(), "Max Clients: 16")
		assert.Contains(t, out.String(), "Startup Commands:")
	})
}

func TestLoadDefaults(t *testing.T) {
	t.Run("nested structures survive the YAML round trip", func(t *testing.T) {
		defaultsPath, _ := writeDefaults(t, "WorldConfig:\n  WorldType: standard\nModPaths:\n  - Mods\n  - /data/Mods\n")

		doc, err := LoadDefaults(defaultsPath)
		require.NoError(t, err)

		world, ok := doc["WorldConfig"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "standard", world["WorldType"])
		assert.Equal(t, []any{"Mods", "/data/Mods"}, doc["ModPaths"])
	})

	t.Run("invalid YAML is an error", func(t *testing.T) {
		defaultsPath, _ := writeDefaults(t, "ServerName: [unclosed\n")
		_, err := LoadDefaults(defaultsPath)
		assert.Error(t, err)
	})
}
