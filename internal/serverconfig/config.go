// Package serverconfig builds the Vintage Story serverconfig.json from a
// YAML defaults document and VS_CFG_-prefixed environment overrides.
package serverconfig

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables recognized as configuration
// overrides.
const EnvPrefix = "VS_CFG_"

// creativeModeEnv is the one override that does not follow the flat merge
// rule: its value is parsed as a boolean and written into the WorldConfig
// sub-mapping instead of the document top level.
const creativeModeEnv = "VS_CFG_ALLOW_CREATIVE_MODE"

// envSettingMap translates recognized override variables to configuration
// field names. Variables with the prefix but no entry here are ignored.
var envSettingMap = map[string]string{
	"VS_CFG_SERVER_NAME":             "ServerName",
	"VS_CFG_SERVER_URL":              "ServerUrl",
	"VS_CFG_SERVER_DESCRIPTION":      "ServerDescription",
	"VS_CFG_WELCOME_MESSAGE":         "WelcomeMessage",
	"VS_CFG_ALLOW_CREATIVE_MODE":     "AllowCreativeMode",
	"VS_CFG_SERVER_IP":               "Ip",
	"VS_CFG_SERVER_PORT":             "Port",
	"VS_CFG_SERVER_UPNP":             "Upnp",
	"VS_CFG_SERVER_COMPRESS_PACKETS": "CompressPackets",
	"VS_CFG_ADVERTISE_SERVER":        "AdvertiseServer",
	"VS_CFG_MAX_CLIENTS":             "MaxClients",
	"VS_CFG_PASS_TIME_WHEN_EMPTY":    "PassTimeWhenEmpty",
	"VS_CFG_SERVER_PASSWORD":         "Password",
	"VS_CFG_MAX_CHUNK_RADIUS":        "MaxChunkRadius",
	"VS_CFG_SERVER_LANGUAGE":         "ServerLanguage",
	"VS_CFG_ONLY_WHITELISTED":        "OnlyWhitelisted",
	"VS_CFG_ANTIABUSE":               "AntiAbuse",
	"VS_CFG_ALLOW_PVP":               "AllowPvP",
	"VS_CFG_HOSTED_MODE":             "HostedMode",
	"VS_CFG_HOSTED_MODE_ALLOW_MODS":  "HostedModeAllowMods",
}

// Document is the schemaless server configuration: scalars, lists and
// nested mappings keyed by field name, loaded from YAML and written as JSON.
type Document map[string]any

// LoadDefaults reads and parses the YAML defaults document. An empty file
// yields an empty (non-nil) document.
func LoadDefaults(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read defaults file %s: %w", path, err)
	}

	// Decode into the unnamed map type: yaml.v3 propagates a named target
	// type to nested mappings, which would make them Document instead of
	// map[string]any and break type assertions on sub-mappings.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML in defaults file %s: %w", path, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return Document(raw), nil
}

// ParseBool interprets the boolean-like override forms. "1", "true" and
// "yes" (case-insensitive) are true; every other string is false.
func ParseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return true
	}
	return false
}
