package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigFile writes a JSON override file into a temp dir and returns its path
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "custom_api_config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestEnvOverridesFile asserts the hard invariant: environment variables win
// over file contents, for both fields
func TestEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `{
  "openai": {"base_url": "https://file.example", "api_key": "file-key"}
}`)
	t.Setenv("COMFY_API_OPENAI_BASE_URL", "https://env.example")
	t.Setenv("COMFY_API_OPENAI_API_KEY", "env-key")

	store := Load(path)

	assert.Equal(t, "https://env.example", store.GetBaseURL("openai", "https://default.example"))
	assert.Equal(t, "env-key", store.GetAPIKey("openai"))
}

// TestEnvCreatesEntry asserts env variables configure providers absent from the file
func TestEnvCreatesEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom_api_config.json") // no file

	t.Setenv("COMFY_API_RUNWAY_API_KEY", "Bearer abc123")

	store := Load(path)

	assert.Equal(t, "Bearer abc123", store.GetAPIKey("runway"))
	assert.True(t, store.IsCustomConfigured("runway"))
	// base URL stays unset and falls through to the default
	assert.Equal(t, "https://fallback", store.GetBaseURL("runway", "https://fallback"))
}

// TestFallbackToDefault asserts lookups for unconfigured providers degrade to
// the caller default
func TestFallbackToDefault(t *testing.T) {
	store := Load(filepath.Join(t.TempDir(), "missing.json"))

	assert.Equal(t, "https://fallback", store.GetBaseURL("newprovider", "https://fallback"))
	assert.Equal(t, "", store.GetAPIKey("newprovider"))
	assert.False(t, store.IsCustomConfigured("newprovider"))
}

// TestCaseInsensitiveLookup asserts provider names are lowercased on lookup
func TestCaseInsensitiveLookup(t *testing.T) {
	path := writeConfigFile(t, `{"stability": {"base_url": "https://stab.example"}}`)

	store := Load(path)

	assert.Equal(t, "https://stab.example", store.GetBaseURL("Stability", ""))
	assert.Equal(t, "https://stab.example", store.GetBaseURL("STABILITY", ""))
}

// TestMalformedFileTolerated asserts a bad JSON file yields an empty store
// instead of an error
func TestMalformedFileTolerated(t *testing.T) {
	path := writeConfigFile(t, `{not json`)

	store := Load(path)

	assert.Equal(t, "https://fallback", store.GetBaseURL("openai", "https://fallback"))
	assert.False(t, store.IsCustomConfigured("openai"))
}

// TestUnknownProviderDropped asserts names outside the fixed provider set are
// not stored
func TestUnknownProviderDropped(t *testing.T) {
	path := writeConfigFile(t, `{
  "bogus": {"base_url": "https://bogus.example"},
  "luma": {"base_url": "https://luma.example"}
}`)

	store := Load(path)

	assert.False(t, store.IsCustomConfigured("bogus"))
	assert.Equal(t, "https://luma.example", store.GetBaseURL("luma", ""))
}

// TestSetProviderConfig covers the documented quirk: empty arguments mean "not
// supplied" and leave existing fields untouched
func TestSetProviderConfig(t *testing.T) {
	store := Load(filepath.Join(t.TempDir(), "missing.json"))

	store.SetProviderConfig("Pika", "https://pika.example", "pk-1")
	assert.Equal(t, "https://pika.example", store.GetBaseURL("pika", ""))
	assert.Equal(t, "pk-1", store.GetAPIKey("pika"))

	// Empty base URL leaves the existing value in place
	store.SetProviderConfig("pika", "", "pk-2")
	assert.Equal(t, "https://pika.example", store.GetBaseURL("pika", ""))
	assert.Equal(t, "pk-2", store.GetAPIKey("pika"))

	// Setting nothing creates an entry but it does not count as configured
	store.SetProviderConfig("vidu", "", "")
	assert.False(t, store.IsCustomConfigured("vidu"))
}

// TestSaveRoundTrip asserts SaveConfig followed by a fresh Load reproduces the
// in-memory mapping
func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom_api_config.json")

	store := Load(path)
	store.SetProviderConfig("openai", "https://openai.example", "sk-test-12345")
	store.SetProviderConfig("kling", "https://kling.example", "")
	store.SaveConfig()

	fresh := Load(path)
	assert.Equal(t, "https://openai.example", fresh.GetBaseURL("openai", ""))
	assert.Equal(t, "sk-test-12345", fresh.GetAPIKey("openai"))
	assert.Equal(t, "https://kling.example", fresh.GetBaseURL("kling", ""))
	assert.Equal(t, "", fresh.GetAPIKey("kling"))
}

// TestSaveRoundTripEnvStillWins asserts a fresh load after save still applies
// the environment overlay on top of the persisted mapping
func TestSaveRoundTripEnvStillWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom_api_config.json")

	store := Load(path)
	store.SetProviderConfig("gemini", "https://saved.example", "")
	store.SaveConfig()

	t.Setenv("COMFY_API_GEMINI_BASE_URL", "https://env.example")
	fresh := Load(path)
	assert.Equal(t, "https://env.example", fresh.GetBaseURL("gemini", ""))
}

// TestSaveWritesValidJSON asserts the persisted file matches the external
// interface: object keyed by provider with base_url/api_key fields
func TestSaveWritesValidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom_api_config.json")

	store := Load(path)
	store.SetProviderConfig("tripo", "https://tripo.example", "tk-1")
	store.SaveConfig()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "https://tripo.example", raw["tripo"]["base_url"])
	assert.Equal(t, "tk-1", raw["tripo"]["api_key"])
}

// TestSaveFailureSwallowed asserts an unwritable save path is a warning, not
// a panic or error, and leaves the in-memory state usable
func TestSaveFailureSwallowed(t *testing.T) {
	store := Load(filepath.Join(t.TempDir(), "no-such-dir", "deeper", "config.json"))
	store.SetProviderConfig("wan", "https://wan.example", "")

	store.SaveConfig() // destination directory does not exist

	assert.Equal(t, "https://wan.example", store.GetBaseURL("wan", ""))
}

// TestLoadSettings covers the process-wide default API base
func TestLoadSettings(t *testing.T) {
	t.Setenv("COMFY_API_BASE", "")
	assert.Equal(t, DefaultComfyAPIBase, LoadSettings().ComfyAPIBase)

	t.Setenv("COMFY_API_BASE", "https://base.example")
	assert.Equal(t, "https://base.example", LoadSettings().ComfyAPIBase)
}

// TestDefaultStoreInjection asserts SetDefault installs a store for the
// process-wide accessor
func TestDefaultStoreInjection(t *testing.T) {
	store := Load(filepath.Join(t.TempDir(), "missing.json"))
	store.SetProviderConfig("sora", "https://sora.example", "")
	SetDefault(store)

	assert.Equal(t, "https://sora.example", Default().GetBaseURL("sora", ""))
}
