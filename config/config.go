package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"custom-api-config/logger"
)

// DefaultConfigFile is the override file consulted when no path is injected.
const DefaultConfigFile = "custom_api_config.json"

// envPrefix namespaces the per-provider environment variables, e.g.
// COMFY_API_OPENAI_BASE_URL and COMFY_API_OPENAI_API_KEY.
const envPrefix = "COMFY_API"

// Providers is the fixed set of API vendors that accept endpoint overrides.
// The environment overlay only consults variables for names in this list, and
// unknown names in the override file are dropped at load time.
var Providers = []string{
	"openai",
	"stability",
	"bfl",
	"bytedance",
	"gemini",
	"ideogram",
	"kling",
	"ltxv",
	"luma",
	"minimax",
	"moonvalley",
	"pika",
	"pixverse",
	"recraft",
	"rodin",
	"runway",
	"sora",
	"tripo",
	"veo2",
	"vidu",
	"wan",
}

// ProviderConfig holds the per-provider override state. An empty field means
// "no override for that field" and lookups fall through to the caller default.
type ProviderConfig struct {
	BaseURL string `json:"base_url,omitempty"`
	APIKey  string `json:"api_key,omitempty"`
}

// isZero reports whether no override field is set.
func (p ProviderConfig) isZero() bool {
	return p.BaseURL == "" && p.APIKey == ""
}

// Store owns the mapping from provider name to override state. It is loaded
// once and mutated only through SetProviderConfig; callers needing concurrent
// mutation must serialize access themselves.
type Store struct {
	path      string
	providers map[string]ProviderConfig
}

// Load reads the JSON override file at path (missing or malformed files are
// tolerated with a warning) and then overlays environment variables, which
// always win over file contents.
func Load(path string) *Store {
	s := &Store{
		path:      path,
		providers: make(map[string]ProviderConfig),
	}
	s.loadFile()
	s.overlayEnv()
	return s
}

// loadFile populates the mapping from the JSON file, dropping unknown names.
func (s *Store) loadFile() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.ConfigLoadFailures.Inc()
			logger.Component(logger.ComponentConfig).
				Warnf("failed to read custom API config from %s: %v", s.path, err)
		}
		return
	}

	var raw map[string]ProviderConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.ConfigLoadFailures.Inc()
		logger.Component(logger.ComponentConfig).
			Warnf("failed to parse custom API config from %s: %v", s.path, err)
		return
	}

	known := knownProviders()
	for name, pc := range raw {
		key := strings.ToLower(name)
		if !known[key] {
			logger.Component(logger.ComponentConfig).
				Warnf("ignoring unknown provider %q in %s", name, s.path)
			continue
		}
		s.providers[key] = pc
	}
}

// overlayEnv applies COMFY_API_<PROVIDER>_BASE_URL / _API_KEY on top of the
// file contents. Environment variables always win.
func (s *Store) overlayEnv() {
	for _, provider := range Providers {
		base, haveBase := os.LookupEnv(envVar(provider, "BASE_URL"))
		key, haveKey := os.LookupEnv(envVar(provider, "API_KEY"))
		if !haveBase && !haveKey {
			continue
		}

		pc := s.providers[provider]
		if haveBase {
			pc.BaseURL = base
			logger.Component(logger.ComponentConfig).
				Debugf("configured base URL for %s from environment: %s", provider, base)
		}
		if haveKey {
			pc.APIKey = key
			logger.Component(logger.ComponentConfig).
				Debugf("configured API key for %s from environment: %s", provider, logger.MaskKey(key))
		}
		s.providers[provider] = pc
	}
}

func envVar(provider, suffix string) string {
	return fmt.Sprintf("%s_%s_%s", envPrefix, strings.ToUpper(provider), suffix)
}

func knownProviders() map[string]bool {
	known := make(map[string]bool, len(Providers))
	for _, p := range Providers {
		known[p] = true
	}
	return known
}

// GetBaseURL returns the configured base URL for provider, or def when no
// override exists. The provider name is matched case-insensitively.
func (s *Store) GetBaseURL(provider, def string) string {
	if pc, ok := s.providers[strings.ToLower(provider)]; ok && pc.BaseURL != "" {
		return pc.BaseURL
	}
	return def
}

// GetAPIKey returns the configured API key for provider, or "" when no
// override exists.
func (s *Store) GetAPIKey(provider string) string {
	if pc, ok := s.providers[strings.ToLower(provider)]; ok {
		return pc.APIKey
	}
	return ""
}

// SetProviderConfig updates the in-memory entry for provider, creating it if
// absent. An empty argument means "not supplied" and leaves the existing field
// untouched.
func (s *Store) SetProviderConfig(provider, baseURL, apiKey string) {
	key := strings.ToLower(provider)
	pc := s.providers[key]
	if baseURL != "" {
		pc.BaseURL = baseURL
	}
	if apiKey != "" {
		pc.APIKey = apiKey
	}
	s.providers[key] = pc
}

// IsCustomConfigured reports whether provider has at least one override field
// set.
func (s *Store) IsCustomConfigured(provider string) bool {
	pc, ok := s.providers[strings.ToLower(provider)]
	return ok && !pc.isZero()
}

// SaveConfig persists the full current mapping back to the override file,
// overwriting it. Write failures are reported as warnings, never returned.
func (s *Store) SaveConfig() {
	data, err := json.MarshalIndent(s.providers, "", "  ")
	if err != nil {
		logger.Component(logger.ComponentConfig).
			Warnf("failed to encode custom API config: %v", err)
		return
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		logger.Component(logger.ComponentConfig).
			Warnf("failed to save custom API config to %s: %v", s.path, err)
		return
	}
	logger.ConfigSaves.Inc()
}

// Path returns the override file path this store reads from and saves to.
func (s *Store) Path() string {
	return s.path
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the process-wide store, loading it from DefaultConfigFile on
// first use. Hosts that construct their own store should prefer injecting it
// and may install it here via SetDefault.
func Default() *Store {
	defaultOnce.Do(func() {
		defaultStore = Load(DefaultConfigFile)
	})
	return defaultStore
}

// SetDefault replaces the process-wide store. Intended for application startup
// and tests.
func SetDefault(s *Store) {
	defaultOnce.Do(func() {})
	defaultStore = s
}
