// Package resolver determines the effective base URL, auth payload and request
// path for API operations when a custom endpoint is configured for a provider.
package resolver

import (
	"context"
	"strings"
	"sync"

	"custom-api-config/config"
	"custom-api-config/internal"
	"custom-api-config/logger"
)

// AuthPayload carries the credential fields forwarded to the HTTP operation
// layer.
type AuthPayload map[string]string

// Recognized payload fields, checked in this order when falling back to
// caller-supplied credentials.
const (
	FieldComfyAPIKey = "comfy_api_key"
	FieldAuthToken   = "auth_token"
)

// proxyMarker is the first path segment of the default routing scheme,
// /proxy/{provider}/...
const proxyMarker = "proxy"

const bearerPrefix = "Bearer "

// Resolver resolves endpoints against an injected store and settings.
type Resolver struct {
	store    *config.Store
	settings config.Settings
}

// New creates a Resolver over the given store and process-wide settings.
func New(store *config.Store, settings config.Settings) *Resolver {
	return &Resolver{store: store, settings: settings}
}

// ProviderFromPath extracts the provider name from an API path. Both the
// /proxy/{provider}/... and /{provider}/... conventions are recognized. This
// is a heuristic: paths with too few segments yield "".
func ProviderFromPath(path string) string {
	parts := strings.Split(strings.TrimLeft(path, "/"), "/")

	if parts[0] == proxyMarker {
		if len(parts) >= 2 && parts[1] != "" {
			return strings.ToLower(parts[1])
		}
		return ""
	}
	if parts[0] != "" {
		return strings.ToLower(parts[0])
	}
	return ""
}

// CustomAPIBase returns the base URL to use for provider: the configured
// override if any, else def, else the process-wide API base.
func (r *Resolver) CustomAPIBase(provider, def string) string {
	if provider != "" {
		if custom := r.store.GetBaseURL(provider, ""); custom != "" {
			return custom
		}
	}
	if def != "" {
		return def
	}
	return r.settings.ComfyAPIBase
}

// CustomAPIKey returns the API key to use for provider: the configured
// override if any, else the first recognized field of the caller payload.
func (r *Resolver) CustomAPIKey(provider string, auth AuthPayload) string {
	if provider != "" {
		if key := r.store.GetAPIKey(provider); key != "" {
			return key
		}
	}
	if auth != nil {
		if v := auth[FieldComfyAPIKey]; v != "" {
			return v
		}
		if v := auth[FieldAuthToken]; v != "" {
			return v
		}
	}
	return ""
}

// ApplyCustomConfig computes the effective base URL and auth payload for an
// operation. When provider is empty it is derived from path. The input payload
// is never mutated; the returned payload is a shallow copy with the resolved
// key stored under auth_token (for "Bearer ..." keys, prefix stripped) or
// comfy_api_key (everything else).
func (r *Resolver) ApplyCustomConfig(ctx context.Context, provider, apiBase string, auth AuthPayload, path string) (string, AuthPayload) {
	if provider == "" && path != "" {
		provider = ProviderFromPath(path)
	}

	base := r.CustomAPIBase(provider, apiBase)
	key := r.CustomAPIKey(provider, auth)

	out := make(AuthPayload, len(auth)+1)
	for k, v := range auth {
		out[k] = v
	}
	if key != "" {
		if strings.HasPrefix(key, bearerPrefix) {
			out[FieldAuthToken] = strings.TrimPrefix(key, bearerPrefix)
		} else {
			out[FieldComfyAPIKey] = key
		}
	}

	if provider != "" && r.store.IsCustomConfigured(provider) {
		logger.OverridesApplied.WithLabelValues(provider).Inc()
		logger.Component(logger.ComponentResolver).
			Debugf("[%s] custom endpoint applied for %s: base=%s key=%s",
				internal.GetRequestID(ctx), provider, base, logger.MaskKey(key))
	}

	return base, out
}

// TransformPathForCustomAPI strips the /proxy/{provider} prefix from path when
// a custom endpoint is configured for that provider. Custom endpoints are
// addressed directly and do not expect the proxy routing convention.
func (r *Resolver) TransformPathForCustomAPI(path, provider string) string {
	if provider == "" {
		provider = ProviderFromPath(path)
	}
	if provider == "" || !r.store.IsCustomConfigured(provider) {
		return path
	}

	parts := strings.Split(strings.TrimLeft(path, "/"), "/")
	if len(parts) >= 2 && parts[0] == proxyMarker && strings.EqualFold(parts[1], provider) {
		logger.PathTransforms.Inc()
		remaining := strings.Join(parts[2:], "/")
		if remaining == "" {
			return "/"
		}
		return "/" + remaining
	}

	return path
}

var (
	defaultOnce     sync.Once
	defaultResolver *Resolver
)

// resolve returns the process-wide resolver, built lazily over the default
// store and settings.
func resolve() *Resolver {
	defaultOnce.Do(func() {
		defaultResolver = New(config.Default(), config.LoadSettings())
	})
	return defaultResolver
}

// CustomAPIBase resolves against the process-wide store.
func CustomAPIBase(provider, def string) string {
	return resolve().CustomAPIBase(provider, def)
}

// CustomAPIKey resolves against the process-wide store.
func CustomAPIKey(provider string, auth AuthPayload) string {
	return resolve().CustomAPIKey(provider, auth)
}

// ApplyCustomConfig resolves against the process-wide store.
func ApplyCustomConfig(ctx context.Context, provider, apiBase string, auth AuthPayload, path string) (string, AuthPayload) {
	return resolve().ApplyCustomConfig(ctx, provider, apiBase, auth, path)
}

// TransformPathForCustomAPI resolves against the process-wide store.
func TransformPathForCustomAPI(path, provider string) string {
	return resolve().TransformPathForCustomAPI(path, provider)
}
