package config

import "os"

// DefaultComfyAPIBase is the service endpoint used when nothing else is
// configured.
const DefaultComfyAPIBase = "https://api.comfy.org"

// Settings mirrors the process-wide defaults normally owned by the host
// application's argument parser. Only the fields this module consumes are
// reproduced here.
type Settings struct {
	// ComfyAPIBase is the API root used when neither a provider override nor a
	// caller default applies.
	ComfyAPIBase string
}

// LoadSettings reads the process-wide defaults from the environment.
func LoadSettings() Settings {
	if v := os.Getenv("COMFY_API_BASE"); v != "" {
		return Settings{ComfyAPIBase: v}
	}
	return Settings{ComfyAPIBase: DefaultComfyAPIBase}
}
