package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters shared across the module. Registered on the default registry so a
// host application that already serves /metrics picks them up for free.
var (
	ConfigLoadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "custom_api_config_load_failures_total",
		Help: "Number of override file reads that failed or contained invalid JSON.",
	})

	ConfigSaves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "custom_api_config_saves_total",
		Help: "Number of successful override file writes.",
	})

	OverridesApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "custom_api_overrides_applied_total",
		Help: "Number of resolutions where a custom endpoint or key was applied.",
	}, []string{"provider"})

	PathTransforms = promauto.NewCounter(prometheus.CounterOpts{
		Name: "custom_api_path_transforms_total",
		Help: "Number of proxy prefixes stripped for custom endpoints.",
	})

	AnnotatedCallSites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "custom_api_annotated_call_sites_total",
		Help: "Number of operation call sites annotated by the source annotator.",
	})
)
