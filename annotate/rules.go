package annotate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"custom-api-config/logger"
)

// RulesFile is the optional override file consulted by LoadRules.
const RulesFile = "annotate_overrides.yaml"

// Rules describes the textual transform applied to a node source file.
type Rules struct {
	// ImportNamespace marks lines belonging to the import section; the helper
	// import is inserted after the last such line.
	ImportNamespace string `yaml:"importNamespace"`
	// HelperMarker anywhere in the file means the import is already present.
	HelperMarker string `yaml:"helperMarker"`
	// ImportLine is the statement inserted into the import section.
	ImportLine string `yaml:"importLine"`
	// CallSiteMarkers identify the operation call sites to annotate.
	CallSiteMarkers []string `yaml:"callSiteMarkers"`
	// CommentPrefix starts each inserted boilerplate line.
	CommentPrefix string `yaml:"commentPrefix"`
	// AppliedMarker anywhere in the file means it was already annotated.
	AppliedMarker string `yaml:"appliedMarker"`
	// BackupDir is the sibling directory annotated files are copied into.
	BackupDir string `yaml:"backupDir"`
}

// DefaultRules returns the built-in transform targeting ComfyUI API node
// files.
func DefaultRules() Rules {
	return Rules{
		ImportNamespace: "comfy_api_nodes",
		HelperMarker:    "custom_api_helpers",
		ImportLine:      "from comfy_api_nodes.custom_api_helpers import apply_custom_config, transform_path_for_custom_api",
		CallSiteMarkers: []string{
			"operation = SynchronousOperation(",
			"operation = PollingOperation(",
		},
		CommentPrefix: "#",
		AppliedMarker: "Apply custom API configuration",
		BackupDir:     "custom_api_nodes",
	}
}

// rulesYAML represents the structure of annotate_overrides.yaml
type rulesYAML struct {
	Annotate Rules `yaml:"annotate"`
}

// LoadRules loads rule overrides from annotate_overrides.yaml in the working
// directory. Returns the defaults if the file doesn't exist (no error); unset
// fields in the file keep their default values.
func LoadRules() (Rules, error) {
	file, err := os.Open(RulesFile)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Component(logger.ComponentAnnotator).
				Debugf("%s not found, using built-in annotation rules", RulesFile)
			return DefaultRules(), nil
		}
		return Rules{}, fmt.Errorf("failed to open %s: %w", RulesFile, err)
	}
	defer file.Close()

	var yamlData rulesYAML
	if err := yaml.NewDecoder(file).Decode(&yamlData); err != nil {
		return Rules{}, fmt.Errorf("failed to parse %s: %w", RulesFile, err)
	}

	rules := yamlData.Annotate.withDefaults()
	logger.Component(logger.ComponentAnnotator).
		Infof("loaded annotation rule overrides from %s", RulesFile)
	return rules, nil
}

// withDefaults fills unset fields from DefaultRules.
func (r Rules) withDefaults() Rules {
	def := DefaultRules()
	if r.ImportNamespace == "" {
		r.ImportNamespace = def.ImportNamespace
	}
	if r.HelperMarker == "" {
		r.HelperMarker = def.HelperMarker
	}
	if r.ImportLine == "" {
		r.ImportLine = def.ImportLine
	}
	if len(r.CallSiteMarkers) == 0 {
		r.CallSiteMarkers = def.CallSiteMarkers
	}
	if r.CommentPrefix == "" {
		r.CommentPrefix = def.CommentPrefix
	}
	if r.AppliedMarker == "" {
		r.AppliedMarker = def.AppliedMarker
	}
	if r.BackupDir == "" {
		r.BackupDir = def.BackupDir
	}
	return r
}
