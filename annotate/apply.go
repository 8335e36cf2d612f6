package annotate

import (
	"fmt"
	"os"
	"path/filepath"

	"custom-api-config/logger"
)

// Result summarizes one annotation run for the caller's transcript.
type Result struct {
	TargetPath  string
	BackupPath  string
	ImportAdded bool
	CallSites   int
}

// Apply runs both transforms on the file at targetPath, writes the result
// back, and copies the new contents to the backup directory (a sibling of the
// target's directory), creating it if absent.
func Apply(targetPath, provider string, rules Rules) (Result, error) {
	res := Result{TargetPath: targetPath}

	data, err := os.ReadFile(targetPath)
	if err != nil {
		return res, fmt.Errorf("failed to read %s: %w", targetPath, err)
	}

	content := string(data)
	content, res.ImportAdded = rules.AddImport(content)
	content, res.CallSites = rules.AddConfigComments(content, provider)

	if err := os.WriteFile(targetPath, []byte(content), 0644); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", targetPath, err)
	}

	backupDir := filepath.Join(filepath.Dir(targetPath), "..", rules.BackupDir)
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return res, fmt.Errorf("failed to create backup directory %s: %w", backupDir, err)
	}
	res.BackupPath = filepath.Join(backupDir, filepath.Base(targetPath))
	if err := os.WriteFile(res.BackupPath, []byte(content), 0644); err != nil {
		return res, fmt.Errorf("failed to create backup at %s: %w", res.BackupPath, err)
	}

	logger.AnnotatedCallSites.Add(float64(res.CallSites))
	logger.Component(logger.ComponentAnnotator).
		Debugf("annotated %s for provider %s: import_added=%t call_sites=%d",
			targetPath, provider, res.ImportAdded, res.CallSites)

	return res, nil
}
