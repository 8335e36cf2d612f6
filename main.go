package main

import (
	"fmt"
	"os"
	"strings"

	"custom-api-config/annotate"
	"custom-api-config/internal"
	"custom-api-config/logger"
)

func showUsage() {
	fmt.Fprintln(os.Stderr, "Usage: custom-api-config <node_file> <provider_name>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  custom-api-config nodes_stability.py stability")
	fmt.Fprintln(os.Stderr, "  custom-api-config nodes_runway.py runway")
	fmt.Fprintln(os.Stderr, "  custom-api-config nodes_luma.py luma")
	os.Exit(1)
}

func main() {
	// Print version information
	fmt.Println(GetBuildInfo())
	fmt.Println()

	if len(os.Args) != 3 {
		showUsage()
	}

	target := os.Args[1]
	provider := strings.ToLower(os.Args[2])
	runID := internal.NewRequestID()

	// Optional structured JSONL logging for log shippers
	var fileLogger *logger.FileLogger
	if logDir := os.Getenv("ANNOTATE_LOG_DIR"); logDir != "" {
		var err error
		fileLogger, err = logger.NewFileLogger(logDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize file logging: %v\n", err)
		} else {
			defer fileLogger.Close()
		}
	}

	if _, err := os.Stat(target); err != nil {
		fmt.Fprintf(os.Stderr, "Error: file %s not found\n", target)
		os.Exit(1)
	}

	rules, err := annotate.LoadRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Processing %s for provider '%s'...\n", target, provider)
	fmt.Println()

	result, err := annotate.Apply(target, provider, rules)
	if err != nil {
		if fileLogger != nil {
			fileLogger.Error(logger.ComponentAnnotator, logger.CategoryError, runID,
				"annotation failed", map[string]interface{}{
					"target":   target,
					"provider": provider,
					"error":    err.Error(),
				})
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if result.ImportAdded {
		fmt.Println("✓ Added custom API helpers import")
	} else {
		fmt.Println("- Import already present or no import section found")
	}

	if result.CallSites > 0 {
		fmt.Printf("✓ Added configuration comments to %d operation(s)\n", result.CallSites)
	} else {
		fmt.Println("- No operations found or file already annotated")
	}

	fmt.Printf("✓ Updated %s\n", result.TargetPath)
	fmt.Printf("✓ Backup created at %s\n", result.BackupPath)

	if fileLogger != nil {
		fileLogger.Info(logger.ComponentAnnotator, logger.CategoryTransformation, runID,
			"annotation completed", map[string]interface{}{
				"target":       target,
				"provider":     provider,
				"import_added": result.ImportAdded,
				"call_sites":   result.CallSites,
				"backup":       result.BackupPath,
			})
	}

	fmt.Println()
	fmt.Println("Done! Next steps:")
	fmt.Printf("1. Open %s\n", result.TargetPath)
	fmt.Println("2. Find the TODO comments")
	fmt.Println("3. Uncomment and verify the configuration code")
	fmt.Println("4. Test with your custom API configuration")
}
