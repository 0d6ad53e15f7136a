// Package candid materializes canister init-argument files from templates.
//
// A template is a plain-text candid file containing {placeholder} markers.
// Render substitutes each marker with its configured value and writes the
// result to a well-known path under the args directory, derived from the
// template's base name. The install step later passes that file's content
// as the canister init argument.
package candid

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/forria64/dolphinex/internal/reporting"
	"github.com/forria64/dolphinex/pkg/logging"
)

// ArgFilePath derives the materialized argument-file path for a template:
// <argsDir>/<template stem>.candid.
func ArgFilePath(templatePath, argsDir string) string {
	base := filepath.Base(templatePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(argsDir, stem+".candid")
}

// Render reads the template, replaces every {key} with vars[key], and
// writes the result to ArgFilePath(templatePath, argsDir), creating the
// args directory if needed. It returns the written path.
func Render(templatePath string, vars map[string]string, argsDir string) (string, error) {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template '%s': %w", templatePath, err)
	}

	content := string(data)
	for k, v := range vars {
		content = strings.ReplaceAll(content, "{"+k+"}", v)
	}

	if err := os.MkdirAll(argsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create args directory '%s': %w", argsDir, err)
	}

	outPath := ArgFilePath(templatePath, argsDir)
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write argument file '%s': %w", outPath, err)
	}
	return outPath, nil
}

// ProcessAll renders the argument file for every canister that has a
// template path on disk. Canisters without a template, or whose template
// file does not exist, are skipped. Individual render failures are
// collected without stopping.
func ProcessAll(templates map[string]string, vars map[string]string, argsDir string) reporting.Aggregate {
	var agg reporting.Aggregate
	for name, templatePath := range templates {
		if templatePath == "" {
			continue
		}
		if _, err := os.Stat(templatePath); err != nil {
			logging.Debug("candid", "Skipping template for canister '%s': %v", name, err)
			continue
		}
		if _, err := Render(templatePath, vars, argsDir); err != nil {
			agg.Add(name, err)
		}
	}
	return agg
}
