package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

// ReportStore persists scan results so they can be viewed later.
type ReportStore interface {
	SaveReport(path m.Path, result m.ScanResult) error
	LoadReport(path m.Path) (m.ScanResult, error)
}

// YAMLReportStore stores reports as YAML documents.
type YAMLReportStore struct{}

// NewReportStore constructs the default ReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReport writes result to path, creating parent directories as needed.
func (s *YAMLReportStore) SaveReport(path m.Path, result m.ScanResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// LoadReport reads a report previously written by SaveReport.
func (s *YAMLReportStore) LoadReport(path m.Path) (m.ScanResult, error) {
	// #nosec G304 - report path is provided by the user
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.ScanResult{}, fmt.Errorf("read report: %w", err)
	}

	var result m.ScanResult
	if err := yaml.Unmarshal(data, &result); err != nil {
		return m.ScanResult{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	return result, nil
}
