// Package artifacts persists the pipeline's stage outputs as plain JSON/text
// files in a working directory. Each file is the sole hand-off between
// stages; writes are whole-file overwrites with no locking.
package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yapay-ai/cloud-cost-optimizer/pkg/model"
)

// Artifact filenames within the working directory.
const (
	DescriptionFile = "project_description.txt"
	ProfileFile     = "project_profile.json"
	BillingFile     = "mock_billing.json"
	ReportFile      = "cost_optimization_report.json"
)

// ErrNotFound is returned when a required input artifact does not exist,
// letting callers chain an earlier stage instead of failing hard.
var ErrNotFound = errors.New("artifact not found")

// Store reads and writes pipeline artifacts under a single directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{dir: dir}
}

// Dir returns the working directory path.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) string { return filepath.Join(s.dir, name) }

// SaveDescription writes the raw project description.
func (s *Store) SaveDescription(text string) error {
	if err := os.WriteFile(s.path(DescriptionFile), []byte(text), 0o644); err != nil {
		return fmt.Errorf("save description: %w", err)
	}
	return nil
}

// LoadDescription reads the raw project description.
func (s *Store) LoadDescription() (string, error) {
	data, err := s.read(DescriptionFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SaveProfile writes the project profile.
func (s *Store) SaveProfile(p *model.ProjectProfile) error {
	return s.writeJSON(ProfileFile, p)
}

// LoadProfile reads the project profile.
func (s *Store) LoadProfile() (*model.ProjectProfile, error) {
	var p model.ProjectProfile
	if err := s.readJSON(ProfileFile, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveBilling writes the billing records.
func (s *Store) SaveBilling(records []model.BillingRecord) error {
	return s.writeJSON(BillingFile, records)
}

// LoadBilling reads the billing records.
func (s *Store) LoadBilling() ([]model.BillingRecord, error) {
	var records []model.BillingRecord
	if err := s.readJSON(BillingFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveReport writes the cost report.
func (s *Store) SaveReport(r *model.CostReport) error {
	return s.writeJSON(ReportFile, r)
}

// LoadReport reads the cost report.
func (s *Store) LoadReport() (*model.CostReport, error) {
	var r model.CostReport
	if err := s.readJSON(ReportFile, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// FileStatus reports the presence of one artifact.
type FileStatus struct {
	Name   string
	Exists bool
}

// Status lists every artifact and whether it exists.
func (s *Store) Status() []FileStatus {
	names := []string{DescriptionFile, ProfileFile, BillingFile, ReportFile}
	statuses := make([]FileStatus, 0, len(names))
	for _, name := range names {
		_, err := os.Stat(s.path(name))
		statuses = append(statuses, FileStatus{Name: name, Exists: err == nil})
	}
	return statuses
}

func (s *Store) read(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (s *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

func (s *Store) readJSON(name string, v any) error {
	data, err := s.read(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
