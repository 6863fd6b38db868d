package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zkreview/zkr-cli/internal/domain"
	"github.com/zkreview/zkr-cli/internal/usecase"
)

// DeploymentStoreAdapter implements DeploymentStore with JSON files
type DeploymentStoreAdapter struct{}

// NewDeploymentStoreAdapter creates a new DeploymentStoreAdapter
func NewDeploymentStoreAdapter() *DeploymentStoreAdapter {
	return &DeploymentStoreAdapter{}
}

// Save writes the summary to path, replacing any previous file
func (s *DeploymentStoreAdapter) Save(ctx context.Context, path string, summary *domain.DeploymentSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployment summary: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// write next to the target so the rename stays on one filesystem
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("failed to write deployment summary: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write deployment summary: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Load reads and validates a summary file
func (s *DeploymentStoreAdapter) Load(ctx context.Context, path string) (*domain.DeploymentSummary, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var summary domain.DeploymentSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidSummary, path, err)
	}
	if err := summary.Validate(); err != nil {
		return nil, err
	}

	return &summary, nil
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentStore = (*DeploymentStoreAdapter)(nil)
