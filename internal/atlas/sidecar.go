package atlas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fusiondex/dexbuild/internal/model"
)

// WriteSidecar persists the atlas metadata next to the atlas image. The
// client maps fusion keys to sprite rectangles through this file, so it is
// written once per build and never mutated afterwards.
func WriteSidecar(path string, meta model.AtlasMetadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal atlas metadata: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write atlas metadata: %w", err)
	}
	return nil
}

// ReadSidecar loads a previously written metadata sidecar.
func ReadSidecar(path string) (model.AtlasMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.AtlasMetadata{}, fmt.Errorf("failed to read atlas metadata: %w", err)
	}
	var meta model.AtlasMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return model.AtlasMetadata{}, fmt.Errorf("failed to parse atlas metadata %s: %w", path, err)
	}
	return meta, nil
}

// WriteSummary persists the build summary next to the sidecar.
func WriteSummary(path string, summary model.BuildSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal build summary: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write build summary: %w", err)
	}
	return nil
}
