package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/storyforge/renderkit/errors"
)

// SaveArtifact persists image bytes under dir/name. An empty name gets an
// autogenerated uuid-based one; an empty dir means the working directory.
// Returns the path written.
func SaveArtifact(dir, name string, data []byte) (string, error) {
	if name == "" {
		name = uuid.NewString() + ".png"
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Internal(fmt.Errorf("create output directory: %w", err))
		}
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Internal(fmt.Errorf("write output artifact: %w", err))
	}
	return path, nil
}
