package render

import (
	"os"
	"path/filepath"

	"github.com/aukilabs/go-tooling/pkg/errors"

	"sparse-grids/internal/core"
)

// ErrTypeSnapshot marks a failure writing an image to disk.
const ErrTypeSnapshot = "snapshot_failed"

// SavePNG writes g as a PNG at path, creating missing parent directories.
func SavePNG(path string, g *core.FloatGrid, tint Tint) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New("creating snapshot directory failed").
				WithType(ErrTypeSnapshot).
				WithTag("dir", dir).
				Wrap(err)
		}
	}
	if err := Rasterize(g, tint).SavePNG(path); err != nil {
		return errors.New("writing snapshot failed").
			WithType(ErrTypeSnapshot).
			WithTag("path", path).
			Wrap(err)
	}
	return nil
}
