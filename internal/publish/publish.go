package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// ScriptPublisher writes the latest result as a JavaScript file defining
// data and photo_url for the static page.
type ScriptPublisher struct {
	path   string
	logger *slog.Logger
}

func NewScriptPublisher(path string, logger *slog.Logger) *ScriptPublisher {
	return &ScriptPublisher{path: path, logger: logger}
}

// Render returns the script body. raw is embedded as-is and must already be
// a valid JavaScript expression for the page to load it.
func Render(raw, photoURL string) string {
	return "var data = " + raw + "; var photo_url = " + strconv.Quote(photoURL) + ";"
}

// Publish replaces the script file. The file is swapped in by rename, so
// readers see either the old or the new contents.
func (p *ScriptPublisher) Publish(ctx context.Context, raw, photoURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !json.Valid([]byte(raw)) {
		p.logger.Warn("description is not valid json, publishing verbatim", "path", p.path)
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(p.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(Render(raw, photoURL)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write script: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close script: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to chmod script: %w", err)
	}
	if err := os.Rename(tmpPath, p.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace script: %w", err)
	}

	p.logger.Info("published", "path", p.path, "photo_url", photoURL)
	return nil
}
