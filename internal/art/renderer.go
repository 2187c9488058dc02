// Package art draws an avatar's ASCII art from the asset directory
package art

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"pokemedquest/internal/models"
)

const ansiReset = "\033[0m"

// ErrUnsafeArtFile is returned when an avatar's art file would resolve outside Dir
var ErrUnsafeArtFile = errors.New("art file name leaves the art directory")

var ansiColors = map[string]string{
	"red":    "\033[31m",
	"green":  "\033[32m",
	"yellow": "\033[33m",
	"blue":   "\033[34m",
	"purple": "\033[35m",
	"cyan":   "\033[36m",
	"white":  "\033[37m",
}

// Renderer loads art files from Dir. With Color set the art is wrapped in the
// avatar's ANSI color.
type Renderer struct {
	Dir   string
	Color bool
}

// NewRenderer creates a renderer over the given asset directory
func NewRenderer(dir string, color bool) *Renderer {
	return &Renderer{Dir: dir, Color: color}
}

// Render returns the avatar's art. A missing asset yields a one-line placeholder;
// other read errors are returned.
func (r *Renderer) Render(avatar *models.Avatar) (string, error) {
	file := avatar.ArtFile()
	if !filepath.IsLocal(file) || filepath.Base(file) != file {
		return "", fmt.Errorf("%w: %q", ErrUnsafeArtFile, file)
	}
	data, err := os.ReadFile(filepath.Join(r.Dir, file))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Sprintf("[ no art for %s ]", strings.TrimSuffix(file, ".txt")), nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load art %s: %w", file, err)
	}

	art := strings.TrimRight(string(data), "\n")
	if !r.Color {
		return art, nil
	}
	code, ok := ansiColors[strings.ToLower(avatar.Color)]
	if !ok {
		return art, nil
	}
	return code + art + ansiReset, nil
}
