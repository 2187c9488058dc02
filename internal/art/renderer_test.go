package art

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokemedquest/internal/models"
)

func writeArt(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestRenderer_Render(t *testing.T) {
	dir := t.TempDir()
	writeArt(t, dir, "avatar1_default.txt", " o\n/|\\\n/ \\\n")
	writeArt(t, dir, "avatar2_evolved1_hat.txt", "  ^\n (o)\n")

	tests := []struct {
		name   string
		color  bool
		avatar models.Avatar
		want   string
	}{
		{
			name:   "plain",
			avatar: models.Avatar{Name: "Aria", Color: "red", Accessory: "none", Level: 1},
			want:   " o\n/|\\\n/ \\",
		},
		{
			name:   "colored",
			color:  true,
			avatar: models.Avatar{Name: "Aria", Color: "red", Accessory: "none", Level: 1},
			want:   "\033[31m o\n/|\\\n/ \\\033[0m",
		},
		{
			name:   "stage and accessory",
			avatar: models.Avatar{Name: "mage", Color: "blue", Accessory: "hat", Level: 7},
			want:   "  ^\n (o)",
		},
		{
			name:   "missing asset",
			color:  true,
			avatar: models.Avatar{Name: "archer", Color: "blue", Accessory: "none", Level: 12},
			want:   "[ no art for avatar3_evolved2 ]",
		},
		{
			name:   "unknown color stays plain",
			color:  true,
			avatar: models.Avatar{Name: "Aria", Color: "magenta", Accessory: "none", Level: 2},
			want:   " o\n/|\\\n/ \\",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(dir, tt.color)
			got, err := r.Render(&tt.avatar)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderer_ReadError(t *testing.T) {
	dir := t.TempDir()
	// a directory where a file is expected
	require.NoError(t, os.Mkdir(filepath.Join(dir, "avatar1_default.txt"), 0o755))

	_, err := NewRenderer(dir, false).Render(&models.Avatar{Name: "Aria", Level: 1, Accessory: "none"})
	assert.Error(t, err)
}

func TestRenderer_RefusesFilesOutsideDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "art")
	require.NoError(t, os.Mkdir(dir, 0o755))
	writeArt(t, root, "secret.txt", "TOP SECRET NOTES")

	tests := []struct {
		name      string
		accessory string
	}{
		{name: "parent segments", accessory: "../secret"},
		{name: "deep parent segments", accessory: "../../../../secret"},
		{name: "subdirectory", accessory: "x/../../secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avatar := &models.Avatar{Name: "Aria", Color: "blue", Accessory: tt.accessory, Level: 1}
			got, err := NewRenderer(dir, false).Render(avatar)
			assert.ErrorIs(t, err, ErrUnsafeArtFile)
			assert.Empty(t, got)
		})
	}
}
