package staging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/collectiontools/stagehand/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name untouched", "photo1.jpg", "photo1.jpg"},
		{"spaces become underscores", "box 1 item 2.tif", "box_1_item_2.tif"},
		{"space dash space becomes double dash", "box 1 - item 2.tif", "box_1--item_2.tif"},
		{"space before dash", "box 1 -item2.tif", "box_1--item2.tif"},
		{"space after dash", "box1- item2.tif", "box1--item2.tif"},
		{"leading and trailing whitespace stripped", "  photo.jpg  ", "photo.jpg"},
		{"trailing space before extension", "photo .jpg", "photo.jpg"},
		{"multiple spaces collapse", "a   b.png", "a_b.png"},
		{"no extension", "finding aid - draft", "finding_aid--draft"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestNewTreeCreatesSubdirectories(t *testing.T) {
	base := t.TempDir()
	tree, err := NewTree(base)
	require.NoError(t, err)

	for _, sub := range []string{ObjsDir, ThumbDir, SmallDir} {
		info, statErr := os.Stat(filepath.Join(tree.Root, sub))
		require.NoError(t, statErr)
		assert.True(t, info.IsDir())
	}
}

func TestStageLinksMatchedFiles(t *testing.T) {
	source := t.TempDir()
	path := filepath.Join(source, "box 1 - item 2.tif")
	require.NoError(t, os.WriteFile(path, []byte("image"), 0o600))

	tree, err := NewTree(t.TempDir())
	require.NoError(t, err)

	staged := tree.Stage(7, []model.MatchResult{
		{Target: "box 1 - item 2.tif", Path: path, Score: 100},
		{Target: "missing.jpg"}, // unmatched, skipped
	})

	require.Len(t, staged, 1)
	assert.Equal(t, int64(7), staged[0].RunID)
	assert.Equal(t, "box_1--item_2.tif", staged[0].SanitizedName)
	assert.Equal(t, filepath.Join(tree.Objs, "box_1--item_2.tif"), staged[0].StagedPath)

	// The staged entry resolves to the original content.
	content, err := os.ReadFile(staged[0].StagedPath)
	require.NoError(t, err)
	assert.Equal(t, "image", string(content))
}

func TestStageResolvesNameCollisions(t *testing.T) {
	sourceA := t.TempDir()
	sourceB := t.TempDir()
	pathA := filepath.Join(sourceA, "scan.tif")
	pathB := filepath.Join(sourceB, "scan.tif")
	require.NoError(t, os.WriteFile(pathA, []byte("a"), 0o600))
	require.NoError(t, os.WriteFile(pathB, []byte("b"), 0o600))

	tree, err := NewTree(t.TempDir())
	require.NoError(t, err)

	staged := tree.Stage(0, []model.MatchResult{
		{Target: "scan.tif", Path: pathA, Score: 100},
		{Target: "scan.tif", Path: pathB, Score: 100},
	})

	require.Len(t, staged, 2)
	assert.Equal(t, "scan.tif", staged[0].SanitizedName)
	assert.Equal(t, "scan_1.tif", staged[1].SanitizedName)
}

func TestStageSkipsVanishedSources(t *testing.T) {
	tree, err := NewTree(t.TempDir())
	require.NoError(t, err)

	staged := tree.Stage(0, []model.MatchResult{
		{Target: "gone.jpg", Path: filepath.Join(t.TempDir(), "gone.jpg"), Score: 100},
	})

	assert.Empty(t, staged)
}
