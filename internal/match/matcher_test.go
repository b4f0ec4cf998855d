package match

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchOne(t *testing.T) {
	tests := []struct {
		name      string
		files     []string
		target    string
		wantBase  string
		wantScore int
	}{
		{
			name:      "exact match ignoring case",
			files:     []string{"Photo1.JPG", "photo2_final.jpg"},
			target:    "photo1.jpg",
			wantBase:  "Photo1.JPG",
			wantScore: 100,
		},
		{
			name:      "exact match in nested directory",
			files:     []string{filepath.Join("box1", "folder2", "ms0042_001.tif"), "other.tif"},
			target:    "MS0042_001.TIF",
			wantBase:  "ms0042_001.tif",
			wantScore: 100,
		},
		{
			name:      "best partial match wins",
			files:     []string{"photo2_final.jpg", "unrelated.txt"},
			target:    "photo2.jpg",
			wantBase:  "photo2_final.jpg",
			wantScore: 62,
		},
		{
			name:      "tie keeps first candidate seen",
			files:     []string{"aa.txt", "ab.txt"},
			target:    "ac.txt",
			wantBase:  "aa.txt",
			wantScore: 83,
		},
		{
			name:      "zero score records no path",
			files:     []string{"zzz"},
			target:    "abc",
			wantBase:  "",
			wantScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, f := range tt.files {
				writeFile(t, filepath.Join(root, f))
			}

			result := MatchOne(root, tt.target)

			assert.Equal(t, tt.wantScore, result.Score)
			if tt.wantBase == "" {
				assert.Empty(t, result.Path)
				assert.False(t, result.Found())
			} else {
				assert.Equal(t, tt.wantBase, filepath.Base(result.Path))
			}
		})
	}
}

func TestMatchOneEmptyDirectory(t *testing.T) {
	result := MatchOne(t.TempDir(), "photo1.jpg")
	assert.False(t, result.Found())
	assert.Zero(t, result.Score)
}

func TestMatchOneMissingDirectory(t *testing.T) {
	result := MatchOne(filepath.Join(t.TempDir(), "gone"), "photo1.jpg")
	assert.False(t, result.Found())
	assert.Zero(t, result.Score)
}

func TestMatchBatchPreservesInputOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.jpg"))
	writeFile(t, filepath.Join(root, "a.jpg"))

	results, err := MatchBatch(context.Background(), root, []string{"b.jpg", "a.jpg", "c.jpg"}, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "b.jpg", results[0].Target)
	assert.Equal(t, "a.jpg", results[1].Target)
	assert.Equal(t, "c.jpg", results[2].Target)
	assert.Equal(t, 100, results[0].Score)
	assert.Equal(t, 100, results[1].Score)
}

func TestMatchBatchDuplicateTargetsHandledIndependently(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "scan.tif"))

	results, err := MatchBatch(context.Background(), root, []string{"scan.tif", "scan.tif"}, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, results[0], results[1])
}

func TestMatchBatchProgress(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"))

	var fractions []float64
	_, err := MatchBatch(context.Background(), root, []string{"a.jpg", "b.jpg", "c.jpg"}, func(f float64) {
		fractions = append(fractions, f)
	})
	require.NoError(t, err)

	// One call per target, non-decreasing, ending at exactly 1.0.
	require.Len(t, fractions, 3)
	for i := 1; i < len(fractions); i++ {
		assert.GreaterOrEqual(t, fractions[i], fractions[i-1])
	}
	assert.InDelta(t, 1.0, fractions[len(fractions)-1], 0)
}

func TestMatchBatchEmptyTargets(t *testing.T) {
	var fractions []float64
	results, err := MatchBatch(context.Background(), t.TempDir(), nil, func(f float64) {
		fractions = append(fractions, f)
	})
	require.NoError(t, err)

	assert.Empty(t, results)
	assert.Equal(t, []float64{0, 1.0}, fractions)
}

func TestMatchBatchCancellationDiscardsPartialResults(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"))

	ctx, cancel := context.WithCancel(context.Background())
	processed := 0
	results, err := MatchBatch(ctx, root, []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}, func(float64) {
		processed++
		if processed == 2 {
			cancel()
		}
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
	// The target already in flight ran to completion; nothing after it started.
	assert.Equal(t, 2, processed)
}

func TestMatchBatchCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := MatchBatch(ctx, t.TempDir(), []string{"a.jpg"}, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}
