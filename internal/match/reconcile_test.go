package match

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileBestScoreWinsAcrossDirectories(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeFile(t, filepath.Join(dirA, "report_draft_v2.pdf"))
	writeFile(t, filepath.Join(dirB, "report.pdf"))

	// The directory holding the better candidate should win regardless of
	// scan order.
	for _, dirs := range [][]string{{dirA, dirB}, {dirB, dirA}} {
		outcome, err := Reconcile(context.Background(), dirs, []string{"report.pdf"}, DefaultThreshold, nil)
		require.NoError(t, err)

		require.Len(t, outcome.Matched, 1)
		assert.Equal(t, 100, outcome.Matched[0].Score)
		assert.Equal(t, filepath.Join(dirB, "report.pdf"), outcome.Matched[0].Path)
	}
}

func TestReconcileTieKeepsEarlierDirectory(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeFile(t, filepath.Join(dirA, "scan001.tif"))
	writeFile(t, filepath.Join(dirB, "scan001.tif"))

	outcome, err := Reconcile(context.Background(), []string{dirA, dirB}, []string{"scan001.tif"}, DefaultThreshold, nil)
	require.NoError(t, err)

	require.Len(t, outcome.Matched, 1)
	assert.Equal(t, filepath.Join(dirA, "scan001.tif"), outcome.Matched[0].Path)
}

func TestReconcileThresholdPartition(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "photo2_final.jpg")) // scores 62 against photo2.jpg

	// Just above the best score: unmatched, but the close call is retained.
	outcome, err := Reconcile(context.Background(), []string{root}, []string{"photo2.jpg"}, 63, nil)
	require.NoError(t, err)
	assert.Empty(t, outcome.Matched)
	require.Len(t, outcome.Unmatched, 1)
	assert.Equal(t, 62, outcome.Unmatched[0].Score)
	assert.Equal(t, filepath.Join(root, "photo2_final.jpg"), outcome.Unmatched[0].Path)

	// At the best score: matched. The threshold comparison is >=.
	outcome, err = Reconcile(context.Background(), []string{root}, []string{"photo2.jpg"}, 62, nil)
	require.NoError(t, err)
	require.Len(t, outcome.Matched, 1)
	assert.Empty(t, outcome.Unmatched)
	assert.Equal(t, 1, outcome.MatchedCount)
}

func TestReconcilePreservesInputOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.jpg"))
	writeFile(t, filepath.Join(root, "d.jpg"))

	outcome, err := Reconcile(context.Background(), []string{root},
		[]string{"d.jpg", "missing1.jpg", "b.jpg", "missing2.jpg"}, DefaultThreshold, nil)
	require.NoError(t, err)

	require.Len(t, outcome.All, 4)
	assert.Equal(t, "d.jpg", outcome.All[0].Target)
	assert.Equal(t, "missing1.jpg", outcome.All[1].Target)
	assert.Equal(t, "b.jpg", outcome.All[2].Target)
	assert.Equal(t, "missing2.jpg", outcome.All[3].Target)

	require.Len(t, outcome.Matched, 2)
	assert.Equal(t, "d.jpg", outcome.Matched[0].Target)
	assert.Equal(t, "b.jpg", outcome.Matched[1].Target)

	require.Len(t, outcome.Unmatched, 2)
	assert.Equal(t, "missing1.jpg", outcome.Unmatched[0].Target)
	assert.Equal(t, "missing2.jpg", outcome.Unmatched[1].Target)
}

func TestReconcileEmptyScope(t *testing.T) {
	outcome, err := Reconcile(context.Background(), nil, []string{"a.jpg", "b.jpg"}, DefaultThreshold, nil)
	require.NoError(t, err)

	assert.Zero(t, outcome.MatchedCount)
	assert.Equal(t, 2, outcome.TotalCount)
	require.Len(t, outcome.Unmatched, 2)
	for _, result := range outcome.Unmatched {
		assert.False(t, result.Found())
		assert.Zero(t, result.Score)
	}
}

func TestReconcileMissingDirectoryTreatedAsEmpty(t *testing.T) {
	good := t.TempDir()
	writeFile(t, filepath.Join(good, "a.jpg"))
	gone := filepath.Join(t.TempDir(), "missing")

	outcome, err := Reconcile(context.Background(), []string{gone, good}, []string{"a.jpg"}, DefaultThreshold, nil)
	require.NoError(t, err)

	require.Len(t, outcome.Matched, 1)
	assert.Equal(t, filepath.Join(good, "a.jpg"), outcome.Matched[0].Path)
}

func TestReconcileDeterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Photo1.JPG"))
	writeFile(t, filepath.Join(root, "photo2_final.jpg"))
	targets := []string{"photo1.jpg", "photo2.jpg"}

	first, err := Reconcile(context.Background(), []string{root}, targets, DefaultThreshold, nil)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, reconcileErr := Reconcile(context.Background(), []string{root}, targets, DefaultThreshold, nil)
		require.NoError(t, reconcileErr)
		assert.Equal(t, first, again)
	}
}

func TestReconcileCancellationAbortsRun(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeFile(t, filepath.Join(dirA, "a.jpg"))
	writeFile(t, filepath.Join(dirB, "a.jpg"))

	ctx, cancel := context.WithCancel(context.Background())
	outcome, err := Reconcile(ctx, []string{dirA, dirB}, []string{"a.jpg", "b.jpg"}, DefaultThreshold, func(fraction float64) {
		if fraction >= 0.5 {
			cancel()
		}
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, outcome)
}

func TestReconcileProgressSpansAllDirectories(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeFile(t, filepath.Join(dirA, "a.jpg"))
	writeFile(t, filepath.Join(dirB, "b.jpg"))

	var fractions []float64
	_, err := Reconcile(context.Background(), []string{dirA, dirB}, []string{"a.jpg", "b.jpg"}, DefaultThreshold, func(f float64) {
		fractions = append(fractions, f)
	})
	require.NoError(t, err)

	require.Len(t, fractions, 4)
	for i := 1; i < len(fractions); i++ {
		assert.GreaterOrEqual(t, fractions[i], fractions[i-1])
	}
	assert.InDelta(t, 1.0, fractions[len(fractions)-1], 0)
}

// Mirrors the CSV-driven workflow end to end: one case-different exact match
// and one close call that falls under the default threshold.
func TestReconcileCSVScenario(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Photo1.JPG"))
	writeFile(t, filepath.Join(root, "photo2_final.jpg"))

	outcome, err := Reconcile(context.Background(), []string{root},
		[]string{"photo1.jpg", "photo2.jpg"}, DefaultThreshold, nil)
	require.NoError(t, err)

	require.Len(t, outcome.Matched, 1)
	assert.Equal(t, "Photo1.JPG", filepath.Base(outcome.Matched[0].Path))
	assert.Equal(t, 100, outcome.Matched[0].Score)

	require.Len(t, outcome.Unmatched, 1)
	assert.Equal(t, "photo2.jpg", outcome.Unmatched[0].Target)
	assert.Equal(t, "photo2_final.jpg", filepath.Base(outcome.Unmatched[0].Path))
	assert.Less(t, outcome.Unmatched[0].Score, DefaultThreshold)
	assert.Equal(t, 1, outcome.MatchedCount)
	assert.Equal(t, 2, outcome.TotalCount)
}
