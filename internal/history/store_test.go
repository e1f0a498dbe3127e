package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/edimatch/internal/models"
)

func testSet() *models.BatchResultSet {
	set := models.NewBatchResultSet()
	set.Results["aaa111"] = models.ComparisonResult{
		File1:        "order_aaa111.txt",
		File2:        "orderbla_aaa111.txt",
		HeaderMatch:  true,
		GroupMatch:   true,
		PayloadMatch: true,
	}
	set.Results["bbb222"] = models.ComparisonResult{
		File1:        "order_bbb222.txt",
		File2:        "orderbla_bbb222.txt",
		HeaderMatch:  false,
		GroupMatch:   true,
		PayloadMatch: false,
	}
	set.Summaries = []models.PairSummary{
		set.Results["aaa111"].Summary(),
		set.Results["bbb222"].Summary(),
	}
	set.AddDiagnostic(models.DiagUnmatchedSource, "order_zzz.txt", "no target")
	return set
}

// TestRecordAndReadBack round-trips a batch run through the store.
func TestRecordAndReadBack(t *testing.T) {
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	started := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	runID, err := store.RecordRun("fromData", "toData", started, testSet())
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	runs, err := store.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.ID)
	assert.Equal(t, "fromData", run.SourceDir)
	assert.Equal(t, "toData", run.TargetDir)
	assert.Equal(t, 2, run.PairCount)
	assert.Equal(t, 1, run.Excluded)
	assert.Equal(t, 0, run.Failed)

	pairs, err := store.PairsForRun(runID)
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	assert.Equal(t, "aaa111", pairs[0].Key)
	assert.True(t, pairs[0].PayloadMatch)
	assert.Equal(t, "bbb222", pairs[1].Key)
	assert.False(t, pairs[1].HeaderMatch)
	assert.False(t, pairs[1].PayloadMatch)
	assert.True(t, pairs[1].GroupMatch)
}

// TestRecentRunsOrder verifies newest-first ordering and the limit.
func TestRecentRunsOrder(t *testing.T) {
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	base := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := store.RecordRun("from", "to", base.Add(time.Duration(i)*time.Hour), testSet())
		require.NoError(t, err)
	}

	runs, err := store.RecentRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt))
}

// TestNewStoreCreatesDirectory verifies parent directories are created
// for file-backed databases.
func TestNewStoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.RecordRun("from", "to", time.Now(), models.NewBatchResultSet())
	require.NoError(t, err)
}
