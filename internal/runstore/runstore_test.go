package runstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piratevector/DynamicClustering/internal/dyclee"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGetRun(t *testing.T) {
	s := openTestStore(t)

	run := &Run{Phi: 0.06, TGlobal: 500, Dims: 2, Dataset: "blobs"}
	require.NoError(t, s.CreateRun(run))
	require.NotEmpty(t, run.RunID)
	require.NotZero(t, run.CreatedUnixNanos)

	got, err := s.GetRun(run.RunID)
	require.NoError(t, err)
	require.Equal(t, run.Phi, got.Phi)
	require.Equal(t, run.TGlobal, got.TGlobal)
	require.Equal(t, "blobs", got.Dataset)
}

func TestRecordAndListPasses(t *testing.T) {
	s := openTestStore(t)
	run := &Run{Phi: 0.06, TGlobal: 500, Dims: 2}
	require.NoError(t, s.CreateRun(run))

	pass1 := []dyclee.FinalCluster{
		{Label: 1, MicroClusters: 3, Samples: 400, Center: []float64{1.2, 1.3}, MeanDensity: 9.5, Spread: 0.8},
		{Label: 2, MicroClusters: 1, Samples: 250, Center: []float64{8.0, 8.1}, MeanDensity: 12.0},
	}
	require.NoError(t, s.RecordPass(run.RunID, 499, pass1))
	require.NoError(t, s.RecordPass(run.RunID, 999, pass1[:1]))

	got, err := s.ListPasses(run.RunID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.EqualValues(t, 499, got[0].PassT)
	require.EqualValues(t, 1, got[0].Label)
	require.Equal(t, []float64{1.2, 1.3}, got[0].Center)
	require.EqualValues(t, 999, got[2].PassT)
}

func TestGetMissingRun(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetRun("nope")
	require.Error(t, err)
}
