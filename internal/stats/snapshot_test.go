package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

func exampleRun(t *testing.T) *BenchmarkStats {
	t.Helper()
	s := New()
	for _, v := range []uint64{5, 10, 10, 50, 250, 3000} {
		require.NoError(t, s.RecordSuccess(v))
	}
	s.RecordError()
	s.RecordError()
	s.Finalize(90 * time.Second)
	return s
}

func assertSnapshotsEquivalent(t *testing.T, want, got *BenchmarkStats) {
	t.Helper()
	assert.Equal(t, want.RunId(), got.RunId())
	assert.Equal(t, want.Duration(), got.Duration())
	assert.Equal(t, want.NumSuccess(), got.NumSuccess())
	assert.Equal(t, want.NumError(), got.NumError())
	assert.Equal(t, want.Latency().Min(), got.Latency().Min())
	assert.Equal(t, want.Latency().Max(), got.Latency().Max())
	for _, q := range []float64{0, 0.25, 0.5, 0.75, 0.9, 0.99, 0.999, 1} {
		assert.Equal(t, want.Latency().ValueAtQuantile(q), got.Latency().ValueAtQuantile(q))
	}
}

func TestSnapshot_JsonRoundTrip(t *testing.T) {
	s := exampleRun(t)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	loaded := &BenchmarkStats{}
	require.NoError(t, json.Unmarshal(b, loaded))

	assertSnapshotsEquivalent(t, s, loaded)
}

func TestSnapshot_YamlRoundTrip(t *testing.T) {
	s := exampleRun(t)

	b, err := yaml.Marshal(s)
	require.NoError(t, err)
	loaded := &BenchmarkStats{}
	require.NoError(t, yaml.Unmarshal(b, loaded))

	assertSnapshotsEquivalent(t, s, loaded)
}

func TestSnapshot_LoadFromFile(t *testing.T) {
	s := exampleRun(t)
	b, err := json.Marshal(s)
	require.NoError(t, err)
	filePath := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(filePath, b, 0o644))

	loaded, err := Load(filePath)
	require.NoError(t, err)
	assertSnapshotsEquivalent(t, s, loaded)
}

func TestSnapshot_LoadYamlFromFile(t *testing.T) {
	s := exampleRun(t)
	b, err := yaml.Marshal(s)
	require.NoError(t, err)
	filePath := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, os.WriteFile(filePath, b, 0o644))

	loaded, err := Load(filePath)
	require.NoError(t, err)
	assertSnapshotsEquivalent(t, s, loaded)
}

func TestSnapshot_UnmarshalRejectsCorruptLatencyEnvelope(t *testing.T) {
	b, err := json.Marshal(map[string]interface{}{
		"duration":    10,
		"num_error":   0,
		"num_success": 0,
		"latency":     []byte{0xde, 0xad, 0xbe, 0xef},
	})
	require.NoError(t, err)

	var corrupt *ErrCorruptSnapshot
	require.ErrorAs(t, json.Unmarshal(b, &BenchmarkStats{}), &corrupt)
}

func TestSnapshot_UnmarshalRejectsCounterHistogramMismatch(t *testing.T) {
	s := exampleRun(t)
	b, err := json.Marshal(s)
	require.NoError(t, err)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &record))
	record["num_success"] = 1000000
	tampered, err := json.Marshal(record)
	require.NoError(t, err)

	var corrupt *ErrCorruptSnapshot
	require.ErrorAs(t, json.Unmarshal(tampered, &BenchmarkStats{}), &corrupt)
}
