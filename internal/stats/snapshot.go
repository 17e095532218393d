package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/armadaproject/benchstats/internal/hdr"
)

// snapshotRecord is the persisted form of a BenchmarkStats. Duration is in
// whole seconds and the latency histogram is embedded as its opaque
// versioned binary envelope. The three counters round-trip exactly;
// histogram queries round-trip within the histogram's own precision.
type snapshotRecord struct {
	RunId      string    `json:"run_id,omitempty" yaml:"runId,omitempty"`
	RecordedAt time.Time `json:"recorded_at,omitempty" yaml:"recordedAt,omitempty"`
	Duration   uint64    `json:"duration" yaml:"duration"`
	NumError   uint64    `json:"num_error" yaml:"numError"`
	NumSuccess uint64    `json:"num_success" yaml:"numSuccess"`
	Latency    []byte    `json:"latency" yaml:"latency"`
}

func (s *BenchmarkStats) toRecord() (*snapshotRecord, error) {
	encoded, err := s.latency.Encode()
	if err != nil {
		return nil, err
	}
	return &snapshotRecord{
		RunId:      s.runId,
		RecordedAt: s.recordedAt,
		Duration:   uint64(s.duration / time.Second),
		NumError:   s.numError,
		NumSuccess: s.numSuccess,
		Latency:    encoded,
	}, nil
}

func (s *BenchmarkStats) fromRecord(record *snapshotRecord) error {
	latency, err := hdr.Decode(record.Latency)
	if err != nil {
		return &ErrCorruptSnapshot{Message: "decoding latency histogram", Err: err}
	}
	if latency.TotalCount() != record.NumSuccess {
		return &ErrCorruptSnapshot{
			Message: fmt.Sprintf(
				"num_success is %d but the latency histogram holds %d observations",
				record.NumSuccess, latency.TotalCount(),
			),
		}
	}
	runId := record.RunId
	if runId == "" {
		runId = uuid.NewString()
	}
	s.runId = runId
	s.recordedAt = record.RecordedAt
	s.duration = time.Duration(record.Duration) * time.Second
	s.numError = record.NumError
	s.numSuccess = record.NumSuccess
	s.latency = latency
	return nil
}

// MarshalJSON serializes the snapshot into its persisted form.
func (s *BenchmarkStats) MarshalJSON() ([]byte, error) {
	record, err := s.toRecord()
	if err != nil {
		return nil, err
	}
	return json.Marshal(record)
}

// UnmarshalJSON loads a snapshot from its persisted form, rejecting
// malformed latency envelopes and counter mismatches with
// *ErrCorruptSnapshot.
func (s *BenchmarkStats) UnmarshalJSON(b []byte) error {
	var record snapshotRecord
	if err := json.Unmarshal(b, &record); err != nil {
		return errors.WithStack(err)
	}
	return s.fromRecord(&record)
}

// MarshalYAML serializes the snapshot into its persisted form.
func (s *BenchmarkStats) MarshalYAML() (interface{}, error) {
	return s.toRecord()
}

// UnmarshalYAML loads a snapshot from its persisted form.
func (s *BenchmarkStats) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var record snapshotRecord
	if err := unmarshal(&record); err != nil {
		return errors.WithStack(err)
	}
	return s.fromRecord(&record)
}

// Load reads a persisted snapshot from a JSON or YAML file. The format is
// decided by the first non-whitespace byte, as JSON documents always open
// with an object brace here.
func Load(filePath string) (*BenchmarkStats, error) {
	b, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read snapshot file %s", filePath)
	}
	s := &BenchmarkStats{}
	trimmed := bytes.TrimLeft(b, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		err = json.Unmarshal(b, s)
	} else {
		err = yaml.Unmarshal(b, s)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse snapshot file %s", filePath)
	}
	return s, nil
}
