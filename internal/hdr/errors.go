package hdr

import "fmt"

// ErrValueOutOfRange is returned when a recorded latency falls outside the
// trackable range the histogram was configured with. The caller decides
// whether to clamp to HighestTrackable or drop the observation; the
// histogram itself never truncates silently.
type ErrValueOutOfRange struct {
	Value            uint64
	LowestTrackable  uint64
	HighestTrackable uint64
}

func (err *ErrValueOutOfRange) Error() string {
	return fmt.Sprintf(
		"value %d is outside the trackable range [%d, %d]",
		err.Value, err.LowestTrackable, err.HighestTrackable,
	)
}

// ErrIncompatibleHistograms is returned when merging two histograms that were
// configured with different precision or range parameters. Merging such
// histograms would silently degrade accuracy, so it is refused outright.
type ErrIncompatibleHistograms struct {
	Config      Config
	OtherConfig Config
}

func (err *ErrIncompatibleHistograms) Error() string {
	return fmt.Sprintf(
		"cannot merge histograms with different configurations: %s versus %s",
		err.Config, err.OtherConfig,
	)
}

// ErrCorruptEncoding is returned when decoding a histogram envelope that is
// truncated, malformed, or carries an unknown codec version.
type ErrCorruptEncoding struct {
	Message string // Reason the envelope was rejected
	Err     error  // Underlying error, if any
}

func (err *ErrCorruptEncoding) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("corrupt histogram encoding: %s: %s", err.Message, err.Err)
	}
	return fmt.Sprintf("corrupt histogram encoding: %s", err.Message)
}

func (err *ErrCorruptEncoding) Unwrap() error {
	return err.Err
}
