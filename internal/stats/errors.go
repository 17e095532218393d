package stats

import "fmt"

// ErrDegenerateBaseline is returned when a rate or comparison cannot be
// computed because the denominator it needs is zero, e.g. the throughput of
// a zero-duration run or the relative change against a zero baseline value.
// It is recoverable per metric: callers render the metric as not computable
// and carry on with the rest.
type ErrDegenerateBaseline struct {
	Metric string // Metric being computed
	Reason string // Which denominator was zero
}

func (err *ErrDegenerateBaseline) Error() string {
	return fmt.Sprintf("cannot compute %s: %s", err.Metric, err.Reason)
}

// ErrCorruptSnapshot is returned when a persisted snapshot cannot be loaded,
// either because its latency envelope is malformed or because its counters
// disagree with the embedded histogram.
type ErrCorruptSnapshot struct {
	Message string
	Err     error
}

func (err *ErrCorruptSnapshot) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("corrupt benchmark snapshot: %s: %s", err.Message, err.Err)
	}
	return fmt.Sprintf("corrupt benchmark snapshot: %s", err.Message)
}

func (err *ErrCorruptSnapshot) Unwrap() error {
	return err.Err
}
