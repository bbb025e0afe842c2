package verilated

import (
	"time"
	"unsafe"

	"github.com/pkg/errors"
)

// TraceSink is a native waveform writer. Implementations live in the native
// package; all methods map one to one onto the native object.
type TraceSink interface {
	Open(path string)
	IsOpen() bool
	Flush()
	Dump(t uint64)
	SetTimeUnit(u TimeUnit)
	SetTimeResolution(u TimeUnit)
	Close()
	// Free releases the native object. The sink must not be used afterwards.
	Free()
	// Handle returns the native pointer passed to a model's trace registration.
	Handle() unsafe.Pointer
}

// Rotator is implemented by sinks able to continue a dump in a new file.
type Rotator interface {
	// OpenNext continues the dump in the next file. Only the first file of a
	// rotation carries the header.
	OpenNext(incrementFilename bool)
	SetRolloverMB(mb uint64)
}

// TraceState is the lifecycle state of a Trace.
type TraceState int

const (
	TraceUnopened TraceState = iota
	TraceOpen
	TraceClosed
)

func (s TraceState) String() string {
	switch s {
	case TraceUnopened:
		return "unopened"
	case TraceOpen:
		return "open"
	case TraceClosed:
		return "closed"
	}
	return "unknown"
}

// Trace drives a TraceSink. It opens once, dumps samples at non-decreasing
// times and closes once. A closed trace cannot be reopened.
type Trace struct {
	sink       TraceSink
	state      TraceState
	unit       TimeUnit
	resolution TimeUnit
	path       string
	last       uint64
	dumped     bool
}

// NewTrace wraps a sink. The trace owns the sink from now on.
func NewTrace(sink TraceSink) *Trace {
	return &Trace{
		sink:       sink,
		unit:       DefaultTimeUnit,
		resolution: DefaultTimeUnit,
	}
}

// State returns the lifecycle state.
func (t *Trace) State() TraceState {
	return t.state
}

// IsOpen reports whether samples can be dumped.
func (t *Trace) IsOpen() bool {
	return t.state == TraceOpen
}

// Path returns the path the trace was opened with.
func (t *Trace) Path() string {
	return t.path
}

// LastTime returns the time of the last dumped sample.
func (t *Trace) LastTime() (uint64, bool) {
	return t.last, t.dumped
}

// TimeUnit returns the unit of dump times.
func (t *Trace) TimeUnit() TimeUnit {
	return t.unit
}

// Sink returns the wrapped sink.
func (t *Trace) Sink() TraceSink {
	return t.sink
}

// SetTimeUnit sets the unit of dump times. It must be called before Open.
func (t *Trace) SetTimeUnit(u TimeUnit) error {
	if err := t.checkUnopened(); err != nil {
		return err
	}
	if !u.Valid() {
		return errors.Errorf("invalid time unit %d", u)
	}
	t.unit = u
	return nil
}

// SetTimeResolution sets the time resolution. It must be called before Open.
func (t *Trace) SetTimeResolution(u TimeUnit) error {
	if err := t.checkUnopened(); err != nil {
		return err
	}
	if !u.Valid() {
		return errors.Errorf("invalid time resolution %d", u)
	}
	t.resolution = u
	return nil
}

// Open applies the time unit and resolution and opens the file. The sink
// reports failure only through its open flag, which is turned into an
// *OpenError.
func (t *Trace) Open(path string) error {
	if err := t.checkUnopened(); err != nil {
		return err
	}
	t.sink.SetTimeUnit(t.unit)
	t.sink.SetTimeResolution(t.resolution)
	t.sink.Open(path)
	if !t.sink.IsOpen() {
		return &OpenError{Path: path}
	}
	t.path = path
	t.state = TraceOpen
	return nil
}

// Dump writes one sample at time `at`, in units of TimeUnit. Times must not
// decrease; a regressing sample is rejected and the sink is not touched.
func (t *Trace) Dump(at uint64) error {
	if err := t.checkOpen(); err != nil {
		return err
	}
	if t.dumped && at < t.last {
		return errors.Wrapf(ErrTimeRegression, "sample at %d after %d", at, t.last)
	}
	t.sink.Dump(at)
	t.last = at
	t.dumped = true
	return nil
}

// DumpDuration converts `d` to the trace's time unit and dumps a sample.
func (t *Trace) DumpDuration(d time.Duration) error {
	return t.Dump(t.unit.FromDuration(d))
}

// Flush forces buffered samples out to the file.
func (t *Trace) Flush() error {
	if err := t.checkOpen(); err != nil {
		return err
	}
	t.sink.Flush()
	return nil
}

// OpenNext continues the dump in a new file, keeping the time of the last sample.
func (t *Trace) OpenNext(incrementFilename bool) error {
	if err := t.checkOpen(); err != nil {
		return err
	}
	rotator, ok := t.sink.(Rotator)
	if !ok {
		return errors.Wrap(ErrUnsupported, "rotation")
	}
	rotator.OpenNext(incrementFilename)
	if !t.sink.IsOpen() {
		return &OpenError{Path: t.path, Err: errors.New("rotation failed")}
	}
	return nil
}

// SetRolloverMB sets the file size after which the dump rotates automatically.
func (t *Trace) SetRolloverMB(mb uint64) error {
	if t.state == TraceClosed {
		return ErrClosed
	}
	rotator, ok := t.sink.(Rotator)
	if !ok {
		return errors.Wrap(ErrUnsupported, "rollover")
	}
	rotator.SetRolloverMB(mb)
	return nil
}

// Close closes the file and frees the sink. Closing again is a no-op.
func (t *Trace) Close() error {
	switch t.state {
	case TraceClosed:
		return nil
	case TraceOpen:
		t.sink.Close()
	}
	t.sink.Free()
	t.state = TraceClosed
	return nil
}

func (t *Trace) checkUnopened() error {
	switch t.state {
	case TraceOpen:
		return ErrAlreadyOpen
	case TraceClosed:
		return ErrClosed
	}
	return nil
}

func (t *Trace) checkOpen() error {
	switch t.state {
	case TraceUnopened:
		return ErrNotOpen
	case TraceClosed:
		return ErrClosed
	}
	return nil
}
