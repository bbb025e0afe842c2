package verilated

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Runtime is the process-wide native simulator runtime. It is registered by
// importing the native package:
//
//	import _ "github.com/daedaleanai/verilated/verilated/native"
//
// Without a registered runtime a Context keeps its state in Go only, which is
// enough for tests and for models that never read plus-args or call $finish.
type Runtime interface {
	// SetCommandArgs forwards the argument vector to the simulated models.
	SetCommandArgs(args []string)
	SetGotFinish(finished bool)
	GotFinish() bool
	// Bind makes the context the source of the simulation time read by $time.
	Bind(ctx *Context)
}

// TraceFormat names a waveform file format.
type TraceFormat string

const (
	VCD TraceFormat = "vcd"
	FST TraceFormat = "fst"
)

// ParseTraceFormat validates a format name.
func ParseTraceFormat(s string) (TraceFormat, error) {
	switch TraceFormat(s) {
	case VCD, FST:
		return TraceFormat(s), nil
	}
	return "", errors.Errorf("unknown trace format '%s'", s)
}

// SinkFactory allocates a native trace sink.
type SinkFactory func() (TraceSink, error)

var (
	registryMu sync.RWMutex
	runtime    Runtime
	factories  = map[TraceFormat]SinkFactory{}
)

// RegisterRuntime makes the native runtime available to new contexts. It
// panics if called twice.
func RegisterRuntime(r Runtime) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if r == nil {
		panic("verilated: RegisterRuntime runtime is nil")
	}
	if runtime != nil {
		panic("verilated: RegisterRuntime called twice")
	}
	runtime = r
}

// RegisterSink makes a trace sink available for a format. It panics if called
// twice for the same format.
func RegisterSink(format TraceFormat, factory SinkFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if factory == nil {
		panic("verilated: RegisterSink factory is nil")
	}
	if _, dup := factories[format]; dup {
		panic("verilated: RegisterSink called twice for " + string(format))
	}
	factories[format] = factory
}

// NewTraceSink allocates a sink through the factory registered for the format.
func NewTraceSink(format TraceFormat) (TraceSink, error) {
	registryMu.RLock()
	factory, ok := factories[format]
	registryMu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrNoSink, "format '%s'", format)
	}
	return factory()
}

// Formats returns the sorted list of formats with a registered sink.
func Formats() []TraceFormat {
	registryMu.RLock()
	defer registryMu.RUnlock()
	formats := make([]TraceFormat, 0, len(factories))
	for format := range factories {
		formats = append(formats, format)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

func registeredRuntime() Runtime {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return runtime
}
