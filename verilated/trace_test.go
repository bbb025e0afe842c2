package verilated

import (
	"strings"
	"testing"
	"time"
	"unsafe"

	"github.com/pkg/errors"
)

type fakeSink struct {
	calls    []string
	failOpen bool
	open     bool
	dumps    []uint64
	frees    int
	unit     TimeUnit
	res      TimeUnit
}

func (s *fakeSink) Open(path string) {
	s.calls = append(s.calls, "open "+path)
	s.open = !s.failOpen
}
func (s *fakeSink) IsOpen() bool { return s.open }
func (s *fakeSink) Flush() { s.calls = append(s.calls, "flush") }
func (s *fakeSink) Dump(t uint64) { s.dumps = append(s.dumps, t) }
func (s *fakeSink) SetTimeUnit(u TimeUnit) { s.unit = u; s.calls = append(s.calls, "unit "+u.String()) }
func (s *fakeSink) SetTimeResolution(u TimeUnit) { s.res = u; s.calls = append(s.calls, "res "+u.String()) }
func (s *fakeSink) Close() { s.calls = append(s.calls, "close"); s.open = false }
func (s *fakeSink) Free() { s.frees++ }
func (s *fakeSink) Handle() unsafe.Pointer { return unsafe.Pointer(s) }

type rotatingSink struct {
	fakeSink
	rollover uint64
	next     int
}

func (s *rotatingSink) OpenNext(inc bool) { s.next++ }
func (s *rotatingSink) SetRolloverMB(mb uint64) { s.rollover = mb }

func TestTraceOpen(t *testing.T) {
	sink := &fakeSink{}
	trace := NewTrace(sink)
	if trace.State() != TraceUnopened {
		t.Fatal("new trace must be unopened")
	}
	if err := trace.SetTimeUnit(Unit1ps); err != nil {
		t.Fatal(err)
	}
	if err := trace.Open("wave.vcd"); err != nil {
		t.Fatal(err)
	}
	expected := "unit 1ps res 1ns open wave.vcd"
	if actual := strings.Join(sink.calls, " "); actual != expected {
		t.Fatalf("expected %q, got %q", expected, actual)
	}
	if !trace.IsOpen() || trace.Path() != "wave.vcd" {
		t.Fatal("trace should be open")
	}
	if err := trace.Open("other.vcd"); !errors.Is(err, ErrAlreadyOpen) {
		t.Fatalf("expected ErrAlreadyOpen, got %v", err)
	}
	if err := trace.SetTimeUnit(Unit1ns); !errors.Is(err, ErrAlreadyOpen) {
		t.Fatalf("expected ErrAlreadyOpen, got %v", err)
	}
}

func TestTraceOpenFailure(t *testing.T) {
	trace := NewTrace(&fakeSink{failOpen: true})
	err := trace.Open("/nonexistent/wave.vcd")
	var openErr *OpenError
	if !errors.As(err, &openErr) || openErr.Path != "/nonexistent/wave.vcd" {
		t.Fatalf("expected open error, got %v", err)
	}
	if trace.State() != TraceUnopened {
		t.Fatal("failed open must leave the trace unopened")
	}
	if err := trace.Dump(0); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen, got %v", err)
	}
}

func TestTraceMonotonicity(t *testing.T) {
	sink := &fakeSink{}
	trace := NewTrace(sink)
	if err := trace.Open("wave.vcd"); err != nil {
		t.Fatal(err)
	}
	for _, at := range []uint64{0, 5, 5, 10} {
		if err := trace.Dump(at); err != nil {
			t.Fatal(err)
		}
	}
	if err := trace.Dump(9); !errors.Is(err, ErrTimeRegression) {
		t.Fatalf("expected ErrTimeRegression, got %v", err)
	}
	if len(sink.dumps) != 4 {
		t.Fatal("rejected samples must not reach the sink")
	}
	if last, ok := trace.LastTime(); !ok || last != 10 {
		t.Fatalf("unexpected last time %d", last)
	}
	if err := trace.DumpDuration(20 * time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	if sink.dumps[4] != 20 {
		t.Fatalf("unexpected converted time %d", sink.dumps[4])
	}
}

func TestTraceClose(t *testing.T) {
	sink := &fakeSink{}
	trace := NewTrace(sink)
	if err := trace.Open("wave.vcd"); err != nil {
		t.Fatal(err)
	}
	if err := trace.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := trace.Close(); err != nil {
		t.Fatal(err)
	}
	if err := trace.Close(); err != nil {
		t.Fatal(err)
	}
	if sink.frees != 1 {
		t.Fatalf("sink freed %d times", sink.frees)
	}
	if strings.Count(strings.Join(sink.calls, " "), "close") != 1 {
		t.Fatal("sink closed more than once")
	}
	if err := trace.Open("wave.vcd"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := trace.Dump(100); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestTraceCloseUnopened(t *testing.T) {
	sink := &fakeSink{}
	trace := NewTrace(sink)
	if err := trace.Close(); err != nil {
		t.Fatal(err)
	}
	if sink.frees != 1 || len(sink.calls) != 0 {
		t.Fatal("closing an unopened trace must only free the sink")
	}
}

func TestTraceRotation(t *testing.T) {
	plain := NewTrace(&fakeSink{})
	if err := plain.Open("wave.vcd"); err != nil {
		t.Fatal(err)
	}
	if err := plain.OpenNext(true); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if err := plain.SetRolloverMB(10); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}

	sink := &rotatingSink{}
	trace := NewTrace(sink)
	if err := trace.SetRolloverMB(64); err != nil {
		t.Fatal(err)
	}
	if err := trace.OpenNext(true); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen, got %v", err)
	}
	if err := trace.Open("wave.vcd"); err != nil {
		t.Fatal(err)
	}
	if err := trace.Dump(7); err != nil {
		t.Fatal(err)
	}
	if err := trace.OpenNext(true); err != nil {
		t.Fatal(err)
	}
	if sink.next != 1 || sink.rollover != 64 {
		t.Fatal("rotation did not reach the sink")
	}
	if err := trace.Dump(6); !errors.Is(err, ErrTimeRegression) {
		t.Fatal("rotation must keep the last dumped time")
	}
}
