package verilated

import (
	"io"

	"github.com/pkg/errors"
)

// Module is the part of a generated wrapper the test bench drives.
type Module interface {
	Eval()
	Finish()
	ClockUp() error
	ClockDown() error
	ResetUp() error
	ResetDown() error
}

// Tracer is implemented by generated wrappers. The test bench dumps a sample
// after every clock edge when the model implements it and a half period is set.
type Tracer interface {
	TraceTime(t uint64) error
}

// StepFunc is called after every tick with the tick count. Returning false
// finishes the simulation.
type StepFunc[M Module] func(m M, tick uint64) bool

// BenchState is the lifecycle state of a TestBench.
type BenchState int

const (
	BenchIdle BenchState = iota
	BenchRunning
	BenchFinished
)

func (s BenchState) String() string {
	switch s {
	case BenchIdle:
		return "idle"
	case BenchRunning:
		return "running"
	case BenchFinished:
		return "finished"
	}
	return "unknown"
}

// TestBench clocks a single model. Every tick lets the inputs settle on a low
// clock, then evaluates a rising and a falling edge, then calls the step
// function.
type TestBench[M Module] struct {
	ctx        *Context
	module     M
	step       StepFunc[M]
	ticks      uint64
	state      BenchState
	halfPeriod uint64
	finished   bool
}

// NewTestBench records `args` as the command line of the simulation and then
// constructs the model with `newModule`, in that order, since models read
// plus-args while they are constructed.
func NewTestBench[M Module](ctx *Context, args []string, newModule func(*Context) M, step StepFunc[M]) (*TestBench[M], error) {
	if err := ctx.SetCommandArgs(args); err != nil {
		return nil, err
	}
	return &TestBench[M]{
		ctx:    ctx,
		module: newModule(ctx),
		step:   step,
	}, nil
}

// SetHalfPeriod makes every clock edge advance the simulation time by `units`.
// With a zero half period, which is the default, time is left to the caller.
func (tb *TestBench[M]) SetHalfPeriod(units uint64) {
	tb.halfPeriod = units
}

// Module returns the driven model.
func (tb *TestBench[M]) Module() M {
	return tb.module
}

// Context returns the simulation context.
func (tb *TestBench[M]) Context() *Context {
	return tb.ctx
}

// Ticks returns the number of ticks so far.
func (tb *TestBench[M]) Ticks() uint64 {
	return tb.ticks
}

// State returns the lifecycle state.
func (tb *TestBench[M]) State() BenchState {
	return tb.state
}

// Reset asserts reset, calls the step function once with the current tick
// count and deasserts reset. The result of the step function is ignored.
func (tb *TestBench[M]) Reset() error {
	if tb.state == BenchFinished {
		return ErrFinished
	}
	if err := tb.module.ResetUp(); err != nil {
		return err
	}
	tb.step(tb.module, tb.ticks)
	return tb.module.ResetDown()
}

// Tick runs one clock cycle. The first tick starts the bench. Once the step
// function returned false, Tick returns ErrFinished and leaves the model alone.
func (tb *TestBench[M]) Tick() error {
	switch tb.state {
	case BenchFinished:
		return ErrFinished
	case BenchIdle:
		tb.state = BenchRunning
	}

	tb.ticks++

	// Settle combinational logic on the inputs set since the last tick.
	if err := tb.module.ClockDown(); err != nil {
		return errors.Wrapf(err, "tick %d", tb.ticks)
	}
	tb.module.Eval()

	if err := tb.edge(tb.module.ClockUp); err != nil {
		return errors.Wrapf(err, "tick %d", tb.ticks)
	}
	if err := tb.edge(tb.module.ClockDown); err != nil {
		return errors.Wrapf(err, "tick %d", tb.ticks)
	}

	if !tb.step(tb.module, tb.ticks) {
		tb.Finish()
	}
	return nil
}

func (tb *TestBench[M]) edge(set func() error) error {
	if tb.halfPeriod > 0 {
		tb.ctx.Advance(tb.halfPeriod)
	}
	if err := set(); err != nil {
		return err
	}
	tb.module.Eval()
	if tracer, ok := any(tb.module).(Tracer); ok && tb.halfPeriod > 0 {
		return tracer.TraceTime(tb.ctx.Time())
	}
	return nil
}

// Done reports whether the simulation finished. The flag belongs to the
// context, so it is shared by all benches of a simulation and is also set by
// $finish in the model.
func (tb *TestBench[M]) Done() bool {
	return tb.ctx.GotFinish()
}

// Finish sets the finish flag and runs the model's final blocks. Calling it
// again has no effect.
func (tb *TestBench[M]) Finish() {
	if tb.finished {
		return
	}
	tb.finished = true
	tb.state = BenchFinished
	tb.ctx.Finish()
	tb.module.Finish()
}

// Close finishes the simulation and releases the model if it is an io.Closer.
func (tb *TestBench[M]) Close() error {
	tb.Finish()
	if closer, ok := any(tb.module).(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
