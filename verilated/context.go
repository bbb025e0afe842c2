// Package verilated is the runtime used by generated model wrappers. It holds
// the simulation Context, the Trace adapter driving waveform sinks and the
// generic TestBench.
//
// None of the types in this package are safe for concurrent use. A simulation
// runs on a single goroutine.
package verilated

import (
	"time"

	"github.com/pkg/errors"
)

// Context is the state shared by all models of one simulation: the current
// simulation time, the finish flag and the command line arguments. It replaces
// the process-wide globals of the native runtime and is passed explicitly to
// every model and test bench.
type Context struct {
	unit     TimeUnit
	time     uint64
	finished bool
	args     []string
	models   int
	runtime  Runtime
}

// NewContext returns a context at time zero. If a native runtime is
// registered the context is bound to it.
func NewContext() *Context {
	ctx := &Context{unit: DefaultTimeUnit, runtime: registeredRuntime()}
	if ctx.runtime != nil {
		ctx.runtime.Bind(ctx)
	}
	return ctx
}

// Time returns the current simulation time in units of TimeUnit.
func (c *Context) Time() uint64 {
	return c.time
}

// Now returns the current simulation time as a duration.
func (c *Context) Now() time.Duration {
	return c.unit.ToDuration(c.time)
}

// SetTime moves the simulation time forward to t.
func (c *Context) SetTime(t uint64) error {
	if t < c.time {
		return errors.Wrapf(ErrTimeRegression, "from %d to %d", c.time, t)
	}
	c.time = t
	return nil
}

// Advance moves the simulation time forward by delta units and returns the new time.
func (c *Context) Advance(delta uint64) uint64 {
	c.time += delta
	return c.time
}

// TimeUnit returns the unit of simulation time.
func (c *Context) TimeUnit() TimeUnit {
	return c.unit
}

// SetTimeUnit changes the unit of simulation time. It can only be changed
// while the time is still zero.
func (c *Context) SetTimeUnit(u TimeUnit) error {
	if !u.Valid() {
		return errors.Errorf("invalid time unit %d", u)
	}
	if c.time != 0 {
		return errors.New("time unit cannot change once simulation time has advanced")
	}
	c.unit = u
	return nil
}

// Finish sets the finish flag, as $finish does.
func (c *Context) Finish() {
	c.finished = true
	if c.runtime != nil {
		c.runtime.SetGotFinish(true)
	}
}

// GotFinish reports whether the simulation finished, either through Finish or
// through $finish in a native model.
func (c *Context) GotFinish() bool {
	if c.runtime != nil && c.runtime.GotFinish() {
		c.finished = true
	}
	return c.finished
}

// SetCommandArgs records the argument vector for plus-arg lookups. It must be
// called before the first model is attached.
func (c *Context) SetCommandArgs(args []string) error {
	if c.models > 0 {
		return ErrArgsAfterModel
	}
	c.args = append([]string{}, args...)
	if c.runtime != nil {
		c.runtime.SetCommandArgs(c.args)
	}
	return nil
}

// CommandArgs returns the recorded argument vector.
func (c *Context) CommandArgs() []string {
	return c.args
}

// Attach is called by generated constructors.
func (c *Context) Attach() {
	c.models++
}

// Models returns the number of models attached so far.
func (c *Context) Models() int {
	return c.models
}

// Runtime returns the native runtime the context is bound to, or nil.
func (c *Context) Runtime() Runtime {
	return c.runtime
}
