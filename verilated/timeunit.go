package verilated

import (
	"math"
	"math/bits"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// TimeUnit is a power-of-ten unit of simulation time. Its value is the negated
// decimal exponent, the encoding Verilator uses: 0 is 1s, 9 is 1ns, 15 is 1fs.
type TimeUnit int8

const (
	Unit1s    TimeUnit = 0
	Unit100ms TimeUnit = 1
	Unit10ms  TimeUnit = 2
	Unit1ms   TimeUnit = 3
	Unit100us TimeUnit = 4
	Unit10us  TimeUnit = 5
	Unit1us   TimeUnit = 6
	Unit100ns TimeUnit = 7
	Unit10ns  TimeUnit = 8
	Unit1ns   TimeUnit = 9
	Unit100ps TimeUnit = 10
	Unit10ps  TimeUnit = 11
	Unit1ps   TimeUnit = 12
	Unit100fs TimeUnit = 13
	Unit10fs  TimeUnit = 14
	Unit1fs   TimeUnit = 15
)

// DefaultTimeUnit is used by contexts and traces unless configured otherwise.
const DefaultTimeUnit = Unit1ns

var unitSuffixes = [...]string{"s", "ms", "us", "ns", "ps", "fs"}

// Valid reports whether the unit is between 1s and 1fs.
func (u TimeUnit) Valid() bool {
	return u >= Unit1s && u <= Unit1fs
}

// String returns the unit as Verilator spells it, e.g. "100ps".
func (u TimeUnit) String() string {
	if !u.Valid() {
		return "invalid"
	}
	group := (int(u) + 2) / 3
	mantissa := [...]string{"1", "100", "10"}[int(u)%3]
	return mantissa + unitSuffixes[group]
}

// ParseTimeUnit parses units like "1ns", "10ps" or "100ms".
func ParseTimeUnit(s string) (TimeUnit, error) {
	trimmed := strings.TrimSpace(s)
	for u := Unit1s; u <= Unit1fs; u++ {
		if u.String() == trimmed {
			return u, nil
		}
	}
	return 0, errors.Errorf("invalid time unit '%s'", s)
}

// FromDuration converts a duration to a number of units. Durations finer than
// the unit are truncated, negative durations count as zero. A count beyond
// uint64 saturates at math.MaxUint64.
func (u TimeUnit) FromDuration(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	ns := uint64(d)
	if u >= Unit1ns {
		return saturatingMul(ns, pow10(int(u-Unit1ns)), math.MaxUint64)
	}
	return ns / pow10(int(Unit1ns-u))
}

// ToDuration converts a number of units to a duration, truncated to
// nanoseconds. It saturates at the longest representable duration.
func (u TimeUnit) ToDuration(t uint64) time.Duration {
	if u >= Unit1ns {
		return time.Duration(min(t/pow10(int(u-Unit1ns)), math.MaxInt64))
	}
	return time.Duration(saturatingMul(t, pow10(int(Unit1ns-u)), math.MaxInt64))
}

// saturatingMul returns a*b, or limit if the product exceeds it.
func saturatingMul(a, b, limit uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 || lo > limit {
		return limit
	}
	return lo
}

func pow10(n int) uint64 {
	result := uint64(1)
	for i := 0; i < n; i++ {
		result *= 10
	}
	return result
}
