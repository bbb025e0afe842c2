// Package port extracts the port model of a hardware module from a Go struct
// declaration and maps port widths onto unsigned integer types.
//
// A module is declared as an exported struct whose doc comment carries the
// directive
//
//	//verilated:module [name]
//
// Every exported field tagged with `port:"clock|reset|input|output|inout"` is a
// port. Ports must be bool or [N]bool with N an integer literal between 1 and 64.
// The signal name defaults to the snake_case form of the field name and can be
// set with a `signal:"..."` tag.
package port

import (
	"go/token"
)

// Role classifies a port.
type Role int

const (
	Clock Role = iota
	Reset
	Input
	Output
	InOut
)

var roleNames = [...]string{
	Clock:  "clock",
	Reset:  "reset",
	Input:  "input",
	Output: "output",
	InOut:  "inout",
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "unknown"
	}
	return roleNames[r]
}

// ParseRole returns the role for a role marker.
func ParseRole(s string) (Role, bool) {
	for r, name := range roleNames {
		if name == s {
			return Role(r), true
		}
	}
	return 0, false
}

// Port is a single signal of a module.
type Port struct {
	// Field is the name of the Go struct field. It is the stem of host accessor names.
	Field string
	// Name is the signal name in the simulated module. It is the stem of native symbols.
	Name  string
	Width int
	Class WidthClass
	Role  Role
}

// Mask returns the bit mask covering the declared width of the port.
func (p Port) Mask() uint64 {
	if p.Width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(p.Width)) - 1
}

// Set is the classification of all ports of one module. The order of each list
// is the declaration order.
type Set struct {
	Clock   *Port
	Reset   *Port
	Inputs  []Port
	Outputs []Port
	InOuts  []Port
}

// All returns every port in emission order: clock, reset, inputs, outputs, inouts.
func (s Set) All() []Port {
	all := []Port{}
	if s.Clock != nil {
		all = append(all, *s.Clock)
	}
	if s.Reset != nil {
		all = append(all, *s.Reset)
	}
	all = append(all, s.Inputs...)
	all = append(all, s.Outputs...)
	all = append(all, s.InOuts...)
	return all
}

// Len returns the number of ports.
func (s Set) Len() int {
	return len(s.All())
}

// Module is the extracted description of one hardware module.
type Module struct {
	// HostType is the name of the Go struct declaring the module.
	HostType string
	// NativeType is the logical name of the simulated module. The Verilator
	// model class is "V" + NativeType.
	NativeType string
	Doc        string
	Pos        token.Position
	Ports      Set
}

// ModelClass returns the name of the C++ class Verilator generates for the module.
func (m Module) ModelClass() string {
	return "V" + m.NativeType
}
