package gen

import (
	"github.com/daedaleanai/verilated/port"
)

// The native symbol names are shared by the shim and the wrapper and must
// match byte for byte.

func newSymbol(native string) string    { return native + "_new" }
func deleteSymbol(native string) string { return native + "_delete" }
func evalSymbol(native string) string   { return native + "_eval" }
func finalSymbol(native string) string  { return native + "_final" }
func traceSymbol(native string) string  { return native + "_trace" }

func toggleSymbol(native, signal string) string { return native + "_" + signal + "_toggle" }
func setterSymbol(native, signal string) string { return native + "_set_" + signal }
func getterSymbol(native, signal string) string { return native + "_get_" + signal }

// Symbols returns the native symbols of a module in emission order.
func Symbols(m port.Module) []string {
	n := m.NativeType
	symbols := []string{newSymbol(n), deleteSymbol(n), evalSymbol(n), finalSymbol(n), traceSymbol(n)}
	for _, p := range rolePorts(m.Ports) {
		symbols = append(symbols, toggleSymbol(n, p.Name), setterSymbol(n, p.Name))
	}
	for _, p := range m.Ports.Inputs {
		symbols = append(symbols, setterSymbol(n, p.Name))
	}
	for _, p := range m.Ports.Outputs {
		symbols = append(symbols, getterSymbol(n, p.Name))
	}
	for _, p := range m.Ports.InOuts {
		symbols = append(symbols, setterSymbol(n, p.Name), getterSymbol(n, p.Name))
	}
	return symbols
}

func rolePorts(s port.Set) []port.Port {
	ports := []port.Port{}
	if s.Clock != nil {
		ports = append(ports, *s.Clock)
	}
	if s.Reset != nil {
		ports = append(ports, *s.Reset)
	}
	return ports
}
