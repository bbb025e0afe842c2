package gen

import (
	"fmt"
	"strings"

	"github.com/daedaleanai/verilated/assets"
	"github.com/daedaleanai/verilated/port"
	"github.com/daedaleanai/verilated/util"
)

// Methods every wrapper defines regardless of its ports.
var fixedMethods = []string{
	"Close", "Eval", "Finish",
	"ClockToggle", "ClockUp", "ClockDown",
	"ResetToggle", "ResetUp", "ResetDown",
	"OpenTrace", "Trace", "TraceAt", "TraceTime", "FlushTrace", "CloseTrace",
}

// Binding is one module prepared for rendering.
type Binding struct {
	Module  port.Module
	Options Options
}

// FileSuffix ends the base name of every generated file. Without it a native
// name such as counter_test or alu_linux would turn the wrapper into a test
// file or put it behind a build constraint.
const FileSuffix = "_binding"

// ShimFile is the name of the generated C++ file.
func (b *Binding) ShimFile() string {
	return b.Module.NativeType + FileSuffix + ".cpp"
}

// WrapperFile is the name of the generated Go file.
func (b *Binding) WrapperFile() string {
	return b.Module.NativeType + FileSuffix + ".go"
}

// NewBinding checks that the wrapper of `m` can be generated: every generated
// method name must be unique.
func NewBinding(m port.Module, opts Options) (*Binding, error) {
	methods := util.NewOrderedMap[string, string]()
	for _, name := range fixedMethods {
		if err := methods.Insert(name, "generated method"); err != nil {
			return nil, err
		}
	}
	for _, p := range m.Ports.All() {
		names := []string{}
		switch p.Role {
		case port.Clock, port.Reset, port.Input:
			names = append(names, "Set"+p.Field)
		case port.Output:
			names = append(names, p.Field)
		case port.InOut:
			names = append(names, "Set"+p.Field, p.Field)
		}
		for _, name := range names {
			if err := methods.Insert(name, "port "+p.Field); err != nil {
				owner, _ := methods.Lookup(name)
				return nil, &port.ConfigurationError{
					Pos:    m.Pos,
					Type:   m.HostType,
					Field:  p.Field,
					Err:    port.ErrInvalidName,
					Detail: fmt.Sprintf("accessor %s collides with the %s", name, owner),
				}
			}
		}
	}
	return &Binding{Module: m, Options: opts}, nil
}

func (b *Binding) portParams(p port.Port) assets.PortTmplParams {
	n := b.Module.NativeType
	return assets.PortTmplParams{
		Host:       b.Module.HostType,
		Model:      b.Module.ModelClass(),
		Field:      p.Field,
		Signal:     p.Name,
		Width:      p.Width,
		Role:       p.Role.String(),
		HostType:   p.Class.HostType(),
		CgoType:    p.Class.CgoType(),
		NativeType: p.Class.NativeType(),
		Setter:     setterSymbol(n, p.Name),
		Getter:     getterSymbol(n, p.Name),
		Toggle:     toggleSymbol(n, p.Name),
	}
}

func (b *Binding) portsParams(ports []port.Port) []assets.PortTmplParams {
	return util.MappedSlice(ports, b.portParams)
}

func (b *Binding) shimParams() assets.ShimTmplParams {
	n := b.Module.NativeType
	trace := traceClasses[b.Options.TraceFormat]
	return assets.ShimTmplParams{
		Native:      n,
		ModelClass:  b.Module.ModelClass(),
		TraceClass:  trace.class,
		TraceHeader: trace.header,
		Symbols: assets.SymbolsTmplParams{
			New:    newSymbol(n),
			Delete: deleteSymbol(n),
			Eval:   evalSymbol(n),
			Final:  finalSymbol(n),
			Trace:  traceSymbol(n),
		},
		RolePorts: b.portsParams(rolePorts(b.Module.Ports)),
		Inputs:    b.portsParams(b.Module.Ports.Inputs),
		Outputs:   b.portsParams(b.Module.Ports.Outputs),
		InOuts:    b.portsParams(b.Module.Ports.InOuts),
	}
}

func (b *Binding) roleMethods(role port.Role, p *port.Port) []assets.RoleMethodTmplParams {
	var params *assets.PortTmplParams
	if p != nil {
		pp := b.portParams(*p)
		params = &pp
	}
	prefix := strings.ToUpper(role.String()[:1]) + role.String()[1:]
	methods := []assets.RoleMethodTmplParams{
		{Name: prefix + "Toggle", Level: -1},
		{Name: prefix + "Up", Level: 1},
		{Name: prefix + "Down", Level: 0},
	}
	for i := range methods {
		m := &methods[i]
		m.Role = role.String()
		m.Port = params
		switch {
		case p == nil:
			m.Doc = fmt.Sprintf("%s fails, the module has no %s port.", m.Name, m.Role)
		case m.Level < 0:
			m.Doc = fmt.Sprintf("%s inverts %s %s.", m.Name, m.Role, p.Name)
		default:
			m.Doc = fmt.Sprintf("%s sets %s %s to %d.", m.Name, m.Role, p.Name, m.Level)
		}
	}
	return methods
}

func (b *Binding) wrapperParams() assets.WrapperTmplParams {
	m := b.Module
	doc := []string{fmt.Sprintf("%s is the binding of the Verilated module %s.", m.HostType, m.NativeType)}
	if m.Doc != "" {
		doc = strings.Split(m.Doc, "\n")
	}
	return assets.WrapperTmplParams{
		ShimTmplParams: b.shimParams(),
		Package:        b.Options.Package,
		Host:           m.HostType,
		Doc:            doc,
		RuntimePkg:     RuntimePackage,
		TraceFormat:    traceClasses[b.Options.TraceFormat].name,
		CXXFlags:       b.Options.cxxFlags(),
		LDFlags:        b.Options.ldFlags(m.ModelClass()),
		RoleMethods: append(
			b.roleMethods(port.Clock, m.Ports.Clock),
			b.roleMethods(port.Reset, m.Ports.Reset)...,
		),
	}
}
