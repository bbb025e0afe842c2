package port

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

const counterSource = `package hw

// Top is a 4 bit counter.
//
//verilated:module Top
type Top struct {
	Clk    bool    ` + "`port:\"clock\" signal:\"clk_i\"`" + `
	Rst    bool    ` + "`port:\"reset\" signal:\"rst_i\"`" + `
	En     bool    ` + "`port:\"input\"`" + `
	CountO [4]bool ` + "`port:\"output\"`" + `
	state  [4]bool
	Note   string
}
`

func extractOne(t *testing.T, src string) Module {
	t.Helper()
	modules, err := Extract("hw.go", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(modules) != 1 {
		t.Fatalf("expected one module, got %d", len(modules))
	}
	return modules[0]
}

func TestExtractCounter(t *testing.T) {
	m := extractOne(t, counterSource)

	if m.HostType != "Top" || m.NativeType != "Top" || m.ModelClass() != "VTop" {
		t.Fatalf("unexpected names %s/%s", m.HostType, m.NativeType)
	}
	if m.Doc != "Top is a 4 bit counter." {
		t.Fatalf("unexpected doc %q", m.Doc)
	}
	if m.Ports.Clock == nil || m.Ports.Clock.Name != "clk_i" || m.Ports.Clock.Field != "Clk" {
		t.Fatal("unexpected clock")
	}
	if m.Ports.Reset == nil || m.Ports.Reset.Name != "rst_i" {
		t.Fatal("unexpected reset")
	}
	if len(m.Ports.Inputs) != 1 || m.Ports.Inputs[0].Name != "en" || m.Ports.Inputs[0].Class != U8 {
		t.Fatalf("unexpected inputs %v", m.Ports.Inputs)
	}
	expected := Port{Field: "CountO", Name: "count_o", Width: 4, Class: U8, Role: Output}
	if len(m.Ports.Outputs) != 1 || m.Ports.Outputs[0] != expected {
		t.Fatalf("unexpected outputs %v", m.Ports.Outputs)
	}
	if len(m.Ports.InOuts) != 0 {
		t.Fatal("unexpected inouts")
	}
	if m.Ports.Len() != 4 {
		t.Fatalf("unexpected port count %d", m.Ports.Len())
	}
}

func TestExtractDefaultName(t *testing.T) {
	m := extractOne(t, `package hw

//verilated:module
type Alu struct {
	A [32]bool `+"`port:\"input\"`"+`
	B [17]bool `+"`port:\"inout\"`"+`
}
`)
	if m.NativeType != "alu" {
		t.Fatalf("unexpected native name %s", m.NativeType)
	}
	if m.Ports.Clock != nil || m.Ports.Reset != nil {
		t.Fatal("unexpected clock or reset")
	}
	if m.Ports.Inputs[0].Class != U32 || m.Ports.InOuts[0].Class != U32 {
		t.Fatal("unexpected classes")
	}
}

func TestExtractPreservesOrder(t *testing.T) {
	m := extractOne(t, `package hw

//verilated:module
type Regs struct {
	Z bool `+"`port:\"output\"`"+`
	A bool `+"`port:\"input\"`"+`
	Y bool `+"`port:\"output\"`"+`
	M, B bool `+"`port:\"input\"`"+`
	X bool `+"`port:\"output\"`"+`
}
`)
	names := func(ports []Port) []string {
		result := []string{}
		for _, p := range ports {
			result = append(result, p.Name)
		}
		return result
	}
	inputs := names(m.Ports.Inputs)
	outputs := names(m.Ports.Outputs)
	if len(inputs) != 3 || inputs[0] != "a" || inputs[1] != "m" || inputs[2] != "b" {
		t.Fatalf("unexpected input order %v", inputs)
	}
	if len(outputs) != 3 || outputs[0] != "z" || outputs[1] != "y" || outputs[2] != "x" {
		t.Fatalf("unexpected output order %v", outputs)
	}

	all := names(m.Ports.All())
	expected := []string{"a", "m", "b", "z", "y", "x"}
	for i := range expected {
		if all[i] != expected[i] {
			t.Fatalf("unexpected emission order %v", all)
		}
	}
}

func TestExtractSkipsUndirectedTypes(t *testing.T) {
	modules, err := Extract("hw.go", []byte(`package hw

type Plain struct {
	A bool `+"`port:\"input\"`"+`
}

//verilated:module
type hidden struct {
	A bool `+"`port:\"input\"`"+`
}

// Just a comment mentioning verilated:module.
type Other struct{}
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(modules) != 0 {
		t.Fatalf("expected no modules, got %d", len(modules))
	}
}

func TestExtractGroupedDeclarations(t *testing.T) {
	modules, err := Extract("hw.go", []byte(`package hw

type (
	//verilated:module
	First struct {
		A bool `+"`port:\"input\"`"+`
	}

	//verilated:module
	Second struct {
		B bool `+"`port:\"output\"`"+`
	}
)
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(modules) != 2 || modules[0].NativeType != "first" || modules[1].NativeType != "second" {
		t.Fatalf("unexpected modules %v", modules)
	}
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		err   error
		field string
	}{
		{"clock then clock", "A bool `port:\"clock\"`\nB bool `port:\"clock\"`", ErrDuplicateRole, "B"},
		{"reset then reset", "A bool `port:\"reset\"`\nB bool `port:\"input\"`\nC bool `port:\"reset\"`", ErrDuplicateRole, "C"},
		{"unsupported type", "A uint8 `port:\"input\"`", ErrUnsupportedType, "A"},
		{"slice", "A []bool `port:\"input\"`", ErrUnsupportedType, "A"},
		{"empty role", "A bool `port:\"\"`", ErrMissingRoleArgument, "A"},
		{"two roles", "A bool `port:\"input,output\"`", ErrMissingRoleArgument, "A"},
		{"unknown role", "A bool `port:\"wire\"`", ErrMissingRoleArgument, "A"},
		{"too wide", "A [65]bool `port:\"input\"`", ErrWidthOverflow, "A"},
		{"zero width", "A [0]bool `port:\"input\"`", ErrWidthOverflow, "A"},
		{"const width", "A [Width]bool `port:\"input\"`", ErrInvalidWidthExpression, "A"},
		{"keyword signal", "A bool `port:\"input\" signal:\"class\"`", ErrInvalidName, "A"},
		{"duplicate signal", "A bool `port:\"input\" signal:\"x\"`\nB bool `port:\"output\" signal:\"x\"`", ErrInvalidName, "B"},
		{"embedded", "Base `port:\"input\"`", ErrUnsupportedType, "Base"},
	}
	for _, test := range tests {
		src := "package hw\n\nconst Width = 4\n\ntype Base struct{}\n\n//verilated:module\ntype M struct {\n" + test.body + "\n}\n"
		_, err := Extract("hw.go", []byte(src))
		if !errors.Is(err, test.err) {
			t.Fatalf("%s: expected %v, got %v", test.name, test.err, err)
		}
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("%s: expected a configuration error, got %T", test.name, err)
		}
		if cfgErr.Type != "M" || cfgErr.Field != test.field {
			t.Fatalf("%s: unexpected location %s.%s", test.name, cfgErr.Type, cfgErr.Field)
		}
		if !cfgErr.Pos.IsValid() {
			t.Fatalf("%s: missing position", test.name)
		}
	}
}

func TestExtractUntaggedFieldsAreIgnored(t *testing.T) {
	m := extractOne(t, `package hw

//verilated:module
type M struct {
	Name  string
	Ready bool
	clk   bool `+"`port:\"clock\"`"+`
	weird map[int]int `+"`port:\"input\"`"+`
}
`)
	if m.Ports.Len() != 0 {
		t.Fatalf("expected no ports, got %d", m.Ports.Len())
	}
}

func TestExtractRejectsBadModules(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  error
	}{
		{"generic", "//verilated:module\ntype M[T any] struct{ A bool `port:\"input\"` }", ErrUnsupportedType},
		{"not a struct", "//verilated:module\ntype M int", ErrUnsupportedType},
		{"two names", "//verilated:module a b\ntype M struct{}", ErrInvalidDirective},
		{"bad name", "//verilated:module 9lives\ntype M struct{}", ErrInvalidDirective},
		{"duplicate", "//verilated:module top\ntype A struct{}\n\n//verilated:module top\ntype B struct{}", ErrDuplicateModule},
	}
	for _, test := range tests {
		_, err := Extract("hw.go", []byte("package hw\n\n"+test.src+"\n"))
		if !errors.Is(err, test.err) {
			t.Fatalf("%s: expected %v, got %v", test.name, test.err, err)
		}
	}
}

func TestExtractFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.go")
	second := filepath.Join(dir, "b.go")
	if err := os.WriteFile(first, []byte(counterSource), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("package hw\n\n//verilated:module\ntype Other struct{}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	modules, err := ExtractFiles(first, second)
	if err != nil {
		t.Fatal(err)
	}
	if len(modules) != 2 || modules[0].NativeType != "Top" || modules[1].NativeType != "other" {
		t.Fatalf("unexpected modules %v", modules)
	}

	if _, err := ExtractFiles(first, first); !errors.Is(err, ErrDuplicateModule) {
		t.Fatalf("expected duplicate module error, got %v", err)
	}
	if _, err := ExtractFiles(filepath.Join(dir, "missing.go")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestConfigurationErrorMessage(t *testing.T) {
	_, err := Extract("hw.go", []byte("package hw\n\n//verilated:module\ntype M struct {\n\tA uint8 `port:\"input\"`\n}\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	expected := "hw.go:5:2: M.A: unsupported port type: type uint8"
	if err.Error() != expected {
		t.Fatalf("expected %q, got %q", expected, err.Error())
	}
}
