package assets

import (
	"embed"
	"text/template"
)

//go:embed templates/*
var templatesFS embed.FS

var Templates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

const (
	ShimTemplate    = "shim.cpp.tmpl"
	WrapperTemplate = "wrapper.go.tmpl"
)

// PortTmplParams describes one port with all names already resolved, so the
// templates never build symbol names themselves.
type PortTmplParams struct {
	Host       string
	Model      string
	Field      string
	Signal     string
	Width      int
	Role       string
	HostType   string
	CgoType    string
	NativeType string
	Setter     string
	Getter     string
	Toggle     string
}

// RoleMethodTmplParams is a clock or reset method of the wrapper. Port is nil
// when the module has no port with the role. Level is -1 for toggles.
type RoleMethodTmplParams struct {
	Name  string
	Role  string
	Doc   string
	Level int
	Port  *PortTmplParams
}

type SymbolsTmplParams struct {
	New    string
	Delete string
	Eval   string
	Final  string
	Trace  string
}

type ShimTmplParams struct {
	Native      string
	ModelClass  string
	TraceClass  string
	TraceHeader string
	Symbols     SymbolsTmplParams
	RolePorts   []PortTmplParams
	Inputs      []PortTmplParams
	Outputs     []PortTmplParams
	InOuts      []PortTmplParams
}

type WrapperTmplParams struct {
	ShimTmplParams
	Package     string
	Host        string
	Doc         []string
	RuntimePkg  string
	TraceFormat string
	CXXFlags    []string
	LDFlags     []string
	RoleMethods []RoleMethodTmplParams
}
