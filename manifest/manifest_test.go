package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/daedaleanai/verilated/gen"
	"github.com/daedaleanai/verilated/port"
	"github.com/daedaleanai/verilated/util"
)

const source = `package hw

//verilated:module top
type Top struct {
	Clk  bool    ` + "`port:\"clock\"`" + `
	In   [8]bool ` + "`port:\"input\"`" + `
	Out  [8]bool ` + "`port:\"output\"`" + `
}

//verilated:module
type Gate struct {
	A bool ` + "`port:\"input\"`" + `
	Y bool ` + "`port:\"output\"`" + `
}
`

func generate(t *testing.T, dir string) (Manifest, []gen.Artifact) {
	t.Helper()
	modules, err := port.Extract("hw.go", []byte(source))
	if err != nil {
		t.Fatal(err)
	}
	g, err := gen.New(gen.Options{OutDir: dir, Package: "hw"})
	if err != nil {
		t.Fatal(err)
	}
	artifacts, err := g.Generate(modules)
	if err != nil {
		t.Fatal(err)
	}
	return Generate(g.Options(), modules, artifacts), artifacts
}

func TestGenerate(t *testing.T) {
	m, artifacts := generate(t, t.TempDir())

	if m.ToolVersion != util.ToolVersion.String() {
		t.Fatalf("unexpected tool version %q", m.ToolVersion)
	}
	if m.Package != "hw" || m.TraceFormat != "vcd" || m.ObjDir != gen.DefaultObjDir {
		t.Fatalf("unexpected options %+v", m)
	}
	if len(m.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(m.Modules))
	}
	top := m.Modules[0]
	if top.Name != "top" || top.Host != "Top" || top.Source != "hw.go" || top.Ports != 3 {
		t.Fatalf("unexpected module entry %+v", top)
	}
	if len(top.Artifacts) != 2 || top.Artifacts[0].Path != "top_binding.cpp" || top.Artifacts[1].Path != "top_binding.go" {
		t.Fatalf("unexpected artifacts %+v", top.Artifacts)
	}
	if top.Artifacts[0].Digest != util.Digest(artifacts[0].Data) {
		t.Fatal("digest does not match the artifact")
	}
	if m.Modules[1].Name != "gate" {
		t.Fatalf("expected module gate, got %q", m.Modules[1].Name)
	}
}

func TestWriteRead(t *testing.T) {
	dir := t.TempDir()
	m, _ := generate(t, dir)

	if err := Write(dir, m); err != nil {
		t.Fatal(err)
	}
	read, err := Read(dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := Diff(read, m); diff.Differ {
		t.Fatalf("manifest changed while stored: %+v", diff)
	}
}

func TestReadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("toolVersion: v1.0.0\ncommit: abc\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(dir); err == nil {
		t.Fatal("expected an error")
	}
}

func TestReadMissing(t *testing.T) {
	if _, err := Read(t.TempDir()); err == nil {
		t.Fatal("expected an error")
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	m, _ := generate(t, dir)

	stale, err := Check(dir, m)
	if err != nil {
		t.Fatal(err)
	}
	if len(stale) != 0 {
		t.Fatalf("fresh output reported stale: %+v", stale)
	}

	if err := os.WriteFile(filepath.Join(dir, "top_binding.go"), []byte("package hw\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(dir, "gate_binding.cpp")); err != nil {
		t.Fatal(err)
	}

	stale, err = Check(dir, m, "top_binding.go", "old_binding.go")
	if err != nil {
		t.Fatal(err)
	}
	expected := []Stale{
		{"top", "top_binding.go", Modified},
		{"gate", "gate_binding.cpp", Missing},
		{"", "old_binding.go", Unlisted},
	}
	if len(stale) != len(expected) {
		t.Fatalf("expected %d stale artifacts, got %+v", len(expected), stale)
	}
	for i := range expected {
		if stale[i] != expected[i] {
			t.Fatalf("expected %+v, got %+v", expected[i], stale[i])
		}
	}
}

func TestDiff(t *testing.T) {
	old := Manifest{
		ToolVersion: "v1.0.0",
		Package:     "hw",
		TraceFormat: "vcd",
		Modules: []Module{
			{Name: "a", Host: "A", Artifacts: []Artifact{{"a.cpp", "1"}, {"a.go", "2"}}},
			{Name: "b", Host: "B"},
			{Name: "c", Host: "C", Artifacts: []Artifact{{"c.cpp", "3"}}},
		},
	}
	newer := Manifest{
		ToolVersion: "v1.1.0",
		Package:     "hw",
		TraceFormat: "fst",
		Modules: []Module{
			{Name: "a", Host: "A", Artifacts: []Artifact{{"a.cpp", "1"}, {"a.go", "9"}}},
			{Name: "c", Host: "C", Artifacts: []Artifact{{"c.cpp", "3"}}},
			{Name: "d", Host: "D"},
		},
	}

	diff := Diff(newer, old)
	if !diff.Differ {
		t.Fatal("manifests should differ")
	}
	if diff.ToolVersion == "" {
		t.Fatal("tool version change not reported")
	}
	if len(diff.Options) != 1 {
		t.Fatalf("expected one option change, got %v", diff.Options)
	}
	if len(diff.AddedModules) != 1 || diff.AddedModules[0].Name != "d" {
		t.Fatalf("unexpected added modules %+v", diff.AddedModules)
	}
	if len(diff.RemovedModules) != 1 || diff.RemovedModules[0].Name != "b" {
		t.Fatalf("unexpected removed modules %+v", diff.RemovedModules)
	}
	if len(diff.ModifiedModules) != 1 {
		t.Fatalf("expected one modified module, got %+v", diff.ModifiedModules)
	}
	changed := diff.ModifiedModules[0].ChangedArtifacts
	if len(changed) != 1 || changed[0] != "a.go" {
		t.Fatalf("unexpected changed artifacts %v", changed)
	}

	if Diff(old, old).Differ {
		t.Fatal("a manifest differs from itself")
	}
}
