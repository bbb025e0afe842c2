package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGoSources(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.go", "b.go", "a_test.go", "top.v"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("package hw\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := goSources([]string{dir, filepath.Join(dir, "a_test.go")})
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{
		filepath.Join(dir, "a.go"),
		filepath.Join(dir, "b.go"),
		filepath.Join(dir, "a_test.go"),
	}
	if len(files) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, files)
	}
	for i := range expected {
		if files[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, files)
		}
	}

	if _, err := goSources([]string{filepath.Join(dir, "missing.go")}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestExtractModules(t *testing.T) {
	dir := t.TempDir()
	src := "package hw\n\n//verilated:module\ntype Gate struct {\n\tA bool `port:\"input\"`\n\tY bool `port:\"output\"`\n}\n"
	if err := os.WriteFile(filepath.Join(dir, "gate.go"), []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	modules, err := extractModules(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(modules) != 1 || modules[0].NativeType != "gate" || modules[0].Ports.Len() != 2 {
		t.Fatalf("unexpected modules %+v", modules)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
