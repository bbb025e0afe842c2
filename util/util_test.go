package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileCreatesParents(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a", "b", "out.txt")

	if err := WriteFile(file, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	if !FileExists(file) {
		t.Fatal("file was not created")
	}
	if stat, err := os.Stat(filepath.Dir(file)); err != nil || !stat.IsDir() {
		t.Fatal("parent directory was not created")
	}
	if !SameContent(file, []byte("hello")) {
		t.Fatal("unexpected file content")
	}

	entries, err := os.ReadDir(filepath.Dir(file))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %v", entries)
	}
}

func TestWriteFileReplaces(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.txt")
	if err := WriteFile(file, []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(file, []byte("two")); err != nil {
		t.Fatal(err)
	}
	if SameContent(file, []byte("one")) || !SameContent(file, []byte("two")) {
		t.Fatal("file content was not replaced")
	}
}

func TestWriteFileFailsInsideFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, FileMode); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(filepath.Join(blocker, "out.txt"), []byte("x")); err == nil {
		t.Fatal("expected an error when the parent is a regular file")
	}
}

func TestRemoveFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out.txt")
	if err := RemoveFile(file); err != nil {
		t.Fatalf("removing a missing file must not fail: %s", err)
	}
	if err := WriteFile(file, []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := RemoveFile(file); err != nil {
		t.Fatal(err)
	}
	if FileExists(file) {
		t.Fatal("file still exists")
	}
}

func TestDigest(t *testing.T) {
	// sha256("abc")
	const expected = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if Digest([]byte("abc")) != expected {
		t.Fatalf("unexpected digest %s", Digest([]byte("abc")))
	}

	file := filepath.Join(t.TempDir(), "abc")
	if err := WriteFile(file, []byte("abc")); err != nil {
		t.Fatal(err)
	}
	digest, err := FileDigest(file)
	if err != nil {
		t.Fatal(err)
	}
	if digest != expected {
		t.Fatalf("unexpected file digest %s", digest)
	}
}
