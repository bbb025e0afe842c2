package util

import (
	"testing"
)

func TestOrderedMap(t *testing.T) {
	m := NewOrderedMap[int, string]()
	for k, v := range map[int]string{4: "some", 5: "value", -4: "added"} {
		if err := m.Insert(k, v); err != nil {
			t.Fatal(err)
		}
	}

	expected := []int{-4, 4, 5}
	keys := m.Keys()
	if m.Len() != len(expected) || len(keys) != len(expected) {
		t.Fatal("unexpected number of entries")
	}
	for i := range keys {
		if keys[i] != expected[i] {
			t.Fatalf("unexpected key at index %d", i)
		}
	}
	if v, ok := m.Lookup(5); !ok || v != "value" {
		t.Fatalf("unexpected lookup result %q", v)
	}
}

func TestDuplicateKey(t *testing.T) {
	m := NewOrderedMap[string, int]()
	if err := m.Insert("top", 1); err != nil {
		t.Fatal(err)
	}
	if err := m.Insert("top", 2); err == nil {
		t.Fatal("expected duplicate key error")
	}
	if v, _ := m.Lookup("top"); v != 1 {
		t.Fatal("rejected insert must not change the value")
	}
}

func TestOrderedKeys(t *testing.T) {
	r := map[string]string{"WIDTH": "8", "DEPTH": "16", "SIMULATION": ""}
	keys := OrderedKeys(r)
	expected := []string{"DEPTH", "SIMULATION", "WIDTH"}
	for i := range expected {
		if keys[i] != expected[i] {
			t.Fatalf("unexpected key at index %d: %s", i, keys[i])
		}
	}

	m := NewOrderedMapFrom(r)
	if v, ok := m.Lookup("WIDTH"); !ok || v != "8" {
		t.Fatalf("unexpected lookup result %q", v)
	}
	if _, ok := m.Lookup("MISSING"); ok {
		t.Fatal("lookup should have failed")
	}
}
