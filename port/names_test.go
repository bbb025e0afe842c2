package port

import "testing"

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Clk":      "clk",
		"ClkI":     "clk_i",
		"CountO":   "count_o",
		"AXIValid": "axi_valid",
		"Data0":    "data0",
		"Data0Out": "data0_out",
		"RST":      "rst",
		"already":  "already",
	}
	for in, expected := range tests {
		if actual := SnakeCase(in); actual != expected {
			t.Fatalf("SnakeCase(%q): expected %q, got %q", in, expected, actual)
		}
	}
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"clk_i", "Top", "_x", "a1"} {
		if !ValidName(name) {
			t.Fatalf("expected %q to be valid", name)
		}
	}
	for _, name := range []string{"", "1a", "a-b", "class", "new", "__x", "a b"} {
		if ValidName(name) {
			t.Fatalf("expected %q to be invalid", name)
		}
	}
}
