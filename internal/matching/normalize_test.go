package matching

import "testing"

func TestNormalizeBasic(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Alfie's Bakery  ", "alfie's bakery"},
		{"Alfie’s Bakery", "alfie's bakery"},
		{"CAFÉ NOIR", "cafe noir"},
		{"Choc-Chip  Shortbread", "choc chip shortbread"},
		{"Widget (large)", "widget large"},
		{"", ""},
		{"   ", ""},
		{"A & B Café, Ltd.", "a b cafe ltd"},
	}

	for _, c := range cases {
		got := Normalize(c.in)
		if got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Alfie’s Café — Wholesale!",
		"  Crème   Brûlée 175g ",
		"plain already normalized",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not a fixed point for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeApostropheVariants(t *testing.T) {
	variants := []string{"Alfie's", "Alfie’s", "Alfie‘s", "Alfie`s", "Alfie´s"}
	want := "alfie's"

	for _, v := range variants {
		if got := Normalize(v); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", v, got, want)
		}
	}
}
