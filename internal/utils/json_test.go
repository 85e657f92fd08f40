package utils

import "testing"

func TestSanitizeJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"  \n{\"a\": 1}\n  ", `{"a": 1}`},
		{"```json\n```", ""},
		{"", ""},
	}

	for _, c := range cases {
		if got := SanitizeJSON(c.in); got != c.want {
			t.Errorf("SanitizeJSON(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
