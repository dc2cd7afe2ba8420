package util

import "testing"

func TestSanitizeString(t *testing.T) {
	cases := map[string]string{
		"  a fox in a forest  ":  "a fox in a forest",
		"line\nbreaks\tand tabs": "linebreaksand tabs",
		"":                       "",
		"clean":                  "clean",
	}
	for in, want := range cases {
		if got := SanitizeString(in); got != want {
			t.Errorf("SanitizeString(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 3); got != "abc..." {
		t.Errorf("got %q", got)
	}
	if got := Truncate("abc", 3); got != "abc" {
		t.Errorf("got %q", got)
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "fallback", "later"); got != "fallback" {
		t.Errorf("got %q", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("got %d", got)
	}
}
