package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2024-06-03", "2000-12-31"}
	invalid := []string{"2024-13-01", "03-06-2024", "2024/06/03", "", "yesterday"}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	valid := []string{"09:00:00", "17:30:00", "09:00", "23:59:59"}
	invalid := []string{"24:00:00", "9am", "", "09:60"}
	for _, s := range valid {
		if _, ok := IsValidTimeOfDay(s); !ok {
			t.Errorf("IsValidTimeOfDay(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidTimeOfDay(s); ok {
			t.Errorf("IsValidTimeOfDay(%q) = true, want false", s)
		}
	}
}

func TestIsValidHours(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"7.5", "7.5", true},
		{"0", "0", true},
		{" 8.00 ", "8", true},
		{"-1", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := IsValidHours(c.input)
		if ok != c.ok {
			t.Errorf("IsValidHours(%q) ok = %v, want %v", c.input, ok, c.ok)
			continue
		}
		if ok && got.String() != c.want {
			t.Errorf("IsValidHours(%q) = %s, want %s", c.input, got, c.want)
		}
	}
}

func TestMaxLength(t *testing.T) {
	if !MaxLength("abc", 3) {
		t.Error("MaxLength(abc, 3) = false, want true")
	}
	if MaxLength("abcd", 3) {
		t.Error("MaxLength(abcd, 3) = true, want false")
	}
}
