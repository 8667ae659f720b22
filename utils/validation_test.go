package utils

import "testing"

func TestValidatePhone(t *testing.T) {
	valid := []string{"+14155550100", "14155550100", "+91 98765 43210", "(415) 555-0100"}
	for _, p := range valid {
		if !ValidatePhone(p) {
			t.Errorf("ValidatePhone(%q) = false, want true", p)
		}
	}

	invalid := []string{"", "abc", "+", "05", "0123456"}
	for _, p := range invalid {
		if ValidatePhone(p) {
			t.Errorf("ValidatePhone(%q) = true, want false", p)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct{ in, want string }{
		{" +91 98765-43210 ", "+919876543210"},
		{"(415) 555-0100", "4155550100"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizePhone(c.in); got != c.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestGenerateRandomString(t *testing.T) {
	a := GenerateRandomString(6)
	b := GenerateRandomString(6)
	if len(a) != 6 || len(b) != 6 {
		t.Fatalf("expected 6-char tokens, got %q and %q", a, b)
	}
	if a == b {
		t.Error("expected different tokens on consecutive calls")
	}
}
