package money

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"£1,234.56", "1234.56"},
		{"(1,234.56)", "-1234.56"},
		{"1234.56", "1234.56"},
		{"$5,000", "5000"},
		{"€ 12 345", "12345"},
		{"(£500)", "-500"},
		{"0", "0"},
		{"-42", "-42"},
	}
	for _, tc := range cases {
		d, err := Normalize(tc.in)
		if err != nil {
			t.Errorf("Normalize(%q) error: %v", tc.in, err)
			continue
		}
		if d.String() != tc.want {
			t.Errorf("Normalize(%q) = %s, want %s", tc.in, d.String(), tc.want)
		}
	}
}

func TestNormalizeRejectsNonNumericText(t *testing.T) {
	for _, in := range []string{"abc", "", "£", "()", "( )", "1.2.3"} {
		if _, err := Normalize(in); err == nil {
			t.Errorf("Normalize(%q) should fail", in)
		}
	}
}

func TestNormalizeIsExactForMoney(t *testing.T) {
	d, err := Normalize("£0.00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.IsZero() {
		t.Errorf("0.00 must normalize to exactly zero, got %s", d)
	}
}
