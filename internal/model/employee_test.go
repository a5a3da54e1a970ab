package model

import "testing"

func TestNormalizeEmpNo(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"float artifact", "50709618284.0", "50709618284"},
		{"already clean", "50709618284", "50709618284"},
		{"whitespace", "  50709618284 ", "50709618284"},
		{"whitespace and artifact", " 50709618284.0\t", "50709618284"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeEmpNo(tc.in)
			if got != tc.want {
				t.Fatalf("NormalizeEmpNo(%q) = %q, want %q", tc.in, got, tc.want)
			}
			// Normalization is idempotent.
			if again := NormalizeEmpNo(got); again != got {
				t.Fatalf("NormalizeEmpNo not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestValidEmployeeType(t *testing.T) {
	if !ValidEmployeeType(EmployeeRegular) || !ValidEmployeeType(EmployeeApprentice) {
		t.Fatal("recognized types rejected")
	}
	for _, bad := range []string{"", "contractor", "Regular"} {
		if ValidEmployeeType(bad) {
			t.Fatalf("ValidEmployeeType(%q) = true", bad)
		}
	}
}
