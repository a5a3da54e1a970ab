package permission

import (
	"testing"

	"attendify/internal/model"
)

func TestCheckSuperadminAlwaysPasses(t *testing.T) {
	for _, capability := range Vocabulary {
		if !Check(model.RoleSuperadmin, nil, capability) {
			t.Fatalf("superadmin denied %q", capability)
		}
	}
	// Stored map contents are irrelevant for superadmin.
	if !Check(model.RoleSuperadmin, map[string]bool{AddEmployee: false}, AddEmployee) {
		t.Fatal("superadmin denied despite stored false flag")
	}
}

func TestCheckAdminDefaultsFalse(t *testing.T) {
	for _, capability := range Vocabulary {
		if Check(model.RoleAdmin, nil, capability) {
			t.Fatalf("admin with empty map granted %q", capability)
		}
		if Check(model.RoleAdmin, map[string]bool{}, capability) {
			t.Fatalf("admin with empty map granted %q", capability)
		}
	}
}

func TestCheckAdminStoredFlags(t *testing.T) {
	stored := map[string]bool{AddAttendance: true, EditShift: false}

	tests := []struct {
		name       string
		capability string
		want       bool
	}{
		{"granted flag", AddAttendance, true},
		{"explicit false", EditShift, false},
		{"missing flag", DeleteEmployee, false},
		{"unknown capability", "launch_rockets", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Check(model.RoleAdmin, stored, tc.capability); got != tc.want {
				t.Fatalf("Check(admin, %q) = %v, want %v", tc.capability, got, tc.want)
			}
		})
	}
}

func TestEffective(t *testing.T) {
	super := Effective(model.RoleSuperadmin, nil)
	if len(super) != len(Vocabulary) {
		t.Fatalf("superadmin effective map has %d entries, want %d", len(super), len(Vocabulary))
	}
	for c, v := range super {
		if !v {
			t.Fatalf("superadmin effective[%q] = false", c)
		}
	}

	admin := Effective(model.RoleAdmin, map[string]bool{ViewReports: true, "bogus": true})
	if !admin[ViewReports] {
		t.Fatal("stored grant not reflected")
	}
	if admin[AddEmployee] {
		t.Fatal("missing key resolved to true")
	}
	if _, ok := admin["bogus"]; ok {
		t.Fatal("unknown key leaked into effective map")
	}
}

func TestMergeIgnoresUnknownKeys(t *testing.T) {
	got := Merge(map[string]bool{AddShift: true}, map[string]bool{AddShift: false, "nope": true})
	if got[AddShift] {
		t.Fatal("update not applied")
	}
	if _, ok := got["nope"]; ok {
		t.Fatal("unknown key kept")
	}
}
