package permission

import "attendify/internal/model"

// Capability flags assignable to admin accounts. Superadmin implicitly holds
// all of them; missing keys on an admin resolve to false.
const (
	AddEmployee    = "add_employee"
	EditEmployee   = "edit_employee"
	DeleteEmployee = "delete_employee"
	AddShift       = "add_shift"
	EditShift      = "edit_shift"
	AddAttendance  = "add_attendance"
	EditAttendance = "edit_attendance"
	UploadSheet    = "upload_sheet"
	ManageHolidays = "manage_holidays"
	ViewReports    = "view_reports"
)

// Vocabulary is the fixed set of capability names, in display order.
var Vocabulary = []string{
	AddEmployee,
	EditEmployee,
	DeleteEmployee,
	AddShift,
	EditShift,
	AddAttendance,
	EditAttendance,
	UploadSheet,
	ManageHolidays,
	ViewReports,
}

var known = func() map[string]bool {
	m := make(map[string]bool, len(Vocabulary))
	for _, c := range Vocabulary {
		m[c] = true
	}
	return m
}()

// Known reports whether capability is part of the fixed vocabulary.
func Known(capability string) bool {
	return known[capability]
}

// Effective resolves the capability map a caller actually holds: superadmin
// gets every flag true regardless of what is stored; admin gets the stored
// map merged over an all-false default.
func Effective(role string, stored map[string]bool) map[string]bool {
	out := make(map[string]bool, len(Vocabulary))
	for _, c := range Vocabulary {
		out[c] = role == model.RoleSuperadmin
	}
	if role == model.RoleSuperadmin {
		return out
	}
	for c, v := range stored {
		if known[c] {
			out[c] = v
		}
	}
	return out
}

// Check reports whether the given role/stored-map combination grants the
// capability. Superadmin always passes; unknown capabilities are never
// granted to admins.
func Check(role string, stored map[string]bool, capability string) bool {
	if role == model.RoleSuperadmin {
		return true
	}
	return known[capability] && stored[capability]
}

// Merge applies updates onto stored, ignoring capability names outside the
// vocabulary. The returned map is a fresh copy.
func Merge(stored map[string]bool, updates map[string]bool) map[string]bool {
	out := make(map[string]bool, len(stored)+len(updates))
	for c, v := range stored {
		if known[c] {
			out[c] = v
		}
	}
	for c, v := range updates {
		if known[c] {
			out[c] = v
		}
	}
	return out
}
