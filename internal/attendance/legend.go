package attendance

import "attendify/internal/model"

// RegularLegend maps attendance codes to meanings for regular staff.
var RegularLegend = map[string]string{
	"P":     "Present",
	"A":     "Absent",
	"R":     "Rest",
	"CL":    "Casual Leave",
	"LAP":   "Leave On Average Pay",
	"COCL":  "Compensatory Casual Leave",
	"S":     "Sick",
	"ART":   "Accident Relief Train",
	"Trg":   "Training",
	"SCL":   "Special Casual Leave",
	"H":     "Holiday",
	"D":     "Duty",
	"Ex":    "Exam",
	"Sp":    "Spare",
	"Trans": "Transfer",
	"Retd":  "Retired",
	"Rel":   "Released",
}

// ApprenticeLegend maps attendance codes to meanings for apprentices.
var ApprenticeLegend = map[string]string{
	"P":   "Present",
	"A":   "Absent",
	"R":   "Rest",
	"S":   "Sick",
	"CL":  "Casual Leave",
	"REL": "Released",
}

// RegularLegendOrder fixes the display order of RegularLegend in exports.
var RegularLegendOrder = []string{
	"P", "A", "R", "CL", "LAP", "COCL", "S", "ART", "Trg", "SCL",
	"H", "D", "Ex", "Sp", "Trans", "Retd", "Rel",
}

// ApprenticeLegendOrder fixes the display order of ApprenticeLegend in exports.
var ApprenticeLegendOrder = []string{"P", "A", "R", "S", "CL", "REL"}

// LegendFor returns the code legend for the given employee type.
func LegendFor(empType string) map[string]string {
	if empType == model.EmployeeApprentice {
		return ApprenticeLegend
	}
	return RegularLegend
}

// LegendOrderFor returns the display order of the legend for the employee type.
func LegendOrderFor(empType string) []string {
	if empType == model.EmployeeApprentice {
		return ApprenticeLegendOrder
	}
	return RegularLegendOrder
}
