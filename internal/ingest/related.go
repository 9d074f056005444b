package ingest

import (
	"github.com/fredduggan/fleetidy/internal/domain"
)

// basicColumns are the measure and alert columns per BASIC, indexed like domain.AllBasics
var basicColumns = [domain.NumBasics]struct {
	Measure string
	Alert   string
}{
	domain.UnsafeDriving:        {"UNSAFE_DRIV_MEASURE", "UNSAFE_DRIV_ALERT"},
	domain.HoursOfService:       {"HOS_DRIV_MEASURE", "HOS_DRIV_ALERT"},
	domain.DriverFitness:        {"DRIV_FIT_MEASURE", "DRIV_FIT_ALERT"},
	domain.ControlledSubstances: {"CONTR_SUBST_MEASURE", "CONTR_SUBST_ALERT"},
	domain.VehicleMaintenance:   {"VEH_MAINT_MEASURE", "VEH_MAINT_ALERT"},
	domain.HazardousMaterials:   {"HM_MEASURE", "HM_ALERT"},
	domain.CrashIndicator:       {"CRASH_MEASURE", "CRASH_ALERT"},
}

// rowDOT returns the DOT number of a related-file row under any of its spellings
func rowDOT(row Row) string {
	return NormalizeDOT(row.Get("DOT_NUMBER", "DOT_Number", "dot_number"))
}

// BasicFromRow maps a BASIC snapshot row
func BasicFromRow(row Row) *domain.BasicRecord {
	b := &domain.BasicRecord{
		VehicleInspections: ParseInt(row.Get("VEHICLE_INSP_CT"), 0),
		DriverInspections:  ParseInt(row.Get("DRIVER_INSP_CT"), 0),
	}
	for _, basic := range domain.AllBasics {
		cols := basicColumns[basic]
		b.Measures[basic] = ParseOptionalFloat(row.Get(cols.Measure))
		b.Alerts[basic] = ParseFlag(row.Get(cols.Alert))
	}
	return b
}

// CrashFromRow maps a crash row. An unparseable date is left zero.
func CrashFromRow(row Row) domain.CrashRecord {
	date, _ := ParseDate(row.Get("REPORT_DATE"))
	return domain.CrashRecord{
		ReportDate:     date,
		Fatalities:     ParseInt(row.Get("FATALITIES"), 0),
		Injuries:       ParseInt(row.Get("INJURIES"), 0),
		HazmatReleased: ParseFlag(row.Get("HAZMAT_RELEASED")),
	}
}

// InspectionFromRow maps an inspection row; OOS_TOTAL is a count, so any positive value is out of service
func InspectionFromRow(row Row) domain.InspectionRecord {
	date, _ := ParseDate(row.Get("INSP_DATE"))
	oos := row.Get("OOS_TOTAL")
	return domain.InspectionRecord{
		InspectionDate: date,
		OutOfService:   ParseInt(oos, 0) > 0 || ParseFlag(oos),
	}
}

// ViolationFromRow maps a violation row
func ViolationFromRow(row Row) domain.ViolationRecord {
	date, _ := ParseDate(row.Get("Insp_Date"))
	return domain.ViolationRecord{
		InspectionDate: date,
		BasicDesc:      row.Get("BASIC_Desc"),
		SeverityWeight: ParseInt(row.Get("Severity_Weight"), 0),
	}
}
