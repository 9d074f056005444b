package domain

import "time"

// CrashRecord is a single reported crash. Zero ReportDate means unknown.
type CrashRecord struct {
	ReportDate     time.Time `json:"report_date"`
	Fatalities     int       `json:"fatalities"`
	Injuries       int       `json:"injuries"`
	HazmatReleased bool      `json:"hazmat_released"`
}

// InspectionRecord is a single roadside inspection
type InspectionRecord struct {
	InspectionDate time.Time `json:"insp_date"`
	OutOfService   bool      `json:"oos"`
}

// ViolationRecord is a single violation cited during an inspection
type ViolationRecord struct {
	InspectionDate time.Time `json:"insp_date"`
	BasicDesc      string    `json:"basic_desc"`
	SeverityWeight int       `json:"severity_weight"`
}

// CriticalSeverity is the severity weight at or above which a violation counts as critical
const CriticalSeverity = 7
