package domain

// Basic identifies one of the seven BASIC safety-performance categories
type Basic int

const (
	UnsafeDriving Basic = iota
	HoursOfService
	DriverFitness
	ControlledSubstances
	VehicleMaintenance
	HazardousMaterials
	CrashIndicator
)

// NumBasics is the number of BASIC categories
const NumBasics = 7

// AllBasics lists the categories in their fixed scoring order
var AllBasics = [NumBasics]Basic{
	UnsafeDriving,
	HoursOfService,
	DriverFitness,
	ControlledSubstances,
	VehicleMaintenance,
	HazardousMaterials,
	CrashIndicator,
}

// String returns the display name used in risk flags
func (b Basic) String() string {
	switch b {
	case UnsafeDriving:
		return "Unsafe Driving"
	case HoursOfService:
		return "Hours-of-Service"
	case DriverFitness:
		return "Driver Fitness"
	case ControlledSubstances:
		return "Controlled Substances"
	case VehicleMaintenance:
		return "Vehicle Maintenance"
	case HazardousMaterials:
		return "Hazardous Materials"
	case CrashIndicator:
		return "Crash Indicator"
	default:
		return "Unknown"
	}
}

// Key returns the short key used in ISS alert maps
func (b Basic) Key() string {
	switch b {
	case UnsafeDriving:
		return "UNSAFE"
	case HoursOfService:
		return "HOS"
	case DriverFitness:
		return "DRIVER_FIT"
	case ControlledSubstances:
		return "CSAA"
	case VehicleMaintenance:
		return "VEH_MAINT"
	case HazardousMaterials:
		return "HM"
	case CrashIndicator:
		return "CRASH"
	default:
		return "UNKNOWN"
	}
}

// Roadside reports whether the category can be assessed at a roadside inspection
func (b Basic) Roadside() bool {
	switch b {
	case HoursOfService, DriverFitness, ControlledSubstances, VehicleMaintenance, HazardousMaterials:
		return true
	default:
		return false
	}
}

// BasicRecord is the carrier's BASIC snapshot. A nil measure means the column was missing or unparseable.
type BasicRecord struct {
	Measures [NumBasics]*float64 `json:"measures"`
	Alerts   [NumBasics]bool     `json:"alerts"`

	VehicleInspections int `json:"vehicle_insp_ct"`
	DriverInspections  int `json:"driver_insp_ct"`
}

// Measure returns the raw measure for a category, or 0 when absent
func (br *BasicRecord) Measure(b Basic) float64 {
	if br == nil || br.Measures[b] == nil {
		return 0
	}
	return *br.Measures[b]
}

// Percentile returns the measure when it is a valid percentile in [0,100]
func (br *BasicRecord) Percentile(b Basic) *float64 {
	if br == nil || br.Measures[b] == nil {
		return nil
	}
	v := *br.Measures[b]
	if v < 0 || v > 100 {
		return nil
	}
	return &v
}

// Alert reports whether the category is in alert
func (br *BasicRecord) Alert(b Basic) bool {
	if br == nil {
		return false
	}
	return br.Alerts[b]
}
