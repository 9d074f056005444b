package store

import "github.com/fredduggan/fleetidy/internal/domain"

type columnKind int

const (
	textColumn columnKind = iota
	intColumn
	floatColumn
)

func (k columnKind) sqlType(d Dialect) string {
	switch k {
	case intColumn:
		return "INTEGER"
	case floatColumn:
		return d.FloatType
	default:
		return "TEXT"
	}
}

type runMeta struct {
	ID   string
	AsOf string
}

type column struct {
	name  string
	kind  columnKind
	value func(r *domain.ExportRecord, m runMeta) (any, error)
}

func text(name string, f func(r *domain.ExportRecord) string) column {
	return column{name, textColumn, func(r *domain.ExportRecord, _ runMeta) (any, error) { return f(r), nil }}
}

func integer(name string, f func(r *domain.ExportRecord) int64) column {
	return column{name, intColumn, func(r *domain.ExportRecord, _ runMeta) (any, error) { return f(r), nil }}
}

func flag(name string, f func(r *domain.ExportRecord) bool) column {
	return column{name, intColumn, func(r *domain.ExportRecord, _ runMeta) (any, error) { return boolInt(f(r)), nil }}
}

func number(name string, f func(r *domain.ExportRecord) float64) column {
	return column{name, floatColumn, func(r *domain.ExportRecord, _ runMeta) (any, error) { return f(r), nil }}
}

func trend(name string, f func(r *domain.ExportRecord) any) column {
	return column{name, textColumn, func(r *domain.ExportRecord, _ runMeta) (any, error) { return jsonText(f(r)) }}
}

// columns is the carriers table layout, dot_number first
var columns = []column{
	text("dot_number", func(r *domain.ExportRecord) string { return r.DOTNumber }),
	text("legal_name", func(r *domain.ExportRecord) string { return r.LegalName }),
	text("dba_name", func(r *domain.ExportRecord) string { return r.DBAName }),

	text("physical_street", func(r *domain.ExportRecord) string { return r.PhysicalStreet }),
	text("physical_city", func(r *domain.ExportRecord) string { return r.PhysicalCity }),
	text("physical_state", func(r *domain.ExportRecord) string { return r.PhysicalState }),
	text("physical_zip", func(r *domain.ExportRecord) string { return r.PhysicalZip }),
	text("physical_country", func(r *domain.ExportRecord) string { return r.PhysicalCountry }),
	text("mailing_street", func(r *domain.ExportRecord) string { return r.MailingStreet }),
	text("mailing_city", func(r *domain.ExportRecord) string { return r.MailingCity }),
	text("mailing_state", func(r *domain.ExportRecord) string { return r.MailingState }),
	text("mailing_zip", func(r *domain.ExportRecord) string { return r.MailingZip }),

	text("phone", func(r *domain.ExportRecord) string { return r.Phone }),
	text("fax", func(r *domain.ExportRecord) string { return r.Fax }),
	text("email", func(r *domain.ExportRecord) string { return r.Email }),
	text("officer_1", func(r *domain.ExportRecord) string { return r.Officer1 }),
	text("officer_2", func(r *domain.ExportRecord) string { return r.Officer2 }),

	integer("power_units", func(r *domain.ExportRecord) int64 { return int64(r.PowerUnits) }),
	integer("drivers", func(r *domain.ExportRecord) int64 { return int64(r.Drivers) }),
	integer("total_drivers", func(r *domain.ExportRecord) int64 { return int64(r.TotalDrivers) }),
	integer("cdl_drivers", func(r *domain.ExportRecord) int64 { return int64(r.CDLDrivers) }),
	integer("own_trucks", func(r *domain.ExportRecord) int64 { return int64(r.OwnTrucks) }),
	integer("own_tractors", func(r *domain.ExportRecord) int64 { return int64(r.OwnTractors) }),
	integer("own_trailers", func(r *domain.ExportRecord) int64 { return int64(r.OwnTrailers) }),
	integer("term_trucks", func(r *domain.ExportRecord) int64 { return int64(r.TermTrucks) }),
	integer("term_tractors", func(r *domain.ExportRecord) int64 { return int64(r.TermTractors) }),
	integer("term_trailers", func(r *domain.ExportRecord) int64 { return int64(r.TermTrailers) }),
	integer("trip_trucks", func(r *domain.ExportRecord) int64 { return int64(r.TripTrucks) }),
	integer("trip_tractors", func(r *domain.ExportRecord) int64 { return int64(r.TripTractors) }),
	integer("trip_trailers", func(r *domain.ExportRecord) int64 { return int64(r.TripTrailers) }),

	text("carrier_operation", func(r *domain.ExportRecord) string { return r.CarrierOperation }),
	text("classdef", func(r *domain.ExportRecord) string { return r.ClassDef }),
	flag("hm_indicator", func(r *domain.ExportRecord) bool { return r.HazmatIndicator }),
	flag("interstate_beyond_100", func(r *domain.ExportRecord) bool { return r.InterstateBeyond100 }),
	flag("interstate_within_100", func(r *domain.ExportRecord) bool { return r.InterstateWithin100 }),
	flag("intrastate_beyond_100", func(r *domain.ExportRecord) bool { return r.IntrastateBeyond100 }),
	flag("intrastate_within_100", func(r *domain.ExportRecord) bool { return r.IntrastateWithin100 }),
	text("commodities", func(r *domain.ExportRecord) string { return r.Commodities }),

	text("business_type", func(r *domain.ExportRecord) string { return r.BusinessType }),
	text("duns_number", func(r *domain.ExportRecord) string { return r.DUNSNumber }),
	text("add_date", func(r *domain.ExportRecord) string { return r.AddDate }),
	text("mcs150_date", func(r *domain.ExportRecord) string { return r.MCS150Date }),
	text("safety_rating", func(r *domain.ExportRecord) string { return r.SafetyRating }),
	text("safety_rating_date", func(r *domain.ExportRecord) string { return r.SafetyRatingDate }),

	number("experience_score", func(r *domain.ExportRecord) float64 { return r.ExperienceScore }),
	number("safety_score", func(r *domain.ExportRecord) float64 { return r.SafetyScore }),
	number("crash_score", func(r *domain.ExportRecord) float64 { return r.CrashScore }),
	number("inspection_score", func(r *domain.ExportRecord) float64 { return r.InspectionScore }),
	number("combined_score", func(r *domain.ExportRecord) float64 { return r.CombinedScore }),
	text("risk_flags", func(r *domain.ExportRecord) string { return r.RiskFlags }),
	integer("annual_mileage", func(r *domain.ExportRecord) int64 { return r.AnnualMileage }),

	integer("iss_score", func(r *domain.ExportRecord) int64 { return int64(r.ISSScore) }),
	text("iss_bucket", func(r *domain.ExportRecord) string { return string(r.ISSBucket) }),
	text("iss_source", func(r *domain.ExportRecord) string { return string(r.ISSSource) }),

	integer("crash_count", func(r *domain.ExportRecord) int64 { return int64(r.CrashCount) }),
	integer("inspection_count", func(r *domain.ExportRecord) int64 { return int64(r.InspectionCount) }),
	integer("violation_count", func(r *domain.ExportRecord) int64 { return int64(r.ViolationCount) }),

	{"rank", intColumn, func(r *domain.ExportRecord, _ runMeta) (any, error) { return nullable(r.Rank), nil }},
	{"fred_score_grade", textColumn, func(r *domain.ExportRecord, _ runMeta) (any, error) {
		if r.Grade == nil {
			return nil, nil
		}
		return string(*r.Grade), nil
	}},
	{"insurance_rating", floatColumn, func(r *domain.ExportRecord, _ runMeta) (any, error) { return nullable(r.InsuranceRating), nil }},

	trend("violation_trends", func(r *domain.ExportRecord) any { return r.ViolationTrends }),
	trend("critical_trends", func(r *domain.ExportRecord) any { return r.CriticalTrends }),
	trend("inspection_trends", func(r *domain.ExportRecord) any { return r.InspectionTrends }),

	{"run_id", textColumn, func(_ *domain.ExportRecord, m runMeta) (any, error) { return m.ID, nil }},
	{"as_of", textColumn, func(_ *domain.ExportRecord, m runMeta) (any, error) { return m.AsOf, nil }},
}
