package domain

import "strings"

// ExportRecord is the flat per-carrier row written to the browser bundle, CSV and SQL sinks
type ExportRecord struct {
	DOTNumber string `json:"dot_number"`
	LegalName string `json:"legal_name"`
	DBAName   string `json:"dba_name"`

	PhysicalStreet  string `json:"physical_street"`
	PhysicalCity    string `json:"physical_city"`
	PhysicalState   string `json:"physical_state"`
	PhysicalZip     string `json:"physical_zip"`
	PhysicalCountry string `json:"physical_country"`
	MailingStreet   string `json:"mailing_street"`
	MailingCity     string `json:"mailing_city"`
	MailingState    string `json:"mailing_state"`
	MailingZip      string `json:"mailing_zip"`

	Phone    string `json:"phone"`
	Fax      string `json:"fax"`
	Email    string `json:"email"`
	Officer1 string `json:"officer_1"`
	Officer2 string `json:"officer_2"`

	PowerUnits   int `json:"power_units"`
	Drivers      int `json:"drivers"`
	TotalDrivers int `json:"total_drivers"`
	CDLDrivers   int `json:"cdl_drivers"`
	OwnTrucks    int `json:"own_trucks"`
	OwnTractors  int `json:"own_tractors"`
	OwnTrailers  int `json:"own_trailers"`
	TermTrucks   int `json:"term_trucks"`
	TermTractors int `json:"term_tractors"`
	TermTrailers int `json:"term_trailers"`
	TripTrucks   int `json:"trip_trucks"`
	TripTractors int `json:"trip_tractors"`
	TripTrailers int `json:"trip_trailers"`

	CarrierOperation    string `json:"carrier_operation"`
	ClassDef            string `json:"classdef"`
	HazmatIndicator     bool   `json:"hm_indicator"`
	InterstateBeyond100 bool   `json:"interstate_beyond_100"`
	InterstateWithin100 bool   `json:"interstate_within_100"`
	IntrastateBeyond100 bool   `json:"intrastate_beyond_100"`
	IntrastateWithin100 bool   `json:"intrastate_within_100"`
	Commodities         string `json:"commodities"`

	BusinessType     string `json:"business_type"`
	DUNSNumber       string `json:"duns_number"`
	AddDate          string `json:"add_date"`
	MCS150Date       string `json:"mcs150_date"`
	SafetyRating     string `json:"safety_rating"`
	SafetyRatingDate string `json:"safety_rating_date"`

	ExperienceScore float64 `json:"experience_score"`
	SafetyScore     float64 `json:"safety_score"`
	CrashScore      float64 `json:"crash_score"`
	InspectionScore float64 `json:"inspection_score"`
	CombinedScore   float64 `json:"combined_score"`
	RiskFlags       string  `json:"risk_flags"`
	AnnualMileage   int64   `json:"annual_mileage"`
	Eligible        bool    `json:"has_sufficient_mileage"`

	ISSScore      int       `json:"iss_score"`
	ISSBucket     ISSBucket `json:"iss_bucket"`
	ISSSource     ISSSource `json:"iss_source"`
	ISSGroup      *int      `json:"iss_group,omitempty"`
	ISSCase       string    `json:"iss_case,omitempty"`
	ISSConfidence string    `json:"iss_confidence"`

	CrashCount      int `json:"crash_count"`
	InspectionCount int `json:"inspection_count"`
	ViolationCount  int `json:"violation_count"`

	Rank            *int     `json:"rank"`
	Grade           *Grade   `json:"fred_score_grade"`
	InsuranceRating *float64 `json:"insurance_rating"`

	ViolationTrends  map[string]map[string]int   `json:"violation_trends"`
	CriticalTrends   map[string]map[string]int   `json:"critical_trends"`
	InspectionTrends map[string]InspectionPeriod `json:"inspection_trends"`
}

// ListSeparator joins commodities and risk flags in flat exports
const ListSeparator = "; "

// NewExportRecord flattens an outcome
func NewExportRecord(o CarrierOutcome) ExportRecord {
	c := o.Carrier
	if c == nil {
		c = &CarrierRecord{}
	}
	s := o.Score
	return ExportRecord{
		DOTNumber: c.DOTNumber,
		LegalName: c.LegalName,
		DBAName:   c.DBAName,

		PhysicalStreet:  c.PhysicalAddress.Street,
		PhysicalCity:    c.PhysicalAddress.City,
		PhysicalState:   c.PhysicalAddress.State,
		PhysicalZip:     c.PhysicalAddress.Zip,
		PhysicalCountry: c.PhysicalAddress.Country,
		MailingStreet:   c.MailingAddress.Street,
		MailingCity:     c.MailingAddress.City,
		MailingState:    c.MailingAddress.State,
		MailingZip:      c.MailingAddress.Zip,

		Phone:    c.Phone,
		Fax:      c.Fax,
		Email:    c.Email,
		Officer1: c.Officer1,
		Officer2: c.Officer2,

		PowerUnits:   c.PowerUnits,
		Drivers:      c.Drivers,
		TotalDrivers: c.TotalDrivers,
		CDLDrivers:   c.CDLDrivers,
		OwnTrucks:    c.Equipment.OwnTrucks,
		OwnTractors:  c.Equipment.OwnTractors,
		OwnTrailers:  c.Equipment.OwnTrailers,
		TermTrucks:   c.Equipment.TermTrucks,
		TermTractors: c.Equipment.TermTractors,
		TermTrailers: c.Equipment.TermTrailers,
		TripTrucks:   c.Equipment.TripTrucks,
		TripTractors: c.Equipment.TripTractors,
		TripTrailers: c.Equipment.TripTrailers,

		CarrierOperation:    c.CarrierOperation,
		ClassDef:            c.ClassDef,
		HazmatIndicator:     c.HazmatIndicator,
		InterstateBeyond100: c.InterstateBeyond100,
		InterstateWithin100: c.InterstateWithin100,
		IntrastateBeyond100: c.IntrastateBeyond100,
		IntrastateWithin100: c.IntrastateWithin100,
		Commodities:         strings.Join(c.Commodities, ListSeparator),

		BusinessType:     c.BusinessType,
		DUNSNumber:       c.DUNSNumber,
		AddDate:          c.AddDate,
		MCS150Date:       c.MCS150Date,
		SafetyRating:     c.SafetyRating,
		SafetyRatingDate: c.SafetyRatingDate,

		ExperienceScore: s.ExperienceScore,
		SafetyScore:     s.SafetyScore,
		CrashScore:      s.CrashScore,
		InspectionScore: s.InspectionScore,
		CombinedScore:   s.CombinedScore,
		RiskFlags:       strings.Join(s.RiskFlags, ListSeparator),
		AnnualMileage:   s.AnnualMileage,
		Eligible:        s.Eligible,

		ISSScore:      o.ISS.Score,
		ISSBucket:     o.ISS.Bucket,
		ISSSource:     o.ISS.Source,
		ISSGroup:      o.ISS.Group,
		ISSCase:       o.ISS.Case,
		ISSConfidence: o.ISS.Confidence,

		CrashCount:      s.CrashCount,
		InspectionCount: s.InspectionCount,
		ViolationCount:  s.ViolationCount,

		Rank:            s.Rank,
		Grade:           s.Grade,
		InsuranceRating: s.InsuranceRating,

		ViolationTrends:  s.Trends.Violations,
		CriticalTrends:   s.Trends.Critical,
		InspectionTrends: s.Trends.Inspections,
	}
}
