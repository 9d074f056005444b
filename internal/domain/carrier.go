package domain

import "strings"

// PassengerEquipmentFields lists the census equipment columns that indicate passenger service
var PassengerEquipmentFields = []string{
	"OWNCOACH", "TRMCOACH", "TRPCOACH", "OWNBUS_16", "TRMBUS_16", "TRPBUS_16",
	"OWNSCHOOL_1_8", "OWNSCHOOL_9_15", "OWNSCHOOL_16",
	"TRMSCHOOL_1_8", "TRMSCHOOL_9_15", "TRMSCHOOL_16",
	"TRPSCHOOL_1_8", "TRPSCHOOL_9_15", "TRPSCHOOL_16",
	"OWNVAN_1_8", "OWNVAN_9_15", "TRMVAN_1_8", "TRMVAN_9_15", "TRPVAN_1_8", "TRPVAN_9_15",
	"OWNLIMO_1_8", "OWNLIMO_9_15", "OWNLIMO_16",
	"TRMLIMO_1_8", "TRMLIMO_9_15", "TRMLIMO_16",
	"TRPLIMO_1_8", "TRPLIMO_9_15", "TRPLIMO_16",
}

// Authority holds the legacy boolean operating-authority flags from the census
type Authority struct {
	AuthorizedForHire           bool `yaml:"authorized_for_hire" json:"authorized_for_hire"`
	ExemptForHire               bool `yaml:"exempt_for_hire" json:"exempt_for_hire"`
	PrivateProperty             bool `yaml:"private_property" json:"private_property"`
	PrivatePassengerBusiness    bool `yaml:"private_passenger_business" json:"private_passenger_business"`
	PrivatePassengerNonbusiness bool `yaml:"private_passenger_nonbusiness" json:"private_passenger_nonbusiness"`
	USMail                      bool `yaml:"us_mail" json:"us_mail"`
	FederalGovernment           bool `yaml:"federal_government" json:"federal_government"`
	StateGovernment             bool `yaml:"state_government" json:"state_government"`
	LocalGovernment             bool `yaml:"local_government" json:"local_government"`
	IndianTribe                 bool `yaml:"indian_tribe" json:"indian_tribe"`
	Migrant                     bool `yaml:"migrant" json:"migrant"`
}

// ForHire reports whether either for-hire flag is set
func (a Authority) ForHire() bool {
	return a.AuthorizedForHire || a.ExemptForHire
}

// OtherRecognized reports whether a non-for-hire authority that still qualifies is set
func (a Authority) OtherRecognized() bool {
	return a.USMail || a.FederalGovernment || a.StateGovernment || a.LocalGovernment || a.IndianTribe || a.Migrant
}

// Equipment holds owned, term-leased and trip-leased unit counts
type Equipment struct {
	OwnTrucks    int `yaml:"own_trucks" json:"own_trucks"`
	OwnTractors  int `yaml:"own_tractors" json:"own_tractors"`
	OwnTrailers  int `yaml:"own_trailers" json:"own_trailers"`
	TermTrucks   int `yaml:"term_trucks" json:"term_trucks"`
	TermTractors int `yaml:"term_tractors" json:"term_tractors"`
	TermTrailers int `yaml:"term_trailers" json:"term_trailers"`
	TripTrucks   int `yaml:"trip_trucks" json:"trip_trucks"`
	TripTractors int `yaml:"trip_tractors" json:"trip_tractors"`
	TripTrailers int `yaml:"trip_trailers" json:"trip_trailers"`
}

// Address is a street address as recorded in the census
type Address struct {
	Street  string `yaml:"street" json:"street"`
	City    string `yaml:"city" json:"city"`
	State   string `yaml:"state" json:"state"`
	Zip     string `yaml:"zip" json:"zip"`
	Country string `yaml:"country" json:"country"`
}

// CarrierRecord is one census row. It is immutable input to the engine.
type CarrierRecord struct {
	DOTNumber        string `yaml:"dot_number" json:"dot_number"`
	LegalName        string `yaml:"legal_name" json:"legal_name"`
	DBAName          string `yaml:"dba_name" json:"dba_name"`
	StatusCode       string `yaml:"status_code" json:"status_code"`
	ClassDef         string `yaml:"classdef" json:"classdef"`
	CarrierOperation string `yaml:"carrier_operation" json:"carrier_operation"`
	CargoPassengers  bool   `yaml:"cargo_passengers" json:"cargo_passengers"`

	Authority          Authority      `yaml:"authority" json:"authority"`
	Equipment          Equipment      `yaml:"equipment" json:"equipment"`
	PassengerEquipment map[string]int `yaml:"passenger_equipment,omitempty" json:"passenger_equipment,omitempty"` // census column -> count

	PowerUnits   int `yaml:"power_units" json:"power_units"`
	TruckUnits   int `yaml:"truck_units" json:"truck_units"`
	TotalPower   int `yaml:"total_power" json:"total_power"`
	Drivers      int `yaml:"drivers" json:"drivers"`
	TotalDrivers int `yaml:"total_drivers" json:"total_drivers"`
	CDLDrivers   int `yaml:"cdl_drivers" json:"cdl_drivers"`

	MCS150Mileage int64 `yaml:"mcs150_mileage" json:"mcs150_mileage"`
	TotalMileage  int64 `yaml:"total_mileage" json:"total_mileage"`

	AddDate          string `yaml:"add_date" json:"add_date"` // YYYYMMDD
	MCS150Date       string `yaml:"mcs150_date" json:"mcs150_date"`
	SafetyRating     string `yaml:"safety_rating" json:"safety_rating"`
	SafetyRatingDate string `yaml:"safety_rating_date" json:"safety_rating_date"`
	BusinessType     string `yaml:"business_type" json:"business_type"`
	DUNSNumber       string `yaml:"duns_number" json:"duns_number"`

	PhysicalAddress Address `yaml:"physical_address" json:"physical_address"`
	MailingAddress  Address `yaml:"mailing_address" json:"mailing_address"`
	Phone           string  `yaml:"phone" json:"phone"`
	Fax             string  `yaml:"fax" json:"fax"`
	Email           string  `yaml:"email" json:"email"`
	Officer1        string  `yaml:"officer_1" json:"officer_1"`
	Officer2        string  `yaml:"officer_2" json:"officer_2"`

	HazmatIndicator     bool     `yaml:"hm_indicator" json:"hm_indicator"`
	InterstateBeyond100 bool     `yaml:"interstate_beyond_100" json:"interstate_beyond_100"`
	InterstateWithin100 bool     `yaml:"interstate_within_100" json:"interstate_within_100"`
	IntrastateBeyond100 bool     `yaml:"intrastate_beyond_100" json:"intrastate_beyond_100"`
	IntrastateWithin100 bool     `yaml:"intrastate_within_100" json:"intrastate_within_100"`
	Commodities         []string `yaml:"commodities,omitempty" json:"commodities,omitempty"`
}

// AnnualMileage returns MCS-150 mileage, falling back to the total mileage column when zero
func (c *CarrierRecord) AnnualMileage() int64 {
	if c.MCS150Mileage != 0 {
		return c.MCS150Mileage
	}
	return c.TotalMileage
}

// TruckPower sums every truck and tractor power-unit field
func (c *CarrierRecord) TruckPower() int {
	e := c.Equipment
	return c.TruckUnits + c.PowerUnits +
		e.OwnTrucks + e.OwnTractors +
		e.TermTrucks + e.TermTractors +
		e.TripTrucks + e.TripTractors
}

// PassengerEquipmentTotal sums the passenger equipment counts
func (c *CarrierRecord) PassengerEquipmentTotal() int {
	total := 0
	for _, n := range c.PassengerEquipment {
		total += n
	}
	return total
}

// FleetSize returns power units, then truck units, then total power, defaulting to 1
func (c *CarrierRecord) FleetSize() int {
	if c.PowerUnits != 0 {
		return c.PowerUnits
	}
	if c.TruckUnits != 0 {
		return c.TruckUnits
	}
	if c.TotalPower != 0 {
		return c.TotalPower
	}
	return 1
}

// ClassDefUpper returns the classification text upper-cased for marker matching
func (c *CarrierRecord) ClassDefUpper() string {
	return strings.ToUpper(c.ClassDef)
}

// CarrierData is one carrier joined with its associated records by DOT number
type CarrierData struct {
	Carrier     CarrierRecord      `json:"carrier"`
	Basic       *BasicRecord       `json:"basic,omitempty"`
	Crashes     []CrashRecord      `json:"crashes,omitempty"`
	Inspections []InspectionRecord `json:"inspections,omitempty"`
	Violations  []ViolationRecord  `json:"violations,omitempty"`
}
