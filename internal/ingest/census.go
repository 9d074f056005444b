package ingest

import (
	"github.com/fredduggan/fleetidy/internal/domain"
)

// commodityColumns maps CRGO_* cargo flags to display names, in report order
var commodityColumns = []struct {
	Column string
	Label  string
}{
	{"CRGO_GENFREIGHT", "General Freight"},
	{"CRGO_HOUSEHOLD", "Household Goods"},
	{"CRGO_METALSHEET", "Metal: Sheets/Coils/Rolls"},
	{"CRGO_MOTOVEH", "Motor Vehicles"},
	{"CRGO_DRIVETOW", "Drive/Tow Away"},
	{"CRGO_LOGPOLE", "Logs/Poles/Beams/Lumber"},
	{"CRGO_BLDGMAT", "Building Materials"},
	{"CRGO_MOBILEHOME", "Mobile Homes"},
	{"CRGO_MACHLRG", "Machinery/Large Objects"},
	{"CRGO_PRODUCE", "Fresh Produce"},
	{"CRGO_LIQGAS", "Liquids/Gases"},
	{"CRGO_INTERMODAL", "Intermodal Containers"},
	{"CRGO_OILFIELD", "Oilfield Equipment"},
	{"CRGO_LIVESTOCK", "Livestock"},
	{"CRGO_GRAINFEED", "Grain/Feed/Hay"},
	{"CRGO_COALCOKE", "Coal/Coke"},
	{"CRGO_MEAT", "Meat"},
	{"CRGO_GARBAGE", "Garbage/Refuse"},
	{"CRGO_USMAIL", "US Mail"},
	{"CRGO_CHEM", "Chemicals"},
	{"CRGO_DRYBULK", "Dry Bulk"},
	{"CRGO_COLDFOOD", "Refrigerated Food"},
	{"CRGO_BEVERAGES", "Beverages"},
	{"CRGO_PAPERPROD", "Paper Products"},
	{"CRGO_UTILITY", "Utility"},
	{"CRGO_FARMSUPP", "Farm Supplies"},
	{"CRGO_CONSTRUCT", "Construction"},
	{"CRGO_WATERWELL", "Water Well"},
}

// authorityColumns are the operating-authority flags, also overlaid from the SMS census
var authorityColumns = []struct {
	Column string
	Field  func(a *domain.Authority) *bool
}{
	{"AUTHORIZED_FOR_HIRE", func(a *domain.Authority) *bool { return &a.AuthorizedForHire }},
	{"EXEMPT_FOR_HIRE", func(a *domain.Authority) *bool { return &a.ExemptForHire }},
	{"PRIVATE_PROPERTY", func(a *domain.Authority) *bool { return &a.PrivateProperty }},
	{"PRIVATE_PASSENGER_BUSINESS", func(a *domain.Authority) *bool { return &a.PrivatePassengerBusiness }},
	{"PRIVATE_PASSENGER_NONBUSINESS", func(a *domain.Authority) *bool { return &a.PrivatePassengerNonbusiness }},
	{"MIGRANT", func(a *domain.Authority) *bool { return &a.Migrant }},
	{"US_MAIL", func(a *domain.Authority) *bool { return &a.USMail }},
	{"FEDERAL_GOVERNMENT", func(a *domain.Authority) *bool { return &a.FederalGovernment }},
	{"STATE_GOVERNMENT", func(a *domain.Authority) *bool { return &a.StateGovernment }},
	{"LOCAL_GOVERNMENT", func(a *domain.Authority) *bool { return &a.LocalGovernment }},
	{"INDIAN_TRIBE", func(a *domain.Authority) *bool { return &a.IndianTribe }},
}

// CarrierFromRow maps a census row onto a carrier record
func CarrierFromRow(row Row) domain.CarrierRecord {
	c := domain.CarrierRecord{
		DOTNumber:        NormalizeDOT(row.Get("DOT_NUMBER")),
		LegalName:        row.Get("LEGAL_NAME"),
		DBAName:          row.Get("DBA_NAME"),
		StatusCode:       row.Get("STATUS_CODE"),
		ClassDef:         row.Get("CLASSDEF"),
		CarrierOperation: row.Get("CARRIER_OPERATION"),
		CargoPassengers:  ParseFlag(row.Get("CRGO_PASSENGERS")),

		Equipment: domain.Equipment{
			OwnTrucks:    ParseInt(row.Get("OWNTRUCK"), 0),
			OwnTractors:  ParseInt(row.Get("OWNTRACT"), 0),
			OwnTrailers:  ParseInt(row.Get("OWNTRAIL"), 0),
			TermTrucks:   ParseInt(row.Get("TRMTRUCK"), 0),
			TermTractors: ParseInt(row.Get("TRMTRACT"), 0),
			TermTrailers: ParseInt(row.Get("TRMTRAIL"), 0),
			TripTrucks:   ParseInt(row.Get("TRPTRUCK"), 0),
			TripTractors: ParseInt(row.Get("TRPTRACT"), 0),
			TripTrailers: ParseInt(row.Get("TRPTRAIL"), 0),
		},

		PowerUnits:   ParseInt(row.Get("POWER_UNITS"), 0),
		TruckUnits:   ParseInt(row.Get("TRUCK_UNITS"), 0),
		TotalPower:   ParseInt(row.Get("TOT_PWR"), 0),
		Drivers:      ParseInt(row.Get("DRIVERS"), 0),
		TotalDrivers: ParseInt(row.Get("TOTAL_DRIVERS"), 0),
		CDLDrivers:   ParseInt(row.Get("TOTAL_CDL"), 0),

		MCS150Mileage: ParseInt64(row.Get("MCS150_MILEAGE"), 0),
		TotalMileage:  ParseInt64(row.Get("TOT_MILEAGE"), 0),

		AddDate:          row.Get("ADD_DATE"),
		MCS150Date:       row.Get("MCS150_DATE"),
		SafetyRating:     row.Get("SAFETY_RATING"),
		SafetyRatingDate: row.Get("SAFETY_RATING_DATE"),
		BusinessType:     row.Get("BUSINESS_ORG_DESC"),
		DUNSNumber:       row.Get("DUN_BRADSTREET_NO"),

		PhysicalAddress: domain.Address{
			Street:  row.Get("PHY_STREET"),
			City:    row.Get("PHY_CITY"),
			State:   row.Get("PHY_STATE"),
			Zip:     row.Get("PHY_ZIP"),
			Country: row.Get("PHY_COUNTRY"),
		},
		MailingAddress: domain.Address{
			Street:  row.Get("CARRIER_MAILING_STREET"),
			City:    row.Get("CARRIER_MAILING_CITY"),
			State:   row.Get("CARRIER_MAILING_STATE"),
			Zip:     row.Get("CARRIER_MAILING_ZIP"),
			Country: row.Get("CARRIER_MAILING_COUNTRY"),
		},
		Phone:    row.Get("PHONE", "TELEPHONE"),
		Fax:      row.Get("FAX"),
		Email:    row.Get("EMAIL_ADDRESS"),
		Officer1: row.Get("COMPANY_OFFICER_1"),
		Officer2: row.Get("COMPANY_OFFICER_2"),

		HazmatIndicator:     ParseFlag(row.Get("HM_Ind")),
		InterstateBeyond100: ParseFlag(row.Get("INTERSTATE_BEYOND_100_MILES")),
		InterstateWithin100: ParseFlag(row.Get("INTERSTATE_WITHIN_100_MILES")),
		IntrastateBeyond100: ParseFlag(row.Get("INTRASTATE_BEYOND_100_MILES")),
		IntrastateWithin100: ParseFlag(row.Get("INTRASTATE_WITHIN_100_MILES")),
		Commodities:         Commodities(row),
	}

	for _, col := range authorityColumns {
		*col.Field(&c.Authority) = ParseFlag(row.Get(col.Column))
	}

	for _, col := range domain.PassengerEquipmentFields {
		if n := ParseInt(row.Get(col), 0); n != 0 {
			if c.PassengerEquipment == nil {
				c.PassengerEquipment = make(map[string]int)
			}
			c.PassengerEquipment[col] = n
		}
	}

	return c
}

// OverlayAuthority replaces authority flags with those present in an SMS census row.
// Columns the SMS extract lacks leave the census value untouched.
func OverlayAuthority(c *domain.CarrierRecord, sms Row) {
	for _, col := range authorityColumns {
		if sms.Has(col.Column) {
			*col.Field(&c.Authority) = ParseFlag(sms.Get(col.Column))
		}
	}
}

// Commodities lists the cargo classes flagged on a census row
func Commodities(row Row) []string {
	var out []string
	for _, col := range commodityColumns {
		if ParseFlag(row.Get(col.Column)) {
			out = append(out, col.Label)
		}
	}
	if ParseFlag(row.Get("CRGO_CARGOOTHR")) {
		if desc := row.Get("CRGO_CARGOOTHR_DESC"); desc != "" {
			out = append(out, "Other: "+desc)
		}
	}
	return out
}
