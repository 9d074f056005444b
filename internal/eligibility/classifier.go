package eligibility

import (
	"strings"

	"github.com/fredduggan/fleetidy/internal/domain"
)

// Outcome of a single rule. Keep means the carrier is retained and the cascade stops.
type Outcome struct {
	Keep   bool
	Reason domain.ExclusionReason
}

var keep = Outcome{Keep: true, Reason: domain.ReasonNone}

func exclude(reason domain.ExclusionReason) Outcome {
	return Outcome{Reason: reason}
}

// Rule pairs a predicate with the outcome it produces when it matches
type Rule struct {
	Name    string
	Matches func(c *domain.CarrierRecord) bool
	Outcome Outcome
}

// Rules is the ordered cascade; the first matching rule decides.
var Rules = []Rule{
	{Name: "inactive-status", Matches: isInactive, Outcome: exclude(domain.ReasonInactiveStatus)},
	{Name: "passenger-operation", Matches: hasPassengerSignal, Outcome: exclude(domain.ReasonPassengerOperation)},
	{Name: "no-truck-power", Matches: lacksTruckPower, Outcome: exclude(domain.ReasonNoTruckPower)},
	{Name: "classdef-for-hire", Matches: classDefForHire, Outcome: keep},
	{Name: "classdef-us-mail", Matches: classDefUSMail, Outcome: keep},
	{Name: "classdef-private-property", Matches: classDefPrivateProperty, Outcome: exclude(domain.ReasonPrivateNotForHire)},
	{Name: "flag-private-property", Matches: flagPrivateOnly, Outcome: exclude(domain.ReasonPrivateNotForHire)},
	{Name: "flag-for-hire", Matches: flagForHire, Outcome: keep},
	{Name: "flag-other-authority", Matches: flagOtherAuthority, Outcome: keep},
}

// Classify runs the cascade and returns exactly one decision for the carrier
func Classify(c *domain.CarrierRecord) domain.Decision {
	return ClassifyWith(Rules, c)
}

// ClassifyWith runs an arbitrary rule list; carriers matching nothing lack for-hire authority
func ClassifyWith(rules []Rule, c *domain.CarrierRecord) domain.Decision {
	for _, r := range rules {
		if r.Matches(c) {
			return domain.Decision{Excluded: !r.Outcome.Keep, Reason: r.Outcome.Reason}
		}
	}
	return domain.Decision{Excluded: true, Reason: domain.ReasonNoForHireAuthority}
}

func isInactive(c *domain.CarrierRecord) bool {
	status := strings.ToUpper(strings.TrimSpace(c.StatusCode))
	return status != "" && status != "A" && status != "ACTIVE"
}

func hasPassengerSignal(c *domain.CarrierRecord) bool {
	classDef := c.ClassDefUpper()
	if strings.Contains(classDef, "PRIVATE PASSENGER") {
		return true
	}
	for _, segment := range strings.Split(classDef, ";") {
		if strings.TrimSpace(segment) == "PASSENGER" {
			return true
		}
	}
	if c.CargoPassengers {
		return true
	}
	if c.PassengerEquipmentTotal() > 0 {
		return true
	}
	return c.Authority.PrivatePassengerBusiness || c.Authority.PrivatePassengerNonbusiness
}

func lacksTruckPower(c *domain.CarrierRecord) bool {
	return c.TruckPower() <= 0
}

func classDefForHire(c *domain.CarrierRecord) bool {
	classDef := c.ClassDefUpper()
	return strings.Contains(classDef, "AUTHORIZED FOR HIRE") || strings.Contains(classDef, "EXEMPT FOR HIRE")
}

func classDefUSMail(c *domain.CarrierRecord) bool {
	classDef := c.ClassDefUpper()
	return strings.Contains(classDef, "U. S. MAIL") ||
		strings.Contains(classDef, "U.S. MAIL") ||
		strings.Contains(classDef, "US MAIL")
}

func classDefPrivateProperty(c *domain.CarrierRecord) bool {
	return strings.Contains(c.ClassDefUpper(), "PRIVATE PROPERTY")
}

func flagPrivateOnly(c *domain.CarrierRecord) bool {
	return c.Authority.PrivateProperty && !c.Authority.ForHire()
}

func flagForHire(c *domain.CarrierRecord) bool {
	return c.Authority.ForHire()
}

func flagOtherAuthority(c *domain.CarrierRecord) bool {
	return c.Authority.OtherRecognized()
}
