package calculation

import "github.com/fredduggan/fleetidy/internal/domain"

// Member is what the population pass needs to know about one eligible carrier
type Member struct {
	Index      int // position in the run's outcome list
	DOTNumber  string
	Mileage    int64
	Violations int
	Crashes    int
	Combined   float64
}

// Population is an immutable snapshot of the eligible carriers of a run,
// taken once every per-carrier score is final.
type Population struct {
	members []Member
}

// NewPopulation snapshots the eligible outcomes in outcome order
func NewPopulation(outcomes []domain.CarrierOutcome) Population {
	members := make([]Member, 0, len(outcomes))
	for i, o := range outcomes {
		if !o.Score.Eligible {
			continue
		}
		dot := ""
		if o.Carrier != nil {
			dot = o.Carrier.DOTNumber
		}
		members = append(members, Member{
			Index:      i,
			DOTNumber:  dot,
			Mileage:    o.Score.AnnualMileage,
			Violations: o.Score.ViolationCount,
			Crashes:    o.Score.CrashCount,
			Combined:   o.Score.CombinedScore,
		})
	}
	return Population{members: members}
}

// Len returns the number of eligible carriers
func (p Population) Len() int {
	return len(p.members)
}

// Members returns a copy of the snapshot
func (p Population) Members() []Member {
	out := make([]Member, len(p.members))
	copy(out, p.members)
	return out
}
