package calculation

import (
	"sort"

	"github.com/fredduggan/fleetidy/internal/domain"
	"github.com/shopspring/decimal"
)

// GradeCeiling is the cumulative population share a grade extends to
type GradeCeiling struct {
	Ceiling decimal.Decimal
	Grade   domain.Grade
}

// GradeTable is walked in order; F covers whatever remains
var GradeTable = []GradeCeiling{
	{decimal.RequireFromString("0.03"), "A+"},
	{decimal.RequireFromString("0.10"), "A"},
	{decimal.RequireFromString("0.20"), "A-"},
	{decimal.RequireFromString("0.30"), "B+"},
	{decimal.RequireFromString("0.45"), "B"},
	{decimal.RequireFromString("0.55"), "B-"},
	{decimal.RequireFromString("0.65"), "C+"},
	{decimal.RequireFromString("0.75"), "C"},
	{decimal.RequireFromString("0.85"), "C-"},
	{decimal.RequireFromString("0.90"), "D+"},
	{decimal.RequireFromString("0.96"), "D"},
	{decimal.RequireFromString("0.98"), "D-"},
	{decimal.RequireFromString("1.00"), "F"},
}

// Placement is a member's rank and grade
type Placement struct {
	Index int // outcome index
	Rank  int
	Grade domain.Grade
}

// AssignGrades ranks the population by combined score, best first.
// Ties keep snapshot order. The carrier at 0-based position i of n gets the first
// grade whose ceiling exceeds i/n, so a grade holds floor(ceiling*n) carriers
// cumulatively when ceiling*n is whole.
//
// The comparison is strict. Reading the grade table as "first ceiling >= i/n"
// would put a carrier sitting exactly on a boundary, such as i=3 of 100, in the
// better grade and give 4 A+ out of 100. The strict form keeps exactly 3.
func AssignGrades(pop Population) []Placement {
	members := pop.Members()
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Combined > members[j].Combined
	})

	n := decimal.NewFromInt(int64(len(members)))
	placements := make([]Placement, len(members))
	for i, m := range members {
		placements[i] = Placement{
			Index: m.Index,
			Rank:  i + 1,
			Grade: gradeAt(decimal.NewFromInt(int64(i)), n),
		}
	}
	return placements
}

// gradeAt compares index < ceiling*n exactly instead of dividing
func gradeAt(index, n decimal.Decimal) domain.Grade {
	for _, row := range GradeTable {
		if index.LessThan(row.Ceiling.Mul(n)) {
			return row.Grade
		}
	}
	return domain.Grades[len(domain.Grades)-1]
}
