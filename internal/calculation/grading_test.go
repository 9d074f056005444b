package calculation

import (
	"fmt"
	"testing"

	"github.com/fredduggan/fleetidy/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func distinctPopulation(n int) []domain.CarrierOutcome {
	outcomes := make([]domain.CarrierOutcome, n)
	for i := range outcomes {
		// scatter scores so input order differs from rank order
		score := float64((i*37)%n) / 2
		outcomes[i] = eligibleOutcome(fmt.Sprintf("%d", 1000+i), 150000, 0, 0, score)
	}
	return outcomes
}

func TestAssignGrades_HundredCarrierDistribution(t *testing.T) {
	placements := AssignGrades(NewPopulation(distinctPopulation(100)))
	require.Len(t, placements, 100)

	counts := GradeDistribution(placements)
	assert.Equal(t, map[domain.Grade]int{
		"A+": 3, "A": 7, "A-": 10,
		"B+": 10, "B": 15, "B-": 10,
		"C+": 10, "C": 10, "C-": 10,
		"D+": 5, "D": 6, "D-": 2,
		"F": 2,
	}, counts)
}

func TestGradeAt_BoundaryPositionTakesNextGrade(t *testing.T) {
	n := decimal.NewFromInt(100)
	assert.Equal(t, domain.Grade("A+"), gradeAt(decimal.NewFromInt(2), n))
	assert.Equal(t, domain.Grade("A"), gradeAt(decimal.NewFromInt(3), n), "3/100 sits on the A+ ceiling")
	assert.Equal(t, domain.Grade("D-"), gradeAt(decimal.NewFromInt(97), n))
	assert.Equal(t, domain.Grade("F"), gradeAt(decimal.NewFromInt(98), n))
}

func TestAssignGrades_RanksDescendingAndRepeatable(t *testing.T) {
	outcomes := distinctPopulation(100)
	pop := NewPopulation(outcomes)

	first := AssignGrades(pop)
	second := AssignGrades(pop)
	assert.Equal(t, first, second)

	for i, p := range first {
		assert.Equal(t, i+1, p.Rank)
		if i > 0 {
			prev := outcomes[first[i-1].Index].Score.CombinedScore
			assert.Greater(t, prev, outcomes[p.Index].Score.CombinedScore)
		}
	}
	assert.Equal(t, domain.Grade("A+"), first[0].Grade)
	assert.Equal(t, domain.Grade("F"), first[99].Grade)
}

func TestAssignGrades_TiesKeepInputOrder(t *testing.T) {
	outcomes := []domain.CarrierOutcome{
		eligibleOutcome("1", 150000, 0, 0, 80),
		eligibleOutcome("2", 150000, 0, 0, 90),
		eligibleOutcome("3", 150000, 0, 0, 80),
		eligibleOutcome("4", 150000, 0, 0, 80),
	}

	placements := AssignGrades(NewPopulation(outcomes))

	var order []int
	for _, p := range placements {
		order = append(order, p.Index)
	}
	assert.Equal(t, []int{1, 0, 2, 3}, order)
}

func TestAssignGrades_SmallPopulations(t *testing.T) {
	assert.Empty(t, AssignGrades(NewPopulation(nil)))

	single := AssignGrades(NewPopulation([]domain.CarrierOutcome{eligibleOutcome("1", 150000, 0, 0, 10)}))
	require.Len(t, single, 1)
	assert.Equal(t, 1, single[0].Rank)
	assert.Equal(t, domain.Grade("A+"), single[0].Grade)

	three := AssignGrades(NewPopulation(distinctPopulation(3)))
	var grades []domain.Grade
	for _, p := range three {
		grades = append(grades, p.Grade)
	}
	assert.Equal(t, []domain.Grade{"A+", "B", "C"}, grades)
}

func TestGradeTable_CoversEveryGradeInOrder(t *testing.T) {
	require.Len(t, GradeTable, len(domain.Grades))
	for i, row := range GradeTable {
		assert.Equal(t, domain.Grades[i], row.Grade)
		if i > 0 {
			assert.True(t, row.Ceiling.GreaterThan(GradeTable[i-1].Ceiling))
		}
	}
	assert.Equal(t, "1", GradeTable[len(GradeTable)-1].Ceiling.String())
}
