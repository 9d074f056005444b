package iss

import (
	"testing"

	"github.com/fredduggan/fleetidy/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestInsufficientData(t *testing.T) {
	tests := []struct {
		name      string
		vehicle   int
		driver    int
		power     int
		wantCase  string
		wantScore int
	}{
		{"five vehicle inspections", 5, 0, 1, "D2", 50},
		{"three driver inspections", 0, 3, 1, "D2", 50},
		{"zero inspections large fleet", 0, 0, 150, "D4", 69},
		{"zero inspections 50 units", 0, 0, 50, "D4", 68},
		{"zero inspections 20 units", 0, 0, 20, "D4", 67},
		{"zero inspections 10 units", 0, 0, 10, "D4", 66},
		{"zero inspections 5 units", 0, 0, 5, "D4", 65},
		{"zero inspections 2 units", 0, 0, 2, "D4", 64},
		{"zero inspections single unit", 0, 0, 1, "D4", 63},
		{"one vehicle inspection", 1, 0, 1, "D5", 53},
		{"three vehicle one driver", 3, 1, 1, "D5", 62},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carrier := &domain.CarrierRecord{DOTNumber: "77", PowerUnits: tt.power}
			basic := &domain.BasicRecord{VehicleInspections: tt.vehicle, DriverInspections: tt.driver}

			result := InsufficientData(carrier, basic, fixedRand(0))

			assert.Equal(t, tt.wantCase, result.Case)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, domain.BucketOptional, result.Bucket)
			assert.Equal(t, domain.SourceInsufficient, result.Source)
			assert.Nil(t, result.Group)
		})
	}
}

func TestInsufficientData_OneAwayDrawsFromRange(t *testing.T) {
	carrier := &domain.CarrierRecord{DOTNumber: "77"}

	low := InsufficientData(carrier, &domain.BasicRecord{VehicleInspections: 4}, fixedRand(0))
	high := InsufficientData(carrier, &domain.BasicRecord{DriverInspections: 2}, fixedRand(7))

	assert.Equal(t, "D3", low.Case)
	assert.Equal(t, 55, low.Score)
	assert.Equal(t, "D3", high.Case)
	assert.Equal(t, 62, high.Score)
}

func TestInsufficientData_FleetSizeFallsBack(t *testing.T) {
	truckOnly := &domain.CarrierRecord{TruckUnits: 25}
	noUnits := &domain.CarrierRecord{}

	assert.Equal(t, 67, InsufficientData(truckOnly, nil, fixedRand(0)).Score)
	assert.Equal(t, 63, InsufficientData(noUnits, nil, fixedRand(0)).Score)
}
