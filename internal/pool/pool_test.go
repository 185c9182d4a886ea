package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name          string
		totalStakes   float64
		feePercent    float64
		wantFee       float64
		wantAvailable float64
	}{
		{
			name:          "standard ten percent fee",
			totalStakes:   100,
			feePercent:    10,
			wantFee:       10,
			wantAvailable: 90,
		},
		{
			name:          "fractional stakes round half-up",
			totalStakes:   133.33,
			feePercent:    10,
			wantFee:       13.33,
			wantAvailable: 120.00,
		},
		{
			name:          "zero stakes",
			totalStakes:   0,
			feePercent:    10,
			wantFee:       0,
			wantAvailable: 0,
		},
		{
			name:          "zero fee",
			totalStakes:   250.50,
			feePercent:    0,
			wantFee:       0,
			wantAvailable: 250.50,
		},
		{
			name:          "full fee",
			totalStakes:   42.42,
			feePercent:    100,
			wantFee:       42.42,
			wantAvailable: 0,
		},
		{
			name:          "half-cent boundary rounds up",
			totalStakes:   0.05,
			feePercent:    50,
			wantFee:       0.03,
			wantAvailable: 0.02,
		},
		{
			name:          "negative stakes clamp to zero",
			totalStakes:   -50,
			feePercent:    10,
			wantFee:       0,
			wantAvailable: 0,
		},
		{
			name:          "fee above hundred clamps",
			totalStakes:   100,
			feePercent:    150,
			wantFee:       100,
			wantAvailable: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := Calculate(tt.totalStakes, tt.feePercent)
			assert.Equal(t, tt.wantFee, calc.FeeAmount)
			assert.Equal(t, tt.wantAvailable, calc.AvailablePool)
			// feeAmount + availablePool must reconstruct the total to the cent
			assert.Equal(t, Round2(calc.TotalStakes), Round2(calc.FeeAmount+calc.AvailablePool))
		})
	}
}

func TestCalculateDeterministic(t *testing.T) {
	inputs := []struct{ stakes, fee float64 }{
		{133.33, 10},
		{0.01, 33.33},
		{999999.99, 7.5},
		{15.155, 12},
	}

	for _, in := range inputs {
		first := Calculate(in.stakes, in.fee)
		second := Calculate(in.stakes, in.fee)
		assert.Equal(t, first, second, "identical inputs must yield identical output")
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 13.33, Round2(13.333))
	assert.Equal(t, 0.03, Round2(0.025))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, -13.33, Round2(-13.333))
}
