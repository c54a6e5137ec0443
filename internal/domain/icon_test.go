package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIconScaleSetting_Validate(t *testing.T) {
	tests := []struct {
		exponent float64
		valid    bool
	}{
		{0.5, true},
		{1, true},
		{2.5, true},
		{10, true},
		{0, false},
		{0.25, false},
		{0.7, false},
		{10.5, false},
		{math.NaN(), false},
	}

	for _, tt := range tests {
		err := IconScaleSetting{Enabled: true, Exponent: tt.exponent}.Validate()
		if tt.valid {
			assert.NoError(t, err, "exponent %v", tt.exponent)
		} else {
			assert.Error(t, err, "exponent %v", tt.exponent)
		}
	}
}

func TestIconScalePatch_Apply(t *testing.T) {
	enabled := true
	exponent := 4.0
	base := IconScaleSetting{Enabled: false, Exponent: 2}

	assert.Equal(t, base, IconScalePatch{}.Apply(base))
	assert.Equal(t, IconScaleSetting{Enabled: true, Exponent: 2}, IconScalePatch{Enabled: &enabled}.Apply(base))
	assert.Equal(t, IconScaleSetting{Enabled: false, Exponent: 4}, IconScalePatch{Exponent: &exponent}.Apply(base))
}

func TestDefaultIconScaleSetting(t *testing.T) {
	s := DefaultIconScaleSetting()
	assert.False(t, s.Enabled)
	assert.Equal(t, 1.0, s.Exponent)
	assert.NoError(t, s.Validate())
}
